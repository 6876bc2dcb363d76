// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command polyrw is a small toolbox around the polynomial rewriter,
// grounded on Consensys-go-corset's pkg/cmd/root.go: a persistent-flag
// root command with one subcommand per file (rewrite.go, cancel.go,
// bench.go).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "polyrw",
	Short: "A toolbox for canonicalizing polynomial expressions.",
	Long:  "A toolbox for canonicalizing, distributing and hoisting polynomial expressions over an exact rational numeral kernel.",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. It is called by main.main exactly once.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// getFlag reads a required bool flag, panicking via os.Exit on error in
// the teacher's style (pkg/cmd/util.go's getFlag).
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// sortFromFlag resolves --sort into a concrete numeral.Sort: "rational"
// (the default, exact-rational kernel) or "bls12-377" (the modular
// numeral.FieldSort backed by gnark-crypto's scalar field, spec.md
// §4.1/§9's sort-dependent normalize(c) made concrete).
func sortFromFlag(cmd *cobra.Command) numeral.Sort {
	switch getString(cmd, "sort") {
	case "rational":
		return numeral.RationalSort{}
	case "bls12-377":
		return numeral.FieldSort{}
	default:
		fmt.Printf("unknown sort %q: expected \"rational\" or \"bls12-377\"\n", getString(cmd, "sort"))
		os.Exit(2)

		return nil
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to a JSON rewrite.Options file; overrides the built-in defaults")
	rootCmd.PersistentFlags().String("order", "ast", "monomial order to use: \"ast\" or \"ordinal\"")
	rootCmd.PersistentFlags().String("sort", "rational", "numeral sort to use: \"rational\" or \"bls12-377\"")
	rootCmd.PersistentFlags().Uint("som-blowup", 0, "override rewrite.Options.SomBlowup; 0 keeps the config file's or default value")
}
