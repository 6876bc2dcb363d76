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
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/hoist"
	"github.com/ringrewrite/polyrw/pkg/rewrite"
)

// cancelCmd normalizes an equality or inequality lhs ⋈ rhs by removing
// monomials common to both sides (spec.md §4.5.3), then runs the
// integer gcd contradiction test (spec.md §4.5.4) on what remains.
var cancelCmd = &cobra.Command{
	Use:   "cancel [flags] lhs rhs",
	Short: "Cancel shared monomials between two polynomial terms.",
	Long:  "Parse lhs and rhs as Lisp-notation polynomial terms, cancel any monomials common to both sides, and report the gcd contradiction test's verdict.",
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		move := getFlag(cmd, "move")

		opts := loadOptionsOrExit(cmd)
		sort := sortFromFlag(cmd)

		f := expr.NewFactory(sort)
		r := rewrite.NewRewriter(f, opts, sort)

		lhs, err := expr.Parse(f, args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		rhs, err := expr.Parse(f, args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		lhs, rhs = r.Rewrite(lhs), r.Rewrite(rhs)

		changed, newLhs, newRhs := hoist.CancelMonomials(r, lhs, rhs, move)
		if changed {
			lhs, rhs = newLhs, newRhs
		}

		fmt.Printf("%s = %s\n", expr.Print(f, lhs), expr.Print(f, rhs))

		if hoist.GcdTest(r, lhs, rhs) {
			fmt.Println("gcd test: no contradiction detected")
		} else {
			fmt.Println("gcd test: unsatisfiable")
		}
	},
}

func init() {
	rootCmd.AddCommand(cancelCmd)
	cancelCmd.Flags().Bool("move", false, "move a surviving constant across the equality rather than only dropping an exact cancellation")
}
