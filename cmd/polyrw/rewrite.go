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
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/rewrite"
)

// rewriteCmd canonicalizes one or more Lisp-notation polynomial terms
// given as positional arguments.
var rewriteCmd = &cobra.Command{
	Use:   "rewrite [flags] term...",
	Short: "Canonicalize one or more polynomial terms.",
	Long:  "Parse each argument as a Lisp-notation polynomial term, rewrite it to canonical form, and print the result.",
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		opts := loadOptionsOrExit(cmd)
		sort := sortFromFlag(cmd)

		f := expr.NewFactory(sort)
		r := rewrite.NewRewriter(f, opts, sort)

		pretty := term.IsTerminal(int(os.Stdout.Fd()))

		for _, in := range args {
			id, err := expr.Parse(f, in)
			if err != nil {
				fmt.Printf("%s: %v\n", in, err)
				os.Exit(2)
			}

			out := r.Rewrite(id)
			printTerm(f, out, pretty)
		}
	},
}

// loadOptionsOrExit builds a rewrite.Options value from the --config
// file (if given), then applies the --order persistent flag on top;
// any I/O or parse error exits with a diagnostic, matching the
// teacher's getFlag/os.Exit(2) idiom (pkg/cmd/util.go).
func loadOptionsOrExit(cmd *cobra.Command) rewrite.Options {
	opts := rewrite.DefaultOptions()

	if path := getString(cmd, "config"); path != "" {
		loaded, err := rewrite.LoadOptions(path)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		opts = loaded
	}

	switch getString(cmd, "order") {
	case "ast":
		opts.ArithIneqLHS = false
	case "ordinal":
		opts.ArithIneqLHS = true
	default:
		fmt.Printf("unknown order %q: expected \"ast\" or \"ordinal\"\n", getString(cmd, "order"))
		os.Exit(2)
	}

	if blowup := getUint(cmd, "som-blowup"); blowup > 0 {
		opts.SomBlowup = blowup
	}

	return opts
}

// printTerm renders id as flat Lisp notation when stdout is not a
// terminal (scripts, pipes), or with one level of indentation per
// nesting depth when it is — golang.org/x/term's TTY check is the same
// signal the teacher's output formatting would consult, generalized
// here from "colorize or not" to "indent or not."
func printTerm(f *expr.Factory, id expr.NodeID, pretty bool) {
	if !pretty {
		fmt.Println(expr.Print(f, id))
		return
	}

	fmt.Println(prettyPrint(f, id, 0))
}

func prettyPrint(f *expr.Factory, id expr.NodeID, depth int) string {
	n := f.Node(id)
	if n.Kind() != expr.KindApp || len(n.Args()) == 0 {
		return expr.Print(f, id)
	}

	indent := strings.Repeat("  ", depth+1)

	parts := make([]string, len(n.Args()))
	for i, a := range n.Args() {
		parts[i] = indent + prettyPrint(f, a, depth+1)
	}

	return fmt.Sprintf("(%s\n%s\n%s)", n.Sym(), strings.Join(parts, "\n"), strings.Repeat("  ", depth))
}

func init() {
	rootCmd.AddCommand(rewriteCmd)
}
