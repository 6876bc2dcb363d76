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
	"context"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/rewrite"
	"github.com/ringrewrite/polyrw/pkg/tactic"
)

// benchCmd rewrites term under every (flat, som, sort_sums) combination
// named by --variants concurrently via tactic.Par, reporting which
// configuration's worker won and how long the whole fan-out took. It
// exercises the §5/§7 concurrency model end to end: each variant runs
// against its own expr.Factory clone inside tactic's worker pool.
var benchCmd = &cobra.Command{
	Use:   "bench [flags] term",
	Short: "Race several rewrite configurations over one term.",
	Long:  "Parse term, then run it through several rewrite.Options variants concurrently via the tactic package's fan-out combinator, reporting the winner.",
	Run: func(cmd *cobra.Command, args []string) {
		if getFlag(cmd, "verbose") {
			log.SetLevel(log.DebugLevel)
		}

		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}

		sort := sortFromFlag(cmd)

		f := expr.NewFactory(sort)

		id, err := expr.Parse(f, args[0])
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		branches := benchBranches(sort)

		goal := tactic.Goal{Formulas: []expr.NodeID{id}}

		start := time.Now()

		result, err := tactic.Par(branches).Apply(context.Background(), f, goal)

		elapsed := time.Since(start)

		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		fmt.Printf("winner (%s): %s\n", elapsed, expr.Print(f, result.Goals[0].Formulas[0]))
	},
}

// benchBranches returns one RewriteTactic per named variant, the
// plain/som/power configurations a caller would otherwise have to
// race by hand, all three run under the same --sort numeral kernel.
func benchBranches(sort numeral.Sort) []tactic.Tactic {
	plain := rewrite.DefaultOptions()

	som := rewrite.DefaultOptions()
	som.Som = true

	power := rewrite.DefaultOptions()
	power.UsePower = true

	return []tactic.Tactic{
		tactic.RewriteTactic{Opts: plain, Sort: sort},
		tactic.RewriteTactic{Opts: som, Sort: sort},
		tactic.RewriteTactic{Opts: power, Sort: sort},
	}
}

func init() {
	rootCmd.AddCommand(benchCmd)
}
