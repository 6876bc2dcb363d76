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
package tactic

import (
	"context"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/rewrite"
)

// RewriteTactic wraps the polynomial rewriter as a single Tactic: each
// formula in the goal is rewritten to its canonical form, and the goal
// is marked Decided as soon as that leaves only numeral zeros (sat) or
// any nonzero numeral (unsat). The rewriter is the body of this tactic,
// not its driver — spec.md §6 is explicit that the framework calls the
// rewriter, never the reverse.
type RewriteTactic struct {
	Opts rewrite.Options
	Sort numeral.Sort
}

// Apply implements Tactic.
func (rt RewriteTactic) Apply(ctx context.Context, f *expr.Factory, g Goal) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	default:
	}

	r := rewrite.NewRewriter(f, rt.Opts, rt.Sort)

	out := g.Clone()

	for i, id := range out.Formulas {
		out.Formulas[i] = r.Rewrite(id)
	}

	return Result{Goals: []Goal{out}}, nil
}
