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

// Package tactic realizes the external collaborator spec.md §6 names but
// leaves unspecified: a tactic combinator framework which invokes the
// polynomial rewriter (pkg/rewrite) as one tactic implementation among
// others, without being driven by it.  There is no direct teacher
// analogue for the combinator surface itself — Consensys-go-corset has
// no tactic framework — so the interface layering here follows the
// teacher's general preference for small composable interfaces over a
// class hierarchy, as seen in pkg/ir/term/term.go's Contextual /
// Evaluable / Substitutable split.
package tactic

import (
	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// Goal carries a set of formulas and the three feature flags spec.md §6
// names, plus an optional lexicographic bound carried for callers.
type Goal struct {
	// Formulas are the open constraints still to be discharged, each a
	// node in some *expr.Factory.  A goal's formulas all belong to the
	// same factory; a tactic that moves a goal to another factory must
	// rewrite every element.
	Formulas []expr.NodeID
	// ProofsEnabled, when true, means the caller wants proof terms
	// retained; IfNoProofs consults this to avoid
	// wasted proof bookkeeping inside a branch that cannot use it.
	ProofsEnabled bool
	// UnsatCoreEnabled mirrors ProofsEnabled for unsat cores.
	UnsatCoreEnabled bool
	// ModelsEnabled mirrors ProofsEnabled for satisfying models.
	ModelsEnabled bool
	// Bound is an optional lexicographic resource bound; Repeat and
	// TryFor consult it to decide whether another iteration is
	// affordable. A nil Bound means unbounded.
	Bound *numeral.LexPair
}

// Clone returns a goal with its own Formulas slice, so a combinator can
// hand a goal to more than one branch without aliasing mutation.
func (g Goal) Clone() Goal {
	out := g
	out.Formulas = append([]expr.NodeID(nil), g.Formulas...)

	return out
}

// Decided reports whether g is already settled without further tactic
// work: a formula set is "true" (sat) when every formula is the
// numeral zero (an identically-satisfied polynomial constraint, or no
// constraints at all), and "false" (unsat) as soon as any formula is a
// nonzero numeral constant — a constraint that can never hold. Any
// other formula leaves the goal undecided.
func (g Goal) Decided(f *expr.Factory) (decided bool, sat bool) {
	allZero := true

	for _, id := range g.Formulas {
		if !f.IsNumeral(id) {
			allZero = false
			continue
		}

		if !f.IsZero(id) {
			return true, false
		}
	}

	if allZero {
		return true, true
	}

	return false, false
}

// Result is what a Tactic.Apply call produces: zero or more successor
// goals (zero means the goal was fully discharged), or an error when
// the tactic declined or was cancelled.
type Result struct {
	Goals []Goal
}

// Decided is a convenience constructor for a result carrying a single
// trivially-true or trivially-false goal.
func Decided(f *expr.Factory, sat bool) Result {
	if sat {
		return Result{Goals: []Goal{{Formulas: []expr.NodeID{f.MkNumeralSort(numeral.Zero(), f.DefaultSort())}}}}
	}

	return Result{Goals: []Goal{{Formulas: []expr.NodeID{f.MkNumeralSort(numeral.FromInt64(1), f.DefaultSort())}}}}
}
