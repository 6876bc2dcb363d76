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
package hoist

import (
	"sort"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// hoistOneIte implements spec.md §4.5.2 for a single ite summand.
// Gcd hoisting (all leaves integer numerals, gcd ≥ 2) takes precedence
// over shared-addend hoisting; when it fires, shared is treated as
// empty. It reports whether a rewrite occurred.
func hoistOneIte(h Host, ite expr.NodeID) (expr.NodeID, bool) {
	f := h.Factory()

	args := f.Node(ite).Args()
	cond := args[0]
	leaves := args[1:]

	leafAddends := make([][]expr.NodeID, len(leaves))
	for i, l := range leaves {
		leafAddends[i] = addendsOf(f, l)
	}

	for _, la := range leafAddends {
		seen := make(map[expr.NodeID]bool, len(la))

		for _, a := range la {
			if seen[a] {
				return ite, false
			}

			seen[a] = true
		}
	}

	shared := make(map[expr.NodeID]bool)
	allNumeral := true
	g := numeral.Zero()

	for i, l := range leaves {
		if i == 0 {
			for _, a := range leafAddends[0] {
				shared[a] = true
			}
		} else {
			next := make(map[expr.NodeID]bool)

			for _, a := range leafAddends[i] {
				if shared[a] {
					next[a] = true
				}
			}

			shared = next
		}

		if f.IsNumeral(l) && f.NumeralValue(l).IsInt() {
			g = g.Gcd(f.NumeralValue(l))
		} else {
			allNumeral = false
		}
	}

	gcdHoist := allNumeral && g.Cmp(numeral.FromInt64(2)) >= 0
	sharedHoist := !gcdHoist && len(shared) > 0

	if !gcdHoist && !sharedHoist {
		return ite, false
	}

	newLeaves := make([]expr.NodeID, len(leaves))

	switch {
	case gcdHoist:
		inv := g.Inverse()

		for i, l := range leaves {
			q := f.NumeralValue(l).Mul(inv)
			newLeaves[i] = f.MkNumeralSort(h.Sort().Normalize(q), h.Sort())
		}
	case sharedHoist:
		for i := range leaves {
			var remaining []expr.NodeID

			for _, a := range leafAddends[i] {
				if !shared[a] {
					remaining = append(remaining, a)
				}
			}

			newLeaves[i] = h.MkAddApp(remaining)
		}
	}

	newIte := f.MkApp(expr.SymIte, append([]expr.NodeID{cond}, newLeaves...))

	var extra []expr.NodeID

	if sharedHoist {
		for a := range shared {
			extra = append(extra, a)
		}

		sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	}

	iteTerm := newIte
	if gcdHoist {
		iteTerm = h.MkMulAppC(g, newIte)
	}

	replacement := h.MkAddApp(append(extra, iteTerm))

	return replacement, true
}

// HoistIte implements spec.md §4.5.2 over a full summand list.
func HoistIte(h Host, summands []expr.NodeID) (bool, []expr.NodeID) {
	f := h.Factory()
	changed := false
	out := make([]expr.NodeID, 0, len(summands))

	for _, s := range summands {
		if !f.IsIte(s) {
			out = append(out, s)
			continue
		}

		repl, ok := hoistOneIte(h, s)
		if !ok {
			out = append(out, s)
			continue
		}

		changed = true
		out = append(out, repl)
	}

	return changed, out
}
