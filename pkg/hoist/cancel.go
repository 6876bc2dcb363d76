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
	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/order"
)

func splitConstMonos(f *expr.Factory, addends []expr.NodeID) (numeral.Value, []expr.NodeID) {
	c := numeral.Zero()

	var monos []expr.NodeID

	for _, a := range addends {
		if f.IsNumeral(a) {
			c = c.Add(f.NumeralValue(a))
			continue
		}

		monos = append(monos, a)
	}

	return c, monos
}

// CancelMonomials implements spec.md §4.5.3: it normalizes lhs ⋈ rhs by
// collecting signed coefficients per power product (positive on lhs,
// negative on rhs). With move, every non-constant monomial ends up on
// lhs and a single constant on rhs. Without move, only monomials whose
// net coefficient cancels to zero are dropped, each from the side it
// originally appeared on. Reports false ("Failed", spec.md §4.5.3) when
// it can detect no change is possible.
func CancelMonomials(h Host, lhs, rhs expr.NodeID, move bool) (bool, expr.NodeID, expr.NodeID) {
	f := h.Factory()

	lhsConst, lhsMonos := splitConstMonos(f, addendsOf(f, lhs))
	rhsConst, rhsMonos := splitConstMonos(f, addendsOf(f, rhs))

	net := make(map[expr.NodeID]numeral.Value)
	onLHS := make(map[expr.NodeID]bool)
	onRHS := make(map[expr.NodeID]bool)

	for _, m := range lhsMonos {
		pp, coeff := monomialParts(f, m)
		net[pp] = net[pp].Add(coeff)
		onLHS[pp] = true
	}

	for _, m := range rhsMonos {
		pp, coeff := monomialParts(f, m)
		net[pp] = net[pp].Sub(coeff)
		onRHS[pp] = true
	}

	for pp, v := range net {
		net[pp] = h.Sort().Normalize(v)
	}

	overlap := false

	for pp := range net {
		if onLHS[pp] && onRHS[pp] {
			overlap = true
			break
		}
	}

	if move {
		if !overlap && f.IsNumeral(rhs) {
			return false, lhs, rhs
		}

		var newLhsMonos []expr.NodeID

		emitted := make(map[expr.NodeID]bool)
		order2 := make([]expr.NodeID, 0, len(net))

		for _, m := range lhsMonos {
			pp, _ := monomialParts(f, m)
			if !emitted[pp] {
				emitted[pp] = true
				order2 = append(order2, pp)
			}
		}

		for _, m := range rhsMonos {
			pp, _ := monomialParts(f, m)
			if !emitted[pp] {
				emitted[pp] = true
				order2 = append(order2, pp)
			}
		}

		for _, pp := range order2 {
			coeff := net[pp]
			if coeff.IsZero() {
				continue
			}

			newLhsMonos = append(newLhsMonos, h.MkMulAppC(coeff, pp))
		}

		if h.SortSums() {
			newLhsMonos = order.SortStable(h.Comparator(), newLhsMonos)
		}

		newLhs := h.MkAddApp(newLhsMonos)
		newRhsConst := h.Sort().Normalize(rhsConst.Sub(lhsConst))
		newRhs := f.MkNumeralSort(newRhsConst, h.Sort())

		return true, newLhs, newRhs
	}

	if !overlap {
		return false, lhs, rhs
	}

	keep := func(pp expr.NodeID) bool { return !net[pp].IsZero() }

	var lhsMonoFinal, rhsMonoFinal []expr.NodeID

	for _, m := range lhsMonos {
		pp, _ := monomialParts(f, m)
		if keep(pp) {
			lhsMonoFinal = append(lhsMonoFinal, m)
		}
	}

	for _, m := range rhsMonos {
		pp, _ := monomialParts(f, m)
		if keep(pp) {
			rhsMonoFinal = append(rhsMonoFinal, m)
		}
	}

	if h.SortSums() {
		lhsMonoFinal = order.SortStable(h.Comparator(), lhsMonoFinal)
		rhsMonoFinal = order.SortStable(h.Comparator(), rhsMonoFinal)
	}

	lhsConstFinal, rhsConstFinal := lhsConst, rhsConst
	rhsEmpty := len(rhsMonoFinal) == 0 && rhsConstFinal.IsZero()

	if rhsEmpty && !lhsConstFinal.IsZero() {
		rhsConstFinal = lhsConstFinal
		lhsConstFinal = numeral.Zero()
	}

	lhsFinal := lhsMonoFinal
	if !lhsConstFinal.IsZero() {
		lhsFinal = append([]expr.NodeID{f.MkNumeralSort(lhsConstFinal, h.Sort())}, lhsFinal...)
	}

	rhsFinal := rhsMonoFinal
	if !rhsConstFinal.IsZero() {
		rhsFinal = append([]expr.NodeID{f.MkNumeralSort(rhsConstFinal, h.Sort())}, rhsFinal...)
	}

	newLhs := h.MkAddApp(lhsFinal)
	newRhs := h.MkAddApp(rhsFinal)

	return true, newLhs, newRhs
}
