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
)

// GcdTest implements spec.md §4.5.4, a linear-integer unsatisfiability
// check for lhs = rhs. It bails "no contradiction" (true) whenever a
// non-constant monomial has a non-integer coefficient or the constant
// offset is not an integer; the power products themselves are not
// inspected, so every variable is treated as integer-valued. A false
// result lets the caller conclude the equality has no integer solution.
func GcdTest(h Host, lhs, rhs expr.NodeID) bool {
	f := h.Factory()

	lhsConst, lhsMonos := splitConstMonos(f, addendsOf(f, lhs))
	rhsConst, rhsMonos := splitConstMonos(f, addendsOf(f, rhs))

	g := numeral.Zero()

	for _, m := range lhsMonos {
		_, coeff := monomialParts(f, m)
		if !coeff.IsInt() {
			return true
		}

		g = g.Gcd(coeff)
	}

	for _, m := range rhsMonos {
		_, coeff := monomialParts(f, m)
		if !coeff.IsInt() {
			return true
		}

		g = g.Gcd(coeff)
	}

	offset := lhsConst.Sub(rhsConst)
	if !offset.IsInt() {
		return true
	}

	if offset.IsZero() || g.IsZero() {
		return true
	}

	return g.Divides(offset)
}
