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
package order

import (
	"testing"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

func TestASTOrderNumeralsFirst(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	n := f.MkNumeral(numeral.FromInt64(5))
	x := f.MkVar("x")

	o := ASTOrder{F: f}
	if !o.Less(n, x) {
		t.Fatalf("expected numeral to sort before variable")
	}

	if o.Less(x, n) {
		t.Fatalf("did not expect variable to sort before numeral")
	}
}

func TestASTOrderVariablesByName(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	x := f.MkVar("x")
	y := f.MkVar("y")

	o := ASTOrder{F: f}
	if !o.Less(x, y) {
		t.Fatalf("expected x < y lexically")
	}
}

func TestASTOrderTotalAndAntisymmetric(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	x := f.MkVar("x")
	y := f.MkVar("y")
	add := f.MkApp(expr.SymAdd, []expr.NodeID{x, y})

	o := ASTOrder{F: f}

	ids := []expr.NodeID{add, x, y}
	for _, a := range ids {
		for _, b := range ids {
			if a == b {
				continue
			}

			if o.Less(a, b) == o.Less(b, a) {
				t.Fatalf("order not antisymmetric for %d,%d", a, b)
			}
		}
	}
}

func TestOrdinalOrderNumeralsFirst(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	n := f.MkNumeral(numeral.FromInt64(5))
	x := f.MkVar("x")

	o := OrdinalOrder{F: f}
	if !o.Less(n, x) {
		t.Fatalf("expected numeral ordinal -1 to sort first")
	}
}

func TestOrdinalOrderGroupsByPowerProduct(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	x := f.MkVar("x")
	y := f.MkVar("y")
	pp := f.MkApp(expr.SymMul, []expr.NodeID{x, y})

	two := f.MkNumeral(numeral.FromInt64(2))
	three := f.MkNumeral(numeral.FromInt64(3))

	twoPP := f.MkApp(expr.SymMul, []expr.NodeID{two, pp})
	threePP := f.MkApp(expr.SymMul, []expr.NodeID{three, pp})

	o := OrdinalOrder{F: f}

	// Both monomials share the same power product, so their ordinals tie
	// and the comparator falls back to node identifier.
	if o.ordinal(twoPP) != o.ordinal(threePP) {
		t.Fatalf("expected tied ordinals for shared power product")
	}

	if twoPP < threePP && !o.Less(twoPP, threePP) {
		t.Fatalf("expected id tie-break to order twoPP before threePP")
	}
}

func TestOrdinalOrderUsePowerGroupsByBase(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	x := f.MkVar("x")
	two := f.MkNumeral(numeral.FromInt64(2))
	three := f.MkNumeral(numeral.FromInt64(3))

	xPow2 := f.MkApp(expr.SymPower, []expr.NodeID{x, two})
	xPow3 := f.MkApp(expr.SymPower, []expr.NodeID{x, three})

	o := OrdinalOrder{F: f, UsePower: true}
	if o.ordinal(xPow2) != o.ordinal(xPow3) {
		t.Fatalf("expected x^2 and x^3 to share an ordinal under UsePower")
	}

	oNoPower := OrdinalOrder{F: f, UsePower: false}
	if oNoPower.ordinal(xPow2) == oNoPower.ordinal(xPow3) {
		t.Fatalf("did not expect shared ordinal without UsePower")
	}
}

func TestIsSortedAndSortStable(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	a := f.MkVar("a")
	b := f.MkVar("b")
	c := f.MkVar("c")

	o := ASTOrder{F: f}

	sorted := []expr.NodeID{a, b, c}
	if !IsSorted(o, sorted) {
		t.Fatalf("expected a,b,c to already be sorted")
	}

	unsorted := []expr.NodeID{c, a, b}
	if IsSorted(o, unsorted) {
		t.Fatalf("did not expect c,a,b to be sorted")
	}

	got := SortStable(o, unsorted)
	if got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("unexpected sort result: %v", got)
	}

	// Original slice must not be mutated.
	if unsorted[0] != c {
		t.Fatalf("SortStable must not mutate its input")
	}
}
