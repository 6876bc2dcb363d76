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
package hoist_test

import (
	"testing"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/hoist"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/rewrite"
)

func newHost(t *testing.T, opts rewrite.Options) (*expr.Factory, *rewrite.Rewriter) {
	t.Helper()

	f := expr.NewFactory(numeral.RationalSort{})
	r := rewrite.NewRewriter(f, opts, numeral.RationalSort{})

	return f, r
}

func parse(t *testing.T, f *expr.Factory, s string) expr.NodeID {
	t.Helper()

	id, err := expr.Parse(f, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}

	return id
}

func TestHoistMultiplicationSharedPrefix(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	ab := parse(t, f, "(* 3 (* a b))")
	ac := parse(t, f, "(* 3 (* a c))")

	changed, out := hoist.HoistMultiplication(r, []expr.NodeID{ab, ac})
	if !changed {
		t.Fatalf("expected a merge to occur")
	}

	if len(out) != 1 {
		t.Fatalf("expected a single merged summand, got %d: %v", len(out), out)
	}

	got := expr.Print(f, out[0])

	want := "(* 3 (* a (+ b c)))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHoistMultiplicationNoSharedFactorIsNoop(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	a := parse(t, f, "(* 3 (* a b))")
	b := parse(t, f, "(* 5 (* c d))")

	changed, out := hoist.HoistMultiplication(r, []expr.NodeID{a, b})
	if changed {
		t.Fatalf("did not expect a merge, got %v", out)
	}
}

func TestHoistIteSharedAddend(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	ite := parse(t, f, "(ite p (+ a 1) (+ a 2))")

	changed, out := hoist.HoistIte(r, []expr.NodeID{ite})
	if !changed {
		t.Fatalf("expected shared addend a to be hoisted")
	}

	if len(out) != 1 {
		t.Fatalf("expected a single replacement summand, got %d: %v", len(out), out)
	}

	got := expr.Print(f, out[0])

	want := "(+ a (ite p 1 2))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHoistIteGcd(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	ite := parse(t, f, "(ite p 4 6)")

	changed, out := hoist.HoistIte(r, []expr.NodeID{ite})
	if !changed {
		t.Fatalf("expected gcd hoisting to fire for (ite p 4 6)")
	}

	if len(out) != 1 {
		t.Fatalf("expected a single summand, got %d: %v", len(out), out)
	}

	got := expr.Print(f, out[0])

	want := "(* 2 (ite p 2 3))"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestHoistIteMixedLeavesSkipsGcd(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	// One leaf is symbolic, so gcd hoisting must not fire; there is also
	// no shared addend, so nothing should change.
	ite := parse(t, f, "(ite p 4 x)")

	changed, _ := hoist.HoistIte(r, []expr.NodeID{ite})
	if changed {
		t.Fatalf("did not expect a rewrite when leaves are mixed numeral/symbolic")
	}
}

func TestCancelMonomialsMove(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	lhs := parse(t, f, "(+ (* 2 x) 1)")
	rhs := parse(t, f, "(+ x 3)")

	changed, newLhs, newRhs := hoist.CancelMonomials(r, lhs, rhs, true)
	if !changed {
		t.Fatalf("expected a change")
	}

	gotLhs := expr.Print(f, newLhs)
	gotRhs := expr.Print(f, newRhs)

	wantLhs := "x"
	wantRhs := "2"

	if gotLhs != wantLhs || gotRhs != wantRhs {
		t.Fatalf("got lhs=%q rhs=%q, want lhs=%q rhs=%q", gotLhs, gotRhs, wantLhs, wantRhs)
	}
}

func TestCancelMonomialsNoMoveDropsOnlyExactCancellation(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	lhs := parse(t, f, "(+ x y)")
	rhs := parse(t, f, "(+ x 5)")

	changed, newLhs, newRhs := hoist.CancelMonomials(r, lhs, rhs, false)
	if !changed {
		t.Fatalf("expected the shared x monomial to be dropped")
	}

	gotLhs := expr.Print(f, newLhs)
	gotRhs := expr.Print(f, newRhs)

	wantLhs := "y"
	wantRhs := "5"

	if gotLhs != wantLhs || gotRhs != wantRhs {
		t.Fatalf("got lhs=%q rhs=%q, want lhs=%q rhs=%q", gotLhs, gotRhs, wantLhs, wantRhs)
	}
}

func TestCancelMonomialsNoOverlapIsNoop(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	lhs := parse(t, f, "(+ x 1)")
	rhs := parse(t, f, "(+ y 2)")

	changed, _, _ := hoist.CancelMonomials(r, lhs, rhs, false)
	if changed {
		t.Fatalf("did not expect a change when lhs and rhs share no monomial")
	}
}

func TestGcdTestDetectsUnsatisfiableEquality(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	// 2x = 2y + 1 has no integer solution: gcd(2,2)=2 does not divide 1.
	lhs := parse(t, f, "(* 2 x)")
	rhs := parse(t, f, "(+ (* 2 y) 1)")

	if hoist.GcdTest(r, lhs, rhs) {
		t.Fatalf("expected gcd test to report unsatisfiable")
	}
}

func TestGcdTestAllowsSatisfiableEquality(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	// 2x = 2y + 4 has integer solutions (e.g. x=y+2): gcd(2,2)=2 divides 4.
	lhs := parse(t, f, "(* 2 x)")
	rhs := parse(t, f, "(+ (* 2 y) 4)")

	if !hoist.GcdTest(r, lhs, rhs) {
		t.Fatalf("expected gcd test to report no contradiction")
	}
}

func TestGcdTestBailsOnNonIntegerCoefficient(t *testing.T) {
	opts := rewrite.DefaultOptions()
	f, r := newHost(t, opts)

	lhs := parse(t, f, "(* 1/2 x)")
	rhs := parse(t, f, "(+ y 1)")

	if !hoist.GcdTest(r, lhs, rhs) {
		t.Fatalf("expected gcd test to bail (report true) on a non-integer coefficient")
	}
}
