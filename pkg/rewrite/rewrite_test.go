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
package rewrite

import (
	"testing"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

func rewriteString(t *testing.T, opts Options, input string) string {
	t.Helper()

	f := expr.NewFactory(numeral.RationalSort{})

	id, err := expr.Parse(f, input)
	if err != nil {
		t.Fatalf("parse %q: %v", input, err)
	}

	r := NewRewriter(f, opts, numeral.RationalSort{})
	got := r.Rewrite(id)

	return expr.Print(f, got)
}

func TestScenario1FlattenFoldSort(t *testing.T) {
	opts := DefaultOptions()

	got := rewriteString(t, opts, "(+ 1 x (+ 2 y) x)")
	want := "(+ 3 y (* 2 x))"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenario2DistributeScalar(t *testing.T) {
	opts := DefaultOptions()

	got := rewriteString(t, opts, "(* 2 (+ x y))")
	want := "(+ (* 2 x) (* 2 y))"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenario3SumOfMonomials(t *testing.T) {
	opts := DefaultOptions()
	opts.Som = true

	got := rewriteString(t, opts, "(* (+ x 1) (+ x 2))")
	want := "(+ 2 (* 3 x) (* x x))"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenario4Subtraction(t *testing.T) {
	opts := DefaultOptions()

	got := rewriteString(t, opts, "(- a b c)")
	want := "(+ a (* -1 b) (* -1 c))"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenario5MergeLikeMonomials(t *testing.T) {
	opts := DefaultOptions()

	got := rewriteString(t, opts, "(+ (* 2 x y) (* 3 x y))")
	want := "(* 5 (* x y))"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenario6PowerGrouping(t *testing.T) {
	opts := DefaultOptions()
	opts.UsePower = true

	got := rewriteString(t, opts, "(* x y x)")
	want := "(* (^ x 2) y)"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenario7HoistMultiplication(t *testing.T) {
	opts := DefaultOptions()
	opts.HoistMul = true

	got := rewriteString(t, opts, "(+ (* 3 a b) (* 3 a c))")
	want := "(* 3 (* a (+ b c)))"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestScenario8HoistIte(t *testing.T) {
	opts := DefaultOptions()
	opts.HoistIte = true

	got := rewriteString(t, opts, "(+ 1 (ite p (+ a 1) (+ a 2)))")
	want := "(+ 1 a (ite p 1 2))"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestIdempotence(t *testing.T) {
	opts := DefaultOptions()

	inputs := []string{
		"(+ 1 x (+ 2 y) x)",
		"(* 2 (+ x y))",
		"(- a b c)",
	}

	for _, in := range inputs {
		f := expr.NewFactory(numeral.RationalSort{})

		id, err := expr.Parse(f, in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}

		r := NewRewriter(f, opts, numeral.RationalSort{})
		once := r.Rewrite(id)
		twice := r.Rewrite(once)

		if once != twice {
			t.Fatalf("not idempotent for %q: %v != %v", in, once, twice)
		}
	}
}

func TestCommutativityProducesPointerEqualResult(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})
	opts := DefaultOptions()

	a, err := expr.Parse(f, "(+ x y 1)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	b, err := expr.Parse(f, "(+ 1 y x)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r := NewRewriter(f, opts, numeral.RationalSort{})

	ra := r.Rewrite(a)
	rb := r.Rewrite(b)

	if ra != rb {
		t.Fatalf("expected pointer-equal canonical forms, got %v and %v", ra, rb)
	}
}

func TestZeroOneElision(t *testing.T) {
	opts := DefaultOptions()

	got := rewriteString(t, opts, "(+ 0 x (* 1 y))")
	want := "(+ x y)"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestMulByZeroCollapses(t *testing.T) {
	opts := DefaultOptions()

	got := rewriteString(t, opts, "(* x 0 y)")
	want := "0"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestNoPowerWithoutUsePower(t *testing.T) {
	opts := DefaultOptions()

	got := rewriteString(t, opts, "(* x x x)")
	want := "(* x x x)"

	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestSomBudgetFallsBackToNonDistributedForm(t *testing.T) {
	opts := DefaultOptions()
	opts.Som = true
	opts.SomBlowup = 1

	f := expr.NewFactory(numeral.RationalSort{})

	// A nested product of three 2-term sums would expand to 8 products,
	// comfortably over a som_blowup of 1 times the (small) original
	// arity; the rewriter must fall back to a non-distributed form
	// rather than allocate 8 products.
	input := "(* (+ a 1) (+ b 1) (+ c 1))"

	id, err := expr.Parse(f, input)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r := NewRewriter(f, opts, numeral.RationalSort{})

	got := r.Rewrite(id)
	if f.IsAdd(got) {
		t.Fatalf("expected budget to block distribution into a sum, got %s", expr.Print(f, got))
	}
}

func TestCoefficientAlwaysAtPositionZero(t *testing.T) {
	opts := DefaultOptions()

	f := expr.NewFactory(numeral.RationalSort{})

	id, err := expr.Parse(f, "(* x 3 y)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	r := NewRewriter(f, opts, numeral.RationalSort{})

	got := r.Rewrite(id)
	if !f.IsMul(got) {
		t.Fatalf("expected a mul, got %s", expr.Print(f, got))
	}

	if !f.IsNumeral(f.Arg(got, 0)) {
		t.Fatalf("expected coefficient at position 0, got %s", expr.Print(f, got))
	}

	for i := 1; i < f.NumArgs(got); i++ {
		if f.IsNumeral(f.Arg(got, i)) {
			t.Fatalf("unexpected second numeric child at position %d", i)
		}
	}
}
