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
	"testing"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/rewrite"
)

// scenario mirrors spec.md §8's eight concrete scenarios, run here
// through the same Lisp parser/printer round trip the rewrite
// subcommand uses, without going through cobra itself.
type scenario struct {
	name  string
	opts  func(rewrite.Options) rewrite.Options
	input string
	want  string
}

func scenarioTable() []scenario {
	return []scenario{
		{"flatten_fold_sort", identity, "(+ 1 x (+ 2 y) x)", "(+ 3 y (* 2 x))"},
		{"distribute_scalar", identity, "(* 2 (+ x y))", "(+ (* 2 x) (* 2 y))"},
		{"sum_of_monomials", withSom, "(* (+ x 1) (+ x 2))", "(+ 2 (* 3 x) (* x x))"},
		{"subtraction", identity, "(- a b c)", "(+ a (* -1 b) (* -1 c))"},
		{"merge_like_monomials", identity, "(+ (* 2 x y) (* 3 x y))", "(* 5 (* x y))"},
		{"power_grouping", withPower, "(* x y x)", "(* (^ x 2) y)"},
		{"hoist_multiplication", withHoistMul, "(+ (* 3 a b) (* 3 a c))", "(* 3 (* a (+ b c)))"},
		{"hoist_ite", withHoistIte, "(+ 1 (ite p (+ a 1) (+ a 2)))", "(+ 1 a (ite p 1 2))"},
	}
}

func identity(o rewrite.Options) rewrite.Options { return o }

func withSom(o rewrite.Options) rewrite.Options {
	o.Som = true
	return o
}

func withPower(o rewrite.Options) rewrite.Options {
	o.UsePower = true
	return o
}

func withHoistMul(o rewrite.Options) rewrite.Options {
	o.HoistMul = true
	return o
}

func withHoistIte(o rewrite.Options) rewrite.Options {
	o.HoistIte = true
	return o
}

func TestCLIScenariosRoundTripThroughLispNotation(t *testing.T) {
	for _, s := range scenarioTable() {
		t.Run(s.name, func(t *testing.T) {
			opts := s.opts(rewrite.DefaultOptions())

			f := expr.NewFactory(numeral.RationalSort{})

			id, err := expr.Parse(f, s.input)
			if err != nil {
				t.Fatalf("parse %q: %v", s.input, err)
			}

			r := rewrite.NewRewriter(f, opts, numeral.RationalSort{})

			got := expr.Print(f, r.Rewrite(id))
			if got != s.want {
				t.Fatalf("got %q, want %q", got, s.want)
			}
		})
	}
}

func TestPrettyPrintFallsBackToFlatOnLeaf(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	id, err := expr.Parse(f, "x")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := prettyPrint(f, id, 0)
	if got != "x" {
		t.Fatalf("got %q, want %q", got, "x")
	}
}

func TestPrettyPrintIndentsNestedApplications(t *testing.T) {
	f := expr.NewFactory(numeral.RationalSort{})

	id, err := expr.Parse(f, "(+ x y)")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := prettyPrint(f, id, 0)

	want := "(+\n  x\n  y\n)"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
