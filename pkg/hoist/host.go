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

// Package hoist implements the C5 hoisters and monomial-cancellation
// operations of spec.md §4.5: common multiplicative factors are pulled
// out of summands (hoist_multiplication), common additive factors or an
// integer gcd are pulled out of if-then-else branches (hoist_ite), and
// lhs ⋈ rhs equalities/inequalities are normalized (cancel_monomials,
// gcd_test). It is grounded on the same factoring idea as
// Consensys-go-corset's pkg/ir/mir/polynomial.go (findCommonFactor,
// factorPolynomial) and pkg/ir/term/ite.go's Ite[F,T] shape, generalized
// from that package's fixed field arithmetic to an exchangeable
// numeral.Sort.
//
// Host declares exactly the surface hoist needs from a normalizer
// instance. It exists (rather than a direct import of
// github.com/ringrewrite/polyrw/pkg/rewrite) purely to break the import
// cycle that a literal *rewrite.Rewriter parameter would create — the
// normalizer calls into hoist for its own mk_nflat_add_core, and hoist
// calls back into the normalizer's constructors. *rewrite.Rewriter
// satisfies this interface unmodified.
package hoist

import (
	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/order"
)

// Host is the subset of *rewrite.Rewriter that the hoisters and
// cancellation operations consume.
type Host interface {
	Factory() *expr.Factory
	Comparator() order.Comparator
	Sort() numeral.Sort
	SortSums() bool
	MkMulApp(args []expr.NodeID) expr.NodeID
	MkMulAppC(c numeral.Value, arg expr.NodeID) expr.NodeID
	MkAddApp(args []expr.NodeID) expr.NodeID
}

// flattenFactors recursively unpacks the nested (* c (* x y z)) monomial
// shape (and any plain (* a b c) power product) into a flat factor list;
// a non-mul term contributes itself as a singleton.
func flattenFactors(f *expr.Factory, t expr.NodeID) []expr.NodeID {
	if !f.IsMul(t) {
		return []expr.NodeID{t}
	}

	var out []expr.NodeID

	for _, a := range f.Node(t).Args() {
		out = append(out, flattenFactors(f, a)...)
	}

	return out
}

// addendsOf returns the flattened summands of an add term, or a
// singleton for a non-add term.
func addendsOf(f *expr.Factory, t expr.NodeID) []expr.NodeID {
	if !f.IsAdd(t) {
		return []expr.NodeID{t}
	}

	return append([]expr.NodeID(nil), f.Node(t).Args()...)
}

// monomialParts splits a canonical monomial into its power product and
// coefficient, defaulting to a coefficient of 1 for a bare power
// product or leaf.
func monomialParts(f *expr.Factory, m expr.NodeID) (expr.NodeID, numeral.Value) {
	if f.IsMul(m) && f.NumArgs(m) == 2 && f.IsNumeral(f.Arg(m, 0)) {
		return f.Arg(m, 1), f.NumeralValue(f.Arg(m, 0))
	}

	return m, numeral.FromInt64(1)
}
