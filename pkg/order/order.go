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

// Package order provides the total monomial ordering consumed by the
// normalizer (spec.md §4.3) to sort the children of a canonical sum.
// Neither comparator has a direct analogue in Consensys-go-corset (the
// teacher has no monomial order of its own: pkg/util/poly/array_poly.go
// relies on Monomial.Cmp, a much narrower, variable-only comparison); the
// Comparator value type driving a stable sort follows the teacher's
// general preference for small Comparable[T] types
// (pkg/util/collection/array/util.go's Compare[T Comparable[T]]).
package order

import (
	"cmp"
	"slices"
	"strings"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// Comparator is a total order over factory nodes.
type Comparator interface {
	// Less reports whether a sorts strictly before b.
	Less(a, b expr.NodeID) bool
}

// ASTOrder is a total order derived from the factory's structural shape:
// kind tag, then (for applications) symbol and arity, then child-wise
// recursion; ties (which can only arise between a node and itself, since
// hash-consing already unifies identical structure) are broken by node
// identifier.
type ASTOrder struct{ F *expr.Factory }

// Less implements Comparator.
func (o ASTOrder) Less(a, b expr.NodeID) bool {
	if a == b {
		return false
	}

	if c := compareAST(o.F, a, b); c != 0 {
		return c < 0
	}

	return a < b
}

func kindRank(k expr.Kind) int {
	switch k {
	case expr.KindNumeral:
		return 0
	case expr.KindVar:
		return 1
	default:
		return 2
	}
}

func compareAST(f *expr.Factory, a, b expr.NodeID) int {
	na, nb := f.Node(a), f.Node(b)

	if c := cmp.Compare(kindRank(na.Kind()), kindRank(nb.Kind())); c != 0 {
		return c
	}

	switch na.Kind() {
	case expr.KindNumeral:
		return na.Value().Cmp(nb.Value())
	case expr.KindVar:
		return strings.Compare(na.Name(), nb.Name())
	default:
		if c := strings.Compare(string(na.Sym()), string(nb.Sym())); c != 0 {
			return c
		}

		aa, ba := na.Args(), nb.Args()
		if c := cmp.Compare(len(aa), len(ba)); c != 0 {
			return c
		}

		for i := range aa {
			if c := compareAST(f, aa[i], ba[i]); c != 0 {
				return c
			}
		}

		return 0
	}
}

// OrdinalOrder maps each term to a signed ordinal (spec.md §4.3) then
// compares by ordinal, breaking ties by node identifier.
type OrdinalOrder struct {
	F        *expr.Factory
	UsePower bool
}

// Less implements Comparator.
func (o OrdinalOrder) Less(a, b expr.NodeID) bool {
	oa, ob := o.ordinal(a), o.ordinal(b)
	if oa != ob {
		return oa < ob
	}

	return a < b
}

// ordinal computes the ordinal of a term per spec.md §4.3:
//   - -1 if the term is numeric;
//   - the power-product's node id if the term is (* c pp) with c numeric;
//   - the base's node id if the term is (^ b k) with integer k>1 and
//     UsePower is on;
//   - the term's own node id otherwise.
func (o OrdinalOrder) ordinal(id expr.NodeID) int64 {
	f := o.F

	if f.IsNumeral(id) {
		return -1
	}

	if f.IsMul(id) && f.NumArgs(id) == 2 && f.IsNumeral(f.Arg(id, 0)) {
		return int64(f.Arg(id, 1))
	}

	if o.UsePower && f.IsPower(id) && f.NumArgs(id) == 2 {
		exp := f.Arg(id, 1)
		if f.IsNumeral(exp) {
			v := f.NumeralValue(exp)
			if v.IsInt() && v.Cmp(numeral.FromInt64(1)) > 0 {
				return int64(f.Arg(id, 0))
			}
		}
	}

	return int64(id)
}

// IsSorted reports whether ids is already non-decreasing under cmp.
func IsSorted(c Comparator, ids []expr.NodeID) bool {
	for i := 1; i < len(ids); i++ {
		if c.Less(ids[i], ids[i-1]) {
			return false
		}
	}

	return true
}

// SortStable returns a stable-sorted copy of ids under cmp.  Stability is
// required by spec.md invariant 4: repeated rewriting of already-sorted
// input must not perturb the order of equal elements.
func SortStable(c Comparator, ids []expr.NodeID) []expr.NodeID {
	out := slices.Clone(ids)
	slices.SortStableFunc(out, func(x, y expr.NodeID) int {
		switch {
		case c.Less(x, y):
			return -1
		case c.Less(y, x):
			return 1
		default:
			return 0
		}
	})

	return out
}
