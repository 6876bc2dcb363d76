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
	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// MkAddApp is the structural add constructor of spec.md §4.4.2: it
// enforces arity collapse only, performing no simplification.
func (r *Rewriter) MkAddApp(args []expr.NodeID) expr.NodeID {
	switch len(args) {
	case 0:
		return r.f.MkNumeralSort(numeral.Zero(), r.sort)
	case 1:
		return args[0]
	default:
		return r.f.MkApp(expr.SymAdd, args)
	}
}

// MkMulApp is the structural mul constructor of spec.md §4.4.2: arity
// collapse, optional power-grouping of consecutive equal bases when
// use_power is on, and coefficient-first recomposition when folding
// leaves a numeral at the head of an arity > 2 product.
func (r *Rewriter) MkMulApp(args []expr.NodeID) expr.NodeID {
	f := r.f

	folded := args
	if r.opts.UsePower {
		folded = r.foldPowers(args)
	}

	switch len(folded) {
	case 0:
		return f.MkNumeralSort(numeral.FromInt64(1), r.sort)
	case 1:
		return folded[0]
	}

	if f.IsNumeral(folded[0]) && len(folded) > 2 {
		c := f.NumeralValue(folded[0])
		rest := r.MkMulApp(folded[1:])

		return r.MkMulAppC(c, rest)
	}

	return f.MkApp(expr.SymMul, folded)
}

// MkMulAppC is the two-argument mk_mul_app(c, arg) form of spec.md
// §4.4.2.
func (r *Rewriter) MkMulAppC(c numeral.Value, arg expr.NodeID) expr.NodeID {
	f := r.f

	if c.IsZero() {
		return f.MkNumeralSort(numeral.Zero(), r.sort)
	}

	if c.IsOne() {
		return arg
	}

	if f.IsZero(arg) {
		return arg
	}

	return r.MkMulApp([]expr.NodeID{f.MkNumeralSort(c, r.sort), arg})
}

// powerBodyAndExp implements get_power_body (spec.md §4.4.7): if t is
// (^ b n) with n an integer numeral ≥ 2, returns b and n; otherwise
// returns t and 1.
func (r *Rewriter) powerBodyAndExp(t expr.NodeID) (expr.NodeID, int64) {
	f := r.f

	if f.IsPower(t) && f.NumArgs(t) == 2 {
		e := f.Arg(t, 1)
		if f.IsNumeral(e) {
			v := f.NumeralValue(e)
			if v.IsInt() && v.Cmp(numeral.FromInt64(2)) >= 0 {
				return f.Arg(t, 0), v.Int64()
			}
		}
	}

	return t, 1
}

// foldPowers merges consecutive equal bases in args into (^ base k)
// applications, per spec.md §4.4.2. Base equality is judged by pointer
// identity.
func (r *Rewriter) foldPowers(args []expr.NodeID) []expr.NodeID {
	f := r.f
	out := make([]expr.NodeID, 0, len(args))

	i := 0
	for i < len(args) {
		base, k := r.powerBodyAndExp(args[i])

		j := i + 1
		for j < len(args) {
			b2, k2 := r.powerBodyAndExp(args[j])
			if b2 != base {
				break
			}

			k += k2
			j++
		}

		if k == 1 {
			out = append(out, base)
		} else {
			exp := f.MkNumeralSort(numeral.FromInt64(k), r.sort)
			out = append(out, f.MkApp(expr.SymPower, []expr.NodeID{base, exp}))
		}

		i = j
	}

	return out
}
