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
	"github.com/sirupsen/logrus"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/order"
)

// mkFlatMul implements the flattening half of spec.md §4.4.3: splice any
// mul children into the argument list (unless the input is already in
// monomial form), then forward to the non-flat core.
func (r *Rewriter) mkFlatMul(args []expr.NodeID) (Status, expr.NodeID) {
	f := r.f

	flat := args
	if r.opts.Flat && !isCanonicalMonomialShape(f, args) {
		flat = spliceMuls(f, args)
	}

	switch len(flat) {
	case 0:
		return Done, f.MkNumeralSort(numeral.FromInt64(1), r.sort)
	case 1:
		return Done, flat[0]
	}

	status, node := r.mkNflatMulCore(flat)
	if status == Failed {
		return Done, r.MkMulApp(flat)
	}

	return status, node
}

// isCanonicalMonomialShape recognizes (* c x) or (* c (* x1 ... xn)),
// the shapes spec.md §4.4.3 says should bypass flattening.
func isCanonicalMonomialShape(f *expr.Factory, args []expr.NodeID) bool {
	return len(args) == 2 && f.IsNumeral(args[0])
}

func spliceMuls(f *expr.Factory, args []expr.NodeID) []expr.NodeID {
	work := append([]expr.NodeID(nil), args...)

	var flat []expr.NodeID

	for len(work) > 0 {
		a := work[0]
		work = work[1:]

		if f.IsMul(a) {
			work = append(append([]expr.NodeID(nil), f.Node(a).Args()...), work...)
			continue
		}

		flat = append(flat, a)
	}

	return flat
}

// mkNflatMulCore implements spec.md §4.4.3's non-flat core, |args| ≥ 2.
func (r *Rewriter) mkNflatMulCore(args []expr.NodeID) (Status, expr.NodeID) {
	f := r.f
	n := len(args)

	// 1. Cheap guard.
	if n == 2 && f.IsNumeral(args[0]) {
		c0 := f.NumeralValue(args[0])
		if !c0.IsZero() && !c0.IsOne() && isVarOrAtomicApp(f, args[1]) {
			return Failed, expr.InvalidNode
		}
	}

	// 2. Coefficient folding.
	c := numeral.FromInt64(1)
	numCount := 0
	firstNumericPos := -1

	var nonNumerics []expr.NodeID

	hasAdd := false

	for i, a := range args {
		if f.IsNumeral(a) {
			c = c.Mul(f.NumeralValue(a))
			numCount++

			if firstNumericPos == -1 {
				firstNumericPos = i
			}

			continue
		}

		nonNumerics = append(nonNumerics, a)
		if f.IsAdd(a) {
			hasAdd = true
		}
	}

	c = r.sort.Normalize(c)

	// 3. All numeric.
	if numCount == n {
		return Done, f.MkNumeralSort(c, r.sort)
	}

	// 4. Zero coefficient.
	if c.IsZero() {
		return Done, f.MkNumeralSort(c, r.sort)
	}

	// 5. Exactly one non-numeric child.
	if len(nonNumerics) == 1 {
		return r.mkNflatMulSingleNonNumeric(c, nonNumerics[0])
	}

	// 6. Multiple coefficients, or a single misplaced one.
	if numCount > 1 || (numCount == 1 && firstNumericPos != 0) {
		rest := r.MkMulApp(nonNumerics)
		return Rewrite2, r.MkMulAppC(c, rest)
	}

	// 7. Two or more non-numeric factors.
	if !r.opts.Som || !hasAdd {
		return r.mkNflatMulAssemble(c, numCount, nonNumerics)
	}

	return r.mkNflatMulDistribute(c, numCount, nonNumerics, n)
}

func isVarOrAtomicApp(f *expr.Factory, t expr.NodeID) bool {
	if f.IsVar(t) {
		return true
	}

	return f.Node(t).Kind() == expr.KindApp && !f.IsArithmetic(t)
}

func (r *Rewriter) mkNflatMulSingleNonNumeric(c numeral.Value, v expr.NodeID) (Status, expr.NodeID) {
	f := r.f

	if c.IsOne() {
		return Done, v
	}

	if f.IsMul(v) && f.NumArgs(v) == 2 && f.IsNumeral(f.Arg(v, 0)) {
		cp := f.NumeralValue(f.Arg(v, 0))
		newC := r.sort.Normalize(c.Mul(cp))

		return Rewrite1, r.MkMulAppC(newC, f.Arg(v, 1))
	}

	if f.IsMul(v) && !f.IsNumeral(f.Arg(v, 0)) {
		// v is a bare power product; defer to the flat path.
		return Failed, expr.InvalidNode
	}

	if !f.IsAdd(v) {
		return Done, r.MkMulAppC(c, v)
	}

	addArgs := f.Node(v).Args()
	summands := make([]expr.NodeID, len(addArgs))

	for i, t := range addArgs {
		summands[i] = r.MkMulAppC(c, t)
	}

	return Rewrite2, r.MkAddApp(summands)
}

func (r *Rewriter) mkNflatMulAssemble(c numeral.Value, numCount int, nonNumerics []expr.NodeID) (Status, expr.NodeID) {
	f := r.f

	alreadySorted := order.IsSorted(r.cmp, nonNumerics)

	sorted := nonNumerics
	if !alreadySorted {
		sorted = order.SortStable(r.cmp, nonNumerics)
	}

	var resultArgs []expr.NodeID
	if numCount == 1 {
		resultArgs = append([]expr.NodeID{f.MkNumeralSort(c, r.sort)}, sorted...)
	} else {
		resultArgs = sorted
	}

	if alreadySorted && numCount == 0 && !r.opts.UsePower {
		return Failed, expr.InvalidNode
	}

	return Done, r.MkMulApp(resultArgs)
}

func (r *Rewriter) mkNflatMulDistribute(c numeral.Value, numCount int, nonNumerics []expr.NodeID, originalArity int) (Status, expr.NodeID) {
	f := r.f

	factorSums := make([][]expr.NodeID, len(nonNumerics))
	total := 1

	for i, a := range nonNumerics {
		if f.IsAdd(a) {
			factorSums[i] = f.Node(a).Args()
		} else {
			factorSums[i] = []expr.NodeID{a}
		}

		total *= len(factorSums[i])
	}

	budget := int(r.opts.SomBlowup) * originalArity
	if total > budget {
		r.log.WithFields(logrus.Fields{"total": total, "budget": budget}).Debug("som budget exceeded, falling back to non-distributed form")
		return Failed, expr.InvalidNode
	}

	idx := make([]int, len(factorSums))
	products := make([]expr.NodeID, 0, total)

	for {
		factors := make([]expr.NodeID, 0, len(factorSums)+1)
		if numCount == 1 {
			factors = append(factors, f.MkNumeralSort(c, r.sort))
		}

		for i, fs := range factorSums {
			factors = append(factors, fs[idx[i]])
		}

		products = append(products, r.MkMul(factors))

		pos := len(idx) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(factorSums[pos]) {
				break
			}

			idx[pos] = 0
			pos--
		}

		if pos < 0 {
			break
		}
	}

	return Rewrite2, r.MkAddApp(products)
}
