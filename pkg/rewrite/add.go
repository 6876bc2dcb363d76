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
	"github.com/ringrewrite/polyrw/pkg/hoist"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/order"
)

// mkFlatAdd implements the flattening half of spec.md §4.4.4.
func (r *Rewriter) mkFlatAdd(args []expr.NodeID) (Status, expr.NodeID) {
	f := r.f

	flat := args
	if r.opts.Flat {
		flat = spliceAdds(f, args)
	}

	switch len(flat) {
	case 0:
		return Done, f.MkNumeralSort(numeral.Zero(), r.sort)
	case 1:
		return Done, flat[0]
	}

	status, node := r.mkNflatAddCore(flat)
	if status == Failed {
		return Done, r.MkAddApp(flat)
	}

	return status, node
}

func spliceAdds(f *expr.Factory, args []expr.NodeID) []expr.NodeID {
	work := append([]expr.NodeID(nil), args...)

	var flat []expr.NodeID

	for len(work) > 0 {
		a := work[0]
		work = work[1:]

		if f.IsAdd(a) {
			work = append(append([]expr.NodeID(nil), f.Node(a).Args()...), work...)
			continue
		}

		flat = append(flat, a)
	}

	return flat
}

type addMonomial struct {
	node  expr.NodeID
	pp    expr.NodeID
	coeff numeral.Value
}

func (r *Rewriter) powerProductAndCoeff(a expr.NodeID) (expr.NodeID, numeral.Value) {
	f := r.f
	if f.IsMul(a) && f.NumArgs(a) == 2 && f.IsNumeral(f.Arg(a, 0)) {
		return f.Arg(a, 1), f.NumeralValue(f.Arg(a, 0))
	}

	return a, numeral.FromInt64(1)
}

// mkNflatAddCore implements spec.md §4.4.4's non-flat core.
func (r *Rewriter) mkNflatAddCore(args []expr.NodeID) (Status, expr.NodeID) {
	f := r.f

	c := numeral.Zero()
	numCount := 0

	monos := make([]addMonomial, 0, len(args))

	for _, a := range args {
		if f.IsNumeral(a) {
			c = c.Add(f.NumeralValue(a))
			numCount++

			continue
		}

		pp, coeff := r.powerProductAndCoeff(a)
		monos = append(monos, addMonomial{node: a, pp: pp, coeff: coeff})
	}

	c = r.sort.Normalize(c)

	r.resetScratch()

	anyMultiple := false

	for i, m := range monos {
		key := uint(m.pp)
		if r.seen.Test(key) {
			r.multi.Set(key)
			anyMultiple = true
		} else {
			r.seen.Set(key)
			r.expr2pos[m.pp] = i
		}
	}

	if !anyMultiple {
		nodes := make([]expr.NodeID, 0, len(monos))
		hasZeroCoeff := false

		for _, m := range monos {
			if m.coeff.IsZero() {
				hasZeroCoeff = true
				continue
			}

			nodes = append(nodes, m.node)
		}

		if !hasZeroCoeff {
			sortedAlready := order.IsSorted(r.cmp, nodes)
			if sortedAlready && numCount == 0 && !r.opts.HoistMul && !r.opts.HoistIte {
				return Failed, expr.InvalidNode
			}
		}

		return r.finishAdd(c, nodes)
	}

	// Every duplicate monomial accumulates into the slot recorded by
	// expr2pos for its power product's first occurrence, mirroring
	// mk_nflat_add_core's pos lookup in the original rewriter.
	for i, m := range monos {
		pos := r.expr2pos[m.pp]
		if pos == i {
			continue
		}

		monos[pos].coeff = monos[pos].coeff.Add(m.coeff)
	}

	out := make([]expr.NodeID, 0, len(monos))

	for i, m := range monos {
		if !r.multi.Test(uint(m.pp)) {
			out = append(out, m.node)
			continue
		}

		pos := r.expr2pos[m.pp]
		if i != pos {
			continue
		}

		coeff := r.sort.Normalize(monos[pos].coeff)
		if coeff.IsZero() {
			continue
		}

		out = append(out, r.MkMulAppC(coeff, m.pp))
	}

	return r.finishAdd(c, out)
}

// finishAdd sorts the non-constant summands, attempts hoist_multiplication
// then hoist_ite (spec.md §4.4.4's common tail for both branches),
// prepends the constant when nonzero, and reports RewriteFull when a
// hoist fired.
func (r *Rewriter) finishAdd(c numeral.Value, summands []expr.NodeID) (Status, expr.NodeID) {
	sorted := summands
	if r.opts.SortSums {
		sorted = order.SortStable(r.cmp, summands)
	}

	changed := false

	if r.opts.HoistMul {
		var ok bool

		ok, sorted = hoist.HoistMultiplication(r, sorted)
		changed = changed || ok
	}

	if r.opts.HoistIte {
		var ok bool

		ok, sorted = hoist.HoistIte(r, sorted)
		changed = changed || ok
	}

	final := sorted
	if !c.IsZero() {
		final = append([]expr.NodeID{r.f.MkNumeralSort(c, r.sort)}, sorted...)
	}

	node := r.MkAddApp(final)
	if changed {
		return RewriteFull, node
	}

	return Done, node
}
