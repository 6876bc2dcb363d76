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
	"github.com/bits-and-blooms/bitset"
	"github.com/sirupsen/logrus"

	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/hoist"
	"github.com/ringrewrite/polyrw/pkg/numeral"
	"github.com/ringrewrite/polyrw/pkg/order"
)

// maxFixpointIterations bounds rewriteFixpoint as a defensive backstop;
// spec-conforming rewrite rules always converge well below this.
const maxFixpointIterations = 256

// Rewriter holds the factory it rewrites against, the active
// configuration, the current numeral sort, and the scratch state shared
// by mkNflatAddCore (spec.md §5). A Rewriter is not safe for concurrent
// use: pkg/tactic gives every worker its own.
type Rewriter struct {
	f    *expr.Factory
	opts Options
	sort numeral.Sort
	cmp  order.Comparator
	log  *logrus.Entry

	expr2pos map[expr.NodeID]int
	seen     *bitset.BitSet
	multi    *bitset.BitSet
}

// NewRewriter constructs a Rewriter over f using opts and sort.
func NewRewriter(f *expr.Factory, opts Options, sort numeral.Sort) *Rewriter {
	opts = opts.normalize()

	r := &Rewriter{
		f:        f,
		opts:     opts,
		sort:     sort,
		expr2pos: make(map[expr.NodeID]int),
		seen:     bitset.New(64),
		multi:    bitset.New(64),
		log:      logrus.WithField("component", "rewrite"),
	}
	r.cmp = r.comparator()

	return r
}

func (r *Rewriter) comparator() order.Comparator {
	if r.opts.ArithIneqLHS {
		return order.OrdinalOrder{F: r.f, UsePower: r.opts.UsePower}
	}

	return order.ASTOrder{F: r.f}
}

// Factory exposes the underlying expression factory, part of
// hoist.Host.
func (r *Rewriter) Factory() *expr.Factory { return r.f }

// Opts returns the active configuration.
func (r *Rewriter) Opts() Options { return r.opts }

// Sort returns the active numeral sort.
func (r *Rewriter) Sort() numeral.Sort { return r.sort }

// SetCurrentSort changes the active numeral sort (spec.md §9's
// "sort-of-coefficient dependence": normalize(c) is looked up against
// whichever sort travels with the top-level operator being rewritten).
func (r *Rewriter) SetCurrentSort(sort numeral.Sort) { r.sort = sort }

// Comparator returns the active monomial order, part of hoist.Host.
func (r *Rewriter) Comparator() order.Comparator { return r.cmp }

// SortSums reports whether add children should be sorted, part of
// hoist.Host.
func (r *Rewriter) SortSums() bool { return r.opts.SortSums }

func (r *Rewriter) resetScratch() {
	r.seen.ClearAll()
	r.multi.ClearAll()

	for k := range r.expr2pos {
		delete(r.expr2pos, k)
	}
}

// Rewrite drives t to its canonical form (spec.md §4.4), rewriting
// children bottom-up before normalizing each application.
func (r *Rewriter) Rewrite(t expr.NodeID) expr.NodeID {
	return r.rewrite(t)
}

func (r *Rewriter) rewrite(t expr.NodeID) expr.NodeID {
	f := r.f

	n := f.Node(t)
	if n.Kind() != expr.KindApp {
		return t
	}

	args := n.Args()
	newArgs := make([]expr.NodeID, len(args))

	for i, a := range args {
		newArgs[i] = r.rewrite(a)
	}

	switch n.Sym() {
	case expr.SymAdd:
		return r.MkAdd(newArgs)
	case expr.SymMul:
		return r.MkMul(newArgs)
	case expr.SymUMinus:
		return r.MkUMinus(newArgs[0])
	case expr.SymSub:
		return r.MkSub(newArgs)
	case expr.SymPower:
		return r.rewritePower(newArgs)
	default:
		return f.MkApp(n.Sym(), newArgs)
	}
}

// rewriteOnce re-dispatches on t's current top symbol without
// re-descending into its (already canonical) children; it is the unit
// of work the Status-driven loop repeats.
func (r *Rewriter) rewriteOnce(t expr.NodeID) expr.NodeID {
	f := r.f

	n := f.Node(t)
	if n.Kind() != expr.KindApp {
		return t
	}

	switch n.Sym() {
	case expr.SymAdd:
		return r.MkAdd(n.Args())
	case expr.SymMul:
		return r.MkMul(n.Args())
	case expr.SymUMinus:
		return r.MkUMinus(n.Args()[0])
	case expr.SymSub:
		return r.MkSub(n.Args())
	case expr.SymPower:
		return r.rewritePower(n.Args())
	default:
		return t
	}
}

func (r *Rewriter) rewriteFixpoint(t expr.NodeID) expr.NodeID {
	for i := 0; i < maxFixpointIterations; i++ {
		next := r.rewriteOnce(t)
		if next == t {
			return next
		}

		t = next
	}

	r.log.WithField("node", t).Warn("rewrite fixpoint did not converge within bound")

	return t
}

// drive applies the Status enum's control discipline (spec.md §4.4.1).
func (r *Rewriter) drive(status Status, node expr.NodeID) expr.NodeID {
	switch status {
	case Rewrite1:
		return r.rewriteOnce(node)
	case Rewrite2:
		return r.rewriteOnce(r.rewriteOnce(node))
	case RewriteFull:
		return r.rewriteFixpoint(node)
	case Done, Failed:
		fallthrough
	default:
		return node
	}
}

// MkAdd flattens, folds, sorts and hoists args into a canonical sum and
// drives the result to a fixed point.
func (r *Rewriter) MkAdd(args []expr.NodeID) expr.NodeID {
	status, node := r.mkFlatAdd(args)
	return r.drive(status, node)
}

// MkMul flattens, folds, sorts and distributes args into a canonical
// monomial (or sum of monomials) and drives the result to a fixed
// point.
func (r *Rewriter) MkMul(args []expr.NodeID) expr.NodeID {
	status, node := r.mkFlatMul(args)
	return r.drive(status, node)
}

// MkUMinus implements spec.md §4.4.5.
func (r *Rewriter) MkUMinus(t expr.NodeID) expr.NodeID {
	status, node := r.mkUMinusStatus(t)
	return r.drive(status, node)
}

func (r *Rewriter) mkUMinusStatus(t expr.NodeID) (Status, expr.NodeID) {
	f := r.f

	if f.IsNumeral(t) {
		return Done, f.MkNumeralSort(r.sort.Normalize(f.NumeralValue(t).Neg()), r.sort)
	}

	return Rewrite1, r.MkMulAppC(numeral.MinusOne(), t)
}

// MkSub implements spec.md §4.4.6.
func (r *Rewriter) MkSub(args []expr.NodeID) expr.NodeID {
	status, node := r.mkSubStatus(args)
	return r.drive(status, node)
}

func (r *Rewriter) mkSubStatus(args []expr.NodeID) (Status, expr.NodeID) {
	f := r.f

	if len(args) == 1 {
		return Done, args[0]
	}

	summands := make([]expr.NodeID, 0, len(args))

	if !f.IsZero(args[0]) {
		summands = append(summands, args[0])
	}

	for _, a := range args[1:] {
		if f.IsZero(a) {
			continue
		}

		summands = append(summands, r.MkMulAppC(numeral.MinusOne(), a))
	}

	return Rewrite2, r.MkAddApp(summands)
}

var _ hoist.Host = (*Rewriter)(nil)
