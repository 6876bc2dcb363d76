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
package tactic

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"github.com/ringrewrite/polyrw/pkg/expr"
)

// errNoBranchWon is the placeholder winnerErr until some branch
// succeeds; it is never returned directly once a branch wins, and is
// folded into the aggregated multierr when every branch fails.
var errNoBranchWon = errors.New("tactic: no branch completed successfully")

// translate copies a node from a worker's private factory into the
// caller's factory, recursively rebuilding structure through MkApp so
// hash-consing in the destination factory is preserved. Leaves
// (numerals, vars) are rebuilt directly.
func translate(dst, src *expr.Factory, id expr.NodeID) expr.NodeID {
	n := src.Node(id)

	switch n.Kind() {
	case expr.KindNumeral:
		return dst.MkNumeralSort(n.Value(), n.Sort())
	case expr.KindVar:
		return dst.MkVar(n.Name())
	default:
		args := make([]expr.NodeID, len(n.Args()))
		for i, a := range n.Args() {
			args[i] = translate(dst, src, a)
		}

		return dst.MkApp(n.Sym(), args)
	}
}

func translateGoal(dst, src *expr.Factory, g Goal) Goal {
	out := g
	out.Formulas = make([]expr.NodeID, len(g.Formulas))

	for i, id := range g.Formulas {
		out.Formulas[i] = translate(dst, src, id)
	}

	return out
}

// ParAndThen runs every branch concurrently, each against a private
// clone of f, and applies second to that branch's successor goals
// (still against the private clone); the first branch whose
// branch-then-second chain finishes without error has its goals
// translated back into f. Spec.md §5's concurrency model is realized
// literally here: one goroutine and one private factory per branch, a
// shared "finished" flag, and a single-writer translation step guarded
// by a mutex.
func ParAndThen(branches []Tactic, second Tactic) Tactic {
	return Func(func(ctx context.Context, f *expr.Factory, g Goal) (Result, error) {
		return fanOut(ctx, f, g, branches, func(wf *expr.Factory, wg Goal, t Tactic) (Result, error) {
			return AndThen(t, second).Apply(ctx, wf, wg)
		})
	})
}

// Par runs every branch concurrently against a private factory clone
// and returns the first to complete without error, discarding the
// rest. Losing-branch errors are aggregated with multierr purely for
// diagnostics; only the winner's error (nil, by construction) is ever
// returned on success.
func Par(branches []Tactic) Tactic {
	return Func(func(ctx context.Context, f *expr.Factory, g Goal) (Result, error) {
		return fanOut(ctx, f, g, branches, func(wf *expr.Factory, wg Goal, t Tactic) (Result, error) {
			return t.Apply(ctx, wf, wg)
		})
	})
}

// fanOut is the shared worker-pool body behind ParAndThen and Par. Each
// branch gets its own Factory.Clone() and runs run(branch) against it;
// the first branch to return a nil error wins, sets finished, and has
// its goals translated back into f under translateMu. Cancelling ctx
// stops new work from starting but does not forcibly kill a branch
// already inside a Tactic.Apply call — cancellation is cooperative, per
// spec.md §5.
func fanOut(
	ctx context.Context,
	f *expr.Factory,
	g Goal,
	branches []Tactic,
	run func(wf *expr.Factory, wg Goal, t Tactic) (Result, error),
) (Result, error) {
	if len(branches) == 0 {
		return Result{}, nil
	}

	var (
		finished    atomic.Bool
		translateMu sync.Mutex
		wg          sync.WaitGroup
		winner      Result
		winnerErr   error = errNoBranchWon
		losses      error
	)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	wg.Add(len(branches))

	for _, branch := range branches {
		branch := branch

		go func() {
			defer wg.Done()

			if finished.Load() {
				return
			}

			wf := f.Clone()
			wgoal := g.Clone()

			r, err := run(wf, wgoal, branch)

			translateMu.Lock()
			defer translateMu.Unlock()

			if err != nil {
				losses = multierr.Append(losses, err)
				return
			}

			if finished.Swap(true) {
				return
			}

			winner = Result{Goals: translateGoals(f, wf, r.Goals)}
			winnerErr = nil

			cancel()
		}()
	}

	wg.Wait()

	if winnerErr != nil {
		if losses != nil {
			return Result{}, multierr.Append(winnerErr, losses)
		}

		return Result{}, winnerErr
	}

	return winner, nil
}

func translateGoals(dst, src *expr.Factory, goals []Goal) []Goal {
	out := make([]Goal, len(goals))
	for i, gg := range goals {
		out[i] = translateGoal(dst, src, gg)
	}

	return out
}
