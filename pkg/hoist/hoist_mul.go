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
package hoist

import (
	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// mergeMuls rewrites the pair (si, sj) as common × (rest_i + rest_j),
// where common is the left-to-right pairwise-equal prefix of their
// flattened factor lists (spec.md §4.5.1) — not the longest multiset
// intersection; implementers are told to preserve this non-optimal
// matching for output stability.
func mergeMuls(h Host, si, sj expr.NodeID) expr.NodeID {
	f := h.Factory()

	fi := flattenFactors(f, si)
	fj := flattenFactors(f, sj)

	k := 0
	for k < len(fi) && k < len(fj) && fi[k] == fj[k] {
		k++
	}

	resti := append([]expr.NodeID(nil), fi[k:]...)
	restj := append([]expr.NodeID(nil), fj[k:]...)

	sum := h.MkAddApp([]expr.NodeID{h.MkMulApp(resti), h.MkMulApp(restj)})
	common := append([]expr.NodeID(nil), fi[:k]...)

	return h.MkMulApp(append(common, sum))
}

// HoistMultiplication implements spec.md §4.5.1: it walks the flattened
// summands of a sum, merging any summand that shares a factor with an
// earlier, still-valid summand. Reports whether any merge happened.
func HoistMultiplication(h Host, summands []expr.NodeID) (bool, []expr.NodeID) {
	f := h.Factory()
	n := len(summands)

	factorLists := make([][]expr.NodeID, n)
	for i, s := range summands {
		factorLists[i] = flattenFactors(f, s)
	}

	firstIndex := make(map[expr.NodeID]int)
	valid := make([]bool, n)

	for i := range valid {
		valid[i] = true
	}

	result := append([]expr.NodeID(nil), summands...)
	changed := false

	for i := 0; i < n; i++ {
		if !valid[i] {
			continue
		}

		mergedWith := -1

		for _, factor := range factorLists[i] {
			if j, ok := firstIndex[factor]; ok && valid[j] && j != i {
				mergedWith = j
				break
			}
		}

		if mergedWith < 0 {
			for _, factor := range factorLists[i] {
				if _, ok := firstIndex[factor]; !ok {
					firstIndex[factor] = i
				}
			}

			continue
		}

		j := mergedWith
		result[j] = mergeMuls(h, result[j], result[i])
		result[i] = f.MkNumeralSort(numeral.Zero(), h.Sort())
		valid[i] = false
		valid[j] = false
		changed = true
	}

	if !changed {
		return false, summands
	}

	out := make([]expr.NodeID, 0, n)

	for _, s := range result {
		if f.IsZero(s) {
			continue
		}

		out = append(out, s)
	}

	return true, out
}
