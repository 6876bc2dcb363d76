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

// Package rewrite implements the bottom-up polynomial normalizer: the
// central component of the toolkit, grounded on the fold/flatten/
// recompose discipline of Consensys-go-corset's
// pkg/ir/mir/polynomial.go and pkg/ir/term/add.go, generalized from the
// teacher's fixed field-element arithmetic to an exchangeable
// numeral.Sort and driven by the multi-valued Status enum rather than a
// boolean "changed" flag.
package rewrite

// Status is the rewriter's control channel (spec.md §4.4.1). It replaces
// exceptions and booleans in the hot rewrite path: a rule performs one
// local transformation and reports how much further work remains,
// letting the caller avoid re-descending into already-canonical
// subterms.
type Status int

const (
	// Done means the result is fully canonical.
	Done Status = iota
	// Rewrite1 means the result should be rewritten exactly once more.
	Rewrite1
	// Rewrite2 means the result may need up to two further passes.
	Rewrite2
	// RewriteFull means the result must be driven to a fixed point.
	RewriteFull
	// Failed means the operation declined; the caller must assemble the
	// default application itself.
	Failed
)

// String implements fmt.Stringer for diagnostic logging.
func (s Status) String() string {
	switch s {
	case Done:
		return "done"
	case Rewrite1:
		return "rewrite1"
	case Rewrite2:
		return "rewrite2"
	case RewriteFull:
		return "rewrite_full"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
