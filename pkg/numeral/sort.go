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
package numeral

// Sort determines how a coefficient is normalized.  The rewriter looks up
// the active sort (via Rewriter.SetCurrentSort) before folding any
// constant, so that e.g. coefficients over a modular sort are always
// reduced to their canonical representative.
type Sort interface {
	// Name identifies this sort, e.g. "Rational" or "BLS12-377Scalar".
	Name() string
	// Normalize canonicalizes a value with respect to this sort.  For the
	// rational sort this is the identity; for a modular sort it reduces
	// the value into its canonical representative interval.
	Normalize(Value) Value
	// Zero, One and MinusOne construct the corresponding normalized
	// constants for this sort.
	Zero() Value
	One() Value
	MinusOne() Value
}

// RationalSort is the unbounded sort of exact rationals.  Normalize is
// the identity since big.Rat values are already maintained in lowest
// terms.
type RationalSort struct{}

// Name implements Sort.
func (RationalSort) Name() string { return "Rational" }

// Normalize implements Sort.
func (RationalSort) Normalize(v Value) Value { return v }

// Zero implements Sort.
func (RationalSort) Zero() Value { return Zero() }

// One implements Sort.
func (RationalSort) One() Value { return One() }

// MinusOne implements Sort.
func (RationalSort) MinusOne() Value { return MinusOne() }
