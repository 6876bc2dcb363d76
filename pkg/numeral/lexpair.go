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

import "math/big"

// LexPair is a pair (x,y) ordered lexicographically, used by external
// bound-handling collaborators (spec.md §4.1) to represent, e.g., a
// rational bound together with an infinitesimal offset.  The rewriter
// itself never constructs a LexPair; it exists here because it is part of
// the numeric kernel's public surface, and pkg/tactic.Goal carries an
// optional one for callers doing model-bound tracking.
type LexPair struct {
	X, Y Value
}

// NewLexPair constructs a lexicographic pair.
func NewLexPair(x, y Value) LexPair {
	return LexPair{x, y}
}

// Less reports whether p is lexicographically less than other.
func (p LexPair) Less(other LexPair) bool {
	if c := p.X.Cmp(other.X); c != 0 {
		return c < 0
	}

	return p.Y.Cmp(other.Y) < 0
}

// Add returns the componentwise sum of two lexicographic pairs.
func (p LexPair) Add(other LexPair) LexPair {
	return LexPair{p.X.Add(other.X), p.Y.Add(other.Y)}
}

// Sub returns the componentwise difference of two lexicographic pairs.
func (p LexPair) Sub(other LexPair) LexPair {
	return LexPair{p.X.Sub(other.X), p.Y.Sub(other.Y)}
}

// IsInt reports whether this pair denotes an integer, i.e. x is integral
// and y is exactly zero.
func (p LexPair) IsInt() bool {
	return p.X.IsInt() && p.Y.IsZero()
}

// Floor returns the floor of this lexicographic pair, per spec.md §4.1:
// x if x is integral and y>=0, else x-1 if x is integral, else floor(x).
func (p LexPair) Floor() Value {
	if p.X.IsInt() {
		if p.Y.IsNeg() {
			return p.X.Sub(One())
		}

		return p.X
	}

	return floorRational(p.X)
}

// Ceil returns the ceiling of this lexicographic pair; symmetric to Floor.
func (p LexPair) Ceil() Value {
	if p.X.IsInt() {
		if p.Y.IsPos() {
			return p.X.Add(One())
		}

		return p.X
	}

	return ceilRational(p.X)
}

func floorRational(v Value) Value {
	r := v.Rat()

	var (
		num      = r.Num()
		den      = r.Denom()
		quo, rem big.Int
	)

	quo.QuoRem(num, den, &rem)

	if rem.Sign() != 0 && num.Sign() < 0 {
		quo.Sub(&quo, bigOne)
	}

	return FromBigInt(&quo)
}

func ceilRational(v Value) Value {
	negFloor := floorRational(v.Neg())
	return negFloor.Neg()
}
