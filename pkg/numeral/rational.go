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

// Package numeral provides the exact numeric kernel consumed by the
// polynomial rewriter: an arbitrary-precision rational value together with
// a small family of sorts which determine how a value is normalized.
package numeral

import (
	"fmt"
	"math/big"
)

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// Value is an exact rational number.  It is the coefficient type used
// throughout the rewriter: every monomial's coefficient, and every
// constant term, is a Value.  The zero Value (as returned by a bare `var
// v Value`) represents zero.
type Value struct {
	r big.Rat
}

// Zero constructs the rational zero.
func Zero() Value {
	return Value{}
}

// One constructs the rational one.
func One() Value {
	var v Value
	v.r.SetInt64(1)

	return v
}

// MinusOne constructs the rational minus-one.
func MinusOne() Value {
	var v Value
	v.r.SetInt64(-1)

	return v
}

// FromInt64 constructs a rational from a 64bit integer.
func FromInt64(n int64) Value {
	var v Value
	v.r.SetInt64(n)

	return v
}

// FromBigInt constructs a rational from an arbitrary-precision integer.
func FromBigInt(n *big.Int) Value {
	var v Value
	v.r.SetInt(n)

	return v
}

// FromBigRat constructs a rational directly from a big.Rat, taking a copy.
func FromBigRat(n *big.Rat) Value {
	var v Value
	v.r.Set(n)

	return v
}

// Rat returns the underlying big.Rat (a copy, so callers may mutate it
// freely).
func (v Value) Rat() big.Rat {
	var r big.Rat
	r.Set(&v.r)

	return r
}

// IsZero checks whether this value is exactly zero.
func (v Value) IsZero() bool {
	return v.r.Sign() == 0
}

// IsOne checks whether this value is exactly one.
func (v Value) IsOne() bool {
	return v.r.IsInt() && v.r.Num().Cmp(bigOne) == 0
}

// IsMinusOne checks whether this value is exactly minus one.
func (v Value) IsMinusOne() bool {
	return v.r.IsInt() && v.r.Num().Cmp(big.NewInt(-1)) == 0
}

// IsInt checks whether this value has an integral representation.
func (v Value) IsInt() bool {
	return v.r.IsInt()
}

// IsNeg checks whether this value is (strictly) negative.
func (v Value) IsNeg() bool {
	return v.r.Sign() < 0
}

// IsPos checks whether this value is (strictly) positive.
func (v Value) IsPos() bool {
	return v.r.Sign() > 0
}

// Neg returns the negation of this value.
func (v Value) Neg() Value {
	var r Value
	r.r.Neg(&v.r)

	return r
}

// Abs returns the absolute value of this value.
func (v Value) Abs() Value {
	var r Value
	r.r.Abs(&v.r)

	return r
}

// Add returns the sum of this value and another.
func (v Value) Add(other Value) Value {
	var r Value
	r.r.Add(&v.r, &other.r)

	return r
}

// Sub returns the difference of this value and another.
func (v Value) Sub(other Value) Value {
	var r Value
	r.r.Sub(&v.r, &other.r)

	return r
}

// Mul returns the product of this value and another.
func (v Value) Mul(other Value) Value {
	var r Value
	r.r.Mul(&v.r, &other.r)

	return r
}

// Inverse returns the multiplicative inverse of this value.  Panics if
// this value is zero.
func (v Value) Inverse() Value {
	if v.IsZero() {
		panic("inverse of zero")
	}

	var r Value
	r.r.Inv(&v.r)

	return r
}

// Cmp compares this value against another: -1, 0 or 1.
func (v Value) Cmp(other Value) int {
	return v.r.Cmp(&other.r)
}

// Gcd returns the greatest common divisor of this value and another,
// assuming both are integral.  Panics otherwise (mirroring spec.md's
// requirement that gcd is only ever applied to integer coefficients).
func (v Value) Gcd(other Value) Value {
	if !v.IsInt() || !other.IsInt() {
		panic("gcd of non-integral value")
	}

	var (
		g Value
		a = new(big.Int).Abs(v.r.Num())
		b = new(big.Int).Abs(other.r.Num())
	)

	g.r.SetInt(new(big.Int).GCD(nil, nil, a, b))

	return g
}

// Divides returns whether x/g is an integer, where g is this value.
func (v Value) Divides(x Value) bool {
	if v.IsZero() {
		return x.IsZero()
	} else if !v.IsInt() || !x.IsInt() {
		return false
	}

	var rem big.Int

	rem.Mod(x.r.Num(), new(big.Int).Abs(v.r.Num()))

	return rem.Sign() == 0
}

// Int64 returns the value as an int64, assuming it is integral and fits.
// Panics otherwise.
func (v Value) Int64() int64 {
	if !v.r.IsInt() {
		panic("Int64 of non-integral value")
	}

	return v.r.Num().Int64()
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if v.r.IsInt() {
		return v.r.Num().String()
	}

	return v.r.RatString()
}

// GoString assists debugging output (go vet %#v).
func (v Value) GoString() string {
	return fmt.Sprintf("numeral.Value(%s)", v.String())
}
