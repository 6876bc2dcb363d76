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

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// ErrNonIntegralCoefficient is panicked by FieldSort.Normalize when asked
// to normalize a coefficient which has no integral representation, since a
// modular sort has no notion of a fractional representative.
var ErrNonIntegralCoefficient = &nonIntegralCoefficientError{}

type nonIntegralCoefficientError struct{}

func (*nonIntegralCoefficientError) Error() string {
	return "non-integral coefficient has no representative in a modular sort"
}

// FieldSort is a modular sort backed by the scalar field of BLS12-377.  It
// demonstrates the sort-dependent normalization spec.md calls for:
// coefficients are reduced into the field's canonical signed
// representative interval, i.e. (-modulus/2, modulus/2], rather than left
// as arbitrary-precision rationals.
type FieldSort struct{}

// Name implements Sort.
func (FieldSort) Name() string { return "BLS12-377Scalar" }

// Normalize implements Sort.  Panics with ErrNonIntegralCoefficient if v
// is not integral.
func (FieldSort) Normalize(v Value) Value {
	if !v.IsInt() {
		panic(ErrNonIntegralCoefficient)
	}

	var (
		elem fr.Element
		rep  big.Int
	)

	elem.SetBigInt(v.r.Num())
	elem.BigInt(&rep)

	// Center the representative into (-modulus/2, modulus/2] so that
	// e.g. "modulus - 1" normalizes to "-1" rather than a huge positive
	// number.
	var (
		modulus = fr.Modulus()
		half    big.Int
	)

	half.Rsh(modulus, 1)

	if rep.Cmp(&half) > 0 {
		rep.Sub(&rep, modulus)
	}

	return FromBigInt(&rep)
}

// Zero implements Sort.
func (FieldSort) Zero() Value { return Zero() }

// One implements Sort.
func (FieldSort) One() Value { return One() }

// MinusOne implements Sort.
func (FieldSort) MinusOne() Value {
	var sort FieldSort
	return sort.Normalize(MinusOne())
}

// Modulus returns the BLS12-377 scalar field modulus, for callers that
// need the raw bound (e.g. diagnostics or bound-checking tactics).
func Modulus() *big.Int {
	return fr.Modulus()
}
