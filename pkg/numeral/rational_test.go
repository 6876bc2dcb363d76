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
	"testing"
)

func TestValueBasics(t *testing.T) {
	zero := Zero()
	one := One()
	minusOne := MinusOne()

	if !zero.IsZero() {
		t.Fatalf("expected zero")
	}

	if !one.IsOne() {
		t.Fatalf("expected one")
	}

	if !minusOne.IsMinusOne() {
		t.Fatalf("expected minus one")
	}

	if one.Add(minusOne).Cmp(zero) != 0 {
		t.Fatalf("1 + -1 != 0")
	}
}

func TestValueGcd(t *testing.T) {
	a := FromInt64(12)
	b := FromInt64(18)

	g := a.Gcd(b)
	if g.Cmp(FromInt64(6)) != 0 {
		t.Fatalf("gcd(12,18) = %s, want 6", g)
	}
}

func TestValueDivides(t *testing.T) {
	if !FromInt64(3).Divides(FromInt64(9)) {
		t.Fatalf("3 should divide 9")
	}

	if FromInt64(4).Divides(FromInt64(9)) {
		t.Fatalf("4 should not divide 9")
	}
}

func TestValueIsInt(t *testing.T) {
	half := FromBigRat(big.NewRat(1, 2))

	if half.IsInt() {
		t.Fatalf("1/2 should not be integral")
	}

	if !FromInt64(4).IsInt() {
		t.Fatalf("4 should be integral")
	}
}

func TestFieldSortNormalizeCenters(t *testing.T) {
	var sort FieldSort

	modulus := Modulus()

	// modulus - 1 should normalize to -1 under the centered representative.
	big1 := new(big.Int).Sub(modulus, big.NewInt(1))
	got := sort.Normalize(FromBigInt(big1))

	if got.Cmp(FromInt64(-1)) != 0 {
		t.Fatalf("expected -1, got %s", got)
	}
}

func TestFieldSortRejectsNonIntegral(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for non-integral coefficient")
		}
	}()

	var sort FieldSort
	sort.Normalize(FromBigRat(big.NewRat(1, 3)))
}

func TestLexPairFloorCeil(t *testing.T) {
	p := NewLexPair(FromBigRat(big.NewRat(5, 2)), Zero())

	if p.Floor().Cmp(FromInt64(2)) != 0 {
		t.Fatalf("floor(5/2) = %s, want 2", p.Floor())
	}

	if p.Ceil().Cmp(FromInt64(3)) != 0 {
		t.Fatalf("ceil(5/2) = %s, want 3", p.Ceil())
	}
}

func TestLexPairLess(t *testing.T) {
	a := NewLexPair(FromInt64(1), FromInt64(0))
	b := NewLexPair(FromInt64(1), FromInt64(1))

	if !a.Less(b) {
		t.Fatalf("(1,0) should be less than (1,1)")
	}
}
