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
package expr

import "github.com/ringrewrite/polyrw/pkg/numeral"

// IsNumeral reports whether id names a numeral leaf.
func (f *Factory) IsNumeral(id NodeID) bool {
	return f.Node(id).kind == KindNumeral
}

// IsVar reports whether id names a variable leaf.
func (f *Factory) IsVar(id NodeID) bool {
	return f.Node(id).kind == KindVar
}

// IsApp reports whether id is an application of sym.
func (f *Factory) IsApp(id NodeID, sym Symbol) bool {
	n := f.Node(id)
	return n.kind == KindApp && n.sym == sym
}

// IsAdd reports whether id is a (+ ...) application.
func (f *Factory) IsAdd(id NodeID) bool { return f.IsApp(id, SymAdd) }

// IsMul reports whether id is a (* ...) application.
func (f *Factory) IsMul(id NodeID) bool { return f.IsApp(id, SymMul) }

// IsUMinus reports whether id is a unary-minus application.
func (f *Factory) IsUMinus(id NodeID) bool { return f.IsApp(id, SymUMinus) }

// IsSub reports whether id is a (- ...) application.
func (f *Factory) IsSub(id NodeID) bool { return f.IsApp(id, SymSub) }

// IsPower reports whether id is a (^ base exp) application.
func (f *Factory) IsPower(id NodeID) bool { return f.IsApp(id, SymPower) }

// IsIte reports whether id is an (ite c t e) application.
func (f *Factory) IsIte(id NodeID) bool { return f.IsApp(id, SymIte) }

// IsArithmetic reports whether id's top symbol is one of the privileged
// arithmetic family; an atomic (unrelated) application returns false.
func (f *Factory) IsArithmetic(id NodeID) bool {
	n := f.Node(id)
	if n.kind != KindApp {
		return false
	}

	switch n.sym {
	case SymAdd, SymMul, SymUMinus, SymSub, SymPower:
		return true
	default:
		return false
	}
}

// NumArgs returns the arity of an application.  Panics if id is not an
// application.
func (f *Factory) NumArgs(id NodeID) int {
	n := f.Node(id)
	if n.kind != KindApp {
		panic(&ErrBadOperand{"NumArgs on non-application"})
	}

	return len(n.args)
}

// Arg returns the ith child of an application.
func (f *Factory) Arg(id NodeID, i int) NodeID {
	n := f.Node(id)
	if n.kind != KindApp || i < 0 || i >= len(n.args) {
		panic(&ErrBadOperand{"Arg index out of range"})
	}

	return n.args[i]
}

// NumeralValue returns the value carried by a numeral leaf. Panics
// otherwise.
func (f *Factory) NumeralValue(id NodeID) numeral.Value {
	n := f.Node(id)
	if n.kind != KindNumeral {
		panic(&ErrBadOperand{"NumeralValue on non-numeral"})
	}

	return n.value
}

// NumeralSort returns the sort carried by a numeral leaf.
func (f *Factory) NumeralSort(id NodeID) numeral.Sort {
	n := f.Node(id)
	if n.kind != KindNumeral {
		panic(&ErrBadOperand{"NumeralSort on non-numeral"})
	}

	return n.sort
}

// IsZero reports whether id is the numeral zero.
func (f *Factory) IsZero(id NodeID) bool {
	n := f.Node(id)
	return n.kind == KindNumeral && n.value.IsZero()
}

// IsOne reports whether id is the numeral one.
func (f *Factory) IsOne(id NodeID) bool {
	n := f.Node(id)
	return n.kind == KindNumeral && n.value.IsOne()
}

// Equal reports structural (== pointer) equality between two nodes drawn
// from the same factory.
func (f *Factory) Equal(a, b NodeID) bool { return a == b }
