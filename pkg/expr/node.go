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

// Package expr provides the hash-consed expression DAG consumed by the
// polynomial rewriter.  Spec.md treats the expression factory as an
// external collaborator whose interface is specified only where the
// rewriter consumes it; this package is this module's concrete
// realization of that collaborator, generalizing
// Consensys-go-corset's pkg/ir/term family (Add/Mul/Sub/Constant/
// RegisterAccess term shapes) to a single non-generic Node carrying
// exact-rational numerals instead of field elements.
package expr

import "github.com/ringrewrite/polyrw/pkg/numeral"

// Kind distinguishes the three node shapes in the DAG.
type Kind uint8

const (
	// KindNumeral is a leaf carrying a rational value.
	KindNumeral Kind = iota
	// KindVar is a leaf with opaque identity.
	KindVar
	// KindApp is the application of a Symbol to zero or more children.
	KindApp
)

// Symbol identifies the function being applied by a KindApp node.  The
// arithmetic family (Add, Mul, UMinus, Sub, Power) is privileged by the
// rewriter; any other symbol is treated as atomic with respect to
// arithmetic (spec.md §3).
type Symbol string

// The arithmetic family of symbols recognised by the rewriter.
const (
	SymAdd    Symbol = "+"
	SymMul    Symbol = "*"
	SymUMinus Symbol = "-u"
	SymSub    Symbol = "-"
	SymPower  Symbol = "^"
	SymIte    Symbol = "ite"
)

// NodeID is a stable, factory-assigned identifier.  Two nodes built from
// an identical (symbol, child-sequence), children taken in the order
// given, share one NodeID: pointer
// (here, ID) equality is semantic equality.
type NodeID uint32

// InvalidNode is returned by lookups which fail.
const InvalidNode NodeID = 0

// Node is one entry of the DAG.  Nodes are never mutated after
// construction; the factory is the sole owner.
type Node struct {
	id   NodeID
	kind Kind

	// Valid when kind == KindApp.
	sym  Symbol
	args []NodeID

	// Valid when kind == KindNumeral.
	value numeral.Value
	sort  numeral.Sort

	// Valid when kind == KindVar.
	name string
}

// ID returns this node's stable identifier.
func (n *Node) ID() NodeID { return n.id }

// Kind returns this node's shape.
func (n *Node) Kind() Kind { return n.kind }

// Sym returns the applied symbol.  Only meaningful when Kind()==KindApp.
func (n *Node) Sym() Symbol { return n.sym }

// Args returns this node's children.  Only meaningful when Kind()==KindApp.
func (n *Node) Args() []NodeID { return n.args }

// Value returns the numeral carried by this node.  Only meaningful when
// Kind()==KindNumeral.
func (n *Node) Value() numeral.Value { return n.value }

// Sort returns the numeral sort of this node.  Only meaningful when
// Kind()==KindNumeral.
func (n *Node) Sort() numeral.Sort { return n.sort }

// Name returns the variable's opaque name.  Only meaningful when
// Kind()==KindVar.
func (n *Node) Name() string { return n.name }
