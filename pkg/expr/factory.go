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

import (
	"fmt"
	"strings"

	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// ErrBadOperand is panicked by inspectors when a structural contract is
// violated (spec.md §4.2/§7).  Nothing in this module recovers it: the
// CLI installs no recover, so such a panic ends the process.
type ErrBadOperand struct{ Reason string }

func (e *ErrBadOperand) Error() string { return "bad operand: " + e.Reason }

// Factory is a hash-consing expression DAG: two applications built from
// an identical (symbol, child-id-sequence) share one Node.  A Factory is
// not safe for concurrent use; spec.md §5 requires each parallel worker
// to hold a private clone.
type Factory struct {
	nodes   []*Node
	byKey   map[string]NodeID
	varIDs  map[string]NodeID
	defSort numeral.Sort
}

// NewFactory constructs an empty factory using the given default numeral
// sort (used by MkNumeral when no sort is specified).
func NewFactory(defaultSort numeral.Sort) *Factory {
	return &Factory{
		nodes:   []*Node{nil}, // index 0 reserved as InvalidNode
		byKey:   make(map[string]NodeID),
		varIDs:  make(map[string]NodeID),
		defSort: defaultSort,
	}
}

// Clone produces an independent factory pre-populated with the same
// nodes, for use by a private worker per spec.md §5.  Because nodes are
// immutable, the clone shares no mutable state with the original beyond
// already-frozen Node values.
func (f *Factory) Clone() *Factory {
	nf := &Factory{
		nodes:   make([]*Node, len(f.nodes)),
		byKey:   make(map[string]NodeID, len(f.byKey)),
		varIDs:  make(map[string]NodeID, len(f.varIDs)),
		defSort: f.defSort,
	}

	copy(nf.nodes, f.nodes)

	for k, v := range f.byKey {
		nf.byKey[k] = v
	}

	for k, v := range f.varIDs {
		nf.varIDs[k] = v
	}

	return nf
}

// DefaultSort returns the factory's default numeral sort.
func (f *Factory) DefaultSort() numeral.Sort { return f.defSort }

// Node returns the node for a given identifier.  Panics with
// ErrBadOperand if id is out of range.
func (f *Factory) Node(id NodeID) *Node {
	if id == InvalidNode || int(id) >= len(f.nodes) {
		panic(&ErrBadOperand{fmt.Sprintf("unknown node id %d", id)})
	}

	return f.nodes[id]
}

func (f *Factory) intern(key string, build func(NodeID) *Node) NodeID {
	if id, ok := f.byKey[key]; ok {
		return id
	}

	id := NodeID(len(f.nodes))
	node := build(id)
	f.nodes = append(f.nodes, node)
	f.byKey[key] = id

	return id
}

// MkNumeral constructs (or retrieves) a numeral node carrying v under the
// factory's default sort.
func (f *Factory) MkNumeral(v numeral.Value) NodeID {
	return f.MkNumeralSort(v, f.defSort)
}

// MkNumeralSort constructs (or retrieves) a numeral node carrying v under
// an explicit sort.
func (f *Factory) MkNumeralSort(v numeral.Value, sort numeral.Sort) NodeID {
	key := "n:" + sort.Name() + ":" + v.String()

	return f.intern(key, func(id NodeID) *Node {
		return &Node{id: id, kind: KindNumeral, value: v, sort: sort}
	})
}

// MkVar constructs (or retrieves) a variable node with the given opaque
// name.
func (f *Factory) MkVar(name string) NodeID {
	if id, ok := f.varIDs[name]; ok {
		return id
	}

	key := "v:" + name
	id := f.intern(key, func(id NodeID) *Node {
		return &Node{id: id, kind: KindVar, name: name}
	})
	f.varIDs[name] = id

	return id
}

// MkApp constructs (or retrieves) the application of sym to args,
// preserving argument order as given (the rewriter is responsible for
// sorting children where spec.md requires canonical ordering; MkApp
// itself performs no simplification).
func (f *Factory) MkApp(sym Symbol, args []NodeID) NodeID {
	var b strings.Builder

	b.WriteString("a:")
	b.WriteString(string(sym))

	for _, a := range args {
		fmt.Fprintf(&b, ":%d", a)
	}

	key := b.String()
	nargs := append([]NodeID(nil), args...)

	return f.intern(key, func(id NodeID) *Node {
		return &Node{id: id, kind: KindApp, sym: sym, args: nargs}
	})
}
