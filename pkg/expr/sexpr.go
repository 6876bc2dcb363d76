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
	"math/big"
	"strconv"
	"strings"

	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// sexp is the minimal Lisp term used to parse and print expressions in
// this module, adapted from Consensys-go-corset's
// pkg/util/source/sexp/sexp.go List/Symbol shape, trimmed of the
// position-tracking and Set/Array variants that serve the Corset DSL's
// richer surface syntax (not needed here).
type sexp interface {
	String() string
}

type sexpList struct{ elems []sexp }

func (l *sexpList) String() string {
	parts := make([]string, len(l.elems))
	for i, e := range l.elems {
		parts[i] = e.String()
	}

	return "(" + strings.Join(parts, " ") + ")"
}

type sexpSymbol string

func (s sexpSymbol) String() string { return string(s) }

// parseSExp tokenizes and parses a single Lisp term.
func parseSExp(input string) (sexp, string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, "", fmt.Errorf("unexpected end of input")
	}

	if input[0] == '(' {
		rest := input[1:]

		var elems []sexp

		for {
			rest = strings.TrimSpace(rest)
			if rest == "" {
				return nil, "", fmt.Errorf("unterminated list")
			}

			if rest[0] == ')' {
				return &sexpList{elems}, rest[1:], nil
			}

			var (
				e   sexp
				err error
			)

			e, rest, err = parseSExp(rest)
			if err != nil {
				return nil, "", err
			}

			elems = append(elems, e)
		}
	}

	// Symbol: read until whitespace or a paren.
	i := 0
	for i < len(input) && input[i] != '(' && input[i] != ')' && !isSpace(input[i]) {
		i++
	}

	if i == 0 {
		return nil, "", fmt.Errorf("unexpected character %q", input[0])
	}

	return sexpSymbol(input[:i]), input[i:], nil
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

// Parse parses a single arithmetic term in Lisp notation into the given
// factory, returning its NodeID.  Numeric literals (integers and
// "n/d" fractions) become numeral nodes under the factory's default
// sort; any other bare token becomes a variable; a list whose head is one
// of "+","*","-","-u","^","ite" becomes the corresponding application;
// any other list head is treated as an atomic (non-arithmetic) symbol
// application, per spec.md §3.
func Parse(f *Factory, input string) (NodeID, error) {
	s, rest, err := parseSExp(input)
	if err != nil {
		return InvalidNode, err
	}

	if strings.TrimSpace(rest) != "" {
		return InvalidNode, fmt.Errorf("trailing input: %q", rest)
	}

	return build(f, s)
}

func build(f *Factory, s sexp) (NodeID, error) {
	switch t := s.(type) {
	case sexpSymbol:
		if v, ok := parseNumeral(string(t)); ok {
			return f.MkNumeral(v), nil
		}

		return f.MkVar(string(t)), nil
	case *sexpList:
		if len(t.elems) == 0 {
			return InvalidNode, fmt.Errorf("empty list")
		}

		head, ok := t.elems[0].(sexpSymbol)
		if !ok {
			return InvalidNode, fmt.Errorf("list head must be a symbol")
		}

		args := make([]NodeID, len(t.elems)-1)

		for i, e := range t.elems[1:] {
			id, err := build(f, e)
			if err != nil {
				return InvalidNode, err
			}

			args[i] = id
		}

		return f.MkApp(Symbol(head), args), nil
	default:
		return InvalidNode, fmt.Errorf("unrecognised term %v", s)
	}
}

func parseNumeral(tok string) (numeral.Value, bool) {
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return numeral.FromInt64(n), true
	}

	if n, ok := new(big.Int).SetString(tok, 10); ok {
		return numeral.FromBigInt(n), true
	}

	if strings.Contains(tok, "/") {
		if r, ok := new(big.Rat).SetString(tok); ok {
			return numeral.FromBigRat(r), true
		}
	}

	return numeral.Value{}, false
}

// Print renders id as a Lisp term.
func Print(f *Factory, id NodeID) string {
	n := f.Node(id)

	switch n.kind {
	case KindNumeral:
		return n.value.String()
	case KindVar:
		return n.name
	case KindApp:
		parts := make([]string, len(n.args)+1)
		parts[0] = string(n.sym)

		for i, a := range n.args {
			parts[i+1] = Print(f, a)
		}

		return "(" + strings.Join(parts, " ") + ")"
	default:
		panic(&ErrBadOperand{"unknown node kind"})
	}
}
