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
package rewrite

import (
	"github.com/ringrewrite/polyrw/pkg/expr"
	"github.com/ringrewrite/polyrw/pkg/numeral"
)

// rewritePower handles a top-level (^ b e) application with already
// canonical b and e. An integer exponent 0 gives 1 and 1 gives b; an
// integer exponent ≥ 2 stays as ^ when use_power is on and is otherwise
// expanded into repeated multiplication. A non-numeral, non-integer or
// negative exponent is left as (^ b e) unchanged.
func (r *Rewriter) rewritePower(args []expr.NodeID) expr.NodeID {
	f := r.f
	b, e := args[0], args[1]

	if !f.IsNumeral(e) || !f.NumeralValue(e).IsInt() {
		return f.MkApp(expr.SymPower, []expr.NodeID{b, e})
	}

	v := f.NumeralValue(e)

	switch {
	case v.IsZero():
		return f.MkNumeralSort(numeral.FromInt64(1), r.sort)
	case v.IsOne():
		return b
	case v.IsNeg():
		return f.MkApp(expr.SymPower, []expr.NodeID{b, e})
	}

	if r.opts.UsePower {
		return f.MkApp(expr.SymPower, []expr.NodeID{b, e})
	}

	k := int(v.Int64())
	factors := make([]expr.NodeID, k)

	for i := range factors {
		factors[i] = b
	}

	return r.rewriteFixpoint(r.MkMulApp(factors))
}
