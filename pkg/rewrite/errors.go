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

import "errors"

// ErrBadInput names a malformed application (spec.md §7). Nothing in
// this module returns it: the factory and the rewriter panic on a
// malformed term instead.
var ErrBadInput = errors.New("rewrite: bad input")

// ErrCancelled names a cancelled rewrite. Nothing in this module returns
// it: the rewriter does not check for cancellation, and RewriteTactic
// returns ctx.Err() when its context is already done on entry.
var ErrCancelled = errors.New("rewrite: cancelled")

// ErrBudgetExceeded names an exceeded sum-of-monomials budget. Nothing in
// this module returns it: mkNflatMulDistribute reports the exceeded
// budget directly as Failed.
var ErrBudgetExceeded = errors.New("rewrite: som budget exceeded")
