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
	"fmt"
	"os"

	"github.com/segmentio/encoding/json"
)

// Options mirrors the configuration surface consumed from spec.md §6,
// loadable from a JSON file the way the teacher loads its trace/binary
// options (pkg/cmd/root.go's viper-free flag-to-struct wiring), using
// segmentio/encoding/json for the actual (de)serialization.
type Options struct {
	// Flat enables associative flattening of nested + and *. Disabling
	// it forces Som off too.
	Flat bool `json:"flat"`
	// Som distributes products of sums into a sum of products
	// ("sum-of-monomials"). Enabling it forces HoistMul off.
	Som bool `json:"som"`
	// SomBlowup bounds the multiplicative expansion factor permitted
	// during Som distribution.
	SomBlowup uint `json:"som_blowup"`
	// HoistMul enables hoist_multiplication.
	HoistMul bool `json:"hoist_mul"`
	// HoistIte enables hoist_ite.
	HoistIte bool `json:"hoist_ite"`
	// SortSums sorts the children of add.
	SortSums bool `json:"sort_sums"`
	// ArithIneqLHS selects ordinal order when true, AST order when
	// false.
	ArithIneqLHS bool `json:"arith_ineq_lhs"`
	// UsePower groups repeated multiplicative factors under ^.
	UsePower bool `json:"use_power"`
}

// DefaultOptions returns the scenario-table defaults from spec.md §8:
// flat on, som off, sort_sums on, AST order, use_power off.
func DefaultOptions() Options {
	return Options{
		Flat:         true,
		Som:          false,
		SomBlowup:    10,
		HoistMul:     false,
		HoistIte:     false,
		SortSums:     true,
		ArithIneqLHS: false,
		UsePower:     false,
	}
}

// normalize enforces the cross-option implications spec.md §6 lists:
// Flat off forces Som off; Som on forces HoistMul off.
func (o Options) normalize() Options {
	if !o.Flat {
		o.Som = false
	}

	if o.Som {
		o.HoistMul = false
	}

	if o.SomBlowup == 0 {
		o.SomBlowup = 10
	}

	return o
}

// LoadOptions reads an Options value from a JSON file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("rewrite: read options: %w", err)
	}

	opts := DefaultOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("rewrite: parse options: %w", err)
	}

	return opts.normalize(), nil
}

// SaveOptions writes opts to path as JSON.
func SaveOptions(path string, opts Options) error {
	data, err := json.MarshalIndent(opts, "", "  ")
	if err != nil {
		return fmt.Errorf("rewrite: marshal options: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("rewrite: write options: %w", err)
	}

	return nil
}
