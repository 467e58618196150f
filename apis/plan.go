/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package apis

import "reflect"

// Plan maps a supplied argument position to its slot index: plan[arg] = slot.
// A valid plan is a bijection over [0, len(plan)). Plans are never mutated
// once built; callers that need to keep one should not write to it.
type Plan []int

// Valid reports whether p is a permutation of [0, len(p)).
func (p Plan) Valid() bool {
	seen := make([]bool, len(p))
	for _, s := range p {
		if s < 0 || s >= len(p) || seen[s] {
			return false
		}
		seen[s] = true
	}
	return true
}

// Apply returns vs reordered into slot order. len(vs) must equal len(p).
func (p Plan) Apply(vs []any) []any {
	out := make([]any, len(p))
	for arg, slot := range p {
		out[slot] = vs[arg]
	}
	return out
}

// Equal reports whether p and o map every position identically.
func (p Plan) Equal(o Plan) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Matcher reorders arguments supplied in any order into a fixed slot order.
// Implementations are immutable after construction and safe for concurrent use.
type Matcher interface {
	// Slots returns a copy of the declared slot types in canonical order.
	Slots() []reflect.Type
	// Plan computes the reordering for an argument-type tuple.
	Plan(argTypes []reflect.Type) (Plan, error)
	// Resolve returns argValues reordered into slot order.
	Resolve(argTypes []reflect.Type, argValues []any) ([]any, error)
}
