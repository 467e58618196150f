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

package strategy

import (
	"reflect"

	"dirpx.dev/ovx/apis"
)

// NewExactStrategy creates an apis.PlanStrategy that pairs each argument with
// the slot of the identical type. slots must be pairwise distinct.
func NewExactStrategy(slots []reflect.Type) apis.PlanStrategy {
	idx := make(map[reflect.Type]int, len(slots))
	for i, t := range slots {
		idx[t] = i
	}
	return &exactStrategy{idx: idx}
}

// exactStrategy is the O(N) fast path: a type->slot table built once.
type exactStrategy struct {
	idx map[reflect.Type]int
}

// Ensure exactStrategy implements apis.PlanStrategy.
var _ apis.PlanStrategy = (*exactStrategy)(nil)

// TryPlan falls through on any missing, duplicated or foreign type.
func (s *exactStrategy) TryPlan(argTypes []reflect.Type) (apis.Plan, bool, error) {
	if len(argTypes) != len(s.idx) {
		return nil, false, nil
	}
	used := make([]bool, len(argTypes))
	plan := make(apis.Plan, len(argTypes))
	for i, t := range argTypes {
		slot, ok := s.idx[t]
		if !ok || used[slot] {
			return nil, false, nil
		}
		used[slot] = true
		plan[i] = slot
	}
	return plan, true, nil
}
