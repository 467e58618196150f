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
	"errors"
	"reflect"

	"dirpx.dev/ovx/apis"
)

// ErrAmbiguousPermutation is returned when more than one pairing of
// arguments to slots is viable.
var ErrAmbiguousPermutation = errors.New("ovx(strategy): more than one argument order fits the slots")

// NewAssignableStrategy creates an apis.PlanStrategy that pairs an argument
// with any slot whose type it is assignable to, and requires the pairing to
// be unique. It searches by backtracking, so the worst case is N! steps;
// results are expected to be cached per signature.
func NewAssignableStrategy(slots []reflect.Type) apis.PlanStrategy {
	cp := make([]reflect.Type, len(slots))
	copy(cp, slots)
	return &assignableStrategy{slots: cp}
}

type assignableStrategy struct {
	slots []reflect.Type
}

// Ensure assignableStrategy implements apis.PlanStrategy.
var _ apis.PlanStrategy = (*assignableStrategy)(nil)

// TryPlan falls through when no pairing exists and fails on ambiguity.
func (s *assignableStrategy) TryPlan(argTypes []reflect.Type) (apis.Plan, bool, error) {
	n := len(s.slots)
	if len(argTypes) != n {
		return nil, false, nil
	}

	// fits[i] lists the slots argument i may occupy.
	fits := make([][]int, n)
	for i, at := range argTypes {
		for j, st := range s.slots {
			if apis.AssignableTo(st).Accepts(at) {
				fits[i] = append(fits[i], j)
			}
		}
		if len(fits[i]) == 0 {
			return nil, false, nil
		}
	}

	var (
		found apis.Plan
		count int
		cur   = make(apis.Plan, n)
		used  = make([]bool, n)
	)
	var walk func(i int)
	walk = func(i int) {
		if count > 1 {
			return
		}
		if i == n {
			count++
			if count == 1 {
				found = make(apis.Plan, n)
				copy(found, cur)
			}
			return
		}
		for _, j := range fits[i] {
			if used[j] {
				continue
			}
			used[j] = true
			cur[i] = j
			walk(i + 1)
			used[j] = false
		}
	}
	walk(0)

	switch count {
	case 0:
		return nil, false, nil
	case 1:
		return found, true, nil
	default:
		return nil, false, ErrAmbiguousPermutation
	}
}
