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

// Package permute reorders arguments supplied in any order into the fixed
// parameter order of a target.
//
// Slot types must be pairwise distinct, so in exact mode every argument type
// names its slot and the reordering is unique:
//
//	m, _ := permute.New(cfg, tBool, tInt, tFloat, tString)
//	out, _ := m.Resolve(
//		[]reflect.Type{tInt, tString, tFloat, tBool},
//		[]any{123, "test", 45.67, false},
//	) // out = [false 123 45.67 test]
//
// In assignable mode an argument may also occupy a slot whose type it is
// assignable to (a concrete type into an interface slot); the pairing must
// still be unique.
package permute

import (
	"fmt"
	"reflect"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/strategy"
	uref "dirpx.dev/ovx/utils/reflect"
)

// New builds a Matcher over slots. It fails with ErrDuplicateSlotType if two
// slots are identical and with ErrNilType for a nil slot.
func New(cfg apis.Config, slots ...reflect.Type) (apis.Matcher, error) {
	return newMatcher(cfg, slots)
}

func newMatcher(cfg apis.Config, slots []reflect.Type) (*matcher, error) {
	seen := make(map[reflect.Type]int, len(slots))
	for i, t := range slots {
		if t == nil {
			return nil, fmt.Errorf("%w at position %d", ErrNilType, i)
		}
		if j, dup := seen[t]; dup {
			return nil, fmt.Errorf("%w: %s at positions %d and %d", ErrDuplicateSlotType, uref.Name(t), j, i)
		}
		seen[t] = i
	}
	if len(slots) > uref.MaxArity {
		return nil, uref.ErrReflectTooManyArgs
	}

	cp := make([]reflect.Type, len(slots))
	copy(cp, slots)

	strats := []apis.PlanStrategy{strategy.NewExactStrategy(cp)}
	if cfg.Match == apis.MatchAssignable {
		strats = append(strats, strategy.NewAssignableStrategy(cp))
	}
	return &matcher{slots: cp, strats: strats}, nil
}

// matcher is an immutable, order-preserving chain of plan strategies.
type matcher struct {
	slots  []reflect.Type
	strats []apis.PlanStrategy
}

// Ensure matcher implements apis.Matcher.
var _ apis.Matcher = (*matcher)(nil)

// Slots returns a copy of the slot types.
func (m *matcher) Slots() []reflect.Type {
	out := make([]reflect.Type, len(m.slots))
	copy(out, m.slots)
	return out
}

// Plan runs strategies in order until one handles the tuple.
func (m *matcher) Plan(argTypes []reflect.Type) (apis.Plan, error) {
	for _, s := range m.strats {
		plan, ok, err := s.TryPlan(argTypes)
		if err != nil {
			return nil, fmt.Errorf("%w: args %s, slots %s", err, uref.Describe(argTypes), uref.Describe(m.slots))
		}
		if ok {
			return plan, nil
		}
	}
	return nil, mismatch(m.Slots(), copyTypes(argTypes))
}

// Resolve returns argValues in slot order.
func (m *matcher) Resolve(argTypes []reflect.Type, argValues []any) ([]any, error) {
	if len(argTypes) != len(argValues) {
		return nil, fmt.Errorf("%w: %d types, %d values", ErrArity, len(argTypes), len(argValues))
	}
	plan, err := m.Plan(argTypes)
	if err != nil {
		return nil, err
	}
	return plan.Apply(argValues), nil
}

func copyTypes(ts []reflect.Type) []reflect.Type {
	out := make([]reflect.Type, len(ts))
	copy(out, ts)
	return out
}
