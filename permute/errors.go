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

package permute

import (
	"errors"
	"reflect"
	"strings"

	"dirpx.dev/ovx/strategy"
	uref "dirpx.dev/ovx/utils/reflect"
)

var (
	// ErrPermutationMismatch is returned when the argument types are not
	// exactly the slot-type set.
	ErrPermutationMismatch = errors.New("ovx(permute): argument types do not match slot types")
	// ErrDuplicateSlotType is returned at build time when two slots share a type.
	ErrDuplicateSlotType = errors.New("ovx(permute): duplicate slot type")
	// ErrNilType is returned when a slot type is nil.
	ErrNilType = errors.New("ovx(permute): nil slot type")
	// ErrArity is returned when argument types and values differ in length.
	ErrArity = errors.New("ovx(permute): argument types and values differ in length")
	// ErrVariadic is returned when binding a variadic function.
	ErrVariadic = errors.New("ovx(permute): variadic functions have no fixed slot order")
	// ErrAmbiguousPermutation is returned in assignable mode when more than
	// one argument order fits.
	ErrAmbiguousPermutation = strategy.ErrAmbiguousPermutation
)

// MismatchError details why an argument-type tuple is not a permutation
// of the slot types. It unwraps to ErrPermutationMismatch.
type MismatchError struct {
	Slots []reflect.Type
	Args  []reflect.Type
	// Missing are slot types no argument supplied.
	Missing []reflect.Type
	// Duplicate are slot types supplied more than once.
	Duplicate []reflect.Type
	// Foreign are argument types that are not slot types.
	Foreign []reflect.Type
}

func (e *MismatchError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrPermutationMismatch.Error())
	sb.WriteString(": args ")
	sb.WriteString(uref.Describe(e.Args))
	sb.WriteString(", slots ")
	sb.WriteString(uref.Describe(e.Slots))
	part := func(label string, ts []reflect.Type) {
		if len(ts) > 0 {
			sb.WriteString("; ")
			sb.WriteString(label)
			sb.WriteString(" ")
			sb.WriteString(uref.Describe(ts))
		}
	}
	part("missing", e.Missing)
	part("duplicate", e.Duplicate)
	part("foreign", e.Foreign)
	return sb.String()
}

func (e *MismatchError) Unwrap() error { return ErrPermutationMismatch }

// mismatch classifies every slot and argument type by exact identity.
func mismatch(slots, args []reflect.Type) *MismatchError {
	count := make(map[reflect.Type]int, len(args))
	for _, t := range args {
		count[t]++
	}
	isSlot := make(map[reflect.Type]bool, len(slots))
	e := &MismatchError{Slots: slots, Args: args}
	for _, s := range slots {
		isSlot[s] = true
		switch n := count[s]; {
		case n == 0:
			e.Missing = append(e.Missing, s)
		case n > 1:
			e.Duplicate = append(e.Duplicate, s)
		}
	}
	seen := make(map[reflect.Type]bool)
	for _, t := range args {
		if !isSlot[t] && !seen[t] {
			seen[t] = true
			e.Foreign = append(e.Foreign, t)
		}
	}
	return e
}
