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

package overload

import (
	"errors"
	"fmt"
	"reflect"

	uref "dirpx.dev/ovx/utils/reflect"
)

var (
	// ErrNoApplicableCandidate is returned when no candidate at any level
	// accepts the call.
	ErrNoApplicableCandidate = errors.New("ovx(overload): no applicable candidate")
	// ErrInvalidPriority is returned when a candidate's priority is outside
	// the configured bounds.
	ErrInvalidPriority = errors.New("ovx(overload): priority out of range")
	// ErrAmbiguousCandidate is returned when a candidate overlaps another at
	// the same priority level and ambiguity is rejected.
	ErrAmbiguousCandidate = errors.New("ovx(overload): ambiguous candidate at priority level")
	// ErrNilHandler is returned when a candidate has no handler.
	ErrNilHandler = errors.New("ovx(overload): nil handler")
	// ErrSealed is returned when registering after the family was first used.
	ErrSealed = errors.New("ovx(overload): family is sealed")
)

// NoCandidateError reports the signature nothing accepted.
// It unwraps to ErrNoApplicableCandidate.
type NoCandidateError struct {
	Op   string
	Args []reflect.Type
}

func (e *NoCandidateError) Error() string {
	return fmt.Sprintf("%s: %s%s", ErrNoApplicableCandidate, e.Op, uref.Describe(e.Args))
}

func (e *NoCandidateError) Unwrap() error { return ErrNoApplicableCandidate }
