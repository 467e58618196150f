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

import (
	"fmt"
	"strings"
)

// MatchMode controls how an argument type is paired with a slot type.
type MatchMode int

const (
	// MatchExact pairs an argument with a slot only if both types are identical.
	MatchExact MatchMode = iota

	// MatchAssignable additionally pairs an argument with a slot when the
	// argument type is assignable to the slot type (for example a concrete
	// type to an interface slot). Exact pairings are always tried first.
	MatchAssignable
)

// String returns "exact", "assignable" or "Unknown(<n>)".
func (m MatchMode) String() string {
	switch m {
	case MatchExact:
		return "exact"
	case MatchAssignable:
		return "assignable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
}

// ParseMatchMode parses a case-insensitive match mode token.
func ParseMatchMode(s string) (MatchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exact":
		return MatchExact, nil
	case "assignable":
		return MatchAssignable, nil
	case "":
		return MatchExact, fmt.Errorf("ovx: empty match mode")
	default:
		return MatchExact, fmt.Errorf("ovx: unknown match mode %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m MatchMode) MarshalText() ([]byte, error) {
	switch m {
	case MatchExact, MatchAssignable:
		return []byte(m.String()), nil
	default:
		return nil, fmt.Errorf("ovx: cannot marshal unknown match mode %d", int(m))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler. On failure *m is unchanged.
func (m *MatchMode) UnmarshalText(text []byte) error {
	v, err := ParseMatchMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
