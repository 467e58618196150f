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

// Package strategy enumerates resolution cache retention policies.
package strategy

import (
	"fmt"
	"strings"
)

// Strategy selects how a resolution cache retains routes.
//
// # Values
//
//   - Unbounded: every route lives for the process lifetime (the default).
//   - LRU: at most Config.CacheSize routes, least recently used evicted.
//   - TTL: routes expire Config.CacheTTL after they were computed.
//   - None: nothing is retained; every call resolves from scratch.
//
// Routes are pure functions of their key, so eviction only costs a
// recomputation and never changes which handler runs.
type Strategy int

const (
	// Unbounded keeps every route forever. Signature spaces are finite
	// once call sites are known, so this is the normal choice.
	Unbounded Strategy = iota

	// LRU bounds the cache to Config.CacheSize entries.
	LRU

	// TTL expires entries after Config.CacheTTL.
	TTL

	// None disables caching. Concurrent first calls on the same key are
	// still coalesced, but the result is not kept.
	None
)

// String returns "Unbounded", "LRU", "TTL", "None", or "Unknown(<n>)".
// It never panics so that corrupted values can still be logged.
func (cs Strategy) String() string {
	switch cs {
	case Unbounded:
		return "Unbounded"
	case LRU:
		return "LRU"
	case TTL:
		return "TTL"
	case None:
		return "None"
	default:
		return fmt.Sprintf("Unknown(%d)", int(cs))
	}
}

// Parse converts a case-insensitive token into a Strategy.
// Surrounding whitespace is ignored. On failure it returns Unbounded and
// a non-nil error.
//
//	s, err := Parse("lru")
func Parse(s string) (Strategy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Unbounded, fmt.Errorf("cache: empty strategy")
	}

	switch strings.ToUpper(trimmed) {
	case "UNBOUNDED":
		return Unbounded, nil
	case "LRU":
		return LRU, nil
	case "TTL":
		return TTL, nil
	case "NONE":
		return None, nil
	default:
		return Unbounded, fmt.Errorf("cache: unknown strategy %q", s)
	}
}

// MustParse is like Parse but panics on invalid input.
// Use it for hard-coded values only.
func MustParse(s string) Strategy {
	strategy, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return strategy
}

// MarshalText implements encoding.TextMarshaler. Unknown values are an
// error rather than an "Unknown(...)" token so invalid states are never
// persisted.
func (cs Strategy) MarshalText() ([]byte, error) {
	switch cs {
	case Unbounded, LRU, TTL, None:
		return []byte(cs.String()), nil
	default:
		return nil, fmt.Errorf("cache: cannot marshal unknown strategy %d", int(cs))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler with the tokens accepted
// by Parse. On failure the receiver is left unchanged.
func (cs *Strategy) UnmarshalText(text []byte) error {
	value, err := Parse(string(text))
	if err != nil {
		return err
	}
	*cs = value
	return nil
}
