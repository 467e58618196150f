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

// Key identifies a resolution: operation name, definition id and
// argument-type signature. Def is the id the registry assigned when the
// operation was defined, so a redefinition under the same name never
// shares routes with its predecessor. Sig is the func type built from the
// argument types (see utils/reflect.Signature), which makes the whole key
// comparable.
type Key struct {
	Op  string
	Def uint64
	Sig reflect.Type
}

// Cache memoizes routes per Key.
type Cache interface {
	// Resolve returns the cached route for key, or runs compute once per key
	// and stores its result. hit is true when no computation was needed.
	// A compute error is returned to every waiter and is never stored.
	Resolve(key Key, compute func() (Route, error)) (r Route, hit bool, err error)
	// Len returns the number of stored entries.
	Len() int
	// Reset drops all entries.
	Reset()
}
