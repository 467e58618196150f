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

// Package ovx provides a global, process-wide call router driven by the
// dynamic types of the arguments.
//
// An operation is a named routing target of one of two kinds.
//
// A permuted operation (package permute) is a single function whose
// parameter types are pairwise distinct. Arguments may be supplied in any
// order; each one is moved to the parameter of its type:
//
//	ovx.DefinePermuted("hello", func(b bool, i int, f float64, s string) { ... })
//	ovx.Call("hello", "test", 45.67, 123, false) // hello(false, 123, 45.67, "test")
//
// An overloaded operation (package overload) is a family of candidates at
// integer priority levels. The highest level holding an applicable
// candidate wins; a variadic wildcard at the lowest level makes a fallback:
//
//	ovx.DefineOverloaded("fun",
//		overload.MustFunc(0, func(...any) string { return "fallback" }),
//		overload.MustFunc(20, func(int16) string { return "short" }),
//	)
//	ovx.Call("fun", int16(1)) // "short"
//	ovx.Call("fun", 1.5)      // "fallback"
//
// # Design
//
// The package holds a read-mostly snapshot (state) of:
//
//   - Config: priority bounds, match mode, ambiguity policy, cache strategy,
//     logger and metrics.
//
//   - Registry: operation name to definition. Definitions are static: a
//     name is bound once, and overloaded families seal on first use.
//
//   - Cache: routes keyed by (operation, argument-type signature). A route
//     is computed once per key, on first use, and never changes. Failed
//     resolutions are not stored.
//
//   - Dispatcher: looks the operation up, consults the cache and invokes
//     the route.
//
//   - Builder: a pluggable factory for Registry, Cache and Dispatcher given
//     a Config and an optional extension value.
//
// Readers load the current snapshot atomically and never take locks.
// Writers (SetConfig, SetBuilder, SetExt, SetRegistry, SetAll) serialize on
// a build mutex, assemble a fresh snapshot and publish it with one atomic
// swap. Every new snapshot carries an empty cache.
//
// # Pinning
//
// SetRegistry installs a registry and pins it: later SetConfig, SetBuilder
// and SetExt calls keep it instead of migrating its operations into a new
// one. UnpinRegistry lifts the pin.
//
// # Extension config
//
// The snapshot carries an opaque ext value that ovx never interprets. The
// active Builder receives it on every rebuild, so out-of-tree builders can
// carry their own policy. ExtAs reads it back typed.
package ovx
