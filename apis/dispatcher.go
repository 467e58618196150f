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

// Dispatcher routes calls by operation name through a Registry and a Cache.
type Dispatcher interface {
	// Route resolves (op, argTypes), consulting the cache first.
	Route(op string, argTypes []reflect.Type) (Route, error)
	// Call resolves the route for args and invokes it.
	Call(op string, args ...any) (any, error)
}

// Builder composes Registry, Cache and Dispatcher from a Config.
// Implementations may migrate state from previous instances, or ignore them.
type Builder interface {
	// BuildRegistry constructs a Registry. May copy operations from prev.
	// ext is an optional extension context. Its meaning is implementation-defined.
	BuildRegistry(cfg Config, prev Registry, ext any) Registry
	// BuildCache constructs an empty Cache for cfg.
	BuildCache(cfg Config, ext any) Cache
	// BuildDispatcher wires reg and c into a Dispatcher.
	BuildDispatcher(cfg Config, reg Registry, c Cache, ext any) Dispatcher
}
