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
	"reflect"
)

// Kind tells which resolution mechanism backs an Operation.
type Kind int

const (
	// Permuted operations reorder arguments into a fixed signature.
	Permuted Kind = iota
	// Overloaded operations select one candidate by priority.
	Overloaded
)

func (k Kind) String() string {
	switch k {
	case Permuted:
		return "permuted"
	case Overloaded:
		return "overloaded"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Route is the resolved outcome for one argument-type signature: a plan plus
// target, or a chosen candidate. Routes are immutable and safe to share.
type Route interface {
	// Op returns the name of the operation the route belongs to.
	Op() string
	// Invoke runs the target with args, which must have the signature the
	// route was resolved for.
	Invoke(args []any) (any, error)
}

// Operation is a named, statically declared routing target.
type Operation interface {
	// Name returns the operation identifier.
	Name() string
	// Kind reports the resolution mechanism.
	Kind() Kind
	// Route resolves an argument-type tuple. It must be a pure function of
	// argTypes so that results can be cached.
	Route(argTypes []reflect.Type) (Route, error)
}
