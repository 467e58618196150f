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
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"dirpx.dev/ovx/apis"
	uref "dirpx.dev/ovx/utils/reflect"
)

// Func derives a candidate from a Go function. Parameter types become
// constraints:
//
//   - any (empty interface)  -> wildcard
//   - other interface types  -> assignable-to
//   - everything else        -> exact
//
// A variadic last parameter becomes the Rest constraint by the same rule.
// Results must be (), (T), (error) or (T, error).
func Func(priority int, fn any) (apis.Candidate, error) {
	v, err := uref.FuncOf(fn)
	if err != nil {
		return apis.Candidate{}, fmt.Errorf("ovx(overload): %w", err)
	}
	ft := v.Type()

	in := uref.In(ft)
	var rest *apis.Constraint
	if ft.IsVariadic() {
		r := constraintFor(in[len(in)-1].Elem())
		rest = &r
		in = in[:len(in)-1]
	}
	params := make([]apis.Constraint, len(in))
	for i, t := range in {
		params[i] = constraintFor(t)
	}

	return apis.Candidate{
		Priority: priority,
		Params:   params,
		Rest:     rest,
		Handler:  func(args []any) (any, error) { return uref.Invoke(v, args) },
		Label:    funcLabel(v),
	}, nil
}

// MustFunc is like Func but panics on error. Use it for static declarations.
func MustFunc(priority int, fn any) apis.Candidate {
	c, err := Func(priority, fn)
	if err != nil {
		panic(err)
	}
	return c
}

func constraintFor(t reflect.Type) apis.Constraint {
	switch {
	case t.Kind() == reflect.Interface && t.NumMethod() == 0:
		return apis.Any()
	case t.Kind() == reflect.Interface:
		return apis.AssignableTo(t)
	default:
		return apis.Exact(t)
	}
}

// funcLabel returns the short function name ("pkg.fn" or "pkg.fn.func1").
func funcLabel(v reflect.Value) string {
	rf := runtime.FuncForPC(v.Pointer())
	if rf == nil {
		return ""
	}
	name := rf.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	return name
}
