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

package reflect

import (
	"errors"
	"reflect"
	"strings"
	"sync"
)

// MaxArity bounds the length of a signature. reflect.FuncOf rejects
// larger parameter lists.
const MaxArity = 50

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooManyArgs is returned when a signature exceeds MaxArity.
	ErrReflectTooManyArgs = errors.New("reflect: too many arguments in signature")
)

// untypedNil stands in for the type of an untyped nil argument.
type untypedNil struct{}

// NilType is the argument type reported for a nil interface value.
// Only wildcard constraints and nillable assignable slots accept it.
var NilType = reflect.TypeFor[untypedNil]()

// TypeOf returns the dynamic type of v, or NilType for a nil interface.
func TypeOf(v any) reflect.Type {
	if v == nil {
		return NilType
	}
	return reflect.TypeOf(v)
}

// TypesOf maps TypeOf over vs.
func TypesOf(vs []any) []reflect.Type {
	ts := make([]reflect.Type, len(vs))
	for i, v := range vs {
		ts[i] = TypeOf(v)
	}
	return ts
}

// Signature returns the func type func(ts[0], ..., ts[n-1]). The runtime
// interns func types, so two tuples share a Signature if and only if they
// are element-wise identical, and the result is usable as a map key.
func Signature(ts []reflect.Type) (reflect.Type, error) {
	if len(ts) > MaxArity {
		return nil, ErrReflectTooManyArgs
	}
	for _, t := range ts {
		if t == nil {
			return nil, ErrReflectNilType
		}
	}
	return reflect.FuncOf(ts, nil, false), nil
}

// Nillable reports whether an untyped nil is assignable to t.
func Nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice,
		reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// nameCache memoizes display names by type.
var nameCache sync.Map // key: reflect.Type, val: string

// Name returns a short display name for t ("int", "*pkg.T", "nil").
func Name(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	if v, ok := nameCache.Load(t); ok {
		return v.(string)
	}
	name := t.String()
	if t == NilType {
		name = "nil"
	}
	nameCache.Store(t, name)
	return name
}

// Describe renders a type tuple as "(bool, int, string)".
func Describe(ts []reflect.Type) string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, t := range ts {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(Name(t))
	}
	sb.WriteByte(')')
	return sb.String()
}
