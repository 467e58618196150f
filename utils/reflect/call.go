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
	"fmt"
	"reflect"
)

var (
	// ErrReflectNotFunc is returned when a handler is not a func value.
	ErrReflectNotFunc = errors.New("reflect: handler is not a func")
	// ErrReflectResults is returned when a handler's results are not one of
	// (), (T), (error), (T, error).
	ErrReflectResults = errors.New("reflect: unsupported handler results")
)

var errorType = reflect.TypeFor[error]()

// FuncOf validates fn and returns its reflect.Value.
func FuncOf(fn any) (reflect.Value, error) {
	if fn == nil {
		return reflect.Value{}, ErrReflectNotFunc
	}
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return reflect.Value{}, fmt.Errorf("%w: %T", ErrReflectNotFunc, fn)
	}
	ft := v.Type()
	switch ft.NumOut() {
	case 0, 1:
	case 2:
		if ft.Out(1) != errorType {
			return reflect.Value{}, fmt.Errorf("%w: %v", ErrReflectResults, ft)
		}
	default:
		return reflect.Value{}, fmt.Errorf("%w: %v", ErrReflectResults, ft)
	}
	return v, nil
}

// In returns fn's parameter types. For a variadic fn the last element is
// the slice type.
func In(ft reflect.Type) []reflect.Type {
	out := make([]reflect.Type, ft.NumIn())
	for i := range out {
		out[i] = ft.In(i)
	}
	return out
}

// Invoke calls fn with args. Untyped nil arguments become the zero value of
// the parameter type. The caller guarantees args fit fn's parameters.
func Invoke(fn reflect.Value, args []any) (any, error) {
	ft := fn.Type()
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			in[i] = reflect.Zero(paramType(ft, i))
			continue
		}
		in[i] = reflect.ValueOf(a)
	}
	return results(fn.Call(in))
}

func paramType(ft reflect.Type, i int) reflect.Type {
	if ft.IsVariadic() && i >= ft.NumIn()-1 {
		return ft.In(ft.NumIn() - 1).Elem()
	}
	return ft.In(i)
}

func results(out []reflect.Value) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if out[0].Type() == errorType {
			return nil, asError(out[0])
		}
		return out[0].Interface(), nil
	default:
		return out[0].Interface(), asError(out[1])
	}
}

func asError(v reflect.Value) error {
	if v.IsNil() {
		return nil
	}
	return v.Interface().(error)
}
