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

package reflect_test

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"sync"
	"testing"

	uref "dirpx.dev/ovx/utils/reflect"
)

// Local test types.
type A struct{}
type B struct{}

func TestTypeOf_NilMapsToNilType(t *testing.T) {
	if got := uref.TypeOf(nil); got != uref.NilType {
		t.Fatalf("TypeOf(nil) = %v, want NilType", got)
	}
	var p *A
	if got := uref.TypeOf(p); got != reflect.TypeOf(p) {
		t.Fatalf("TypeOf((*A)(nil)) = %v, want *A", got)
	}
}

func TestSignature_IdentityFollowsTuple(t *testing.T) {
	a := reflect.TypeOf(A{})
	b := reflect.TypeOf(B{})

	s1, err := uref.Signature([]reflect.Type{a, b})
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	s2, _ := uref.Signature([]reflect.Type{a, b})
	s3, _ := uref.Signature([]reflect.Type{b, a})

	if s1 != s2 {
		t.Fatalf("same tuple produced different signatures: %v vs %v", s1, s2)
	}
	if s1 == s3 {
		t.Fatalf("different order produced the same signature: %v", s1)
	}

	empty, err := uref.Signature(nil)
	if err != nil {
		t.Fatalf("Signature(nil): %v", err)
	}
	if empty.NumIn() != 0 {
		t.Fatalf("empty signature has %d params", empty.NumIn())
	}
}

func TestSignature_Errors(t *testing.T) {
	if _, err := uref.Signature([]reflect.Type{nil}); !errors.Is(err, uref.ErrReflectNilType) {
		t.Fatalf("nil element: want ErrReflectNilType, got %v", err)
	}
	many := make([]reflect.Type, uref.MaxArity+1)
	for i := range many {
		many[i] = reflect.TypeOf(0)
	}
	if _, err := uref.Signature(many); !errors.Is(err, uref.ErrReflectTooManyArgs) {
		t.Fatalf("too many: want ErrReflectTooManyArgs, got %v", err)
	}
}

func TestDescribe(t *testing.T) {
	ts := []reflect.Type{reflect.TypeOf(false), reflect.TypeOf(0), uref.NilType, reflect.TypeOf(&A{})}
	want := "(bool, int, nil, *reflect_test.A)"
	if got := uref.Describe(ts); got != want {
		t.Fatalf("Describe = %q, want %q", got, want)
	}
	if got := uref.Describe(nil); got != "()" {
		t.Fatalf("Describe(nil) = %q, want ()", got)
	}
}

func TestNillable(t *testing.T) {
	cases := []struct {
		typ  reflect.Type
		want bool
	}{
		{reflect.TypeOf(&A{}), true},
		{reflect.TypeFor[error](), true},
		{reflect.TypeOf([]int{}), true},
		{reflect.TypeOf(map[string]int{}), true},
		{reflect.TypeOf(0), false},
		{reflect.TypeOf(A{}), false},
	}
	for _, tc := range cases {
		t.Run(tc.typ.String(), func(t *testing.T) {
			if got := uref.Nillable(tc.typ); got != tc.want {
				t.Fatalf("Nillable(%v) = %v, want %v", tc.typ, got, tc.want)
			}
		})
	}
}

// TestName_ConcurrentMemo verifies Name is race-free under concurrent use.
func TestName_ConcurrentMemo(t *testing.T) {
	tys := []reflect.Type{reflect.TypeOf(A{}), reflect.TypeOf(&B{}), uref.NilType, reflect.TypeOf(1.5)}
	want := make([]string, len(tys))
	for i, tt := range tys {
		want[i] = uref.Name(tt)
	}

	wg := sync.WaitGroup{}
	workers := runtime.GOMAXPROCS(0) * 4
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				k := (i + id) % len(tys)
				if got := uref.Name(tys[k]); got != want[k] {
					t.Errorf("Name(%v) = %q, want %q", tys[k], got, want[k])
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if got := fmt.Sprint(uref.Name(nil)); got != "<nil>" {
		t.Fatalf("Name(nil) = %q", got)
	}
}
