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

package permute

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/ovx/apis"
	uref "dirpx.dev/ovx/utils/reflect"
)

// Target is a function whose parameters may be supplied in any order.
// Its slot types are the function's parameter types.
type Target struct {
	name string
	fn   reflect.Value
	m    *matcher
	log  *zap.Logger
}

// Ensure Target implements apis.Operation.
var _ apis.Operation = (*Target)(nil)

// Bind wraps fn as an arbitrary-order operation named name. fn must be a
// non-variadic func with pairwise distinct parameter types returning (),
// (T), (error) or (T, error).
func Bind(cfg apis.Config, name string, fn any) (*Target, error) {
	v, err := uref.FuncOf(fn)
	if err != nil {
		return nil, fmt.Errorf("ovx(permute): bind %q: %w", name, err)
	}
	if v.Type().IsVariadic() {
		return nil, fmt.Errorf("%w: bind %q: %v", ErrVariadic, name, v.Type())
	}
	m, err := newMatcher(cfg, uref.In(v.Type()))
	if err != nil {
		return nil, fmt.Errorf("bind %q: %w", name, err)
	}
	return &Target{
		name: name,
		fn:   v,
		m:    m,
		log:  cfg.Log().With(zap.String("op", name)),
	}, nil
}

// Name returns the operation name.
func (t *Target) Name() string { return t.name }

// Kind returns apis.Permuted.
func (*Target) Kind() apis.Kind { return apis.Permuted }

// Matcher exposes the slot matcher.
func (t *Target) Matcher() apis.Matcher { return t.m }

// Route computes the reordering for argTypes.
func (t *Target) Route(argTypes []reflect.Type) (apis.Route, error) {
	plan, err := t.m.Plan(argTypes)
	if err != nil {
		return nil, err
	}
	t.log.Debug("plan resolved",
		zap.String("args", uref.Describe(argTypes)),
		zap.Ints("plan", plan))
	return &Route{op: t.name, plan: plan, fn: t.fn}, nil
}

// Call routes and invokes without any caching.
func (t *Target) Call(args ...any) (any, error) {
	r, err := t.Route(uref.TypesOf(args))
	if err != nil {
		return nil, err
	}
	return r.Invoke(args)
}

// Route is a resolved reordering bound to its target function.
type Route struct {
	op   string
	plan apis.Plan
	fn   reflect.Value
}

// Ensure Route implements apis.Route.
var _ apis.Route = (*Route)(nil)

// Op returns the operation name.
func (r *Route) Op() string { return r.op }

// Plan returns the argument-to-slot mapping. Callers must not modify it.
func (r *Route) Plan() apis.Plan { return r.plan }

// Invoke reorders args and calls the target.
func (r *Route) Invoke(args []any) (any, error) {
	if len(args) != len(r.plan) {
		return nil, fmt.Errorf("%w: route for %d args called with %d", ErrArity, len(r.plan), len(args))
	}
	return uref.Invoke(r.fn, r.plan.Apply(args))
}
