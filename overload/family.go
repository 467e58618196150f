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

// Package overload selects one handler out of a family of candidates by
// priority.
//
// Every candidate sits at an integer priority level in [MinPriority,
// MaxPriority] and carries an applicability constraint: an arity and a
// per-position predicate (exact type, assignable-to type, or wildcard).
// Selection scans levels from the highest down and picks the first level
// holding an applicable candidate. A lower level is never consulted while a
// higher one applies.
//
//	f, _ := overload.New(cfg, "fun",
//		overload.MustFunc(0, func(...any) string { return "fallback" }),
//		overload.MustFunc(5, func(int) string { return "int" }),
//		overload.MustFunc(20, func(int16) string { return "short" }),
//	)
//	f.Dispatch(int16(1)) // "short"
//	f.Dispatch(1.5)      // "fallback"
package overload

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"dirpx.dev/ovx/apis"
	uref "dirpx.dev/ovx/utils/reflect"
)

// Family is the candidate set of one logical operation. Candidates are
// registered up front; the first selection seals the family so that cached
// selections never go stale.
type Family struct {
	name   string
	min    int
	max    int
	reject bool
	log    *zap.Logger

	mu     sync.RWMutex
	levels map[int][]apis.Candidate
	order  []int // distinct registered levels, highest first
	sealed bool
}

// Ensure Family implements apis.Operation.
var _ apis.Operation = (*Family)(nil)

// New creates a family named name and registers cands in order.
// All registration failures are reported together; the family is returned
// only if every candidate was accepted.
func New(cfg apis.Config, name string, cands ...apis.Candidate) (*Family, error) {
	f := &Family{
		name:   name,
		min:    cfg.MinPriority,
		max:    cfg.MaxPriority,
		reject: cfg.RejectAmbiguous,
		log:    cfg.Log().With(zap.String("op", name)),
		levels: make(map[int][]apis.Candidate),
	}
	var errs error
	for _, c := range cands {
		errs = multierr.Append(errs, f.Register(c))
	}
	if errs != nil {
		return nil, errs
	}
	return f, nil
}

// Name returns the operation name.
func (f *Family) Name() string { return f.name }

// Kind returns apis.Overloaded.
func (*Family) Kind() apis.Kind { return apis.Overloaded }

// Register adds c to the family.
func (f *Family) Register(c apis.Candidate) error {
	if c.Handler == nil {
		return fmt.Errorf("%w: %s", ErrNilHandler, c)
	}
	if c.Priority < f.min || c.Priority > f.max {
		return fmt.Errorf("%w: %s, bounds [%d,%d]", ErrInvalidPriority, c, f.min, f.max)
	}
	for i, p := range c.Params {
		if p.Kind != apis.KindAny && p.Type == nil {
			return fmt.Errorf("ovx(overload): %s: nil type at position %d", c, i)
		}
	}
	if c.Rest != nil && c.Rest.Kind != apis.KindAny && c.Rest.Type == nil {
		return fmt.Errorf("ovx(overload): %s: nil rest type", c)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sealed {
		return fmt.Errorf("%w: %q", ErrSealed, f.name)
	}
	if f.reject {
		for _, o := range f.levels[c.Priority] {
			if c.Overlaps(o) {
				return fmt.Errorf("%w: %s overlaps %s", ErrAmbiguousCandidate, c, o)
			}
		}
	}

	if _, ok := f.levels[c.Priority]; !ok {
		f.order = append(f.order, c.Priority)
		sort.Sort(sort.Reverse(sort.IntSlice(f.order)))
	}
	f.levels[c.Priority] = append(f.levels[c.Priority], cloneCandidate(c))
	return nil
}

// Select returns the highest-priority candidate applicable to argTypes.
func (f *Family) Select(argTypes []reflect.Type) (apis.Candidate, error) {
	f.seal()

	f.mu.RLock()
	defer f.mu.RUnlock()

	for _, p := range f.order {
		var (
			chosen apis.Candidate
			found  int
		)
		for _, c := range f.levels[p] {
			if !c.Applicable(argTypes) {
				continue
			}
			if found == 0 {
				chosen = c
			}
			found++
		}
		if found == 0 {
			continue
		}
		if found > 1 {
			// Only reachable when ambiguity is not rejected at registration.
			f.log.Warn("ambiguous overload, first registered wins",
				zap.Int("priority", p),
				zap.String("args", uref.Describe(argTypes)),
				zap.String("chosen", chosen.String()))
		}
		return chosen, nil
	}
	return apis.Candidate{}, &NoCandidateError{Op: f.name, Args: copyTypes(argTypes)}
}

// Dispatch selects a candidate for args and invokes it with args unchanged.
func (f *Family) Dispatch(args ...any) (any, error) {
	c, err := f.Select(uref.TypesOf(args))
	if err != nil {
		return nil, err
	}
	return c.Handler(args)
}

// Route selects for argTypes and wraps the choice as an apis.Route.
func (f *Family) Route(argTypes []reflect.Type) (apis.Route, error) {
	c, err := f.Select(argTypes)
	if err != nil {
		return nil, err
	}
	f.log.Debug("candidate selected",
		zap.String("args", uref.Describe(argTypes)),
		zap.String("candidate", c.String()))
	return &Route{op: f.name, cand: c}, nil
}

// Candidates returns the registered candidates, highest level first and in
// registration order within a level.
func (f *Family) Candidates() []apis.Candidate {
	f.mu.RLock()
	defer f.mu.RUnlock()
	var out []apis.Candidate
	for _, p := range f.order {
		out = append(out, f.levels[p]...)
	}
	return out
}

// Sealed reports whether the family has been used for selection.
func (f *Family) Sealed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.sealed
}

func (f *Family) seal() {
	f.mu.RLock()
	sealed := f.sealed
	f.mu.RUnlock()
	if sealed {
		return
	}
	f.mu.Lock()
	f.sealed = true
	f.mu.Unlock()
}

// Route is a selected candidate.
type Route struct {
	op   string
	cand apis.Candidate
}

// Ensure Route implements apis.Route.
var _ apis.Route = (*Route)(nil)

// Op returns the operation name.
func (r *Route) Op() string { return r.op }

// Candidate returns the selected candidate.
func (r *Route) Candidate() apis.Candidate { return r.cand }

// Invoke runs the candidate's handler with args unchanged.
func (r *Route) Invoke(args []any) (any, error) {
	return r.cand.Handler(args)
}

func cloneCandidate(c apis.Candidate) apis.Candidate {
	params := make([]apis.Constraint, len(c.Params))
	copy(params, c.Params)
	c.Params = params
	if c.Rest != nil {
		rest := *c.Rest
		c.Rest = &rest
	}
	return c
}

func copyTypes(ts []reflect.Type) []reflect.Type {
	out := make([]reflect.Type, len(ts))
	copy(out, ts)
	return out
}
