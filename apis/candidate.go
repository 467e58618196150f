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
	"reflect"
	"strconv"
	"strings"

	uref "dirpx.dev/ovx/utils/reflect"
)

// ConstraintKind enumerates per-position applicability predicates.
type ConstraintKind int

const (
	// KindAny accepts every argument type, including untyped nil.
	KindAny ConstraintKind = iota
	// KindExact accepts exactly one argument type.
	KindExact
	// KindAssignable accepts any argument type assignable to the constraint type.
	KindAssignable
)

// Constraint is the applicability predicate for one argument position.
type Constraint struct {
	Kind ConstraintKind
	Type reflect.Type
}

// Any returns the wildcard constraint.
func Any() Constraint { return Constraint{Kind: KindAny} }

// Exact returns a constraint that accepts only t.
func Exact(t reflect.Type) Constraint { return Constraint{Kind: KindExact, Type: t} }

// ExactOf is Exact(reflect.TypeFor[T]()).
func ExactOf[T any]() Constraint { return Exact(reflect.TypeFor[T]()) }

// AssignableTo returns a constraint that accepts every type assignable to t.
func AssignableTo(t reflect.Type) Constraint { return Constraint{Kind: KindAssignable, Type: t} }

// Accepts reports whether an argument of type t satisfies c.
func (c Constraint) Accepts(t reflect.Type) bool {
	switch c.Kind {
	case KindAny:
		return true
	case KindExact:
		return t != nil && t == c.Type
	case KindAssignable:
		if t == nil || c.Type == nil {
			return false
		}
		if t == uref.NilType {
			return uref.Nillable(c.Type)
		}
		return t.AssignableTo(c.Type)
	default:
		return false
	}
}

// Overlaps reports whether some argument type could satisfy both c and o.
// The answer is conservative: true unless disjointness is certain.
func (c Constraint) Overlaps(o Constraint) bool {
	switch {
	case c.Kind == KindAny || o.Kind == KindAny:
		return true
	case c.Kind == KindExact && o.Kind == KindExact:
		return c.Type == o.Type
	case c.Kind == KindExact:
		return o.Accepts(c.Type)
	case o.Kind == KindExact:
		return c.Accepts(o.Type)
	default:
		return true
	}
}

func (c Constraint) String() string {
	switch c.Kind {
	case KindAny:
		return "any"
	case KindExact:
		return uref.Name(c.Type)
	case KindAssignable:
		return "~" + uref.Name(c.Type)
	default:
		return "?"
	}
}

// Handler is the opaque body invoked once a candidate has been selected.
// It receives the caller's arguments unchanged.
type Handler func(args []any) (any, error)

// Candidate is one overload registered in a family.
type Candidate struct {
	// Priority is the selection key; higher levels are tried first.
	Priority int
	// Params holds one constraint per fixed argument position.
	Params []Constraint
	// Rest, when non-nil, accepts any number of extra trailing arguments
	// each satisfying *Rest. Nil means the arity is exactly len(Params).
	Rest *Constraint
	// Handler runs when the candidate is selected.
	Handler Handler
	// Label names the candidate in logs and errors. Optional.
	Label string
}

// Applicable reports whether c accepts the argument-type tuple ts.
func (c Candidate) Applicable(ts []reflect.Type) bool {
	if len(ts) < len(c.Params) {
		return false
	}
	if len(ts) > len(c.Params) && c.Rest == nil {
		return false
	}
	for i, p := range c.Params {
		if !p.Accepts(ts[i]) {
			return false
		}
	}
	for _, t := range ts[len(c.Params):] {
		if !c.Rest.Accepts(t) {
			return false
		}
	}
	return true
}

// Overlaps reports whether some argument-type tuple could make both c and o applicable.
func (c Candidate) Overlaps(o Candidate) bool {
	a, b := c, o
	if len(a.Params) > len(b.Params) {
		a, b = b, a
	}
	// a has the shorter fixed prefix.
	if len(a.Params) < len(b.Params) && a.Rest == nil {
		return false
	}
	for i := range a.Params {
		if !a.Params[i].Overlaps(b.Params[i]) {
			return false
		}
	}
	for i := len(a.Params); i < len(b.Params); i++ {
		if !a.Rest.Overlaps(b.Params[i]) {
			return false
		}
	}
	return true
}

// String renders the candidate as "label@prio(p0, p1, ...rest)".
func (c Candidate) String() string {
	var sb strings.Builder
	if c.Label != "" {
		sb.WriteString(c.Label)
	}
	sb.WriteString("@")
	sb.WriteString(strconv.Itoa(c.Priority))
	sb.WriteString("(")
	for i, p := range c.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	if c.Rest != nil {
		if len(c.Params) > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("...")
		sb.WriteString(c.Rest.String())
	}
	sb.WriteString(")")
	return sb.String()
}
