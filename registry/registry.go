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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/ovx/apis"
)

var (
	// ErrNilOperation is returned when a nil operation is provided.
	ErrNilOperation = errors.New("ovx(registry): nil operation provided")
	// ErrEmptyName is returned when an operation has an empty name.
	ErrEmptyName = errors.New("ovx(registry): empty operation name")
	// ErrConflictingDefinition indicates an attempt to define a second,
	// different operation under a name already in use.
	ErrConflictingDefinition = errors.New("ovx(registry): conflicting operation definition")
)

// defs hands out definition ids shared by every registry in the process.
var defs atomic.Uint64

// New constructs an empty Registry.
func New(cfg apis.Config) apis.Registry {
	return &registry{log: cfg.Log()}
}

// registry is a simple Registry implementation backed by sync.Map.
type registry struct {
	log *zap.Logger
	// mu guards write-side consistency and counter
	mu sync.Mutex
	// m maps operation name to its definition.
	m sync.Map // map[string]entry
	// count tracks the number of defined operations.
	count int
}

// entry is a definition and its id.
type entry struct {
	op apis.Operation
	id uint64
}

// Define registers op under op.Name().
// It is idempotent for the same operation instance.
func (r *registry) Define(op apis.Operation) error {
	if op == nil {
		return ErrNilOperation
	}
	name := op.Name()
	if name == "" {
		return ErrEmptyName
	}

	// Fast read path: idempotency / conflict check without locking.
	if old, ok := r.m.Load(name); ok {
		return check(name, old.(entry).op, op)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Re-check under lock in case another goroutine stored meanwhile.
	if old, ok := r.m.Load(name); ok {
		return check(name, old.(entry).op, op)
	}

	r.m.Store(name, entry{op: op, id: defs.Add(1)})
	r.count++
	r.log.Debug("operation defined", zap.String("op", name), zap.Stringer("kind", op.Kind()))
	return nil
}

func check(name string, old, op apis.Operation) error {
	if same(old, op) {
		return nil
	}
	return fmt.Errorf("%w: %q is already a %s operation", ErrConflictingDefinition, name, old.Kind())
}

// same reports whether a and b are the same operation value. Operations of
// non-comparable dynamic types are never the same.
func same(a, b apis.Operation) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	return ta == tb && ta.Comparable() && a == b
}

// Lookup returns the operation defined under name.
func (r *registry) Lookup(name string) (apis.Operation, bool) {
	op, _, ok := r.LookupID(name)
	return op, ok
}

// LookupID returns the operation defined under name and its definition id.
func (r *registry) LookupID(name string) (apis.Operation, uint64, bool) {
	if name == "" {
		return nil, 0, false
	}
	if v, ok := r.m.Load(name); ok {
		e := v.(entry)
		return e.op, e.id, true
	}
	return nil, 0, false
}

// Entries returns a snapshot sorted by name.
func (r *registry) Entries() []apis.Operation {
	ops := make([]apis.Operation, 0, r.Count())
	r.m.Range(func(_, value any) bool {
		ops = append(ops, value.(entry).op)
		return true
	})
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name() < ops[j].Name() })
	return ops
}

// Count returns the number of defined operations.
func (r *registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Reset clears all definitions.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m.Clear()
	r.count = 0
}
