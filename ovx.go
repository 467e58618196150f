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

package ovx

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/builder"
	"dirpx.dev/ovx/config"
	"dirpx.dev/ovx/overload"
	"dirpx.dev/ovx/permute"
)

// init initializes the global routing state.
func init() {
	cfg := config.DefaultConfig()
	st.Store(rebuild(cfg, nil, builder.New(), nil, nil, false))
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("ovx: builder returned nil registry")
	// ErrNilCache is returned when a builder returns a nil cache.
	ErrNilCache = errors.New("ovx: builder returned nil cache")
	// ErrNilDispatcher is returned when a builder returns a nil dispatcher.
	ErrNilDispatcher = errors.New("ovx: builder returned nil dispatcher")
)

// Call routes args to the operation named op using the global dispatcher.
// The route for the argument types is resolved once and reused after.
func Call(op string, args ...any) (any, error) {
	return st.Load().dsp.Call(op, args...)
}

// Route resolves op for argTypes using the global dispatcher.
func Route(op string, argTypes []reflect.Type) (apis.Route, error) {
	return st.Load().dsp.Route(op, argTypes)
}

// Define adds op to the global registry.
func Define(op apis.Operation) error {
	return st.Load().reg.Define(op)
}

// DefinePermuted binds fn as a permuted operation under the global config
// and defines it in the global registry.
func DefinePermuted(name string, fn any) (*permute.Target, error) {
	s := st.Load()
	t, err := permute.Bind(s.cfg, name, fn)
	if err != nil {
		return nil, err
	}
	if err := s.reg.Define(t); err != nil {
		return nil, err
	}
	return t, nil
}

// DefineOverloaded builds a candidate family under the global config and
// defines it in the global registry.
func DefineOverloaded(name string, cands ...apis.Candidate) (*overload.Family, error) {
	s := st.Load()
	f, err := overload.New(s.cfg, name, cands...)
	if err != nil {
		return nil, err
	}
	if err := s.reg.Define(f); err != nil {
		return nil, err
	}
	return f, nil
}

// SetAll explicitly sets all global state components.
//
// A nil cfg or bld leaves the corresponding component unchanged; ext is
// always replaced. A non-nil reg is installed and pinned; a nil reg is
// rebuilt from the current one and unpinned. Cache and dispatcher are
// always rebuilt.
func SetAll(cfg *apis.Config, ext any, reg apis.Registry, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()

	ncfg := old.cfg
	if cfg != nil {
		ncfg = *cfg
	}
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	st.Store(rebuild(ncfg, ext, nbld, reg, old.reg, reg != nil))
}

// Config returns the global configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global configuration to cfg.
// The registry is rebuilt unless pinned. The cache always starts empty.
// Operations already defined keep the config they were created with.
func SetConfig(cfg apis.Config) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(cfg, old.ext, old.bld, old.pinned(), old.reg, old.preg))
}

// Registry returns the global registry.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry installs reg as the global registry and pins it.
// Routes cached against the previous registry are dropped.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old.cfg, old.ext, old.bld, reg, old.reg, true))
}

// Cache returns the global route cache.
func Cache() apis.Cache {
	return st.Load().cache
}

// Dispatcher returns the global dispatcher.
func Dispatcher() apis.Dispatcher {
	return st.Load().dsp
}

// Builder returns the global builder.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global builder to b and rebuilds every layer with it,
// except a pinned registry.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old.cfg, old.ext, b, old.pinned(), old.reg, old.preg))
}

// SetExt replaces extension config and rebuilds non-pinned layers via the builder.
func SetExt[T any](ext T) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	st.Store(rebuild(old.cfg, ext, old.bld, old.pinned(), old.reg, old.preg))
}

// ExtAs returns the global extension config as type T.
func ExtAs[T any]() (T, bool) {
	ext, ok := st.Load().ext.(T)
	return ext, ok
}

// IsRegistryPinned returns whether the global registry is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops the global registry from being rebuilt.
func PinRegistry() {
	setPinned(true)
}

// UnpinRegistry lets the global registry be rebuilt again.
func UnpinRegistry() {
	setPinned(false)
}

func setPinned(p bool) {
	buildMu.Lock()
	defer buildMu.Unlock()

	old := st.Load()
	next := *old
	next.preg = p
	st.Store(&next)
}

// rebuild assembles a state around reg. The cache is always fresh and the
// dispatcher always wraps the new registry and cache.
func rebuild(cfg apis.Config, ext any, b apis.Builder, reg, prev apis.Registry, preg bool) *state {
	if reg == nil {
		reg = b.BuildRegistry(cfg, prev, ext)
	}
	if reg == nil {
		panic(ErrNilRegistry)
	}
	c := b.BuildCache(cfg, ext)
	if c == nil {
		panic(ErrNilCache)
	}
	d := b.BuildDispatcher(cfg, reg, c, ext)
	if d == nil {
		panic(ErrNilDispatcher)
	}
	return &state{
		cfg:   cfg,
		ext:   ext,
		reg:   reg,
		cache: c,
		dsp:   d,
		bld:   b,
		preg:  preg,
	}
}

// pinned returns s.reg when pinned, or nil so that rebuild asks the
// builder for a migrated copy.
func (s *state) pinned() apis.Registry {
	if s.preg {
		return s.reg
	}
	return nil
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global routing state.
var st atomic.Pointer[state]

// state is the global routing state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global configuration.
	cfg apis.Config
	// ext is the global extension configuration.
	ext any
	// reg is the global registry.
	reg apis.Registry
	// cache memoizes routes for dsp.
	cache apis.Cache
	// dsp is the global dispatcher over reg and cache.
	dsp apis.Dispatcher
	// bld is the global builder.
	bld apis.Builder
	// preg indicates whether the reg is pinned.
	preg bool
}
