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
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"testing"
	"time"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/builder"
	"dirpx.dev/ovx/cache/strategy"
	"dirpx.dev/ovx/config"
	"dirpx.dev/ovx/overload"
	"dirpx.dev/ovx/registry"
	uref "dirpx.dev/ovx/utils/reflect"
)

// Reset to a clean snapshot using the given builder.
// This fully replaces builder, config, ext and rebuilds every layer.
// The registry pin is cleared because we pass a nil registry.
func resetWithBuilder(tb testing.TB, b apis.Builder, cfg apis.Config, ext any) {
	tb.Helper()
	SetAll(&cfg, ext, nil, b)
	// Drop operations migrated from earlier tests.
	Registry().Reset()
}

// ---------------------- Test doubles (mocks) ----------------------

// mockBuilder wraps the real builder and records what it was asked for.
type mockBuilder struct {
	mu            sync.Mutex
	lastCfg       apis.Config
	lastExt       any
	regCounter    int
	cacheCounter  int
	dispCounter   int
	lastPrevCount int
}

func (b *mockBuilder) BuildRegistry(cfg apis.Config, prev apis.Registry, ext any) apis.Registry {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.lastPrevCount = 0
	if prev != nil {
		b.lastPrevCount = prev.Count()
	}
	b.regCounter++
	return builder.New().BuildRegistry(cfg, prev, ext)
}

func (b *mockBuilder) BuildCache(cfg apis.Config, ext any) apis.Cache {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lastCfg, b.lastExt = cfg, ext
	b.cacheCounter++
	return builder.New().BuildCache(cfg, ext)
}

func (b *mockBuilder) BuildDispatcher(cfg apis.Config, reg apis.Registry, c apis.Cache, ext any) apis.Dispatcher {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dispCounter++
	return builder.New().BuildDispatcher(cfg, reg, c, ext)
}

func (b *mockBuilder) counters() (reg, cache, disp int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.regCounter, b.cacheCounter, b.dispCounter
}

func hello(b bool, i int, f float64, s string) string {
	return fmt.Sprintf("hello(%t, %d, %g, %s)", b, i, f, s)
}

// ---------------------- Tests ----------------------

func TestCall_Permuted(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)

	if _, err := DefinePermuted("hello", hello); err != nil {
		t.Fatalf("DefinePermuted: %v", err)
	}
	got, err := Call("hello", "test", 45.67, 123, false)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if got != "hello(false, 123, 45.67, test)" {
		t.Fatalf("Call = %q", got)
	}
}

func TestCall_Overloaded(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)

	_, err := DefineOverloaded("fun",
		overload.MustFunc(0, func(...any) string { return "fallback" }),
		overload.MustFunc(5, func(int) string { return "int" }),
		overload.MustFunc(20, func(int16) string { return "short" }),
	)
	if err != nil {
		t.Fatalf("DefineOverloaded: %v", err)
	}

	for _, tc := range []struct {
		args []any
		want string
	}{
		{[]any{int16(1)}, "short"},
		{[]any{1}, "int"},
		{[]any{}, "fallback"},
		{[]any{"x", 2}, "fallback"},
	} {
		got, err := Call("fun", tc.args...)
		if err != nil || got != tc.want {
			t.Fatalf("Call(fun, %v) = (%v, %v), want %q", tc.args, got, err, tc.want)
		}
	}
}

func TestDefine_Errors(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)

	if _, err := DefinePermuted("dup", func(int, int) {}); err == nil {
		t.Fatal("expected duplicate slot error")
	}
	if _, err := DefineOverloaded("bad", apis.Candidate{Priority: 1000, Handler: func([]any) (any, error) { return nil, nil }}); err == nil {
		t.Fatal("expected invalid priority error")
	}
	if _, err := DefinePermuted("x", hello); err != nil {
		t.Fatalf("DefinePermuted: %v", err)
	}
	if _, err := DefinePermuted("x", hello); err == nil {
		t.Fatal("expected conflicting definition")
	}
}

// TestCall_RedefineAfterReset checks that a name defined again after the
// registry is reset routes to the new definition, not a cached old route.
func TestCall_RedefineAfterReset(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)

	if _, err := DefinePermuted("greet", func(int, string) string { return "old" }); err != nil {
		t.Fatalf("DefinePermuted(old): %v", err)
	}
	if got, err := Call("greet", "x", 1); err != nil || got != "old" {
		t.Fatalf("Call before reset = (%v, %v), want old", got, err)
	}

	Registry().Reset()
	if _, err := DefinePermuted("greet", func(int, string) string { return "new" }); err != nil {
		t.Fatalf("DefinePermuted(new): %v", err)
	}
	if got, err := Call("greet", "x", 1); err != nil || got != "new" {
		t.Fatalf("Call after redefine = (%v, %v), want new", got, err)
	}
}

// TestRoute_Idempotent checks that repeated resolution of one signature
// returns the very same route, and that the cache holds one entry for it.
func TestRoute_Idempotent(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)
	if _, err := DefinePermuted("hello", hello); err != nil {
		t.Fatalf("DefinePermuted: %v", err)
	}

	ts := uref.TypesOf([]any{"s", 1, 1.0, true})
	r1, err := Route("hello", ts)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	r2, err := Route("hello", ts)
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if r1 != r2 {
		t.Fatal("repeated Route returned a different route")
	}
	if Cache().Len() != 1 {
		t.Fatalf("cache len = %d, want 1", Cache().Len())
	}
}

// TestCall_ConcurrentFirstTouch races first calls for several signatures.
func TestCall_ConcurrentFirstTouch(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)
	if _, err := DefinePermuted("hello", hello); err != nil {
		t.Fatalf("DefinePermuted: %v", err)
	}

	orders := [][]any{
		{true, 1, 2.5, "a"},
		{"a", 2.5, 1, true},
		{1, true, "a", 2.5},
	}
	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				got, err := Call("hello", orders[(i+id)%len(orders)]...)
				if err != nil || got != "hello(true, 1, 2.5, a)" {
					t.Errorf("Call = (%v, %v)", got, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	if Cache().Len() != len(orders) {
		t.Fatalf("cache len = %d, want %d", Cache().Len(), len(orders))
	}
}

func TestSetConfig_Rebuilds_Unpinned(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig(), nil)
	if _, err := DefinePermuted("hello", hello); err != nil {
		t.Fatalf("DefinePermuted: %v", err)
	}
	if _, err := Call("hello", 1, true, "s", 1.0); err != nil {
		t.Fatalf("Call: %v", err)
	}

	s1Reg := Registry()
	s1Cache := Cache()

	// change cfg -> registry migrated, cache rebuilt empty
	SetConfig(config.NewConfig(config.WithCache(strategy.LRU), config.WithCacheSize(8)))

	if Registry() == s1Reg {
		t.Fatalf("registry was not rebuilt on SetConfig (unpinned)")
	}
	if Cache() == s1Cache || Cache().Len() != 0 {
		t.Fatalf("cache was not rebuilt empty on SetConfig")
	}
	if _, ok := Registry().Lookup("hello"); !ok {
		t.Fatalf("operation not migrated to the rebuilt registry")
	}

	b.mu.Lock()
	gotCfg, prevCount := b.lastCfg, b.lastPrevCount
	b.mu.Unlock()
	if gotCfg.Cache != strategy.LRU || gotCfg.CacheSize != 8 {
		t.Fatalf("builder received wrong cfg: %+v", gotCfg)
	}
	if prevCount != 1 {
		t.Fatalf("builder saw prev registry with %d ops, want 1", prevCount)
	}
	if Config().Cache != strategy.LRU {
		t.Fatalf("Config() not updated")
	}
}

func TestSetRegistry_PinsRegistry_and_RebuildsCache(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig(), nil)

	custom := registry.New(config.DefaultConfig())
	cacheBefore := Cache()
	SetRegistry(custom)

	if !IsRegistryPinned() {
		t.Fatal("SetRegistry did not pin")
	}
	if Cache() == cacheBefore {
		t.Fatal("cache survived a registry swap")
	}

	SetConfig(config.NewConfig(config.WithPriorityRange(0, 10)))
	if Registry() != custom {
		t.Fatalf("pinned registry was rebuilt unexpectedly")
	}
}

func TestSetBuilder_Rebuilds_Only_Unpinned(t *testing.T) {
	a := &mockBuilder{}
	resetWithBuilder(t, a, config.DefaultConfig(), nil)

	PinRegistry()
	regBefore := Registry()

	b := &mockBuilder{}
	SetBuilder(b)

	if Builder() != apis.Builder(b) {
		t.Fatal("builder not swapped")
	}
	if Registry() != regBefore {
		t.Fatal("pinned registry was rebuilt after SetBuilder")
	}
	reg, cache, disp := b.counters()
	if reg != 0 || cache != 1 || disp != 1 {
		t.Fatalf("new builder counters = (%d,%d,%d), want (0,1,1)", reg, cache, disp)
	}

	UnpinRegistry()
	SetBuilder(b)
	if reg, _, _ := b.counters(); reg != 1 {
		t.Fatalf("unpinned registry not rebuilt by new builder: %d", reg)
	}
}

func TestSetExt_Rebuilds_Unpinned_and_PassesValue(t *testing.T) {
	b := &mockBuilder{}
	resetWithBuilder(t, b, config.DefaultConfig(), nil)

	type extCfg struct{ X int }
	SetExt(extCfg{X: 42})

	b.mu.Lock()
	got := b.lastExt
	b.mu.Unlock()
	if ec, ok := got.(extCfg); !ok || ec.X != 42 {
		t.Fatalf("builder did not receive ext properly: %#v", got)
	}
	if ec, ok := ExtAs[extCfg](); !ok || ec.X != 42 {
		t.Fatalf("ExtAs = (%#v, %v)", ec, ok)
	}
	if _, ok := ExtAs[string](); ok {
		t.Fatal("ExtAs with the wrong type should fail")
	}

	// Pin registry and ensure no registry rebuild on SetExt.
	PinRegistry()
	regBefore, _, _ := b.counters()
	SetExt(extCfg{X: 7})
	regAfter, _, _ := b.counters()
	if regAfter != regBefore {
		t.Fatalf("SetExt should not rebuild a pinned registry")
	}
}

func TestUnpin_Allows_Rebuild_After(t *testing.T) {
	resetWithBuilder(t, &mockBuilder{}, config.DefaultConfig(), nil)

	SetRegistry(Registry())
	reg1 := Registry()
	SetConfig(config.NewConfig(config.WithPriorityRange(0, 50)))
	if Registry() != reg1 {
		t.Fatalf("pinned registry should not rebuild on SetConfig")
	}

	UnpinRegistry()
	if IsRegistryPinned() {
		t.Fatal("UnpinRegistry did not unpin")
	}
	SetConfig(config.DefaultConfig())
	if Registry() == reg1 {
		t.Fatalf("registry should rebuild after UnpinRegistry+SetConfig")
	}
}

func TestCall_Concurrent_With_SetConfig(t *testing.T) {
	resetWithBuilder(t, builder.New(), config.DefaultConfig(), nil)
	if _, err := DefineOverloaded("fun",
		overload.MustFunc(0, func(args ...any) string { return strconv.Itoa(len(args)) }),
	); err != nil {
		t.Fatalf("DefineOverloaded: %v", err)
	}

	done := make(chan struct{})
	var wg sync.WaitGroup

	readers := runtime.GOMAXPROCS(0) * 4
	wg.Add(readers)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				got, err := Call("fun", j, "x")
				if err != nil || got != "2" {
					t.Errorf("Call = (%v, %v)", got, err)
					return
				}
			}
		}()
	}

	go func() {
		strats := []strategy.Strategy{strategy.Unbounded, strategy.LRU, strategy.TTL, strategy.None}
		for i := 0; i < 20; i++ {
			SetConfig(config.NewConfig(config.WithCache(strats[i%len(strats)])))
			time.Sleep(time.Millisecond)
		}
		close(done)
	}()

	wg.Wait()
	<-done
}
