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

package builder_test

import (
	"runtime"
	"sync"
	"testing"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/builder"
	"dirpx.dev/ovx/cache/strategy"
	"dirpx.dev/ovx/config"
	"dirpx.dev/ovx/overload"
	"dirpx.dev/ovx/permute"
	"dirpx.dev/ovx/registry"
	uref "dirpx.dev/ovx/utils/reflect"
)

func pick(n int) string { return "int" }

func family(t *testing.T, cfg apis.Config) apis.Operation {
	t.Helper()
	f, err := overload.New(cfg, "fun",
		overload.MustFunc(0, func(...any) string { return "any" }),
		overload.MustFunc(5, pick),
	)
	if err != nil {
		t.Fatalf("overload.New: %v", err)
	}
	return f
}

// TestBuildRegistry_Basic asserts that BuildRegistry returns a non-nil,
// working Registry that supports Define/Lookup/Entries/Count.
func TestBuildRegistry_Basic(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	// prev may be nil; this must still produce a valid registry.
	reg := b.BuildRegistry(cfg, nil, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	op := family(t, cfg)
	if err := reg.Define(op); err != nil {
		t.Fatalf("Define failed: %v", err)
	}
	if got, ok := reg.Lookup("fun"); !ok || got != op {
		t.Fatalf("Lookup mismatch: ok=%v", ok)
	}
	if c := reg.Count(); c != 1 {
		t.Fatalf("Count = %d, want 1", c)
	}
}

// TestBuildRegistry_MigratesPrev verifies that operations of a previous
// registry are carried over unchanged.
func TestBuildRegistry_MigratesPrev(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	prev := registry.New(cfg)
	hello, err := permute.Bind(cfg, "hello", func(int, string) {})
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	_ = prev.Define(hello)
	_ = prev.Define(family(t, cfg))

	next := b.BuildRegistry(cfg, prev, nil)
	if next.Count() != 2 {
		t.Fatalf("Count = %d, want 2", next.Count())
	}
	if got, ok := next.Lookup("hello"); !ok || got != apis.Operation(hello) {
		t.Fatal("hello not migrated as the same instance")
	}

	// The copy is independent of prev.
	prev.Reset()
	if next.Count() != 2 {
		t.Fatal("reset of prev leaked into next")
	}
}

// TestBuildCache_FollowsStrategy checks that the built cache honours
// cfg.Cache: None never retains, the default does.
func TestBuildCache_FollowsStrategy(t *testing.T) {
	b := builder.New()

	for _, tc := range []struct {
		s    strategy.Strategy
		want int
	}{
		{strategy.Unbounded, 1},
		{strategy.LRU, 1},
		{strategy.TTL, 1},
		{strategy.None, 0},
	} {
		cfg := config.NewConfig(config.WithCache(tc.s))
		reg := b.BuildRegistry(cfg, nil, nil)
		_ = reg.Define(family(t, cfg))
		c := b.BuildCache(cfg, nil)
		d := b.BuildDispatcher(cfg, reg, c, nil)

		if _, err := d.Call("fun", 1); err != nil {
			t.Fatalf("%s: call: %v", tc.s, err)
		}
		if c.Len() != tc.want {
			t.Fatalf("%s: Len = %d, want %d", tc.s, c.Len(), tc.want)
		}
	}
}

// TestBuildDispatcher_Concurrency_Smoke hammers a built dispatcher in
// parallel to ensure Call is safe for concurrent use.
func TestBuildDispatcher_Concurrency_Smoke(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	reg := b.BuildRegistry(cfg, nil, nil)
	_ = reg.Define(family(t, cfg))
	d := b.BuildDispatcher(cfg, reg, b.BuildCache(cfg, nil), nil)

	args := [][]any{{1}, {"s"}, {}, {1, 2}, {nil}}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				a := args[(i+id)%len(args)]
				got, err := d.Call("fun", a...)
				if err != nil {
					t.Errorf("call %s: %v", uref.Describe(uref.TypesOf(a)), err)
					return
				}
				want := "any"
				if len(a) == 1 && a[0] == 1 {
					want = "int"
				}
				if got != want {
					t.Errorf("call %v: got %v want %s", a, got, want)
					return
				}
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
