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

// Package cache memoizes routes per (operation, signature).
//
// Every backend shares the same front: a read of the store, then a
// singleflight group so that concurrent first calls for one key run the
// resolution once and all observe the same route. Failed resolutions are
// handed to every waiter and never stored.
package cache

import (
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/cache/strategy"
	"dirpx.dev/ovx/config"
)

// store is the retention backend behind the compute-once front.
type store interface {
	get(k apis.Key, id string) (apis.Route, bool)
	put(k apis.Key, id string, r apis.Route)
	len() int
	reset()
}

// New builds the cache selected by cfg.Cache. Unknown strategies fall back
// to Unbounded.
func New(cfg apis.Config) apis.Cache {
	c := &cache{}
	switch cfg.Cache {
	case strategy.LRU:
		size := cfg.CacheSize
		if size <= 0 {
			size = config.DefaultCacheSize
		}
		c.s = newLRU(size)
	case strategy.TTL:
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = config.DefaultCacheTTL
		}
		c.s = newTTL(ttl)
	case strategy.None:
		c.s = noStore{}
	default:
		c.s = &mapStore{}
	}
	return c
}

type cache struct {
	s  store
	sf singleflight.Group

	// sigs interns signature types to small ids for string-keyed backends
	// and for singleflight.
	sigs sync.Map // map[reflect.Type]string
	next atomic.Uint64
}

// Ensure cache implements apis.Cache.
var _ apis.Cache = (*cache)(nil)

type flight struct {
	r   apis.Route
	hit bool
}

// Resolve returns the stored route for key or computes it once.
func (c *cache) Resolve(key apis.Key, compute func() (apis.Route, error)) (apis.Route, bool, error) {
	id := c.id(key)
	if r, ok := c.s.get(key, id); ok {
		return r, true, nil
	}

	// ran is only set by the goroutine executing the flight. Callers that
	// waited on it did not compute anything and report a hit.
	ran := false
	v, err, _ := c.sf.Do(id, func() (any, error) {
		ran = true
		// Another flight may have stored the route since the first read.
		if r, ok := c.s.get(key, id); ok {
			return flight{r: r, hit: true}, nil
		}
		r, err := compute()
		if err != nil {
			return nil, err
		}
		c.s.put(key, id, r)
		return flight{r: r}, nil
	})
	if err != nil {
		return nil, false, err
	}
	f := v.(flight)
	return f.r, f.hit || !ran, nil
}

// Len returns the number of stored routes.
func (c *cache) Len() int { return c.s.len() }

// Reset drops every stored route. Signature ids are kept.
func (c *cache) Reset() { c.s.reset() }

// id returns "op#def#n" where n is the interned id of key.Sig.
func (c *cache) id(key apis.Key) string {
	prefix := key.Op + "#" + strconv.FormatUint(key.Def, 10) + "#"
	if v, ok := c.sigs.Load(key.Sig); ok {
		return prefix + v.(string)
	}
	n := strconv.FormatUint(c.next.Add(1), 10)
	v, _ := c.sigs.LoadOrStore(key.Sig, n)
	return prefix + v.(string)
}

// mapStore keeps every route for the life of the process.
type mapStore struct {
	m sync.Map // map[apis.Key]apis.Route
	n atomic.Int64
}

func (s *mapStore) get(k apis.Key, _ string) (apis.Route, bool) {
	if v, ok := s.m.Load(k); ok {
		return v.(apis.Route), true
	}
	return nil, false
}

func (s *mapStore) put(k apis.Key, _ string, r apis.Route) {
	if _, loaded := s.m.LoadOrStore(k, r); !loaded {
		s.n.Add(1)
	}
}

func (s *mapStore) len() int { return int(s.n.Load()) }

func (s *mapStore) reset() {
	s.m.Clear()
	s.n.Store(0)
}

// noStore retains nothing.
type noStore struct{}

func (noStore) get(apis.Key, string) (apis.Route, bool) { return nil, false }
func (noStore) put(apis.Key, string, apis.Route) {}
func (noStore) len() int { return 0 }
func (noStore) reset() {}
