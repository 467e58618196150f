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

package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"dirpx.dev/ovx/apis"
)

// ttlStore expires routes a fixed duration after they were stored.
// go-cache keys are strings, so entries are keyed by the interned id.
type ttlStore struct {
	c *gocache.Cache
}

func newTTL(ttl time.Duration) *ttlStore {
	return &ttlStore{c: gocache.New(ttl, janitorInterval(ttl))}
}

// janitorInterval bounds how long expired entries linger before being
// swept; Get already ignores them.
func janitorInterval(ttl time.Duration) time.Duration {
	if ttl < time.Minute {
		return time.Minute
	}
	return ttl
}

func (s *ttlStore) get(_ apis.Key, id string) (apis.Route, bool) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, false
	}
	return v.(apis.Route), true
}

func (s *ttlStore) put(_ apis.Key, id string, r apis.Route) {
	s.c.Set(id, r, gocache.DefaultExpiration)
}

func (s *ttlStore) len() int { return s.c.ItemCount() }
func (s *ttlStore) reset() { s.c.Flush() }
