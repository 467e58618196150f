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
	lru "github.com/hashicorp/golang-lru/v2"

	"dirpx.dev/ovx/apis"
)

// lruStore keeps at most size routes.
type lruStore struct {
	c *lru.Cache[apis.Key, apis.Route]
}

func newLRU(size int) *lruStore {
	c, err := lru.New[apis.Key, apis.Route](size)
	if err != nil {
		// lru.New fails only for size <= 0, which New rules out.
		panic(err)
	}
	return &lruStore{c: c}
}

func (s *lruStore) get(k apis.Key, _ string) (apis.Route, bool) { return s.c.Get(k) }
func (s *lruStore) put(k apis.Key, _ string, r apis.Route) { s.c.Add(k, r) }
func (s *lruStore) len() int { return s.c.Len() }
func (s *lruStore) reset() { s.c.Purge() }
