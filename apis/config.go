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
	"time"

	"go.uber.org/zap"

	"dirpx.dev/ovx/cache/strategy"
	"dirpx.dev/ovx/metrics"
)

// Config carries read-only routing knobs shared by matchers, selectors and caches.
// It is passed by value and should be treated as immutable by implementations.
type Config struct {
	// MinPriority is the lowest priority level a candidate may be registered at.
	MinPriority int

	// MaxPriority is the highest priority level; selection starts here.
	MaxPriority int

	// Match selects how argument types are matched against slot types
	// when reordering arguments.
	Match MatchMode

	// RejectAmbiguous makes registration fail when two candidates at the same
	// priority level could both accept some argument-type signature.
	RejectAmbiguous bool

	// Cache selects the resolution cache backend.
	Cache strategy.Strategy

	// CacheSize bounds the number of entries for strategy.LRU.
	CacheSize int

	// CacheTTL is the entry lifetime for strategy.TTL.
	CacheTTL time.Duration

	// Logger receives debug/warn events. Nil means no logging.
	Logger *zap.Logger

	// Metrics receives resolution and cache counters. Nil disables metrics.
	Metrics *metrics.Metrics
}

// Log returns cfg.Logger, or a no-op logger when none is configured.
func (c Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// InRange reports whether p lies in [MinPriority, MaxPriority].
func (c Config) InRange(p int) bool {
	return p >= c.MinPriority && p <= c.MaxPriority
}
