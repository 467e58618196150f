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

package config

import (
	"time"

	"go.uber.org/zap"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/cache/strategy"
	"dirpx.dev/ovx/metrics"
)

const (
	// DefaultMinPriority is the lowest priority level.
	DefaultMinPriority = 0
	// DefaultMaxPriority is the highest priority level; selection starts here.
	DefaultMaxPriority = 100
	// DefaultMatch pairs arguments with slots by identical type only.
	DefaultMatch = apis.MatchExact
	// DefaultRejectAmbiguous turns overlapping same-level candidates into
	// a registration error.
	DefaultRejectAmbiguous = true
	// DefaultCache keeps resolved routes for the process lifetime.
	DefaultCache = strategy.Unbounded
	// DefaultCacheSize bounds the LRU backend.
	DefaultCacheSize = 1024
	// DefaultCacheTTL is the entry lifetime of the TTL backend.
	DefaultCacheTTL = 10 * time.Minute
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Keep the bounds usable.
	if cfg.MinPriority > cfg.MaxPriority {
		cfg.MinPriority, cfg.MaxPriority = DefaultMinPriority, DefaultMaxPriority
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MinPriority:     DefaultMinPriority,
		MaxPriority:     DefaultMaxPriority,
		Match:           DefaultMatch,
		RejectAmbiguous: DefaultRejectAmbiguous,
		Cache:           DefaultCache,
		CacheSize:       DefaultCacheSize,
		CacheTTL:        DefaultCacheTTL,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithPriorityRange sets the inclusive priority bounds.
// An inverted range resets both bounds to the defaults.
func WithPriorityRange(min, max int) Option {
	return func(c *apis.Config) {
		c.MinPriority = min
		c.MaxPriority = max
	}
}

// WithMatch sets the permutation match mode.
func WithMatch(m apis.MatchMode) Option {
	return func(c *apis.Config) {
		c.Match = m
	}
}

// WithRejectAmbiguous sets the RejectAmbiguous option.
func WithRejectAmbiguous(reject bool) Option {
	return func(c *apis.Config) {
		c.RejectAmbiguous = reject
	}
}

// WithCache selects the cache backend.
func WithCache(s strategy.Strategy) Option {
	return func(c *apis.Config) {
		c.Cache = s
	}
}

// WithCacheSize sets the LRU bound. Non-positive values reset to the default.
func WithCacheSize(n int) Option {
	return func(c *apis.Config) {
		c.CacheSize = n
	}
}

// WithCacheTTL sets the TTL entry lifetime. Non-positive values reset to the default.
func WithCacheTTL(d time.Duration) Option {
	return func(c *apis.Config) {
		c.CacheTTL = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		c.Logger = l
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *apis.Config) {
		c.Metrics = m
	}
}
