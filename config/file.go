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
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/cache/strategy"
)

// ErrInvalidBounds is returned when a file declares min > max.
var ErrInvalidBounds = errors.New("ovx(config): priority min exceeds max")

// File is the YAML shape of a configuration file:
//
//	priority:
//	  min: 0
//	  max: 100
//	match: exact
//	reject_ambiguous: true
//	cache:
//	  strategy: lru
//	  size: 512
//	  ttl: 5m
//	log:
//	  env: dev
//	  level: debug
//
// Omitted fields keep their defaults.
type File struct {
	Priority *struct {
		Min *int `yaml:"min"`
		Max *int `yaml:"max"`
	} `yaml:"priority"`
	Match           *apis.MatchMode `yaml:"match"`
	RejectAmbiguous *bool           `yaml:"reject_ambiguous"`
	Cache           *struct {
		Strategy *strategy.Strategy `yaml:"strategy"`
		Size     int                `yaml:"size"`
		TTL      time.Duration      `yaml:"ttl"`
	} `yaml:"cache"`
	Log *LogConfig `yaml:"log"`
}

// Load decodes a YAML configuration from r and applies it over the defaults.
// extra options run after the file's settings.
func Load(r io.Reader, extra ...Option) (apis.Config, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return apis.Config{}, fmt.Errorf("ovx(config): decode: %w", err)
	}
	opts, err := f.Options()
	if err != nil {
		return apis.Config{}, err
	}
	return NewConfig(append(opts, extra...)...), nil
}

// LoadFile is Load over the named file.
func LoadFile(path string, extra ...Option) (apis.Config, error) {
	fh, err := os.Open(path)
	if err != nil {
		return apis.Config{}, fmt.Errorf("ovx(config): %w", err)
	}
	defer fh.Close()
	return Load(fh, extra...)
}

// Options converts the file into functional options.
func (f File) Options() ([]Option, error) {
	var opts []Option
	if f.Priority != nil {
		min, max := DefaultMinPriority, DefaultMaxPriority
		if f.Priority.Min != nil {
			min = *f.Priority.Min
		}
		if f.Priority.Max != nil {
			max = *f.Priority.Max
		}
		if min > max {
			return nil, fmt.Errorf("%w: min=%d max=%d", ErrInvalidBounds, min, max)
		}
		opts = append(opts, WithPriorityRange(min, max))
	}
	if f.Match != nil {
		opts = append(opts, WithMatch(*f.Match))
	}
	if f.RejectAmbiguous != nil {
		opts = append(opts, WithRejectAmbiguous(*f.RejectAmbiguous))
	}
	if f.Cache != nil {
		if f.Cache.Strategy != nil {
			opts = append(opts, WithCache(*f.Cache.Strategy))
		}
		if f.Cache.Size != 0 {
			opts = append(opts, WithCacheSize(f.Cache.Size))
		}
		if f.Cache.TTL != 0 {
			opts = append(opts, WithCacheTTL(f.Cache.TTL))
		}
	}
	if f.Log != nil {
		l, err := f.Log.Build()
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithLogger(l))
	}
	return opts, nil
}
