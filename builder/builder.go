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

package builder

import (
	"go.uber.org/zap"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/cache"
	"dirpx.dev/ovx/dispatcher"
	"dirpx.dev/ovx/registry"
)

// New creates and returns a new instance of an apis.Builder.
func New() apis.Builder {
	return &builder{}
}

// builder is an empty struct to be used as a receiver for builder methods.
type builder struct{}

// BuildRegistry builds and returns a new apis.Registry. If a pre-existing
// registry is provided, its operations are defined in the new one.
func (b *builder) BuildRegistry(cfg apis.Config, preg apis.Registry, _ any) apis.Registry {
	nreg := registry.New(cfg)
	if preg != nil {
		for _, op := range preg.Entries() {
			if err := nreg.Define(op); err != nil {
				cfg.Log().Warn("operation not migrated", zap.String("op", op.Name()), zap.Error(err))
			}
		}
	}
	return nreg
}

// BuildCache returns an empty cache for cfg.Cache.
func (b *builder) BuildCache(cfg apis.Config, _ any) apis.Cache {
	return cache.New(cfg)
}

// BuildDispatcher wires reg and c into a dispatcher.
func (b *builder) BuildDispatcher(cfg apis.Config, reg apis.Registry, c apis.Cache, _ any) apis.Dispatcher {
	return dispatcher.New(cfg, reg, c)
}
