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

package dispatcher

import (
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/ovx/apis"
	"dirpx.dev/ovx/metrics"
	uref "dirpx.dev/ovx/utils/reflect"
)

// ErrUnknownOperation is returned when no operation is defined under a name.
var ErrUnknownOperation = errors.New("ovx(dispatcher): unknown operation")

// New constructs an apis.Dispatcher that looks operations up in reg and
// memoizes their routes in c. The returned dispatcher is safe for concurrent
// use provided reg and c are.
func New(cfg apis.Config, reg apis.Registry, c apis.Cache) apis.Dispatcher {
	return &dispatcher{
		reg: reg,
		c:   c,
		log: cfg.Log(),
		m:   cfg.Metrics,
	}
}

// dispatcher is an immutable front over a registry and a cache.
type dispatcher struct {
	reg apis.Registry
	c   apis.Cache
	log *zap.Logger
	m   *metrics.Metrics
}

// Route resolves op for argTypes. A cached route is returned as is; a miss
// runs the operation's resolution once and stores the outcome on success.
func (d *dispatcher) Route(name string, argTypes []reflect.Type) (apis.Route, error) {
	op, def, ok := d.reg.LookupID(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}
	sig, err := uref.Signature(argTypes)
	if err != nil {
		return nil, fmt.Errorf("ovx(dispatcher): %s: %w", name, err)
	}

	r, hit, err := d.c.Resolve(apis.Key{Op: name, Def: def, Sig: sig}, func() (apis.Route, error) {
		r, err := op.Route(argTypes)
		d.m.Resolved(name, op.Kind().String(), err)
		if err != nil {
			d.log.Debug("resolution failed",
				zap.String("op", name),
				zap.String("args", uref.Describe(argTypes)),
				zap.Error(err))
			return nil, err
		}
		d.log.Debug("route resolved",
			zap.String("op", name),
			zap.Stringer("kind", op.Kind()),
			zap.String("args", uref.Describe(argTypes)))
		return r, nil
	})
	d.m.Lookup(name, hit)
	return r, err
}

// Call routes args by their dynamic types and invokes the route.
func (d *dispatcher) Call(name string, args ...any) (any, error) {
	r, err := d.Route(name, uref.TypesOf(args))
	if err != nil {
		d.m.Called(name, err)
		return nil, err
	}
	out, err := r.Invoke(args)
	d.m.Called(name, err)
	return out, err
}
