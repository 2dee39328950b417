// Copyright (c) 2024 Stashbase, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package client

import (
	"fmt"

	"github.com/stashbase/stash/common/config"
	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/tag"
	"github.com/stashbase/stash/common/metrics"
	"github.com/stashbase/stash/common/persistence"
	"github.com/stashbase/stash/common/persistence/memory"
	"github.com/stashbase/stash/common/persistence/sql"
	"github.com/stashbase/stash/common/persistence/wrappers/errorinjectors"
	"github.com/stashbase/stash/common/persistence/wrappers/metered"
)

// Factory assembles the configured store behind the wrapper chain: base
// store, then metrics, then fault interception outermost. Fault arming
// matches the session handle the caller holds by identity, so the fault
// wrapper must be the one handed out. Induced failures never reach the
// inner metered layer, the fault wrapper counts them itself.
type Factory struct {
	cfg           *config.Persistence
	metricsClient metrics.Client
	registry      *errorinjectors.FaultRegistry
	logger        log.Logger
}

// NewFactory returns a factory over the given persistence configuration.
// A nil registry falls back to the process-wide one.
func NewFactory(
	cfg *config.Persistence,
	metricsClient metrics.Client,
	registry *errorinjectors.FaultRegistry,
	logger log.Logger,
) *Factory {
	if registry == nil {
		registry = errorinjectors.DefaultRegistry()
	}
	return &Factory{
		cfg:           cfg,
		metricsClient: metricsClient,
		registry:      registry,
		logger:        logger,
	}
}

// NewStore builds the default store with the configured wrappers. When fault
// injection is enabled the wrap goes through the one-time installer keyed by
// the store name, so building the factory twice never stacks two fault
// wrappers around the same store.
func (f *Factory) NewStore() (persistence.Store, error) {
	storeCfg, ok := f.cfg.Stores[f.cfg.DefaultStore]
	if !ok {
		return nil, fmt.Errorf("default store %q is not configured", f.cfg.DefaultStore)
	}

	store, err := f.newBaseStore(storeCfg)
	if err != nil {
		return nil, err
	}

	if f.cfg.EnableMetrics {
		store = metered.NewStoreClient(store, f.metricsClient, f.logger)
	}
	if f.cfg.FaultInjection.Enabled {
		store = errorinjectors.InstallSessionFaults(
			f.cfg.DefaultStore,
			store,
			f.registry,
			f.metricsClient,
			f.cfg.FaultInjection.ErrorRate,
			f.logger,
		)
	}
	return store, nil
}

func (f *Factory) newBaseStore(storeCfg config.Store) (persistence.Store, error) {
	switch storeCfg.Type {
	case config.StoreTypeMemory:
		return memory.NewStore(f.logger), nil
	case config.StoreTypeSQL:
		return sql.NewStore(*storeCfg.SQL, f.logger)
	default:
		f.logger.Error("unknown store type", tag.StoreType(storeCfg.Type))
		return nil, fmt.Errorf("unknown store type %q", storeCfg.Type)
	}
}
