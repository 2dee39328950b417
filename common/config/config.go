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

package config

import (
	"fmt"
	"time"

	"go.uber.org/multierr"
)

const (
	// StoreTypeMemory is the in-process map backed store
	StoreTypeMemory = "memory"
	// StoreTypeSQL is the sqlx backed store
	StoreTypeSQL = "sql"
)

type (
	// Config contains the configuration for the stash library
	Config struct {
		// Persistence contains the configuration for stores and wrappers
		Persistence Persistence `yaml:"persistence"`
	}

	// Persistence contains the configuration for stores and the wrapper chain
	Persistence struct {
		// DefaultStore is the name of the store the factory builds
		DefaultStore string `yaml:"defaultStore" validate:"nonzero"`
		// Stores is the set of store definitions keyed by name
		Stores map[string]Store `yaml:"stores" validate:"min=1"`
		// FaultInjection enables the test-time fault wrapper
		FaultInjection FaultInjection `yaml:"faultInjection"`
		// EnableMetrics wraps sessions with the metered client
		EnableMetrics bool `yaml:"enableMetrics"`
	}

	// Store is the configuration of a single store
	Store struct {
		// Type is one of StoreTypeMemory or StoreTypeSQL
		Type string `yaml:"type" validate:"nonzero"`
		// SQL is required when Type is StoreTypeSQL
		SQL *SQL `yaml:"sql"`
	}

	// SQL is the configuration for connecting to a SQL backed store
	SQL struct {
		// PluginName is the name of the registered SQL plugin, mysql or postgres
		PluginName string `yaml:"pluginName" validate:"nonzero"`
		// ConnectAddr is the remote addr of the database
		ConnectAddr string `yaml:"connectAddr" validate:"nonzero"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `yaml:"databaseName" validate:"nonzero"`
		// User is the username to be used for the connection
		User string `yaml:"user"`
		// Password is the password corresponding to the user name
		Password string `yaml:"password"`
		// MaxConns the max number of connections to this datastore
		MaxConns int `yaml:"maxConns"`
		// MaxIdleConns is the max number of idle connections to this datastore
		MaxIdleConns int `yaml:"maxIdleConns"`
		// MaxConnLifetime is the maximum time a connection can be alive
		MaxConnLifetime time.Duration `yaml:"maxConnLifetime"`
	}

	// FaultInjection is the configuration of the fault wrapper. Error rate
	// based injection is for chaos style runs, the per-session arming API in
	// the errorinjectors package does not need configuration.
	FaultInjection struct {
		// Enabled installs the fault wrapper around the default store
		Enabled bool `yaml:"enabled"`
		// ErrorRate is the probability in [0,1] of a random fake error per call
		ErrorRate float64 `yaml:"errorRate" validate:"min=0,max=1"`
	}
)

// Validate validates semantics the struct tags cannot express. All
// violations are reported at once rather than one per load attempt.
func (c *Config) Validate() error {
	p := &c.Persistence
	var errs error
	if _, ok := p.Stores[p.DefaultStore]; !ok {
		errs = multierr.Append(errs, fmt.Errorf("persistence config: defaultStore %q is not defined", p.DefaultStore))
	}
	for name, store := range p.Stores {
		switch store.Type {
		case StoreTypeMemory:
		case StoreTypeSQL:
			if store.SQL == nil {
				errs = multierr.Append(errs, fmt.Errorf("persistence config: store %q is of type sql but sql config is missing", name))
			}
		default:
			errs = multierr.Append(errs, fmt.Errorf("persistence config: store %q has unknown type %q", name, store.Type))
		}
	}
	return errs
}
