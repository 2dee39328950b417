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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeConfigFile(t, `
persistence:
  defaultStore: inmem
  enableMetrics: true
  faultInjection:
    enabled: true
    errorRate: 0.25
  stores:
    inmem:
      type: memory
    db:
      type: sql
      sql:
        pluginName: mysql
        connectAddr: 127.0.0.1:3306
        databaseName: stash
        user: stash
        password: secret
        maxConns: 10
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "inmem", cfg.Persistence.DefaultStore)
	assert.True(t, cfg.Persistence.EnableMetrics)
	assert.True(t, cfg.Persistence.FaultInjection.Enabled)
	assert.Equal(t, 0.25, cfg.Persistence.FaultInjection.ErrorRate)
	require.Contains(t, cfg.Persistence.Stores, "db")
	assert.Equal(t, "mysql", cfg.Persistence.Stores["db"].SQL.PluginName)
	assert.Equal(t, 10, cfg.Persistence.Stores["db"].SQL.MaxConns)
}

func TestLoadRejectsUnknownDefaultStore(t *testing.T) {
	path := writeConfigFile(t, `
persistence:
  defaultStore: missing
  stores:
    inmem:
      type: memory
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defaultStore")
}

func TestLoadRejectsUnknownStoreType(t *testing.T) {
	path := writeConfigFile(t, `
persistence:
  defaultStore: weird
  stores:
    weird:
      type: cassandra
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type")
}

func TestLoadRejectsSQLStoreWithoutSQLConfig(t *testing.T) {
	path := writeConfigFile(t, `
persistence:
  defaultStore: db
  stores:
    db:
      type: sql
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sql config is missing")
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfigFile(t, `
persistence:
  defaultStore: inmem
  stores:
    inmem:
      type: memory
  typo: true
`)

	_, err := Load(path)
	require.Error(t, err)
}
