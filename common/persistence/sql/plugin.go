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

package sql

import (
	"fmt"
	"sort"
	"sync"

	"github.com/stashbase/stash/common/config"
)

// Plugin defines the behavior needed to connect through a specific SQL driver
type Plugin interface {
	DriverName() string
	BuildDSN(cfg *config.SQL) string
}

var (
	pluginsMu sync.Mutex
	plugins   = map[string]Plugin{}
)

// RegisterPlugin will register a SQL plugin, existing plugin names cannot be
// registered twice
func RegisterPlugin(pluginName string, plugin Plugin) {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	if _, ok := plugins[pluginName]; ok {
		panic(fmt.Sprintf("plugin %v already registered", pluginName))
	}
	plugins[pluginName] = plugin
}

// PluginNames returns the sorted list of registered plugin names
func PluginNames() []string {
	pluginsMu.Lock()
	defer pluginsMu.Unlock()
	names := make([]string, 0, len(plugins))
	for name := range plugins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func lookupPlugin(pluginName string) (Plugin, error) {
	pluginsMu.Lock()
	plugin, ok := plugins[pluginName]
	pluginsMu.Unlock()
	if !ok {
		return nil, fmt.Errorf("not supported SQL plugin %v, only supported: %v", pluginName, PluginNames())
	}
	return plugin, nil
}
