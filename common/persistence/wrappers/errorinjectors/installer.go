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

package errorinjectors

import (
	"sync"

	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/tag"
	"github.com/stashbase/stash/common/metrics"
	"github.com/stashbase/stash/common/persistence"
)

var installs = struct {
	sync.Mutex
	installed map[string]persistence.Store
}{
	installed: make(map[string]persistence.Store),
}

// InstallSessionFaults wraps store with fault interception exactly once per
// token for the process lifetime. Repeated calls with the same token return
// the wrapper created by the first call, the store is never wrapped twice.
// The check-and-set is mutex guarded, concurrent first use installs once.
func InstallSessionFaults(
	token string,
	store persistence.Store,
	registry *FaultRegistry,
	metricsClient metrics.Client,
	errorRate float64,
	logger log.Logger,
) persistence.Store {
	installs.Lock()
	defer installs.Unlock()

	if wrapped, ok := installs.installed[token]; ok {
		return wrapped
	}

	logger.Info("installing session fault interception",
		tag.FaultToken(token),
		tag.StoreName(store.GetName()),
		tag.ErrorRate(errorRate),
	)
	wrapped := NewStoreClient(store, registry, metricsClient, errorRate, logger.WithTags(tag.FaultToken(token)))
	installs.installed[token] = wrapped
	return wrapped
}

// UninstallSessionFaults forgets the wrapper installed under token so a
// later install can wrap a fresh store. Intended for test teardown.
func UninstallSessionFaults(token string) {
	installs.Lock()
	defer installs.Unlock()
	delete(installs.installed, token)
}
