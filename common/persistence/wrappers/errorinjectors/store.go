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
	"context"

	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/tag"
	"github.com/stashbase/stash/common/metrics"
	"github.com/stashbase/stash/common/persistence"
)

type storeClient struct {
	store         persistence.Store
	registry      *FaultRegistry
	metricsClient metrics.Client
	errorRate     float64
	logger        log.Logger
}

var _ persistence.Store = (*storeClient)(nil)

// NewStoreClient wraps a store so every session it opens is returned behind
// a fault-intercepting session client
func NewStoreClient(
	store persistence.Store,
	registry *FaultRegistry,
	metricsClient metrics.Client,
	errorRate float64,
	logger log.Logger,
) persistence.Store {
	return &storeClient{
		store:         store,
		registry:      registry,
		metricsClient: metricsClient,
		errorRate:     errorRate,
		logger:        logger.WithTags(tag.StoreName(store.GetName())),
	}
}

func (c *storeClient) GetName() string {
	return c.store.GetName()
}

func (c *storeClient) OpenSession(
	ctx context.Context,
	request *persistence.OpenSessionRequest,
) (persistence.Session, error) {
	session, err := c.store.OpenSession(ctx, request)
	if err != nil {
		return nil, err
	}
	return NewSessionClient(session, c.registry, c.metricsClient, c.errorRate, c.logger), nil
}

func (c *storeClient) Close() {
	c.store.Close()
}
