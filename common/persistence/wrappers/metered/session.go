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

package metered

import (
	"context"

	"github.com/stashbase/stash/common/errors"
	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/tag"
	"github.com/stashbase/stash/common/metrics"
	"github.com/stashbase/stash/common/persistence"
)

type sessionClient struct {
	session       persistence.Session
	metricsClient metrics.Client
	logger        log.Logger
}

var _ persistence.Session = (*sessionClient)(nil)

// NewSessionClient wraps a session with request, failure and latency metrics
// per operation
func NewSessionClient(
	session persistence.Session,
	metricsClient metrics.Client,
	logger log.Logger,
) persistence.Session {
	return &sessionClient{
		session:       session,
		metricsClient: metricsClient,
		logger:        logger,
	}
}

func (c *sessionClient) GetName() string {
	return c.session.GetName()
}

func (c *sessionClient) Fetch(
	ctx context.Context,
	request *persistence.FetchRequest,
) (*persistence.FetchResponse, error) {
	scope := c.metricsClient.Scope(metrics.SessionFetchScope)
	scope.IncCounter(metrics.StoreRequests)

	sw := scope.StartTimer(metrics.StoreLatency)
	response, err := c.session.Fetch(ctx, request)
	sw.Stop()

	if err != nil {
		c.recordError(scope, tag.StoreOperationFetch, err)
	}
	return response, err
}

func (c *sessionClient) Save(
	ctx context.Context,
	request *persistence.SaveRequest,
) (*persistence.SaveResponse, error) {
	scope := c.metricsClient.Scope(metrics.SessionSaveScope)
	scope.IncCounter(metrics.StoreRequests)

	sw := scope.StartTimer(metrics.StoreLatency)
	response, err := c.session.Save(ctx, request)
	sw.Stop()

	if err != nil {
		c.recordError(scope, tag.StoreOperationSave, err)
	}
	return response, err
}

func (c *sessionClient) Close() {
	c.session.Close()
}

// recordError counts harness-induced failures apart from real store errors
// so dashboards stay clean during fault-injection runs
func (c *sessionClient) recordError(scope metrics.Scope, opTag tag.Tag, err error) {
	if err == errors.ErrInducedFailure {
		scope.IncCounter(metrics.StoreInducedFailures)
		return
	}
	scope.IncCounter(metrics.StoreFailures)
	c.logger.Error("store operation failed", opTag, tag.Error(err))
}
