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

	"github.com/stashbase/stash/common/errors"
	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/tag"
	"github.com/stashbase/stash/common/metrics"
	"github.com/stashbase/stash/common/persistence"
)

type sessionClient struct {
	session       persistence.Session
	registry      *FaultRegistry
	metricsClient metrics.Client
	errorRate     float64
	logger        log.Logger
}

var _ persistence.Session = (*sessionClient)(nil)

// NewSessionClient wraps a session with fault interception. The wrapper is
// what callers hold, so the registry is armed with the wrapper itself, not
// the underlying session. Induced failures short-circuit before any inner
// wrapper runs, so this client reports them to metrics itself.
func NewSessionClient(
	session persistence.Session,
	registry *FaultRegistry,
	metricsClient metrics.Client,
	errorRate float64,
	logger log.Logger,
) persistence.Session {
	return &sessionClient{
		session:       session,
		registry:      registry,
		metricsClient: metricsClient,
		errorRate:     errorRate,
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
	if err := c.intercept(OperationFetch, tag.StoreOperationFetch); err != nil {
		return nil, err
	}

	fakeErr := errors.GenerateFakeError(c.errorRate)

	var response *persistence.FetchResponse
	var persistenceErr error
	var forwardCall bool
	if forwardCall = errors.ShouldForwardCall(fakeErr); forwardCall {
		response, persistenceErr = c.session.Fetch(ctx, request)
	}

	if fakeErr != nil {
		c.logger.Error(msgInjectedFakeErr,
			tag.StoreOperationFetch,
			tag.Error(fakeErr),
			tag.Bool(forwardCall),
			tag.StoreError(persistenceErr),
		)
		return nil, fakeErr
	}
	return response, persistenceErr
}

func (c *sessionClient) Save(
	ctx context.Context,
	request *persistence.SaveRequest,
) (*persistence.SaveResponse, error) {
	if err := c.intercept(OperationSave, tag.StoreOperationSave); err != nil {
		return nil, err
	}

	fakeErr := errors.GenerateFakeError(c.errorRate)

	var response *persistence.SaveResponse
	var persistenceErr error
	var forwardCall bool
	if forwardCall = errors.ShouldForwardCall(fakeErr); forwardCall {
		response, persistenceErr = c.session.Save(ctx, request)
	}

	if fakeErr != nil {
		c.logger.Error(msgInjectedFakeErr,
			tag.StoreOperationSave,
			tag.Error(fakeErr),
			tag.Bool(forwardCall),
			tag.StoreError(persistenceErr),
		)
		return nil, fakeErr
	}
	return response, persistenceErr
}

func (c *sessionClient) Close() {
	c.session.Close()
}

// intercept applies armed faults for this session before the real call.
// Delay faults stall first, failure faults then short-circuit the call.
func (c *sessionClient) intercept(op Operation, opTag tag.Tag) error {
	if delay := c.registry.inducedDelay(op, c); delay > 0 {
		c.logger.Warn(msgInducedDelay,
			opTag,
			tag.InducedDelay(delay),
			tag.SessionID(c.session.GetName()),
		)
		c.registry.sleep(delay)
	}

	if err := c.registry.inducedError(op, c); err != nil {
		scope := c.metricsClient.Scope(op.metricsScope())
		scope.IncCounter(metrics.StoreRequests)
		scope.IncCounter(metrics.StoreInducedFailures)
		c.logger.Error(msgInducedErr,
			opTag,
			tag.Error(err),
			tag.SessionID(c.session.GetName()),
		)
		return err
	}
	return nil
}

func (op Operation) metricsScope() int {
	switch op {
	case OperationSave:
		return metrics.SessionSaveScope
	default:
		return metrics.SessionFetchScope
	}
}
