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

package metrics

import (
	"time"

	"github.com/uber-go/tally"
)

type (
	// Client is the interface used to report metrics tally
	Client interface {
		// Scope returns an internal scope that can be used to add additional
		// information to metrics
		Scope(scope int) Scope
	}

	// Scope is an interface for metric emission within a pre-defined scope
	Scope interface {
		// IncCounter increments a counter metric
		IncCounter(counter int)
		// RecordTimer records a timer metric
		RecordTimer(timer int, d time.Duration)
		// StartTimer starts a timer for the given metric, the returned
		// Stopwatch should be stopped when the operation completes
		StartTimer(timer int) tally.Stopwatch
	}
)

type clientImpl struct {
	childScopes map[int]tally.Scope
}

type scopeImpl struct {
	scope tally.Scope
}

// NewClient creates and returns a new instance of a metrics Client rooted at
// the given tally scope
func NewClient(scope tally.Scope) Client {
	childScopes := make(map[int]tally.Scope, numScopes)
	for idx, name := range scopeNames {
		childScopes[idx] = scope.Tagged(map[string]string{"operation": name})
	}
	return &clientImpl{
		childScopes: childScopes,
	}
}

// NewNoopClient returns a client which drops all metrics
func NewNoopClient() Client {
	return NewClient(tally.NoopScope)
}

func (c *clientImpl) Scope(scope int) Scope {
	return &scopeImpl{
		scope: c.childScopes[scope],
	}
}

func (s *scopeImpl) IncCounter(counter int) {
	name := metricDefs[counter].metricName
	s.scope.Counter(name).Inc(1)
}

func (s *scopeImpl) RecordTimer(timer int, d time.Duration) {
	name := metricDefs[timer].metricName
	s.scope.Timer(name).Record(d)
}

func (s *scopeImpl) StartTimer(timer int) tally.Stopwatch {
	name := metricDefs[timer].metricName
	return s.scope.Timer(name).Start()
}
