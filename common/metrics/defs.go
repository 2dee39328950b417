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

// Scope index for store operations
const (
	SessionFetchScope = iota
	SessionSaveScope
	StoreOpenSessionScope

	numScopes
)

// Metric index within a scope
const (
	StoreRequests = iota
	StoreFailures
	StoreInducedFailures
	StoreLatency

	numMetrics
)

// MetricType describes the datatype of a metric
type MetricType int

// MetricTypes which are supported
const (
	Counter MetricType = iota
	Timer
)

type metricDefinition struct {
	metricType MetricType
	metricName string
}

var scopeNames = map[int]string{
	SessionFetchScope:     "FetchRecord",
	SessionSaveScope:      "SaveRecord",
	StoreOpenSessionScope: "OpenSession",
}

var metricDefs = map[int]metricDefinition{
	StoreRequests:        {metricType: Counter, metricName: "store_requests"},
	StoreFailures:        {metricType: Counter, metricName: "store_errors"},
	StoreInducedFailures: {metricType: Counter, metricName: "store_errors_induced"},
	StoreLatency:         {metricType: Timer, metricName: "store_latency"},
}
