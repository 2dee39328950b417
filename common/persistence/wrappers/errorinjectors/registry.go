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
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/atomic"

	"github.com/stashbase/stash/common/errors"
	"github.com/stashbase/stash/common/persistence"
)

// Operation identifies an intercepted session operation
type Operation int

// Intercepted operations
const (
	OperationFetch Operation = iota
	OperationSave

	numOperations
)

func (op Operation) String() string {
	switch op {
	case OperationFetch:
		return "fetch"
	case OperationSave:
		return "save"
	}
	return "unknown"
}

type delayFault struct {
	target persistence.Session
	delay  time.Duration
}

// FaultRegistry holds, per operation, at most one session armed to fail and
// at most one session armed to stall. A nil target means the operation runs
// normally. Arming a second session silently replaces the first, the slot is
// not a set.
//
// Sessions are matched by identity. Two sessions opened with identical
// parameters never trip each other's faults.
type FaultRegistry struct {
	mu       sync.Mutex
	clock    clockwork.Clock
	failures [numOperations]persistence.Session
	delays   [numOperations]delayFault
	induced  [numOperations]atomic.Int64
}

// NewFaultRegistry returns an empty registry on the real clock. Each test
// can own one, which keeps parallel tests independent of each other.
func NewFaultRegistry() *FaultRegistry {
	return NewFaultRegistryWithClock(clockwork.NewRealClock())
}

// NewFaultRegistryWithClock returns an empty registry sleeping through the
// given clock, so tests can fake injected latency
func NewFaultRegistryWithClock(clock clockwork.Clock) *FaultRegistry {
	return &FaultRegistry{
		clock: clock,
	}
}

// defaultRegistry serves the process-wide harness mode. Tests exercising it
// must not run in parallel with each other, the armed slot is shared state.
var defaultRegistry = NewFaultRegistry()

// DefaultRegistry returns the process-wide registry used by the package
// level Run helpers
func DefaultRegistry() *FaultRegistry {
	return defaultRegistry
}

// RunWithFailure arms op to fail for session, runs block synchronously, and
// disarms. The disarm runs on every exit path, a panicking block does not
// leave the registry armed for later tests.
func (r *FaultRegistry) RunWithFailure(op Operation, session persistence.Session, block func()) {
	r.armFailure(op, session)
	defer r.disarmFailure(op)
	block()
}

// RunWithFailingFetch makes Fetch fail with ErrInducedFailure on the given
// session for the duration of block
func (r *FaultRegistry) RunWithFailingFetch(session persistence.Session, block func()) {
	r.RunWithFailure(OperationFetch, session, block)
}

// RunWithFailingSave makes Save fail with ErrInducedFailure on the given
// session for the duration of block
func (r *FaultRegistry) RunWithFailingSave(session persistence.Session, block func()) {
	r.RunWithFailure(OperationSave, session, block)
}

// RunWithDelay arms op to stall for delay on the given session, runs block
// synchronously, and disarms on every exit path
func (r *FaultRegistry) RunWithDelay(op Operation, session persistence.Session, delay time.Duration, block func()) {
	r.armDelay(op, session, delay)
	defer r.disarmDelay(op)
	block()
}

func (r *FaultRegistry) armFailure(op Operation, session persistence.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = session
}

func (r *FaultRegistry) disarmFailure(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[op] = nil
}

func (r *FaultRegistry) armDelay(op Operation, session persistence.Session, delay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays[op] = delayFault{target: session, delay: delay}
}

func (r *FaultRegistry) disarmDelay(op Operation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.delays[op] = delayFault{}
}

// inducedError returns ErrInducedFailure when op is armed for exactly this
// session, identity comparison only
func (r *FaultRegistry) inducedError(op Operation, session persistence.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failures[op] != nil && r.failures[op] == session {
		r.induced[op].Inc()
		return errors.ErrInducedFailure
	}
	return nil
}

// InducedFaultCount returns how many times op has failed through this
// registry. Tests use it to assert that an armed block actually tripped.
func (r *FaultRegistry) InducedFaultCount(op Operation) int64 {
	return r.induced[op].Load()
}

func (r *FaultRegistry) inducedDelay(op Operation, session persistence.Session) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.delays[op].target != nil && r.delays[op].target == session {
		return r.delays[op].delay
	}
	return 0
}

func (r *FaultRegistry) sleep(delay time.Duration) {
	r.clock.Sleep(delay)
}

// RunWithFailingFetch runs block with Fetch failing on session, using the
// process-wide registry. See DefaultRegistry for the serial-test assumption.
func RunWithFailingFetch(session persistence.Session, block func()) {
	defaultRegistry.RunWithFailingFetch(session, block)
}

// RunWithFailingSave runs block with Save failing on session, using the
// process-wide registry. See DefaultRegistry for the serial-test assumption.
func RunWithFailingSave(session persistence.Session, block func()) {
	defaultRegistry.RunWithFailingSave(session, block)
}
