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
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashbase/stash/common/log/testlogger"
	"github.com/stashbase/stash/common/metrics"
	"github.com/stashbase/stash/common/persistence"
	"github.com/stashbase/stash/common/persistence/memory"
)

func TestDelayedFetchStallsUntilClockAdvances(t *testing.T) {
	fakeClock := clockwork.NewFakeClock()
	registry := NewFaultRegistryWithClock(fakeClock)
	logger := testlogger.New(t)
	store := memory.NewStore(logger)
	t.Cleanup(store.Close)

	session, err := store.OpenSession(context.Background(), &persistence.OpenSessionRequest{})
	require.NoError(t, err)
	wrapped := NewSessionClient(session, registry, metrics.NewNoopClient(), 0, logger)
	saveTestRecord(t, wrapped, "record-1")

	const delay = time.Minute
	registry.RunWithDelay(OperationFetch, wrapped, delay, func() {
		done := make(chan error, 1)
		go func() {
			_, err := wrapped.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
			done <- err
		}()

		// the fetch is parked in the injected sleep until the clock moves
		fakeClock.BlockUntil(1)
		select {
		case <-done:
			t.Fatal("fetch returned before the injected delay elapsed")
		default:
		}

		fakeClock.Advance(delay)
		require.NoError(t, <-done)
	})
}

func TestDelayOnlyAffectsArmedSession(t *testing.T) {
	fakeClock := clockwork.NewFakeClock()
	registry := NewFaultRegistryWithClock(fakeClock)
	sessionA, sessionB := setUpMemorySessions(t, registry)
	saveTestRecord(t, sessionB, "record-1")

	registry.RunWithDelay(OperationFetch, sessionA, time.Minute, func() {
		// the unarmed session never reaches the fake clock
		_, err := sessionB.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
		assert.NoError(t, err)
	})
}
