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
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally"

	"github.com/stashbase/stash/common/errors"
	"github.com/stashbase/stash/common/log/testlogger"
	"github.com/stashbase/stash/common/metrics"
	"github.com/stashbase/stash/common/persistence"
	"github.com/stashbase/stash/common/persistence/mocks"
)

func counterValue(t *testing.T, scope tally.TestScope, name string, operation string) int64 {
	t.Helper()
	var total int64
	for _, counter := range scope.Snapshot().Counters() {
		if counter.Name() == name && counter.Tags()["operation"] == operation {
			total += counter.Value()
		}
	}
	return total
}

func setUpMeteredSession(t *testing.T) (*mocks.MockSession, persistence.Session, tally.TestScope) {
	ctrl := gomock.NewController(t)
	mockSession := mocks.NewMockSession(ctrl)
	testScope := tally.NewTestScope("", nil)
	wrapped := NewSessionClient(mockSession, metrics.NewClient(testScope), testlogger.New(t))
	return mockSession, wrapped, testScope
}

func TestFetchEmitsRequestAndLatency(t *testing.T) {
	mockSession, wrapped, testScope := setUpMeteredSession(t)
	mockSession.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(&persistence.FetchResponse{}, nil)

	_, err := wrapped.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
	require.NoError(t, err)

	assert.Equal(t, int64(1), counterValue(t, testScope, "store_requests", "FetchRecord"))
	assert.Equal(t, int64(0), counterValue(t, testScope, "store_errors", "FetchRecord"))
}

func TestSaveErrorCountsAsFailure(t *testing.T) {
	mockSession, wrapped, testScope := setUpMeteredSession(t)
	mockSession.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		Return(nil, persistence.NewConditionFailedError("record-1", 1))

	_, err := wrapped.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Revision: 1},
	})
	require.Error(t, err)

	assert.Equal(t, int64(1), counterValue(t, testScope, "store_requests", "SaveRecord"))
	assert.Equal(t, int64(1), counterValue(t, testScope, "store_errors", "SaveRecord"))
	assert.Equal(t, int64(0), counterValue(t, testScope, "store_errors_induced", "SaveRecord"))
}

func TestInducedFailureCountsSeparately(t *testing.T) {
	mockSession, wrapped, testScope := setUpMeteredSession(t)
	mockSession.EXPECT().
		Fetch(gomock.Any(), gomock.Any()).
		Return(nil, errors.ErrInducedFailure)

	_, err := wrapped.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
	require.Equal(t, errors.ErrInducedFailure, err)

	assert.Equal(t, int64(1), counterValue(t, testScope, "store_errors_induced", "FetchRecord"))
	assert.Equal(t, int64(0), counterValue(t, testScope, "store_errors", "FetchRecord"))
}

func TestOpenSessionIsMetered(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)
	mockSession := mocks.NewMockSession(ctrl)
	testScope := tally.NewTestScope("", nil)
	wrapped := NewStoreClient(mockStore, metrics.NewClient(testScope), testlogger.New(t))

	mockStore.EXPECT().GetName().Return("mock").AnyTimes()
	mockStore.EXPECT().
		OpenSession(gomock.Any(), gomock.Any()).
		Return(mockSession, nil)

	_, err := wrapped.OpenSession(context.Background(), &persistence.OpenSessionRequest{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), counterValue(t, testScope, "store_requests", "OpenSession"))
}
