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

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashbase/stash/common/log/testlogger"
	"github.com/stashbase/stash/common/persistence"
)

func setUpSession(t *testing.T) persistence.Session {
	store := NewStore(testlogger.New(t))
	t.Cleanup(store.Close)
	session, err := store.OpenSession(context.Background(), &persistence.OpenSessionRequest{})
	require.NoError(t, err)
	return session
}

func TestSaveAssignsRevisions(t *testing.T) {
	session := setUpSession(t)

	response, err := session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v1")},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), response.Revision)

	response, err = session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v2"), Revision: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), response.Revision)
}

func TestSaveWithStaleRevisionFails(t *testing.T) {
	session := setUpSession(t)

	_, err := session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v1")},
	})
	require.NoError(t, err)
	_, err = session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v2"), Revision: 1},
	})
	require.NoError(t, err)

	// revision 1 lost the race, the record is at revision 2
	_, err = session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v3"), Revision: 1},
	})
	var conditionFailed *persistence.ConditionFailedError
	require.ErrorAs(t, err, &conditionFailed)
}

func TestSaveNewRecordWithNonZeroRevisionFails(t *testing.T) {
	session := setUpSession(t)

	_, err := session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v1"), Revision: 7},
	})
	var conditionFailed *persistence.ConditionFailedError
	require.ErrorAs(t, err, &conditionFailed)
}

func TestFetchMissingRecordFails(t *testing.T) {
	session := setUpSession(t)

	_, err := session.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "missing"})
	var notExists *persistence.EntityNotExistsError
	require.ErrorAs(t, err, &notExists)
}

func TestFetchReturnsACopy(t *testing.T) {
	session := setUpSession(t)

	_, err := session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v1")},
	})
	require.NoError(t, err)

	response, err := session.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
	require.NoError(t, err)
	response.Record.Data[0] = 'X'

	again, err := session.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
	require.NoError(t, err)
	assert.Equal(t, []byte("v1"), again.Record.Data)
}

func TestSessionsShareTheRecordTable(t *testing.T) {
	store := NewStore(testlogger.New(t))
	t.Cleanup(store.Close)

	writer, err := store.OpenSession(context.Background(), &persistence.OpenSessionRequest{})
	require.NoError(t, err)
	reader, err := store.OpenSession(context.Background(), &persistence.OpenSessionRequest{})
	require.NoError(t, err)
	assert.NotEqual(t, writer.GetName(), reader.GetName())

	_, err = writer.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("shared")},
	})
	require.NoError(t, err)

	response, err := reader.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
	require.NoError(t, err)
	assert.Equal(t, []byte("shared"), response.Record.Data)
}

func TestRetainedSessionFailsAfterStoreClose(t *testing.T) {
	store := NewStore(testlogger.New(t))

	session, err := store.OpenSession(context.Background(), &persistence.OpenSessionRequest{})
	require.NoError(t, err)
	_, err = session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-1", Data: []byte("v1")},
	})
	require.NoError(t, err)

	store.Close()

	// a session retained past Close must fail, not panic
	_, err = session.Save(context.Background(), &persistence.SaveRequest{
		Record: &persistence.Record{ID: "record-2", Data: []byte("v2")},
	})
	require.ErrorIs(t, err, errStoreClosed)
	_, err = session.Fetch(context.Background(), &persistence.FetchRequest{RecordID: "record-1"})
	require.ErrorIs(t, err, errStoreClosed)

	_, err = store.OpenSession(context.Background(), &persistence.OpenSessionRequest{})
	require.ErrorIs(t, err, errStoreClosed)
}

func TestCancelledContextFailsFast(t *testing.T) {
	session := setUpSession(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := session.Fetch(ctx, &persistence.FetchRequest{RecordID: "record-1"})
	var timeout *persistence.TimeoutError
	require.ErrorAs(t, err, &timeout)
}
