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
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/tag"
	"github.com/stashbase/stash/common/persistence"
)

const storeName = "memory"

// errStoreClosed is returned by sessions retained past Close
var errStoreClosed = errors.New("memory store is closed")

type (
	store struct {
		logger log.Logger

		mu      sync.RWMutex
		closed  bool
		records map[string]*persistence.Record
	}

	session struct {
		id    string
		store *store
	}
)

var _ persistence.Store = (*store)(nil)
var _ persistence.Session = (*session)(nil)

// NewStore returns an in-process map backed store. Sessions opened from it
// share one record table, matching the visibility semantics of a real
// database backed store.
func NewStore(logger log.Logger) persistence.Store {
	return &store{
		logger:  logger.WithTags(tag.StoreName(storeName)),
		records: make(map[string]*persistence.Record),
	}
}

func (s *store) GetName() string {
	return storeName
}

func (s *store) OpenSession(
	ctx context.Context,
	request *persistence.OpenSessionRequest,
) (persistence.Session, error) {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return nil, errStoreClosed
	}

	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s.logger.Debug("opened session", tag.SessionID(sessionID))
	return &session{
		id:    sessionID,
		store: s,
	}, nil
}

func (s *store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.records = nil
}

func (s *session) GetName() string {
	return s.id
}

func (s *session) Fetch(
	ctx context.Context,
	request *persistence.FetchRequest,
) (*persistence.FetchResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &persistence.TimeoutError{Msg: err.Error()}
	}

	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	if s.store.closed {
		return nil, errStoreClosed
	}
	record, ok := s.store.records[request.RecordID]
	if !ok {
		return nil, persistence.NewEntityNotExistsError(request.RecordID)
	}
	return &persistence.FetchResponse{Record: record.Copy()}, nil
}

func (s *session) Save(
	ctx context.Context,
	request *persistence.SaveRequest,
) (*persistence.SaveResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, &persistence.TimeoutError{Msg: err.Error()}
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.closed {
		return nil, errStoreClosed
	}
	record := request.Record
	current, exists := s.store.records[record.ID]
	if exists && current.Revision != record.Revision {
		return nil, persistence.NewConditionFailedError(record.ID, record.Revision)
	}
	if !exists && record.Revision != 0 {
		return nil, persistence.NewConditionFailedError(record.ID, record.Revision)
	}

	saved := record.Copy()
	saved.Revision++
	s.store.records[record.ID] = saved
	return &persistence.SaveResponse{Revision: saved.Revision}, nil
}

func (s *session) Close() {
	s.store.logger.Debug("closed session", tag.SessionID(s.id))
}
