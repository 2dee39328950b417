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

package persistence

import "context"

type (
	// Closeable is an interface for any entity that supports a close operation to release resources
	Closeable interface {
		Close()
	}

	// Record is a single versioned payload held by a store
	Record struct {
		ID       string
		Data     []byte
		Revision int64
	}

	// FetchRequest is the request to Session.Fetch
	FetchRequest struct {
		RecordID string
	}

	// FetchResponse is the response to Session.Fetch
	FetchResponse struct {
		Record *Record
	}

	// SaveRequest is the request to Session.Save.
	// A zero Revision means the record is expected not to exist yet.
	SaveRequest struct {
		Record *Record
	}

	// SaveResponse is the response to Session.Save
	SaveResponse struct {
		Revision int64
	}

	// OpenSessionRequest is the request to Store.OpenSession.
	// SessionID is optional, a random one is assigned when empty.
	OpenSessionRequest struct {
		SessionID string
	}

	// Session is a persistence context through which fetch and save
	// operations are issued. Sessions opened from the same store observe the
	// same record table. Session values are compared by identity, two
	// sessions opened with identical parameters are still distinct.
	Session interface {
		Closeable
		GetName() string
		Fetch(ctx context.Context, request *FetchRequest) (*FetchResponse, error)
		Save(ctx context.Context, request *SaveRequest) (*SaveResponse, error)
	}

	// Store owns a record table and hands out sessions over it
	Store interface {
		Closeable
		GetName() string
		OpenSession(ctx context.Context, request *OpenSessionRequest) (Session, error)
	}
)

// Copy deep-copies the record so callers cannot alias store-owned state
func (r *Record) Copy() *Record {
	if r == nil {
		return nil
	}
	data := make([]byte, len(r.Data))
	copy(data, r.Data)
	return &Record{
		ID:       r.ID,
		Data:     data,
		Revision: r.Revision,
	}
}
