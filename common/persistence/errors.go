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

import "fmt"

type (
	// TimeoutError is returned when a store operation exceeds its deadline
	TimeoutError struct {
		Msg string
	}

	// EntityNotExistsError is returned when a fetched record does not exist
	EntityNotExistsError struct {
		Msg string
	}

	// ConditionFailedError is returned when a save loses an optimistic
	// revision check
	ConditionFailedError struct {
		Msg string
	}
)

func (e *TimeoutError) Error() string {
	return e.Msg
}

func (e *EntityNotExistsError) Error() string {
	return e.Msg
}

func (e *ConditionFailedError) Error() string {
	return e.Msg
}

// NewEntityNotExistsError returns a new EntityNotExistsError for a record
func NewEntityNotExistsError(recordID string) *EntityNotExistsError {
	return &EntityNotExistsError{
		Msg: fmt.Sprintf("record %v does not exist", recordID),
	}
}

// NewConditionFailedError returns a new ConditionFailedError for a stale revision
func NewConditionFailedError(recordID string, revision int64) *ConditionFailedError {
	return &ConditionFailedError{
		Msg: fmt.Sprintf("revision %v of record %v is stale", revision, recordID),
	}
}
