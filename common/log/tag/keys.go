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

package tag

import "time"

// All logging tags are defined in this file.
// To help finding available tags, we recommend that all tags to be categorized
// and placed in the corresponding section.

///////////////////  Common tags defined here ///////////////////

// Error returns tag for Error
func Error(err error) Tag {
	return newErrorTag("error", err)
}

// Timestamp returns tag for Timestamp
func Timestamp(timestamp time.Time) Tag {
	return newTimeTag("timestamp", timestamp)
}

// Bool returns tag for a boolean value
func Bool(b bool) Tag {
	return newBoolTag("bool", b)
}

// Duration returns tag for Duration
func Duration(duration time.Duration) Tag {
	return newDurationTag("duration", duration)
}

// Attempt returns tag for Attempt
func Attempt(attempt int32) Tag {
	return newInt64Tag("attempt", int64(attempt))
}

///////////////////  Store tags defined here ///////////////////

// StoreName returns tag for the name of a store
func StoreName(storeName string) Tag {
	return newStringTag("store-name", storeName)
}

// StoreType returns tag for the configured type of a store
func StoreType(storeType string) Tag {
	return newStringTag("store-type", storeType)
}

// SessionID returns tag for the identity of a session
func SessionID(sessionID string) Tag {
	return newStringTag("session-id", sessionID)
}

// RecordID returns tag for the identity of a record
func RecordID(recordID string) Tag {
	return newStringTag("record-id", recordID)
}

// Revision returns tag for a record revision
func Revision(revision int64) Tag {
	return newInt64Tag("revision", revision)
}

// StoreError returns tag for a StoreError
func StoreError(storeErr error) Tag {
	return newErrorTag("store-error", storeErr)
}

// StoreOperation returns tag for StoreOperation
func StoreOperation(storeOperation string) Tag {
	return newStringTag("store-operation", storeOperation)
}

// SQLPlugin returns tag for the sql plugin in use
func SQLPlugin(pluginName string) Tag {
	return newStringTag("sql-plugin", pluginName)
}

///////////////////  Fault injection tags defined here ///////////////////

// ErrorRate returns tag for the configured fake error rate
func ErrorRate(rate float64) Tag {
	return newFloat64Tag("error-rate", rate)
}

// FaultToken returns tag for the installation token of a fault wrapper
func FaultToken(token string) Tag {
	return newStringTag("fault-token", token)
}

// InducedDelay returns tag for an injected latency
func InducedDelay(delay time.Duration) Tag {
	return newDurationTag("induced-delay", delay)
}
