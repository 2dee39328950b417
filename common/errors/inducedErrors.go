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

package errors

import (
	"errors"
	"math/rand"

	"github.com/stashbase/stash/common/persistence"
)

var (
	// ErrInducedFailure is the synthetic failure the test harness raises on an
	// armed session. It is distinct from every real persistence error so
	// callers can assert the fault came from the harness.
	ErrInducedFailure = errors.New("induced session failure")

	// ErrFakeTimeout is a fake persistence timeout error.
	ErrFakeTimeout = &persistence.TimeoutError{Msg: "fake persistence timeout error"}
	// ErrFakeConditionFailed is a fake revision conflict error.
	ErrFakeConditionFailed = &persistence.ConditionFailedError{Msg: "fake condition failed error"}
	// ErrFakeUnhandled is a fake unhandled error.
	ErrFakeUnhandled = errors.New("fake unhandled error")
)

var (
	fakeErrors = []error{
		ErrFakeTimeout,
		ErrFakeConditionFailed,
		ErrFakeUnhandled,
	}
)

// ShouldForwardCall determines if the call should be forwarded to the
// underlying store given the fake error generated
func ShouldForwardCall(err error) bool {
	if err == nil {
		return true
	}

	if err == ErrFakeTimeout || err == ErrFakeUnhandled {
		// forward the call with 50% chance to mimic retriable store issues
		return rand.Intn(2) == 0
	}

	return false
}

// GenerateFakeError generates a random fake error at the given rate
func GenerateFakeError(errorRate float64) error {
	if rand.Float64() < errorRate {
		return fakeErrors[rand.Intn(len(fakeErrors))]
	}

	return nil
}

// IsFakeError returns true when err was produced by GenerateFakeError
func IsFakeError(err error) bool {
	for _, fakeErr := range fakeErrors {
		if err == fakeErr {
			return true
		}
	}

	return false
}
