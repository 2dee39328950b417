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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateFakeErrorRates(t *testing.T) {
	for i := 0; i < 100; i++ {
		assert.NoError(t, GenerateFakeError(0))
	}
	for i := 0; i < 100; i++ {
		err := GenerateFakeError(1)
		require.Error(t, err)
		assert.True(t, IsFakeError(err))
	}
}

func TestInducedFailureIsNotAFakeError(t *testing.T) {
	// the harness sentinel must stay distinguishable from the random
	// chaos-mode errors
	assert.False(t, IsFakeError(ErrInducedFailure))
}

func TestShouldForwardCall(t *testing.T) {
	assert.True(t, ShouldForwardCall(nil))
	// condition-failed faults are terminal, never forwarded
	assert.False(t, ShouldForwardCall(ErrFakeConditionFailed))

	// timeout and unhandled faults forward roughly half the time
	forwarded := 0
	for i := 0; i < 1000; i++ {
		if ShouldForwardCall(ErrFakeTimeout) {
			forwarded++
		}
	}
	assert.Greater(t, forwarded, 300)
	assert.Less(t, forwarded, 700)
}
