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

package testlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/loggerimpl"
)

// TestingT covers both *testing.T and *testing.B
type TestingT interface {
	zaptest.TestingT
}

// New is a helper to create new development logger in unit test
func New(t TestingT) log.Logger {
	return loggerimpl.NewLogger(zaptest.NewLogger(t))
}

// NewObserved makes a new test logger that both logs to `t` and collects logged
// events for asserting in tests.
func NewObserved(t TestingT) (log.Logger, *observer.ObservedLogs) {
	obsCore, obs := observer.New(zapcore.DebugLevel)
	z := zaptest.NewLogger(t)
	z = z.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, obsCore)
	}))
	return loggerimpl.NewLogger(z), obs
}
