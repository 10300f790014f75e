// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package engine

import "time"

// Timer measures monotonic time since it was created or last reset.
type Timer struct {
	start time.Time
}

// NewTimer returns a running timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Reset restarts the timer from zero.
func (t *Timer) Reset() {
	t.start = time.Now()
}

// Now returns the elapsed time.
func (t *Timer) Now() time.Duration {
	return time.Since(t.start)
}

// Microseconds returns the elapsed time in microseconds.
func (t *Timer) Microseconds() int64 {
	return t.Now().Microseconds()
}
