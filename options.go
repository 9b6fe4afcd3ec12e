// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package caserun

import (
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Mode selects how Run schedules the cases of an input.
type Mode int

const (
	// Sequential parses, computes and emits one case at a time.
	Sequential Mode = iota
	// Parallel parses every case, computes all of them concurrently, then
	// emits them in order. Nothing is emitted if any case fails.
	Parallel
	// Streaming parses on one goroutine, computes on a worker pool and emits
	// each case as soon as all the previous ones have been emitted.
	Streaming
)

var modeNames = [...]string{
	Sequential: "sequential",
	Parallel:   "parallel",
	Streaming:  "streaming",
}

func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeNames[m]
}

// ParseMode is the inverse of Mode.String.
func ParseMode(s string) (Mode, error) {
	for m, n := range modeNames {
		if n == s {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}

// Option configures an Engine.
type Option func(*options)

type options struct {
	mode     Mode
	workers  int
	window   int
	logger   *zap.Logger
	progress time.Duration
	clock    Clock
}

func defaultOptions() options {
	return options{
		mode:    Sequential,
		workers: runtime.GOMAXPROCS(0),
		logger:  zap.NewNop(),
		clock:   realClock{},
	}
}

// WithMode selects the scheduling mode used by Run.
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithWorkers bounds how many compute functions run at the same time.
// Values smaller than 1 select runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithWindow bounds how many parsed cases may be waiting for emission in
// Streaming mode. Values smaller than 1 select four times the worker count.
func WithWindow(n int) Option {
	return func(o *options) { o.window = n }
}

// WithLogger sets the logger used to report the progress of a run.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// WithProgress logs how many cases have been computed every interval while
// running in Parallel or Streaming mode. A zero interval disables it.
func WithProgress(interval time.Duration) Option {
	return func(o *options) { o.progress = interval }
}

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c == nil {
			c = realClock{}
		}
		o.clock = c
	}
}

func (o options) windowSize() int {
	if o.window > 0 {
		return o.window
	}
	return 4 * o.workers
}
