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

package caserun_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	. "github.com/empijei/caserun"
)

func parallel(t *testing.T) {
	t.Helper()
	t.Parallel()
}

func cmpDiff[T any](a, b T, opts ...cmp.Option) string {
	return cmp.Diff(a, b, opts...)
}

// writeInput stores content in a fresh directory and returns its path along
// with the path of a (not yet existing) output file next to it.
func writeInput(t *testing.T, content string) (in, out string) {
	t.Helper()
	dir := t.TempDir()
	in = filepath.Join(dir, "input.in")
	if err := os.WriteFile(in, []byte(content), 0o644); err != nil {
		t.Fatalf("writing input: %v", err)
	}
	return in, filepath.Join(dir, "output.out")
}

func readOutput(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(b)
}

// casesInput builds an input with one integer line per case.
func casesInput(values ...string) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(len(values)))
	b.WriteByte('\n')
	for _, v := range values {
		b.WriteString(v)
		b.WriteByte('\n')
	}
	return b.String()
}

var allModes = []Mode{Sequential, Parallel, Streaming}

type stubTicker chan time.Time

func newStubTicker() stubTicker             { return make(chan time.Time) }
func (stubTicker) Stop()                    {}
func (s stubTicker) Chan() <-chan time.Time { return s }

// stubClock never moves and hands out the same ticker every time.
type stubClock struct {
	t          *testing.T
	ticker     stubTicker
	wantPeriod time.Duration
}

func (stubClock) Now() time.Time { return time.Unix(0, 0) }

func (c stubClock) NewTicker(d time.Duration) Ticker {
	c.t.Helper()
	if c.wantPeriod != 0 && c.wantPeriod != d {
		c.t.Errorf("NewTicker: got period %v want %v", d, c.wantPeriod)
	}
	return c.ticker
}
