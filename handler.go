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
	"context"
	"io"
	"strconv"
)

// Case gives a HandlerFunc access to the input and the output of the case
// being handled. Writes to a Case follow its "Case #N:" prefix.
type Case struct {
	index, count int
	src          *LineSource
	w            io.Writer
}

// Index returns the 1-based index of the case.
func (c *Case) Index() int { return c.index }

// Count returns the total number of cases in the input.
func (c *Case) Count() int { return c.count }

// Source returns the input, positioned at the first line of the case.
func (c *Case) Source() *LineSource { return c.src }

// NextLine is a shorthand for c.Source().NextLine().
func (c *Case) NextLine() (string, error) { return c.src.NextLine() }

func (c *Case) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if err != nil {
		return n, &Error{Kind: ErrIO, Op: "writing case " + strconv.Itoa(c.index), Case: c.index, Err: err}
	}
	return n, nil
}

// HandlerFunc handles a single case: it reads its lines and writes its
// result, usually with fmt.Fprint(c, Answer(...)).
type HandlerFunc func(ctx context.Context, c *Case) error

// RunEach writes the prefix of every case and calls h to complete it.
// Cases are always handled sequentially, whatever the configured mode.
func (e *Engine) RunEach(ctx context.Context, h HandlerFunc) error {
	return e.execute(ctx, Sequential, func(ctx context.Context, r *run) error {
		for i := 1; i <= r.count; i++ {
			if err := ctx.Err(); err != nil {
				return caseError("executing case", i, err)
			}
			if err := r.sink.WriteCasePrefix(i); err != nil {
				return err
			}
			c := &Case{index: i, count: r.count, src: r.src, w: r.sink.Writer()}
			if err := handleCase(ctx, h, c); err != nil {
				return err
			}
		}
		return nil
	})
}

func handleCase(ctx context.Context, h HandlerFunc, c *Case) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = caseError("executing case", c.index, panicError(v))
		}
	}()
	if err := h(ctx, c); err != nil {
		return caseError("executing case", c.index, err)
	}
	return nil
}
