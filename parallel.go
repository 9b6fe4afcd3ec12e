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
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// maxPrealloc caps the slots allocated up front, so that a bogus case count
// fails with ErrEndOfInput instead of exhausting memory.
const maxPrealloc = 1 << 16

// slot holds one case between its parse and its emission. Only the task that
// computes a slot ever writes to it.
type slot[D, R any] struct {
	data   D
	result R
}

// RunParallel runs in three phases:
//
//  1. every case is parsed, in order, into a slot;
//  2. slots are computed concurrently by at most Workers() goroutines;
//  3. results are emitted in case order.
//
// The output is identical to the one produced by RunSequential.
// If any case fails nothing is emitted: the output file is left empty.
// After the first failure no more cases are started, the ones in flight are
// waited for and the context they received is cancelled.
func RunParallel[D, R any](ctx context.Context, e *Engine, parse ParseFunc[D], compute ComputeFunc[D, R]) error {
	return e.execute(ctx, Parallel, func(ctx context.Context, r *run) error {
		slots, err := parseAll[D, R](r, parse)
		if err != nil {
			return err
		}
		if err := computeAll(ctx, r, slots, compute); err != nil {
			return err
		}
		start := r.opts.clock.Now()
		for i := range slots {
			if err := r.sink.WriteResult(i+1, slots[i].result); err != nil {
				return err
			}
		}
		r.phaseDone("emit", start)
		return nil
	})
}

func parseAll[D, R any](r *run, parse ParseFunc[D]) ([]slot[D, R], error) {
	start := r.opts.clock.Now()
	slots := make([]slot[D, R], 0, min(r.count, maxPrealloc))
	for i := 1; i <= r.count; i++ {
		d, err := parseCase(parse, r.src, i)
		if err != nil {
			return nil, err
		}
		slots = append(slots, slot[D, R]{data: d})
	}
	r.phaseDone("parse", start)
	return slots, nil
}

func computeAll[D, R any](ctx context.Context, r *run, slots []slot[D, R], compute ComputeFunc[D, R]) error {
	start := r.opts.clock.Now()
	var computed atomic.Int64
	stop := r.reportProgress(&computed)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.workers)
	for i := range slots {
		if gctx.Err() != nil {
			break
		}
		s, index := &slots[i], i+1
		g.Go(func() error {
			res, err := computeCase(gctx, compute, s.data, index)
			if err != nil {
				return err
			}
			var consumed D
			s.data, s.result = consumed, res
			computed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	// Cancellation from the caller stops dispatching without failing a task.
	if err := ctx.Err(); err != nil {
		return newError(ErrCompute, "computing cases", err)
	}
	r.phaseDone("compute", start)
	return nil
}
