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
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

type indexed[T any] struct {
	index int
	value T
}

// RunStreaming is like RunParallel, but parsing, computing and emitting
// overlap: a single goroutine parses, Workers() goroutines compute and the
// calling goroutine emits each case as soon as every previous one has been
// emitted.
//
// At most the window size (see WithWindow) cases are held between parse and
// emission. If the case at index N is still computing when that many cases
// are pending, parsing waits for N to be emitted.
//
// When a case fails, the cases before it might already be in the output, the
// failing case and all the following ones are never emitted.
func RunStreaming[D, R any](ctx context.Context, e *Engine, parse ParseFunc[D], compute ComputeFunc[D, R]) error {
	return e.execute(ctx, Streaming, func(ctx context.Context, r *run) error {
		return stream(ctx, r, parse, compute)
	})
}

func stream[D, R any](ctx context.Context, r *run, parse ParseFunc[D], compute ComputeFunc[D, R]) error {
	start := r.opts.clock.Now()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	// gctx is also cancelled once every goroutine in g has returned, so the
	// emitter looks at failed and ctx instead.
	var failed atomic.Bool
	var computed atomic.Int64
	stop := r.reportProgress(&computed)
	defer stop()

	jobs := make(chan indexed[D])
	results := make(chan indexed[R])
	window := make(chan struct{}, r.opts.windowSize())

	// Parser
	g.Go(func() error {
		defer close(jobs)
		for i := 1; i <= r.count; i++ {
			select {
			case window <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			d, err := parseCase(parse, r.src, i)
			if err != nil {
				failed.Store(true)
				return err
			}
			select {
			case jobs <- indexed[D]{i, d}:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	// Computers
	for w := 0; w < min(r.opts.workers, max(r.count, 1)); w++ {
		g.Go(func() error {
			for j := range jobs {
				res, err := computeCase(gctx, compute, j.value, j.index)
				if err != nil {
					failed.Store(true)
					return err
				}
				computed.Add(1)
				select {
				case results <- indexed[R]{j.index, res}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	var waitErr error
	go func() {
		waitErr = g.Wait()
		close(results)
	}()

	// Emitter: the only goroutine touching the sink. It keeps draining results
	// after a failure so that computers can exit.
	var emitErr error
	pending := map[int]R{}
	next := 1
	for res := range results {
		if emitErr != nil || failed.Load() || ctx.Err() != nil {
			continue
		}
		pending[res.index] = res.value
		for {
			v, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if err := r.sink.WriteResult(next, v); err != nil {
				emitErr = err
				cancel()
				break
			}
			next++
			<-window
		}
	}

	switch {
	case emitErr != nil:
		return emitErr
	case waitErr != nil:
		var e *Error
		if errors.As(waitErr, &e) {
			return waitErr
		}
		return newError(ErrCompute, "computing cases", waitErr)
	case next <= r.count:
		// Only reachable if the caller cancelled after the last result.
		return caseError("executing case", next, ctx.Err())
	}
	r.phaseDone("stream", start)
	return nil
}
