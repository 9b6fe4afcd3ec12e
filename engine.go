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
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

///////////
// Types //
///////////

// Type parameters naming convention:
// Parsed case data: D
// Result: R

type (
	// ParseFunc consumes the lines of exactly one case from src.
	ParseFunc[D any] func(src *LineSource) (D, error)
	// ComputeFunc turns the data of a case into its result. In Parallel and
	// Streaming mode it is called concurrently and must not share mutable
	// state between calls.
	ComputeFunc[D, R any] func(ctx context.Context, data D) (R, error)
)

// Solver bundles a parse and a compute step.
type Solver[D, R any] interface {
	Parse(src *LineSource) (D, error)
	Compute(ctx context.Context, data D) (R, error)
}

// Engine runs a solution against an input file, writing results to an
// output file. Creating an Engine is cheap: no file is opened until a run starts.
type Engine struct {
	input, output string
	opts          options
}

// New returns an Engine reading cases from input and writing results to output.
func New(input, output string, opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{input: input, output: output, opts: o}
}

// Mode returns the mode used by Run.
func (e *Engine) Mode() Mode { return e.opts.mode }

// Workers returns the maximum number of concurrent compute calls.
func (e *Engine) Workers() int { return e.opts.workers }

/////////////
// Running //
/////////////

// Run executes parse and compute for every case in the mode the Engine was
// configured with.
func Run[D, R any](ctx context.Context, e *Engine, parse ParseFunc[D], compute ComputeFunc[D, R]) error {
	switch e.opts.mode {
	case Parallel:
		return RunParallel(ctx, e, parse, compute)
	case Streaming:
		return RunStreaming(ctx, e, parse, compute)
	default:
		return RunSequential(ctx, e, parse, compute)
	}
}

// RunSolver is like Run, but takes both steps from s.
func RunSolver[D, R any](ctx context.Context, e *Engine, s Solver[D, R]) error {
	return Run(ctx, e, s.Parse, s.Compute)
}

// RunSequential parses, computes and emits every case before moving on to the
// next one. Cases emitted before a failure are kept in the output.
func RunSequential[D, R any](ctx context.Context, e *Engine, parse ParseFunc[D], compute ComputeFunc[D, R]) error {
	return e.execute(ctx, Sequential, func(ctx context.Context, r *run) error {
		for i := 1; i <= r.count; i++ {
			if err := ctx.Err(); err != nil {
				return caseError("executing case", i, err)
			}
			d, err := parseCase(parse, r.src, i)
			if err != nil {
				return err
			}
			res, err := computeCase(ctx, compute, d, i)
			if err != nil {
				return err
			}
			if err := r.sink.WriteResult(i, res); err != nil {
				return err
			}
		}
		return nil
	})
}

// run holds the state shared by the phases of a single execution.
type run struct {
	src   *LineSource
	sink  *ResultSink
	count int
	opts  options
	log   *zap.Logger
}

// execute opens the input and the output, reads the case count and hands
// control to body. Both files are released on every return path.
func (e *Engine) execute(ctx context.Context, mode Mode, body func(context.Context, *run) error) (err error) {
	clock := e.opts.clock
	log := e.opts.logger.With(zap.String("run_id", uuid.NewString()), zap.Stringer("mode", mode))
	start := clock.Now()
	log.Info("run started",
		zap.String("input", e.input),
		zap.String("output", e.output),
		zap.Int("workers", e.opts.workers))
	defer func() {
		elapsed := zap.Duration("elapsed", clock.Now().Sub(start))
		if err != nil {
			log.Error("run failed", zap.Error(err), elapsed)
			return
		}
		log.Info("run finished", elapsed)
	}()

	src, err := OpenLineSource(e.input)
	if err != nil {
		return err
	}
	defer src.Close()

	sink, err := CreateResultSink(e.output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	count, err := ReadCaseCount(src)
	if err != nil {
		return err
	}
	log.Debug("case count read", zap.Int("cases", count))
	return body(ctx, &run{src: src, sink: sink, count: count, opts: e.opts, log: log})
}

func (r *run) phaseDone(phase string, start time.Time) {
	r.log.Debug("phase finished",
		zap.String("phase", phase),
		zap.Int("cases", r.count),
		zap.Duration("elapsed", r.opts.clock.Now().Sub(start)))
}

func parseCase[D any](parse ParseFunc[D], src *LineSource, index int) (d D, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = caseError("parsing case", index, panicError(v))
		}
	}()
	d, err = parse(src)
	if err != nil {
		return d, caseError("parsing case", index, err)
	}
	return d, nil
}

func computeCase[D, R any](ctx context.Context, compute ComputeFunc[D, R], d D, index int) (r R, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = caseError("executing case", index, panicError(v))
		}
	}()
	r, err = compute(ctx, d)
	if err != nil {
		return r, caseError("executing case", index, err)
	}
	return r, nil
}
