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

/*
Package caserun runs solutions for contest style problems, where an input file
starts with the number of test cases and every case must be answered on the
output with a "Case #N:" prefix.

A solution is split in two steps: a ParseFunc that reads the lines of one case
and a ComputeFunc that turns them into a result.

	e := caserun.New("A-small.in", "A-small.out", caserun.WithMode(caserun.Parallel))
	err := caserun.Run(ctx, e,
		func(src *caserun.LineSource) (int, error) {
			return caserun.ReadInt[int](src)
		},
		func(ctx context.Context, n int) (string, error) {
			return caserun.Answer(n * 10), nil
		})

Parsing always happens on a single goroutine in case order, since case
boundaries are only defined by how many lines each parse consumes. Depending
on the Mode, computing might happen concurrently. Emission is always in case
order and produces the same bytes in every mode.

Errors returned by this package are *Error values matching one of ErrIO,
ErrEndOfInput, ErrFormat or ErrCompute.
*/
package caserun
