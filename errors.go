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
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error returned by this package matches exactly one of
// these with errors.Is.
var (
	// ErrIO reports a failure to open, read, write or flush a file.
	ErrIO = errors.New("i/o failure")
	// ErrEndOfInput reports a read past the last line of the input.
	ErrEndOfInput = errors.New("end of input")
	// ErrFormat reports a malformed number, including the case count header.
	ErrFormat = errors.New("malformed input")
	// ErrCompute reports a failure signaled by a parse or compute function.
	ErrCompute = errors.New("case failed")
)

// Error describes the operation that aborted a run.
type Error struct {
	// Kind is one of ErrIO, ErrEndOfInput, ErrFormat or ErrCompute.
	Kind error
	// Op is a human readable name for the operation, e.g. "reading line 4".
	Op string
	// Case is the 1-based case index, or 0 if the failure is not tied to a case.
	Case int
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	// Nested errors of the same kind already name it.
	if e.Err == nil || !errors.Is(e.Err, e.Kind) {
		b.WriteString(e.Kind.Error())
		if e.Err == nil {
			return b.String()
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newError(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// caseError attaches a case index to err. Errors produced by this package keep
// their kind, anything else coming from user code becomes ErrCompute.
func caseError(op string, index int, err error) error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Kind: e.Kind, Op: fmt.Sprintf("%s %d", op, index), Case: index, Err: e}
	}
	return &Error{Kind: ErrCompute, Op: fmt.Sprintf("%s %d", op, index), Case: index, Err: err}
}

// panicError converts a recovered panic value into an error.
func panicError(v any) error {
	if err, ok := v.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", v)
}
