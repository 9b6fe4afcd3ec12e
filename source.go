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
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LineSource reads an input one line at a time.
//
// A LineSource is not safe for concurrent use. During a run it is only ever
// touched by the goroutine that parses cases.
type LineSource struct {
	r      *bufio.Reader
	closer io.Closer
	line   int
	eof    bool
}

// NewLineSource returns a LineSource reading from r.
func NewLineSource(r io.Reader) *LineSource {
	return &LineSource{r: bufio.NewReader(r)}
}

// OpenLineSource opens the file at path for reading.
func OpenLineSource(path string) (*LineSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(ErrIO, "opening input", err)
	}
	s := NewLineSource(f)
	s.closer = f
	return s, nil
}

// NextLine returns the next line without its trailing "\n" or "\r\n".
// It returns an error matching ErrEndOfInput once every line has been consumed.
func (s *LineSource) NextLine() (string, error) {
	op := fmt.Sprintf("reading line %d", s.line+1)
	if s.eof {
		return "", newError(ErrEndOfInput, op, nil)
	}
	l, err := s.r.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
		if l == "" {
			return "", newError(ErrEndOfInput, op, nil)
		}
	case err != nil:
		return "", newError(ErrIO, op, err)
	}
	s.line++
	l = strings.TrimSuffix(l, "\n")
	l = strings.TrimSuffix(l, "\r")
	return l, nil
}

// Fields reads the next line and splits it around runs of white space.
func (s *LineSource) Fields() ([]string, error) {
	l, err := s.NextLine()
	if err != nil {
		return nil, err
	}
	return strings.Fields(l), nil
}

// Line reports how many lines have been consumed so far.
func (s *LineSource) Line() int { return s.line }

// Close releases the underlying file, if any.
func (s *LineSource) Close() error {
	if s.closer == nil {
		return nil
	}
	c := s.closer
	s.closer = nil
	if err := c.Close(); err != nil {
		return newError(ErrIO, "closing input", err)
	}
	return nil
}
