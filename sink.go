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
	"fmt"
	"io"
	"os"
	"strconv"
)

// ResultSink writes case-numbered results.
//
// Like LineSource it is owned by a single goroutine for the whole run.
type ResultSink struct {
	w      *bufio.Writer
	closer io.Closer
	buf    []byte
}

// NewResultSink returns a ResultSink writing to w.
func NewResultSink(w io.Writer) *ResultSink {
	return &ResultSink{w: bufio.NewWriter(w)}
}

// CreateResultSink creates the file at path, truncating it if it exists.
func CreateResultSink(path string) (*ResultSink, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, newError(ErrIO, "opening output", err)
	}
	s := NewResultSink(f)
	s.closer = f
	return s, nil
}

// WriteCasePrefix writes "Case #<index>:" with no surrounding white space.
func (s *ResultSink) WriteCasePrefix(index int) error {
	s.buf = appendPrefix(s.buf[:0], index)
	return s.write(index)
}

// WriteResult writes the case prefix immediately followed by the fmt
// representation of result. By convention result starts with a space and ends
// with a newline, see Answer.
func (s *ResultSink) WriteResult(index int, result any) error {
	s.buf = appendPrefix(s.buf[:0], index)
	s.buf = fmt.Append(s.buf, result)
	return s.write(index)
}

func (s *ResultSink) write(index int) error {
	if _, err := s.w.Write(s.buf); err != nil {
		return &Error{Kind: ErrIO, Op: "writing case " + strconv.Itoa(index), Case: index, Err: err}
	}
	return nil
}

// Writer exposes the buffered writer so that handlers can write their own
// result text after the prefix.
func (s *ResultSink) Writer() io.Writer { return s.w }

// Flush writes any buffered data to the underlying writer.
func (s *ResultSink) Flush() error {
	if err := s.w.Flush(); err != nil {
		return newError(ErrIO, "flushing output", err)
	}
	return nil
}

// Close flushes the sink and closes the underlying file, if any.
// The file is closed even if flushing fails.
func (s *ResultSink) Close() error {
	err := s.Flush()
	if s.closer != nil {
		c := s.closer
		s.closer = nil
		if cerr := c.Close(); cerr != nil && err == nil {
			err = newError(ErrIO, "closing output", cerr)
		}
	}
	return err
}

func appendPrefix(b []byte, index int) []byte {
	b = append(b, "Case #"...)
	b = strconv.AppendInt(b, int64(index), 10)
	return append(b, ':')
}

// Answer formats values the way results are conventionally written: a leading
// space, the values separated by spaces, and a trailing newline.
func Answer(values ...any) string {
	b := make([]byte, 0, 16)
	for _, v := range values {
		b = append(b, ' ')
		b = fmt.Append(b, v)
	}
	return string(append(b, '\n'))
}
