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
	"errors"
	"strings"
	"testing"

	. "github.com/empijei/caserun"
)

func TestReadCaseCount(t *testing.T) {
	parallel(t)
	var tests = []struct {
		name    string
		input   string
		want    int
		wantErr error
	}{
		{name: "zero", input: "0\n", want: 0},
		{name: "some", input: "100\n1\n", want: 100},
		{name: "no newline", input: "7", want: 7},
		{name: "crlf", input: "3\r\n", want: 3},
		{name: "empty input", input: "", wantErr: ErrEndOfInput},
		{name: "empty line", input: "\n", wantErr: ErrFormat},
		{name: "negative", input: "-1\n", wantErr: ErrFormat},
		{name: "not a number", input: "three\n", wantErr: ErrFormat},
		{name: "padded", input: " 3\n", wantErr: ErrFormat},
		{name: "hex", input: "0x10\n", wantErr: ErrFormat},
		{name: "overflow", input: "99999999999999999999999\n", wantErr: ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewLineSource(strings.NewReader(tt.input))
			got, err := ReadCaseCount(src)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got (%d, %v) want %v", got, err, tt.wantErr)
				}
				if !strings.HasPrefix(err.Error(), "parsing case count: ") {
					t.Errorf("error %q does not name the operation", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadCaseCount: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %d want %d", got, tt.want)
			}
			if src.Line() != 1 {
				t.Errorf("consumed %d lines, want exactly 1", src.Line())
			}
		})
	}
}

func TestReadCaseCountNotFirst(t *testing.T) {
	parallel(t)
	src := NewLineSource(strings.NewReader("1\n2\n"))
	if _, err := src.NextLine(); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCaseCount(src); !errors.Is(err, ErrFormat) {
		t.Errorf("got %v want ErrFormat", err)
	}
}
