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
	"strconv"
)

const countOp = "parsing case count"

// ReadCaseCount consumes the header line of src and returns the number of
// cases in the input. It must be the first read performed on src.
func ReadCaseCount(src *LineSource) (int, error) {
	if src.Line() != 0 {
		return 0, newError(ErrFormat, countOp, errors.New("case count must be the first line"))
	}
	l, err := src.NextLine()
	if err != nil {
		var e *Error
		if errors.As(err, &e) && e.Err != nil {
			return 0, &Error{Kind: e.Kind, Op: countOp, Err: e}
		}
		return 0, &Error{Kind: ErrEndOfInput, Op: countOp}
	}
	n, err := strconv.ParseUint(l, 10, strconv.IntSize-1)
	if err != nil {
		return 0, newError(ErrFormat, countOp, err)
	}
	return int(n), nil
}
