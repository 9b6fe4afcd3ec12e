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
	"strconv"

	"golang.org/x/exp/constraints"
)

// ParseInts converts every field to T. Malformed or out of range values are
// reported as ErrFormat.
func ParseInts[T constraints.Integer](fields []string) ([]T, error) {
	out := make([]T, len(fields))
	for i, f := range fields {
		v, err := parseInt[T](f)
		if err != nil {
			return nil, newError(ErrFormat, fmt.Sprintf("parsing field %d", i+1), err)
		}
		out[i] = v
	}
	return out, nil
}

// ReadInts reads the next line of src as white space separated integers.
func ReadInts[T constraints.Integer](src *LineSource) ([]T, error) {
	fields, err := src.Fields()
	if err != nil {
		return nil, err
	}
	vs, err := ParseInts[T](fields)
	if err != nil {
		return nil, lineError(src, err)
	}
	return vs, nil
}

// ReadInt reads the next line of src as a single integer.
func ReadInt[T constraints.Integer](src *LineSource) (T, error) {
	l, err := src.NextLine()
	if err != nil {
		return 0, err
	}
	v, err := parseInt[T](l)
	if err != nil {
		return 0, lineError(src, newError(ErrFormat, "parsing integer", err))
	}
	return v, nil
}

func parseInt[T constraints.Integer](s string) (T, error) {
	var zero T
	if zero-1 < zero {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, err
		}
		if int64(T(v)) != v {
			return 0, &strconv.NumError{Func: "ParseInt", Num: s, Err: strconv.ErrRange}
		}
		return T(v), nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if uint64(T(v)) != v {
		return 0, &strconv.NumError{Func: "ParseUint", Num: s, Err: strconv.ErrRange}
	}
	return T(v), nil
}

func lineError(src *LineSource, err error) error {
	kind := ErrFormat
	var e *Error
	if errors.As(err, &e) {
		kind = e.Kind
	}
	return &Error{Kind: kind, Op: fmt.Sprintf("line %d", src.Line()), Err: err}
}
