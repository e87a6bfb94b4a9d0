/*
 * Copyright 2025 Google LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *    https://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package hdftext reads the fixed-header text layout used by the measurement
// files: a free-form preamble, a line reading exactly "BEGIN DATA", one line
// of whitespace-separated column names and then one whitespace-separated row
// of numbers per line.
package hdftext

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
)

// Marker separates the preamble from the header line.
const Marker = "BEGIN DATA"

const maxLineSize = 1024 * 1024

var (
	// ErrMissingMarker is returned when no line equals Marker.
	ErrMissingMarker = errors.New("marker line \"" + Marker + "\" not found")
	// ErrMalformedRow is matched by MalformedRowError through errors.Is.
	ErrMalformedRow = errors.New("malformed row")
)

// MalformedRowError reports a header or data line that does not fit the
// layout. Line is 1-based.
type MalformedRowError struct {
	Line int
	Msg  string
	Err  error
}

func (e *MalformedRowError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Msg, e.Err)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func (e *MalformedRowError) Is(target error) bool { return target == ErrMalformedRow }

func (e *MalformedRowError) Unwrap() error { return e.Err }

// ParseFile opens path and parses it with Parse.
func ParseFile(path string) (*frame.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return t, nil
}

// Parse reads the layout from r and returns one Float column per header name.
// Blank data lines are skipped. A marker and header with no rows after them
// yield a table with zero rows.
func Parse(r io.Reader) (*frame.Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	found := false
	for scanner.Scan() {
		lineNo++
		if scanner.Text() == Marker {
			found = true
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}
	if !found {
		return nil, ErrMissingMarker
	}

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("error reading input: %w", err)
		}
		return nil, &MalformedRowError{Line: lineNo + 1, Msg: "missing header line after " + Marker}
	}
	lineNo++
	header := strings.Fields(scanner.Text())
	if len(header) == 0 {
		return nil, &MalformedRowError{Line: lineNo, Msg: "empty header line"}
	}

	values := make([][]float64, len(header))
	for i := range values {
		values[i] = []float64{}
	}
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(header) {
			return nil, &MalformedRowError{Line: lineNo, Msg: fmt.Sprintf("got %d values, header has %d columns", len(fields), len(header))}
		}
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, &MalformedRowError{Line: lineNo, Msg: fmt.Sprintf("column %q is not numeric", header[i]), Err: err}
			}
			values[i] = append(values[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	cols := make([]frame.Column, len(header))
	for i, name := range header {
		cols[i] = frame.NewFloatColumn(name, values[i]...)
	}
	return frame.New(cols...)
}
