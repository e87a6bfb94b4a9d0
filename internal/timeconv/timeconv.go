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

// Package timeconv converts the time encodings found in measurement files
// into time.Time values.
package timeconv

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
)

// Column names read and written by AddDatetimeColumn.
const (
	YearColumn     = "year"
	DayColumn      = "day"
	HourColumn     = "hr"
	DatetimeColumn = "datetime"
)

// daysPerYear is the fixed year length of the fractional date convention.
// It is never adjusted for leap years.
const daysPerYear = 365

// ErrInvalidValue is matched by InvalidValueError through errors.Is.
var ErrInvalidValue = errors.New("invalid date value")

// InvalidValueError reports a cell that cannot be used as a date field.
type InvalidValueError struct {
	Column string
	Row    int
	Value  float64
	Msg    string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid %s value %v at row %d: %s", e.Column, e.Value, e.Row, e.Msg)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// FromFractionalYear converts n, a year plus a fraction of a 365-day year,
// to a UTC time: January 1 of floor(n) plus (n-floor(n))*365 days, rounded to
// the microsecond.
func FromFractionalYear(n float64) time.Time {
	year := math.Floor(n)
	days := (n - year) * daysPerYear
	offset := time.Duration(math.Round(days*24*60*60*1e6)) * time.Microsecond
	return time.Date(int(year), time.January, 1, 0, 0, 0, 0, time.UTC).Add(offset)
}

// AddDatetimeColumn returns t with a leading "datetime" column built from the
// integral "year", "day" (day of year, from 1) and "hr" (0-23) columns.
func AddDatetimeColumn(t *frame.Table) (*frame.Table, error) {
	years, err := t.Require(YearColumn)
	if err != nil {
		return nil, err
	}
	days, err := t.Require(DayColumn)
	if err != nil {
		return nil, err
	}
	hours, err := t.Require(HourColumn)
	if err != nil {
		return nil, err
	}
	for _, c := range []frame.Column{years, days, hours} {
		if !c.Numeric() {
			return nil, &frame.InvalidInputError{Msg: fmt.Sprintf("column %q is %s, want a numeric column", c.Name, c.Kind)}
		}
	}

	stamps := make([]time.Time, t.NumRows())
	for i := range stamps {
		y, err := integral(years, i)
		if err != nil {
			return nil, err
		}
		d, err := integral(days, i)
		if err != nil {
			return nil, err
		}
		h, err := integral(hours, i)
		if err != nil {
			return nil, err
		}
		if d < 1 || d > daysIn(y) {
			return nil, &InvalidValueError{Column: DayColumn, Row: i, Value: float64(d), Msg: fmt.Sprintf("day of year must be within 1..%d", daysIn(y))}
		}
		if h < 0 || h > 23 {
			return nil, &InvalidValueError{Column: HourColumn, Row: i, Value: float64(h), Msg: "hour must be within 0..23"}
		}
		stamps[i] = time.Date(y, time.January, d, h, 0, 0, 0, time.UTC)
	}

	return t.Insert(0, frame.NewTimeColumn(DatetimeColumn, stamps...))
}

func integral(c frame.Column, row int) (int, error) {
	v := c.Float(row)
	if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
		return 0, &InvalidValueError{Column: c.Name, Row: row, Value: v, Msg: "not an integer"}
	}
	return int(v), nil
}

func daysIn(year int) int {
	if time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay() == 366 {
		return 366
	}
	return 365
}
