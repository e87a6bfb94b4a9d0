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

// Package export turns tables into gota data frames for CSV output and
// summary statistics.
package export

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
)

// TimeLayout is the layout used for Time columns in exported frames.
const TimeLayout = time.RFC3339

// ToDataFrame converts t. Float and Int columns keep their type, Time columns
// become strings formatted with TimeLayout.
func ToDataFrame(t *frame.Table) (dataframe.DataFrame, error) {
	return toDataFrame(t, false)
}

// FormatFloat renders v with the fewest digits that parse back to v.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// toDataFrame converts t. With floatText set, Float columns become String
// series rendered by FormatFloat instead of gota's six-decimal Float format.
func toDataFrame(t *frame.Table, floatText bool) (dataframe.DataFrame, error) {
	if t.NumCols() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("cannot export a table with no columns")
	}
	cols := make([]series.Series, 0, t.NumCols())
	for _, c := range t.Columns() {
		switch c.Kind {
		case frame.Float:
			if !floatText {
				cols = append(cols, series.New(c.Floats, series.Float, c.Name))
				continue
			}
			text := make([]string, len(c.Floats))
			for i, v := range c.Floats {
				text[i] = FormatFloat(v)
			}
			cols = append(cols, series.New(text, series.String, c.Name))
		case frame.Int:
			ints := make([]int, len(c.Ints))
			for i, v := range c.Ints {
				ints[i] = int(v)
			}
			cols = append(cols, series.New(ints, series.Int, c.Name))
		case frame.Time:
			stamps := make([]string, len(c.Times))
			for i, v := range c.Times {
				stamps[i] = v.Format(TimeLayout)
			}
			cols = append(cols, series.New(stamps, series.String, c.Name))
		default:
			return dataframe.DataFrame{}, fmt.Errorf("column %q has unsupported kind %s", c.Name, c.Kind)
		}
	}
	df := dataframe.New(cols...)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to build data frame: %w", df.Err)
	}
	return df, nil
}

// WriteCSV writes t as CSV with a header row. Float cells are written in full
// precision.
func WriteCSV(w io.Writer, t *frame.Table) error {
	df, err := toDataFrame(t, true)
	if err != nil {
		return err
	}
	if err := df.WriteCSV(w); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

// SaveCSV writes t to the file at path, or to stdout when path is "" or "-".
func SaveCSV(path string, t *frame.Table) error {
	if path == "" || path == "-" {
		return WriteCSV(os.Stdout, t)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteCSV(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Describe returns gota's summary statistics (mean, median, std, min,
// quartiles, max) for every column of t.
func Describe(t *frame.Table) (dataframe.DataFrame, error) {
	df, err := ToDataFrame(t)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	summary := df.Describe()
	if summary.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to describe table: %w", summary.Err)
	}
	return summary, nil
}
