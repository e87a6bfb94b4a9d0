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
package hdftext

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
)

func TestParseFile(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		wantNames []string
		wantCols  map[string][]float64
	}{
		{
			name:      "Simple data",
			content:   "BEGIN DATA\nCol1 Col2\n1.0 2.0\n3.0 4.0",
			wantNames: []string{"Col1", "Col2"},
			wantCols:  map[string][]float64{"Col1": {1, 3}, "Col2": {2, 4}},
		},
		{
			name:      "Preamble before marker",
			content:   "Col1 Col2\nBEGIN DATA\nCol1 Col2\n1.0 2.0\n3.0 4.0",
			wantNames: []string{"Col1", "Col2"},
			wantCols:  map[string][]float64{"Col1": {1, 3}, "Col2": {2, 4}},
		},
		{
			name:      "No data rows",
			content:   "BEGIN DATA\nCol1 Col2",
			wantNames: []string{"Col1", "Col2"},
			wantCols:  map[string][]float64{"Col1": {}, "Col2": {}},
		},
		{
			name:      "Tabs, repeated spaces, trailing newline and blank lines",
			content:   "instrument: radiometer\nBEGIN DATA\n year\tday  hr  T \n2020 1 0 -999\n\n2020\t1\t1   1.5e2\n",
			wantNames: []string{"year", "day", "hr", "T"},
			wantCols: map[string][]float64{
				"year": {2020, 2020}, "day": {1, 1}, "hr": {0, 1}, "T": {-999, 150},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "sub")
			require.NoError(t, os.Mkdir(dir, 0o755))
			path := filepath.Join(dir, "hdf_data.txt")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			got, err := ParseFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, got.Names())
			for name, want := range tt.wantCols {
				c, ok := got.Column(name)
				require.True(t, ok, "column %s", name)
				assert.Equal(t, frame.Float, c.Kind)
				assert.Equal(t, want, c.Floats, "column %s", name)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantErr  error
		wantLine int
	}{
		{"Missing marker", "Col1 Col2\n1 2\n", ErrMissingMarker, 0},
		{"Marker with surrounding space", " BEGIN DATA\nA\n1\n", ErrMissingMarker, 0},
		{"Lowercase marker", "begin data\nA\n1\n", ErrMissingMarker, 0},
		{"Empty input", "", ErrMissingMarker, 0},
		{"Marker is last line", "BEGIN DATA\n", ErrMalformedRow, 2},
		{"Blank header", "BEGIN DATA\n   \n1 2\n", ErrMalformedRow, 2},
		{"Too few values", "BEGIN DATA\nA B\n1 2\n3\n", ErrMalformedRow, 4},
		{"Too many values", "x\nBEGIN DATA\nA B\n1 2 3\n", ErrMalformedRow, 4},
		{"Non-numeric value", "BEGIN DATA\nA B\n1 n/a\n", ErrMalformedRow, 3},
		{"Duplicate header", "BEGIN DATA\nA A\n1 2\n", frame.ErrDuplicateColumn, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)

			var rowErr *MalformedRowError
			if tt.wantLine > 0 {
				require.True(t, errors.As(err, &rowErr))
				assert.Equal(t, tt.wantLine, rowErr.Line)
			}
		})
	}
}

func TestParseFileMissing(t *testing.T) {
	_, err := ParseFile(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
