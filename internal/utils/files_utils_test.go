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
package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTablesFlag(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []TableSpec
		wantErr bool
	}{
		{name: "Empty", in: "", want: nil},
		{name: "Single table", in: "obs", want: []TableSpec{{Name: "obs"}}},
		{
			name: "Tables with columns keep order",
			in:   "wind[datetime, speed],obs,temp[datetime,t2m]",
			want: []TableSpec{
				{Name: "wind", Columns: []string{"datetime", "speed"}},
				{Name: "obs"},
				{Name: "temp", Columns: []string{"datetime", "t2m"}},
			},
		},
		{name: "Trailing comma", in: "obs,", want: []TableSpec{{Name: "obs"}}},
		{name: "Missing closing bracket", in: "obs[a,b", wantErr: true},
		{name: "Text after bracket", in: "obs[a]x", wantErr: true},
		{name: "Stray closing bracket", in: "obs]", wantErr: true},
		{name: "Empty column", in: "obs[a,,b]", wantErr: true},
		{name: "Missing table name", in: "[a,b]", wantErr: true},
		{name: "Duplicate table", in: "obs,obs[a]", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTablesFlag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitOutsideBrackets(t *testing.T) {
	assert.Equal(t, []string{"a[1,2]", "b", "c[3]"}, SplitOutsideBrackets("a[1,2],b,c[3]"))
	assert.Nil(t, SplitOutsideBrackets(""))
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.txt", "a.txt", "c.dat"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}

	got, err := ExpandInputs([]string{filepath.Join(dir, "*.txt"), "literal.txt"})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		"literal.txt",
	}, got)

	_, err = ExpandInputs([]string{filepath.Join(dir, "*.csv")})
	assert.Error(t, err)

	_, err = ExpandInputs([]string{" "})
	assert.Error(t, err)
}

func TestGetDefaultOutputFilePath(t *testing.T) {
	assert.Equal(t, "obs_histogram.png", GetDefaultOutputFilePath("data/obs.txt", "histogram"))
	assert.Equal(t, "obs_count_flags.csv", GetDefaultOutputFilePath("data/obs.txt", "count-flags"))
	assert.Equal(t, "climate_load_sql.csv", GetDefaultOutputFilePath("climate", "load-sql"))
}
