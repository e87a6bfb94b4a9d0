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
package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tsframe/internal/config"
	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
	"github.com/GoogleCloudPlatform/tsframe/internal/hdftext"
)

const tempFile = `station: north
units: K
BEGIN DATA
year day hr temp
2020 1 0 1.5
2020 1 1 -999
`

const windFile = `BEGIN DATA
year day hr wind
2020 1 1 3
2020 1 0 -999
`

func writeInputs(t *testing.T, contents ...string) []string {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, len(contents))
	for i, c := range contents {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".txt")
		require.NoError(t, os.WriteFile(paths[i], []byte(c), 0o600))
	}
	return paths
}

func TestParseFiles(t *testing.T) {
	paths := writeInputs(t, tempFile, windFile)
	tables, err := ParseFiles(zap.NewNop(), paths)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, []string{"year", "day", "hr", "temp"}, tables[0].Names())

	bad := writeInputs(t, "no marker here\n")
	_, err = ParseFiles(zap.NewNop(), bad)
	assert.True(t, errors.Is(err, hdftext.ErrMissingMarker))
}

func TestRunOnDatetimeKey(t *testing.T) {
	tables, err := ParseFiles(zap.NewNop(), writeInputs(t, tempFile, windFile))
	require.NoError(t, err)

	res, err := Run(zap.NewNop(), tables, Options{
		Key:         "datetime",
		AddDatetime: true,
		CountFlags:  true,
		FlagValue:   -999,
		Bins:        2,
	})
	require.NoError(t, err)

	tbl := res.Table
	assert.Equal(t, []string{"datetime", "Flag_Count", "Flag_Proportion", "day", "hr", "temp", "wind", "year"}, tbl.Names())

	dt, _ := tbl.Column("datetime")
	assert.Equal(t, []time.Time{
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2020, 1, 1, 1, 0, 0, 0, time.UTC),
	}, dt.Times)

	wind, _ := tbl.Column("wind")
	assert.Equal(t, []float64{-999, 3}, wind.Floats)

	counts, _ := tbl.Column(frame.FlagCountColumn)
	assert.Equal(t, []int64{1, 1}, counts.Ints)

	require.NotNil(t, res.Histogram)
	assert.Equal(t, 2, res.Histogram.Total)
}

func TestRunWithoutFlagCounting(t *testing.T) {
	tables, err := ParseFiles(zap.NewNop(), writeInputs(t, tempFile))
	require.NoError(t, err)

	res, err := Run(zap.NewNop(), tables, Options{Key: "hr"})
	require.NoError(t, err)
	assert.Equal(t, []string{"hr", "day", "temp", "year"}, res.Table.Names())
	assert.Nil(t, res.Histogram)
}

func TestCombine(t *testing.T) {
	t.Run("Datetime added after merge on another key", func(t *testing.T) {
		a := frame.MustNew(
			frame.NewFloatColumn("year", 2021, 2021),
			frame.NewFloatColumn("day", 32, 33),
			frame.NewFloatColumn("hr", 0, 0),
		)
		b := frame.MustNew(
			frame.NewFloatColumn("day", 33, 32),
			frame.NewFloatColumn("rh", 0.5, 0.7),
		)
		got, err := Combine([]*frame.Table{a, b}, Options{Key: "day", AddDatetime: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"datetime", "day", "year", "hr", "rh"}, got.Names())
		dt, _ := got.Column("datetime")
		assert.Equal(t, time.Date(2021, 2, 1, 0, 0, 0, 0, time.UTC), dt.Times[0])
	})

	t.Run("Collision is rejected by default", func(t *testing.T) {
		a := frame.MustNew(frame.NewFloatColumn("k", 1), frame.NewFloatColumn("v", 1))
		_, err := Combine([]*frame.Table{a, a}, Options{Key: "k"})
		assert.True(t, errors.Is(err, frame.ErrColumnCollision))

		got, err := Combine([]*frame.Table{a, a}, Options{Key: "k", Collision: frame.CollisionSuffix})
		require.NoError(t, err)
		assert.Equal(t, []string{"k", "v_x", "v_y"}, got.Names())
	})

	t.Run("No tables", func(t *testing.T) {
		_, err := Combine(nil, Options{Key: "k"})
		assert.True(t, errors.Is(err, frame.ErrInvalidInput))
	})

	t.Run("Bad datetime input names the table", func(t *testing.T) {
		a := frame.MustNew(frame.NewFloatColumn("year", 2020), frame.NewFloatColumn("day", 1), frame.NewFloatColumn("hr", 0))
		b := frame.MustNew(frame.NewFloatColumn("year", 2020), frame.NewFloatColumn("day", 1))
		_, err := Combine([]*frame.Table{a, b}, Options{Key: "datetime", AddDatetime: true})
		require.Error(t, err)
		assert.True(t, errors.Is(err, frame.ErrMissingColumn))
		assert.Contains(t, err.Error(), "table 2")
	})
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.Default().Pipeline
	opts, err := OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, "datetime", opts.Key)
	assert.True(t, opts.CountFlags)
	assert.Equal(t, 0, opts.Bins)

	cfg.Histogram = "flags.png"
	cfg.OnCollision = "suffix"
	opts, err = OptionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, 10, opts.Bins)
	assert.Equal(t, frame.CollisionSuffix, opts.Collision)

	cfg.OnCollision = "overwrite"
	_, err = OptionsFromConfig(cfg)
	assert.Error(t, err)
}
