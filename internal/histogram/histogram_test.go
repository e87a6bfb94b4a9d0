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
package histogram

import (
	"bytes"
	"errors"
	"image/png"
	"math"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
)

func counts(h Histogram) []int {
	out := make([]int, len(h.Bins))
	for i, b := range h.Bins {
		out[i] = b.Count
	}
	return out
}

func TestCompute(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		bins       int
		wantCounts []int
		wantLo     float64
		wantHi     float64
	}{
		{
			name:       "Counts 0 to 9 in ten bins",
			values:     []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9},
			bins:       10,
			wantCounts: []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
			wantLo:     0,
			wantHi:     9,
		},
		{
			name:       "Maximum falls in the last bin",
			values:     []float64{0, 0, 0, 2},
			bins:       2,
			wantCounts: []int{3, 1},
			wantLo:     0,
			wantHi:     2,
		},
		{
			name:       "Single distinct value",
			values:     []float64{3, 3, 3},
			bins:       10,
			wantCounts: []int{0, 0, 0, 0, 0, 3, 0, 0, 0, 0},
			wantLo:     2.5,
			wantHi:     3.5,
		},
		{
			name:       "No values",
			values:     nil,
			bins:       4,
			wantCounts: []int{0, 0, 0, 0},
			wantLo:     0,
			wantHi:     1,
		},
		{
			name:       "Span wider than the largest float64",
			values:     []float64{-1e308, 0, 1e308},
			bins:       10,
			wantCounts: []int{1, 0, 0, 0, 0, 1, 0, 0, 0, 1},
			wantLo:     -1e308,
			wantHi:     1e308,
		},
		{
			name:       "Non-finite values are ignored",
			values:     []float64{math.NaN(), 1, math.Inf(1), 2},
			bins:       2,
			wantCounts: []int{1, 1},
			wantLo:     1,
			wantHi:     2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := Compute(tt.values, tt.bins)
			require.NoError(t, err)
			require.Len(t, h.Bins, tt.bins)
			assert.Equal(t, tt.wantCounts, counts(h))
			assert.InDelta(t, tt.wantLo, h.Bins[0].Lo, 1e-12)
			assert.InDelta(t, tt.wantHi, h.Bins[len(h.Bins)-1].Hi, 1e-12)

			total := 0
			for _, c := range counts(h) {
				total += c
			}
			assert.Equal(t, h.Total, total)
		})
	}
}

func TestComputeInvalidBins(t *testing.T) {
	_, err := Compute([]float64{1}, 0)
	assert.True(t, errors.Is(err, frame.ErrInvalidInput))
}

func TestFromColumn(t *testing.T) {
	tbl := frame.MustNew(
		frame.NewIntColumn(frame.FlagCountColumn, 0, 0, 1, 2, 2, 2),
		frame.NewTimeColumn("t", make([]time.Time, 6)...),
	)

	h, err := FromColumn(tbl, frame.FlagCountColumn, 2)
	require.NoError(t, err)
	assert.Equal(t, frame.FlagCountColumn, h.Column)
	assert.Equal(t, []int{2, 4}, counts(h))
	assert.Equal(t, []float64{2, 4}, h.Counts())

	_, err = FromColumn(tbl, "missing", 2)
	assert.True(t, errors.Is(err, frame.ErrMissingColumn))

	_, err = FromColumn(tbl, "t", 2)
	assert.True(t, errors.Is(err, frame.ErrInvalidInput))
}

func TestRenderOnCanvas(t *testing.T) {
	h, err := Compute([]float64{0, 1, 1, 2, 2, 2, 3}, DefaultBins)
	require.NoError(t, err)

	img := vgimg.New(4*vg.Inch, 3*vg.Inch)
	require.NoError(t, Render(h, draw.New(img), DefaultStyle()))

	_, err = NewPlot(Histogram{}, DefaultStyle())
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	h, err := Compute([]float64{0, 1, 1, 2}, 4)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, h, 3*vg.Inch, 2*vg.Inch, DefaultStyle()))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, 0)
	assert.Greater(t, cfg.Height, 0)

	path := filepath.Join(t.TempDir(), "hist.png")
	require.NoError(t, SavePNG(path, h, DefaultWidth, DefaultHeight, DefaultStyle()))
}

func TestASCII(t *testing.T) {
	h, err := Compute([]float64{0, 1, 1, 2, 2, 2, 3}, 4)
	require.NoError(t, err)
	h.Column = frame.FlagCountColumn

	out := ASCII(h, 5)
	assert.True(t, strings.Contains(out, "Flag_Count: 7 values in 4 bins"), out)
}
