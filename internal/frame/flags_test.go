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
package frame

import (
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeAt(day int) time.Time {
	return time.Date(2020, 1, day, 0, 0, 0, 0, time.UTC)
}

func TestCountFlags(t *testing.T) {
	tests := []struct {
		name            string
		input           *Table
		flag            float64
		wantCounts      []int64
		wantProportions []float64
	}{
		{
			name:            "Integer flag",
			input:           MustNew(NewIntColumn("A", 1, 2, 3), NewIntColumn("B", 3, 2, 1)),
			flag:            2,
			wantCounts:      []int64{0, 2, 0},
			wantProportions: []float64{0, 1, 0},
		},
		{
			name:            "Float flag",
			input:           MustNew(NewFloatColumn("A", 0.1, 0.2, 0.3), NewFloatColumn("B", 0.3, 0.2, 0.1)),
			flag:            0.2,
			wantCounts:      []int64{0, 2, 0},
			wantProportions: []float64{0, 1, 0},
		},
		{
			name:            "Time columns never match and are not numeric",
			input:           MustNew(NewFloatColumn("A", -999, 1), NewTimeColumn("t", timeAt(1), timeAt(2)), NewFloatColumn("B", -999, -999)),
			flag:            -999,
			wantCounts:      []int64{2, 1},
			wantProportions: []float64{1, 0.5},
		},
		{
			name:            "Empty table",
			input:           MustNew(NewFloatColumn("A"), NewFloatColumn("B")),
			flag:            1,
			wantCounts:      []int64{},
			wantProportions: []float64{},
		},
		{
			name:            "No numeric columns",
			input:           MustNew(NewTimeColumn("t", timeAt(1))),
			flag:            1,
			wantCounts:      []int64{0},
			wantProportions: []float64{math.NaN()},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountFlags(tt.input, tt.flag)
			require.NoError(t, err)

			wantNames := append(tt.input.Names(), FlagCountColumn, FlagProportionColumn)
			assert.Equal(t, wantNames, got.Names())

			counts, _ := got.Column(FlagCountColumn)
			props, _ := got.Column(FlagProportionColumn)
			assert.Equal(t, Int, counts.Kind)
			assert.Equal(t, tt.wantCounts, counts.Ints)
			if diff := cmp.Diff(tt.wantProportions, props.Floats, cmpopts.EquateNaNs()); diff != "" {
				t.Errorf("Flag_Proportion mismatch (-want +got):\n%s", diff)
			}
			assert.False(t, tt.input.Has(FlagCountColumn), "input must not change")
		})
	}
}

func TestCountFlagsTwice(t *testing.T) {
	tbl := MustNew(NewIntColumn("A", 0, 5), NewIntColumn("B", 0, 0))

	first, err := CountFlags(tbl, 0)
	require.NoError(t, err)
	counts, _ := first.Column(FlagCountColumn)
	assert.Equal(t, []int64{2, 1}, counts.Ints)

	// The second call sees A, B, Flag_Count and Flag_Proportion.
	second, err := CountFlags(first, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", FlagCountColumn, FlagProportionColumn}, second.Names())

	counts, _ = second.Column(FlagCountColumn)
	props, _ := second.Column(FlagProportionColumn)
	assert.Equal(t, []int64{2, 1}, counts.Ints)
	assert.Equal(t, []float64{0.5, 0.25}, props.Floats)
}
