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

// Names of the columns added by CountFlags.
const (
	FlagCountColumn      = "Flag_Count"
	FlagProportionColumn = "Flag_Proportion"
)

// CountFlags counts, for every row, the cells exactly equal to flag across
// all columns present in t, and adds a Flag_Count column and a
// Flag_Proportion column (count divided by the number of numeric columns).
// Time cells never match. When t has no numeric columns the proportion is
// NaN. Columns left by an earlier call are included in the count and then
// replaced in place.
func CountFlags(t *Table, flag float64) (*Table, error) {
	rows := t.NumRows()
	counts := make([]int64, rows)
	numeric := 0
	for _, c := range t.cols {
		if !c.Numeric() {
			continue
		}
		numeric++
		for i := 0; i < rows; i++ {
			if c.Float(i) == flag {
				counts[i]++
			}
		}
	}

	proportions := make([]float64, rows)
	denom := float64(numeric)
	for i, n := range counts {
		proportions[i] = float64(n) / denom
	}

	out := t
	for _, c := range []Column{
		NewIntColumn(FlagCountColumn, counts...),
		NewFloatColumn(FlagProportionColumn, proportions...),
	} {
		var err error
		if out.Has(c.Name) {
			out, err = out.Replace(c)
		} else {
			out, err = out.Append(c)
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
