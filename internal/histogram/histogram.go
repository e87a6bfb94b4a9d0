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

// Package histogram bins a numeric column into equal-width buckets and
// renders the result.
package histogram

import (
	"fmt"
	"math"

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
)

// DefaultBins is the number of buckets used by the CLI.
const DefaultBins = 10

// Bin is one bucket covering [Lo, Hi). The last bin of a Histogram also
// includes Hi.
type Bin struct {
	Lo, Hi float64
	Count  int
}

// Histogram holds the buckets computed for one column.
type Histogram struct {
	Column string
	Bins   []Bin
	// Total is the number of finite values that were binned.
	Total int
}

// Compute splits the finite values into n equal-width bins spanning their
// minimum and maximum. A single distinct value widens the range by 0.5 on
// each side, and no values give the range [0, 1].
func Compute(values []float64, n int) (Histogram, error) {
	if n <= 0 {
		return Histogram{}, &frame.InvalidInputError{Msg: fmt.Sprintf("bin count must be positive, got %d", n)}
	}

	lo, hi := math.Inf(1), math.Inf(-1)
	finite := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		finite = append(finite, v)
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	switch {
	case len(finite) == 0:
		lo, hi = 0, 1
	case lo == hi:
		lo, hi = lo-0.5, hi+0.5
	}

	// hi-lo can overflow; edges and indexes never compute it.
	fn := float64(n)
	width := hi/fn - lo/fn
	bins := make([]Bin, n)
	for i := range bins {
		bins[i].Lo = edge(lo, hi, float64(i)/fn)
		bins[i].Hi = edge(lo, hi, float64(i+1)/fn)
	}
	bins[0].Lo = lo
	bins[n-1].Hi = hi

	for _, v := range finite {
		q := v/width - lo/width
		i := n - 1
		if q < fn {
			i = int(q)
		}
		i = max(0, min(i, n-1))
		// Rounding can put a value sitting on an edge one bin off.
		if i > 0 && v < bins[i].Lo {
			i--
		} else if i < n-1 && v >= bins[i+1].Lo {
			i++
		}
		bins[i].Count++
	}
	return Histogram{Bins: bins, Total: len(finite)}, nil
}

// edge returns the point at fraction f of [lo, hi].
func edge(lo, hi, f float64) float64 {
	return lo*(1-f) + hi*f
}

// FromColumn computes a histogram of the named numeric column of t.
func FromColumn(t *frame.Table, name string, n int) (Histogram, error) {
	c, err := t.Require(name)
	if err != nil {
		return Histogram{}, err
	}
	if !c.Numeric() {
		return Histogram{}, &frame.InvalidInputError{Msg: fmt.Sprintf("column %q is %s, want a numeric column", name, c.Kind)}
	}
	values := make([]float64, c.Len())
	for i := range values {
		values[i] = c.Float(i)
	}
	h, err := Compute(values, n)
	if err != nil {
		return Histogram{}, err
	}
	h.Column = name
	return h, nil
}

// Counts returns the count of every bin in order.
func (h Histogram) Counts() []float64 {
	counts := make([]float64, len(h.Bins))
	for i, b := range h.Bins {
		counts[i] = float64(b.Count)
	}
	return counts
}
