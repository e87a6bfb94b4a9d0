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

// Package pipeline chains the table operations used by the CLI: parse,
// datetime assembly, merge, flag counting, column sorting and histogram.
package pipeline

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tsframe/internal/config"
	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
	"github.com/GoogleCloudPlatform/tsframe/internal/hdftext"
	"github.com/GoogleCloudPlatform/tsframe/internal/histogram"
	"github.com/GoogleCloudPlatform/tsframe/internal/timeconv"
)

// Options selects the steps run by Run.
type Options struct {
	Key         string
	AddDatetime bool
	Collision   frame.CollisionPolicy
	CountFlags  bool
	FlagValue   float64
	Bins        int // histogram bins, 0 skips the histogram
}

// Result holds the products of Run.
type Result struct {
	Table     *frame.Table
	Histogram *histogram.Histogram
}

// OptionsFromConfig maps the pipeline config section to Options. The
// histogram is computed only when an output path is configured.
func OptionsFromConfig(cfg config.PipelineConfig) (Options, error) {
	policy, err := frame.ParseCollisionPolicy(cfg.OnCollision)
	if err != nil {
		return Options{}, err
	}
	opts := Options{
		Key:         cfg.Key,
		AddDatetime: cfg.AddDatetime,
		Collision:   policy,
		CountFlags:  true,
		FlagValue:   cfg.FlagValue,
	}
	if cfg.Histogram != "" {
		opts.Bins = cfg.Bins
	}
	return opts, nil
}

// ParseFiles parses every path in order.
func ParseFiles(logger *zap.Logger, paths []string) ([]*frame.Table, error) {
	tables := make([]*frame.Table, 0, len(paths))
	for _, p := range paths {
		t, err := hdftext.ParseFile(p)
		if err != nil {
			return nil, err
		}
		logger.Debug("parsed input",
			zap.String("path", p),
			zap.Int("rows", t.NumRows()),
			zap.Strings("columns", t.Names()))
		tables = append(tables, t)
	}
	return tables, nil
}

// Combine merges tables on opts.Key.
//
// With AddDatetime set, the datetime column is built for every input before
// the merge when it is the key, and once after the merge otherwise. When
// merging on the built datetime, the year, day and hour columns of all but
// the first input are dropped since the key determines them.
func Combine(tables []*frame.Table, opts Options) (*frame.Table, error) {
	if len(tables) == 0 {
		return nil, &frame.InvalidInputError{Msg: "no input tables"}
	}
	keyIsDatetime := opts.AddDatetime && opts.Key == timeconv.DatetimeColumn

	inputs := tables
	if keyIsDatetime {
		inputs = make([]*frame.Table, len(tables))
		for i, t := range tables {
			withDT, err := timeconv.AddDatetimeColumn(t)
			if err != nil {
				return nil, fmt.Errorf("table %d: %w", i+1, err)
			}
			if i > 0 {
				withDT = withDT.Drop(timeconv.YearColumn, timeconv.DayColumn, timeconv.HourColumn)
			}
			inputs[i] = withDT
		}
	}

	merged, err := frame.MergeWith(inputs, opts.Key, opts.Collision)
	if err != nil {
		return nil, err
	}

	if opts.AddDatetime && !keyIsDatetime {
		if merged, err = timeconv.AddDatetimeColumn(merged); err != nil {
			return nil, err
		}
	}
	return merged, nil
}

// Run combines tables, counts flags when opts.CountFlags is set, sorts the
// columns with the key first and computes the flag histogram when opts.Bins
// is positive.
func Run(logger *zap.Logger, tables []*frame.Table, opts Options) (*Result, error) {
	t, err := Combine(tables, opts)
	if err != nil {
		return nil, err
	}
	logger.Info("merged tables",
		zap.Int("inputs", len(tables)),
		zap.String("key", opts.Key),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()))

	if opts.CountFlags {
		if t, err = frame.CountFlags(t, opts.FlagValue); err != nil {
			return nil, err
		}
	}
	if t, err = frame.SortColumns(t, opts.Key); err != nil {
		return nil, err
	}

	res := &Result{Table: t}
	if opts.CountFlags && opts.Bins > 0 {
		h, err := histogram.FromColumn(res.Table, frame.FlagCountColumn, opts.Bins)
		if err != nil {
			return nil, err
		}
		logger.Info("computed flag histogram", zap.Int("values", h.Total), zap.Int("bins", len(h.Bins)))
		res.Histogram = &h
	}
	return res, nil
}
