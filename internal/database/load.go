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
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/GoogleCloudPlatform/tsframe/internal/frame"
)

// LoadOptions controls how SQL values become table cells.
type LoadOptions struct {
	// NullValue is stored for SQL NULL in numeric columns.
	NullValue float64
	// TimeColumns names columns read as timestamps. Every other selected
	// column must have a numeric type.
	TimeColumns []string
}

// LoadTable reads columns of tableName into a table. With no columns given,
// every numeric column is read in table order, plus any column listed in
// opts.TimeColumns.
func (db *DB) LoadTable(ctx context.Context, tableName string, columns []string, opts LoadOptions) (*frame.Table, error) {
	if tableName == "" {
		return nil, &ErrInvalidInput{Msg: "table name cannot be empty"}
	}
	info, err := db.ListColumns(ctx, tableName)
	if err != nil {
		return nil, &ErrQueryExecution{Msg: "failed to list columns of " + tableName, Err: err}
	}
	if len(info) == 0 {
		return nil, &ErrInvalidInput{Msg: fmt.Sprintf("table %s does not exist or has no columns", tableName)}
	}

	isTime := make(map[string]bool, len(opts.TimeColumns))
	for _, c := range opts.TimeColumns {
		isTime[c] = true
	}
	types := make(map[string]string, len(info))
	for _, c := range info {
		types[c.Name] = c.DataType
	}

	if len(columns) == 0 {
		for _, c := range info {
			if isTime[c.Name] || db.Handler.IsNumericType(c.DataType) {
				columns = append(columns, c.Name)
			}
		}
		if len(columns) == 0 {
			return nil, &ErrInvalidInput{Msg: fmt.Sprintf("table %s has no numeric columns", tableName)}
		}
	} else {
		for _, c := range columns {
			dataType, ok := types[c]
			if !ok {
				return nil, &ErrInvalidInput{Msg: fmt.Sprintf("column %s not found in table %s", c, tableName)}
			}
			if !isTime[c] && !db.Handler.IsNumericType(dataType) {
				return nil, &ErrInvalidInput{Msg: fmt.Sprintf("column %s.%s has non-numeric type %s", tableName, c, dataType)}
			}
		}
	}

	query := db.selectQuery(tableName, columns)
	db.log().Debug("loading table", zap.String("table", tableName), zap.String("query", query))

	rows, err := db.Pool.QueryContext(ctx, query)
	if err != nil {
		return nil, &ErrQueryExecution{Msg: "failed to query table " + tableName, Err: err}
	}
	defer rows.Close()

	floats := make([][]float64, len(columns))
	times := make([][]time.Time, len(columns))
	dest := make([]any, len(columns))
	for i, c := range columns {
		if isTime[c] {
			dest[i] = new(sql.NullTime)
		} else {
			dest[i] = new(sql.NullFloat64)
		}
	}

	nulls := 0
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, &ErrQueryExecution{Msg: "failed to scan row of " + tableName, Err: err}
		}
		for i, d := range dest {
			switch v := d.(type) {
			case *sql.NullFloat64:
				if !v.Valid {
					nulls++
					floats[i] = append(floats[i], opts.NullValue)
					continue
				}
				floats[i] = append(floats[i], v.Float64)
			case *sql.NullTime:
				if !v.Valid {
					return nil, &ErrInvalidInput{Msg: fmt.Sprintf("NULL timestamp in %s.%s", tableName, columns[i])}
				}
				times[i] = append(times[i], v.Time.UTC())
			}
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &ErrQueryExecution{Msg: "error iterating rows of " + tableName, Err: err}
	}

	cols := make([]frame.Column, len(columns))
	for i, c := range columns {
		if isTime[c] {
			cols[i] = frame.NewTimeColumn(c, times[i]...)
		} else {
			cols[i] = frame.NewFloatColumn(c, floats[i]...)
		}
	}
	t, err := frame.New(cols...)
	if err != nil {
		return nil, err
	}
	db.log().Info("loaded table",
		zap.String("table", tableName),
		zap.Int("rows", t.NumRows()),
		zap.Int("columns", t.NumCols()),
		zap.Int("nulls", nulls))
	return t, nil
}

func (db *DB) selectQuery(tableName string, columns []string) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = db.Handler.QuoteIdentifier(c)
	}
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), db.Handler.QuoteIdentifier(tableName))
}
