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

// Package frame provides a small column-oriented table and the operations
// used to post-process measurement files: merging on a key column, sorting
// columns and counting flag values.
package frame

import (
	"fmt"
	"time"
)

// Kind identifies the element type held by a Column.
type Kind int

const (
	Float Kind = iota
	Int
	Time
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case Time:
		return "time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Column is a named, homogeneous sequence of values. Exactly one of the
// value slices is used, selected by Kind.
type Column struct {
	Name   string
	Kind   Kind
	Floats []float64
	Ints   []int64
	Times  []time.Time
}

// NewFloatColumn returns a Float column holding values.
func NewFloatColumn(name string, values ...float64) Column {
	if values == nil {
		values = []float64{}
	}
	return Column{Name: name, Kind: Float, Floats: values}
}

// NewIntColumn returns an Int column holding values.
func NewIntColumn(name string, values ...int64) Column {
	if values == nil {
		values = []int64{}
	}
	return Column{Name: name, Kind: Int, Ints: values}
}

// NewTimeColumn returns a Time column holding values.
func NewTimeColumn(name string, values ...time.Time) Column {
	if values == nil {
		values = []time.Time{}
	}
	return Column{Name: name, Kind: Time, Times: values}
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.Kind {
	case Int:
		return len(c.Ints)
	case Time:
		return len(c.Times)
	default:
		return len(c.Floats)
	}
}

// Numeric reports whether the column holds numbers.
func (c Column) Numeric() bool {
	return c.Kind == Float || c.Kind == Int
}

// Float returns the i-th value of a numeric column as a float64.
// It panics for Time columns.
func (c Column) Float(i int) float64 {
	switch c.Kind {
	case Float:
		return c.Floats[i]
	case Int:
		return float64(c.Ints[i])
	default:
		panic(fmt.Sprintf("frame: column %q of kind %s is not numeric", c.Name, c.Kind))
	}
}

// Value returns the i-th value boxed in an interface.
func (c Column) Value(i int) any {
	switch c.Kind {
	case Int:
		return c.Ints[i]
	case Time:
		return c.Times[i]
	default:
		return c.Floats[i]
	}
}

// Rename returns a copy of the column under a new name. Values are shared.
func (c Column) Rename(name string) Column {
	c.Name = name
	return c
}

// take returns a new column holding the values at the given row indices.
func (c Column) take(rows []int) Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	switch c.Kind {
	case Int:
		out.Ints = make([]int64, len(rows))
		for i, r := range rows {
			out.Ints[i] = c.Ints[r]
		}
	case Time:
		out.Times = make([]time.Time, len(rows))
		for i, r := range rows {
			out.Times[i] = c.Times[r]
		}
	default:
		out.Floats = make([]float64, len(rows))
		for i, r := range rows {
			out.Floats[i] = c.Floats[r]
		}
	}
	return out
}

// Table is an ordered set of equally long, uniquely named columns.
// A Table is never modified after construction; operations return new tables
// that may share column storage with their inputs.
type Table struct {
	cols  []Column
	index map[string]int
	rows  int
}

// New builds a table from cols, validating that names are unique and
// non-empty and that all columns have the same length.
func New(cols ...Column) (*Table, error) {
	t := &Table{
		cols:  make([]Column, 0, len(cols)),
		index: make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if c.Name == "" {
			return nil, &InvalidInputError{Msg: fmt.Sprintf("column %d has an empty name", i)}
		}
		if _, dup := t.index[c.Name]; dup {
			return nil, &DuplicateColumnError{Column: c.Name}
		}
		if i == 0 {
			t.rows = c.Len()
		} else if c.Len() != t.rows {
			return nil, &LengthMismatchError{Column: c.Name, Got: c.Len(), Want: t.rows}
		}
		t.index[c.Name] = len(t.cols)
		t.cols = append(t.cols, c)
	}
	return t, nil
}

// MustNew is like New but panics on error. It is intended for tests and
// fixed literals.
func MustNew(cols ...Column) *Table {
	t, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Columns returns a copy of the column list.
func (t *Table) Columns() []Column {
	return append([]Column(nil), t.cols...)
}

// Has reports whether a column named name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column returns the column named name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// ColumnAt returns the i-th column.
func (t *Table) ColumnAt(i int) Column { return t.cols[i] }

// Require returns the named column or a MissingColumnError.
func (t *Table) Require(name string) (Column, error) {
	c, ok := t.Column(name)
	if !ok {
		return Column{}, &MissingColumnError{Column: name}
	}
	return c, nil
}

// Select returns a table holding the named columns in the given order.
func (t *Table) Select(names ...string) (*Table, error) {
	cols := make([]Column, 0, len(names))
	for _, name := range names {
		c, err := t.Require(name)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}
	return New(cols...)
}

// Drop returns a table without the named columns. Names not present in t
// are ignored.
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, name := range names {
		drop[name] = true
	}
	cols := make([]Column, 0, len(t.cols))
	for _, c := range t.cols {
		if !drop[c.Name] {
			cols = append(cols, c)
		}
	}
	if len(cols) == len(t.cols) {
		return t
	}
	return MustNew(cols...)
}

// Append returns a new table with c added after the existing columns.
func (t *Table) Append(c Column) (*Table, error) {
	return t.Insert(len(t.cols), c)
}

// Insert returns a new table with c placed at position pos.
func (t *Table) Insert(pos int, c Column) (*Table, error) {
	if pos < 0 || pos > len(t.cols) {
		return nil, &InvalidInputError{Msg: fmt.Sprintf("insert position %d out of range [0, %d]", pos, len(t.cols))}
	}
	cols := make([]Column, 0, len(t.cols)+1)
	cols = append(cols, t.cols[:pos]...)
	cols = append(cols, c)
	cols = append(cols, t.cols[pos:]...)
	return t.rebuild(cols, c)
}

// Replace returns a new table where the column named c.Name is swapped for c,
// keeping its position.
func (t *Table) Replace(c Column) (*Table, error) {
	i, ok := t.index[c.Name]
	if !ok {
		return nil, &MissingColumnError{Column: c.Name}
	}
	cols := t.Columns()
	cols[i] = c
	return t.rebuild(cols, c)
}

// rebuild validates cols and, for an otherwise empty table, lets the added
// column define the row count.
func (t *Table) rebuild(cols []Column, added Column) (*Table, error) {
	if len(cols) == 1 {
		return New(cols...)
	}
	if added.Len() != t.rows {
		return nil, &LengthMismatchError{Column: added.Name, Got: added.Len(), Want: t.rows}
	}
	return New(cols...)
}

// Take returns a new table with the rows at the given indices.
func (t *Table) Take(rows []int) (*Table, error) {
	for _, r := range rows {
		if r < 0 || r >= t.rows {
			return nil, &InvalidInputError{Msg: fmt.Sprintf("row %d out of range [0, %d)", r, t.rows)}
		}
	}
	cols := make([]Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.take(rows)
	}
	return New(cols...)
}
