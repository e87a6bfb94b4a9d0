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
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrMissingColumn    = errors.New("missing column")
	ErrMergeCardinality = errors.New("merge is not one-to-one")
	ErrColumnCollision  = errors.New("column name collision")
	ErrDuplicateColumn  = errors.New("duplicate column")
	ErrLengthMismatch   = errors.New("column length mismatch")
	ErrInvalidInput     = errors.New("invalid input")
)

// MissingColumnError reports a required column that is absent from a table.
type MissingColumnError struct {
	Column string
	Table  int // 1-based position in a merge, 0 when not applicable
}

// MergeCardinalityError reports a key value repeated within one side of a join.
type MergeCardinalityError struct {
	Key   string
	Value any
	Table int // 1-based position in a merge
}

// ColumnCollisionError reports non-key columns with the same name on both
// sides of a join.
type ColumnCollisionError struct {
	Column string
}

// DuplicateColumnError reports two columns with the same name in one table.
type DuplicateColumnError struct {
	Column string
}

// LengthMismatchError reports a column whose length differs from the table's.
type LengthMismatchError struct {
	Column    string
	Got, Want int
}

// InvalidInputError represents errors related to invalid input parameters.
type InvalidInputError struct {
	Msg string
	Err error
}

func (e *MissingColumnError) Error() string {
	if e.Table > 0 {
		return fmt.Sprintf("missing column %q in table %d", e.Column, e.Table)
	}
	return fmt.Sprintf("missing column %q", e.Column)
}

func (e *MissingColumnError) Is(target error) bool { return target == ErrMissingColumn }

func (e *MergeCardinalityError) Error() string {
	return fmt.Sprintf("merge is not one-to-one: key %q value %v appears more than once in table %d", e.Key, e.Value, e.Table)
}

func (e *MergeCardinalityError) Is(target error) bool { return target == ErrMergeCardinality }

func (e *ColumnCollisionError) Error() string {
	return fmt.Sprintf("column %q exists on both sides of the merge", e.Column)
}

func (e *ColumnCollisionError) Is(target error) bool { return target == ErrColumnCollision }

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Column)
}

func (e *DuplicateColumnError) Is(target error) bool { return target == ErrDuplicateColumn }

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("column %q has %d values, table has %d rows", e.Column, e.Got, e.Want)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

func (e *InvalidInputError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid input: %s: %v", e.Msg, e.Err)
	}
	return "invalid input: " + e.Msg
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func (e *InvalidInputError) Unwrap() error { return e.Err }
