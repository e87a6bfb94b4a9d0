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
	"fmt"
)

// ErrDatabaseConnection represents errors that occur while opening or
// pinging a connection pool.
type ErrDatabaseConnection struct {
	Msg string
	Err error
}

// ErrQueryExecution represents errors that occur while reading a table.
type ErrQueryExecution struct {
	Msg string
	Err error
}

// ErrInvalidInput represents bad table or column selections.
type ErrInvalidInput struct {
	Msg string
	Err error
}

// ErrCancelled is returned when the context ends during a retry loop.
type ErrCancelled struct {
	Msg string
	Err error
}

func (e *ErrDatabaseConnection) Error() string {
	return fmt.Sprintf("database connection error: %s: %v", e.Msg, e.Err)
}

func (e *ErrDatabaseConnection) Unwrap() error { return e.Err }

func (e *ErrQueryExecution) Error() string {
	return fmt.Sprintf("query execution error: %s: %v", e.Msg, e.Err)
}

func (e *ErrQueryExecution) Unwrap() error { return e.Err }

func (e *ErrInvalidInput) Error() string {
	if e.Err == nil {
		return "invalid input error: " + e.Msg
	}
	return fmt.Sprintf("invalid input error: %s: %v", e.Msg, e.Err)
}

func (e *ErrInvalidInput) Unwrap() error { return e.Err }

func (e *ErrCancelled) Error() string {
	return fmt.Sprintf("operation cancelled: %s: %v", e.Msg, e.Err)
}

func (e *ErrCancelled) Unwrap() error { return e.Err }
