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
package utils

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// TableSpec names a SQL table and, optionally, the columns to read from it.
type TableSpec struct {
	Name    string
	Columns []string // nil means every numeric column
}

// ExpandInputs resolves glob patterns in paths. Patterns are expanded in the
// order given and each pattern's matches are sorted; a path without glob
// characters is kept as is even when it does not exist, so that the caller
// reports the open error. A pattern that matches nothing is an error.
func ExpandInputs(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !strings.ContainsAny(p, "*?[") {
			out = append(out, p)
			continue
		}
		matches, err := filepath.Glob(p)
		if err != nil {
			return nil, fmt.Errorf("invalid input pattern %q: %w", p, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("input pattern %q matched no files", p)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no input files given")
	}
	return out, nil
}

// GetDefaultOutputFilePath returns the file written by commandName when no
// output flag is given. The name is derived from the first input.
func GetDefaultOutputFilePath(firstInput, commandName string) string {
	base := strings.TrimSuffix(filepath.Base(firstInput), filepath.Ext(firstInput))
	switch commandName {
	case "histogram":
		return fmt.Sprintf("%s_histogram.png", base)
	default: // merge, count-flags, process, load-sql
		return fmt.Sprintf("%s_%s.csv", base, strings.ReplaceAll(commandName, "-", "_"))
	}
}

// ParseTablesFlag parses "table1[col1,col2],table2" into table specs, keeping
// the order in which tables are listed.
func ParseTablesFlag(tablesFlag string) ([]TableSpec, error) {
	var specs []TableSpec
	if tablesFlag == "" {
		return specs, nil
	}

	// strip any whitespace
	tablesFlag = strings.ReplaceAll(tablesFlag, " ", "")

	seen := make(map[string]bool)
	for _, part := range SplitOutsideBrackets(tablesFlag) {
		if part == "" {
			continue
		}

		spec := TableSpec{Name: part}
		bracketStart := strings.Index(part, "[")
		if bracketStart != -1 {
			bracketEnd := strings.Index(part, "]")
			if bracketEnd == -1 || bracketEnd < bracketStart {
				return nil, fmt.Errorf("missing closing bracket in: %s", part)
			}
			if bracketEnd != len(part)-1 {
				return nil, fmt.Errorf("unexpected text after closing bracket in: %s", part)
			}

			spec.Name = part[:bracketStart]
			for _, col := range strings.Split(part[bracketStart+1:bracketEnd], ",") {
				if col == "" {
					return nil, fmt.Errorf("empty column name in: %s", part)
				}
				spec.Columns = append(spec.Columns, col)
			}
		} else if strings.Contains(part, "]") {
			return nil, fmt.Errorf("unexpected closing bracket in: %s", part)
		}

		if spec.Name == "" {
			return nil, fmt.Errorf("missing table name in: %s", part)
		}
		if seen[spec.Name] {
			return nil, fmt.Errorf("table %s listed more than once", spec.Name)
		}
		seen[spec.Name] = true
		specs = append(specs, spec)
	}

	return specs, nil
}

// SplitOutsideBrackets splits s on commas that are not within square brackets.
func SplitOutsideBrackets(s string) []string {
	var result []string
	var current strings.Builder
	inBrackets := false

	for _, char := range s {
		switch char {
		case '[':
			inBrackets = true
			current.WriteRune(char)
		case ']':
			inBrackets = false
			current.WriteRune(char)
		case ',':
			if inBrackets {
				current.WriteRune(char)
			} else {
				result = append(result, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(char)
		}
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}

	return result
}
