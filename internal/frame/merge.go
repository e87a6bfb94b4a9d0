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
	"fmt"
	"math"
	"sort"
	"strings"
)

// CollisionPolicy decides what Merge does when a non-key column name exists
// on both sides of a join step.
type CollisionPolicy int

const (
	// CollisionReject fails the merge with a ColumnCollisionError.
	CollisionReject CollisionPolicy = iota
	// CollisionSuffix renames the colliding columns to <name>_x on the left
	// and <name>_y on the right.
	CollisionSuffix
)

const (
	leftSuffix  = "_x"
	rightSuffix = "_y"
)

// ParseCollisionPolicy maps "reject" or "suffix" to a CollisionPolicy.
func ParseCollisionPolicy(s string) (CollisionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return CollisionReject, nil
	case "suffix":
		return CollisionSuffix, nil
	default:
		return CollisionReject, &InvalidInputError{Msg: fmt.Sprintf("unknown collision policy %q (only reject, suffix are supported)", s)}
	}
}

func (p CollisionPolicy) String() string {
	if p == CollisionSuffix {
		return "suffix"
	}
	return "reject"
}

// Merge inner-joins tables on key from left to right, rejecting colliding
// non-key column names. See MergeWith.
func Merge(tables []*Table, key string) (*Table, error) {
	return MergeWith(tables, key, CollisionReject)
}

// MergeWith inner-joins tables on key from left to right. Every join step must
// be one-to-one: a key value repeated within either side fails the merge.
// The result holds the key column first, followed by the remaining columns of
// each input in input order. Rows keep the order of the first table.
func MergeWith(tables []*Table, key string, policy CollisionPolicy) (*Table, error) {
	if len(tables) == 0 {
		return nil, &InvalidInputError{Msg: "no tables to merge"}
	}
	for i, t := range tables {
		if t == nil {
			return nil, &InvalidInputError{Msg: fmt.Sprintf("table %d is nil", i+1)}
		}
		if !t.Has(key) {
			return nil, &MissingColumnError{Column: key, Table: i + 1}
		}
	}

	acc, err := keyFirst(tables[0], key)
	if err != nil {
		return nil, err
	}
	if _, err := keyIndex(acc, key, 1); err != nil {
		return nil, err
	}
	for i := 1; i < len(tables); i++ {
		acc, err = join(acc, tables[i], key, i+1, policy)
		if err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// keyFirst moves the key column to position 0.
func keyFirst(t *Table, key string) (*Table, error) {
	names := make([]string, 0, t.NumCols())
	names = append(names, key)
	for _, name := range t.Names() {
		if name != key {
			names = append(names, name)
		}
	}
	return t.Select(names...)
}

// joinKey is the comparable form of a key cell. Numeric keys compare by
// float64 value so that Int and Float key columns can be joined. All NaN keys
// are equal to each other.
type joinKey struct {
	num  float64
	nan  bool
	nsec int64
}

func keyAt(c Column, i int) joinKey {
	if c.Kind == Time {
		return joinKey{nsec: c.Times[i].UnixNano()}
	}
	v := c.Float(i)
	if math.IsNaN(v) {
		return joinKey{nan: true}
	}
	if v == 0 {
		v = 0 // fold -0 into +0
	}
	return joinKey{num: v}
}

// keyIndex maps each key value of t to its row, failing on repeats.
func keyIndex(t *Table, key string, pos int) (map[joinKey]int, error) {
	c, err := t.Require(key)
	if err != nil {
		return nil, err
	}
	idx := make(map[joinKey]int, c.Len())
	for i := 0; i < c.Len(); i++ {
		k := keyAt(c, i)
		if _, dup := idx[k]; dup {
			return nil, &MergeCardinalityError{Key: key, Value: c.Value(i), Table: pos}
		}
		idx[k] = i
	}
	return idx, nil
}

// join inner-joins left (already key-first and unique) with right.
func join(left, right *Table, key string, pos int, policy CollisionPolicy) (*Table, error) {
	lk, _ := left.Column(key)
	rk, _ := right.Column(key)
	if lk.Numeric() != rk.Numeric() {
		return nil, &InvalidInputError{Msg: fmt.Sprintf("key %q is %s in the merged result but %s in table %d", key, lk.Kind, rk.Kind, pos)}
	}

	rightIdx, err := keyIndex(right, key, pos)
	if err != nil {
		return nil, err
	}

	var leftRows, rightRows []int
	for i := 0; i < lk.Len(); i++ {
		if r, ok := rightIdx[keyAt(lk, i)]; ok {
			leftRows = append(leftRows, i)
			rightRows = append(rightRows, r)
		}
	}

	leftCols := left.Columns()
	var rightCols []Column
	for _, c := range right.Columns() {
		if c.Name != key {
			rightCols = append(rightCols, c)
		}
	}

	if err := resolveCollisions(leftCols, rightCols, key, policy); err != nil {
		return nil, err
	}

	out := make([]Column, 0, len(leftCols)+len(rightCols))
	for _, c := range leftCols {
		out = append(out, c.take(leftRows))
	}
	for _, c := range rightCols {
		out = append(out, c.take(rightRows))
	}
	return New(out...)
}

// resolveCollisions applies policy to the non-key names present on both
// sides, renaming in place when suffixing.
func resolveCollisions(left, right []Column, key string, policy CollisionPolicy) error {
	leftNames := make(map[string]int, len(left))
	for i, c := range left {
		leftNames[c.Name] = i
	}
	var colliding []string
	for _, c := range right {
		if _, ok := leftNames[c.Name]; ok {
			colliding = append(colliding, c.Name)
		}
	}
	if len(colliding) == 0 {
		return nil
	}
	sort.Strings(colliding)
	if policy == CollisionReject {
		return &ColumnCollisionError{Column: colliding[0]}
	}

	clash := make(map[string]bool, len(colliding))
	for _, name := range colliding {
		clash[name] = true
	}
	for i, c := range left {
		if c.Name != key && clash[c.Name] {
			left[i] = c.Rename(c.Name + leftSuffix)
		}
	}
	for i, c := range right {
		if clash[c.Name] {
			right[i] = c.Rename(c.Name + rightSuffix)
		}
	}

	seen := make(map[string]bool, len(left)+len(right))
	for _, c := range append(append([]Column(nil), left...), right...) {
		if seen[c.Name] {
			return &ColumnCollisionError{Column: c.Name}
		}
		seen[c.Name] = true
	}
	return nil
}

// SortColumns returns t with key as the first column and every other column
// in ascending lexicographic order of name.
func SortColumns(t *Table, key string) (*Table, error) {
	if !t.Has(key) {
		return nil, &MissingColumnError{Column: key}
	}
	rest := make([]string, 0, t.NumCols()-1)
	for _, name := range t.Names() {
		if name != key {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return t.Select(append([]string{key}, rest...)...)
}
