// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package listdiff

import (
	"errors"
	"fmt"
	"slices"
)

// Op describes an edit operation.
//
//go:generate go tool golang.org/x/tools/cmd/stringer -type=Op
type Op int

const (
	Insert Op = iota // An insertion of an item from the new list
	Delete           // A deletion of an item on the old list
)

// Operation describes a single edit of an edit script.
//
//   - For Insert, Item is inserted at Index.
//   - For Delete, the item at Index is removed; Item is what the list is expected to contain
//     there.
//
// Index is meaningful only when operations are applied sequentially and in order.
type Operation[T any] struct {
	Op    Op
	Index int
	Item  T
}

// ErrMismatch is returned when a deletion's expected item does not match the list's contents at
// that index. This signals caller misuse, e.g. operations applied out of order or against a list
// that diverged from the one they were computed for; it is not a recoverable condition.
var ErrMismatch = errors.New("listdiff: operation does not match list contents")

// Apply applies ops in order to a copy of list and returns the result.
//
// Applying the operations returned by [Diff] or [DiffSync] for (x, y) to x yields exactly y.
func Apply[T comparable](list []T, ops []Operation[T]) ([]T, error) {
	return ApplyFunc(list, func(a, b T) bool { return a == b }, ops)
}

// ApplyFunc applies ops in order to a copy of list and returns the result, using eq to check
// deletions against the list's current contents. A nil eq returns [ErrEquality].
func ApplyFunc[T any](list []T, eq func(a, b T) bool, ops []Operation[T]) ([]T, error) {
	if eq == nil {
		return nil, ErrEquality
	}
	out := slices.Clone(list)
	for _, op := range ops {
		switch op.Op {
		case Insert:
			if op.Index < 0 || op.Index > len(out) {
				return nil, fmt.Errorf("%w: insert index %d with list length %d", ErrMismatch, op.Index, len(out))
			}
			out = slices.Insert(out, op.Index, op.Item)
		case Delete:
			if op.Index < 0 || op.Index >= len(out) {
				return nil, fmt.Errorf("%w: delete index %d with list length %d", ErrMismatch, op.Index, len(out))
			}
			if !eq(out[op.Index], op.Item) {
				return nil, fmt.Errorf("%w: unexpected item at index %d", ErrMismatch, op.Index)
			}
			out = slices.Delete(out, op.Index, op.Index+1)
		default:
			panic("never reached")
		}
	}
	return out, nil
}
