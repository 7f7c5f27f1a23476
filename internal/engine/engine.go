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

// Package engine implements the edit-distance dynamic program that produces a minimal edit script.
//
// The engine is index based: it never sees list items, only their lengths and an [Equality]
// strategy that answers whether old item x equals new item y. This makes the same fill loop usable
// both locally (equality is a plain predicate) and inside a worker, where equality of two
// hash-colliding proxies suspends on a round trip to the caller.
//
// # Algorithm
//
// The edit distance is computed over a table with one column per old item plus one, and one row
// per new item plus one. Cell (x, y) holds the cheapest edit script that turns the first x old
// items into the first y new items, represented as a backtrace chain:
//
//	        (0,0)  old[0]  old[1]  ...
//	          ┌──────┬──────┬──────┐
//	  new[0]  ├──────┼──────┼──────┤
//	  new[1]  ├──────┼──────┼──────┤
//	          └──────┴──────┴──────┘
//
// Row 0 deletes the whole old prefix, column 0 inserts the whole new prefix. Everywhere else, if
// the two items compare equal the cell copies its diagonal predecessor without growing the script;
// otherwise it extends the cheaper of the cell above (an insertion) and the cell to the left (a
// deletion). On equal cost the cell to the left wins, which surfaces insertions before deletions
// in the final script and makes the output deterministic.
//
// Chains are immutable nodes in an append-only arena addressed by integer handles, so cells share
// tails instead of copying scripts. Only the current and previous row of handles are held; once a
// row is superseded, the nodes that are no longer reachable from a live cell are simply dead
// entries in the arena.
//
// The fill order is strictly sequential: cell (x, y) depends on (x-1, y), (x, y-1) and
// (x-1, y-1). Consequently at most one equality question is pending at any time, which the worker
// protocol relies on. Do not parallelize the fill without revisiting that protocol.
package engine

import "slices"

// Kind describes a single backtrace decision.
type Kind uint8

const (
	Unchanged Kind = iota // The item occurs in both lists and stays.
	Insert                // An insertion of an item from the new list.
	Delete                // A deletion of an item on the old list.
)

// Op is one step of an edit script in index form. Index is the position the operation applies to
// under sequential in-order application. Src is the index of the operation's item in its source
// list: the old list for Delete, the new list for Insert.
type Op struct {
	Kind  Kind
	Index int
	Src   int
}

// Equality reports whether old item x equals new item y. Implementations are allowed to suspend,
// e.g. while awaiting a remote answer. An error aborts the computation with no partial result.
type Equality interface {
	Equal(x, y int) (bool, error)
}

// EqualFunc adapts a plain predicate to [Equality]. It never suspends and never fails.
type EqualFunc func(x, y int) bool

// Equal implements [Equality].
func (f EqualFunc) Equal(x, y int) (bool, error) { return f(x, y), nil }

// A node records one backtrace decision. Nodes are immutable once allocated and addressed by
// their arena index, so multiple cells can share a tail without copying it.
type node struct {
	kind   Kind
	parent int32 // arena handle of the prior node, -1 for the root
	src    int32 // source-list index of the item, -1 for Unchanged
	length int32 // number of Insert/Delete nodes in the chain
}

// Run computes a minimal edit script transforming the first n items of the old list into the
// first m items of the new list, resolving item equality through eq.
func Run(n, m int, eq Equality) ([]Op, error) {
	arena := make([]node, 0, n+m+1)
	alloc := func(nd node) int32 {
		arena = append(arena, nd)
		return int32(len(arena) - 1)
	}

	prev := make([]int32, n+1)
	cur := make([]int32, n+1)

	// Row 0: deleting the whole old list. The root node is allocated first, so its handle is
	// always 0.
	cur[0] = alloc(node{kind: Unchanged, parent: -1, src: -1})
	for x := 1; x <= n; x++ {
		cur[x] = alloc(node{
			kind:   Delete,
			parent: cur[x-1],
			src:    int32(x - 1),
			length: arena[cur[x-1]].length + 1,
		})
	}

	for y := 1; y <= m; y++ {
		prev, cur = cur, prev

		// Column 0: inserting the whole new-list prefix.
		cur[0] = alloc(node{
			kind:   Insert,
			parent: prev[0],
			src:    int32(y - 1),
			length: arena[prev[0]].length + 1,
		})
		for x := 1; x <= n; x++ {
			equal, err := eq.Equal(x-1, y-1)
			if err != nil {
				return nil, err
			}
			if equal {
				cur[x] = alloc(node{
					kind:   Unchanged,
					parent: prev[x-1],
					src:    -1,
					length: arena[prev[x-1]].length,
				})
				continue
			}
			// Extend the cheaper neighbor. On equal cost the deletion chained onto the cell to
			// the left wins, which places insertions before deletions in the final script.
			if arena[prev[x]].length < arena[cur[x-1]].length {
				cur[x] = alloc(node{
					kind:   Insert,
					parent: prev[x],
					src:    int32(y - 1),
					length: arena[prev[x]].length + 1,
				})
			} else {
				cur[x] = alloc(node{
					kind:   Delete,
					parent: cur[x-1],
					src:    int32(x - 1),
					length: arena[cur[x-1]].length + 1,
				})
			}
		}
	}

	// Backtrace: walk the terminal cell's chain back to the root, then replay it in forward
	// order. The cursor tracks the position in new-list coordinates: insertions and unchanged
	// items advance it, deletions do not. Unchanged nodes are dropped from the output.
	nops := int(arena[cur[n]].length)
	if nops == 0 {
		return nil, nil
	}
	chain := make([]int32, 0, n+m)
	for h := cur[n]; arena[h].parent != -1; h = arena[h].parent {
		chain = append(chain, h)
	}
	slices.Reverse(chain)

	ops := make([]Op, 0, nops)
	cursor := 0
	for _, h := range chain {
		nd := &arena[h]
		switch nd.kind {
		case Insert:
			ops = append(ops, Op{Kind: Insert, Index: cursor, Src: int(nd.src)})
			cursor++
		case Unchanged:
			cursor++
		case Delete:
			ops = append(ops, Op{Kind: Delete, Index: cursor, Src: int(nd.src)})
		}
	}
	return ops, nil
}
