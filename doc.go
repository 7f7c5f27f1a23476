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

// Package listdiff computes the minimal sequence of single-item insert and delete operations that
// transforms one ordered list into another.
//
// The main functions are [Diff], which may offload the computation to a worker goroutine for large
// inputs, and [DiffSync], which always computes in the calling goroutine. Use [DiffFunc] and
// [DiffSyncFunc] to compare with a custom equality predicate. The resulting operations are meant to
// be applied strictly in order; [Apply] and [ApplyFunc] do that with a guard against applying an
// edit script to a list it was not computed for.
//
// When the computation is offloaded, the worker never sees the list items themselves: it receives a
// hash per item and asks the caller to confirm equality whenever two hashes collide. This keeps
// item values on the caller's side at the cost of one round trip per collision.
//
// Performance: time complexity is O(N×M) over the trimmed inputs (the common prefix and suffix are
// removed first), with O(N) table cells alive per row and O(N+M) nodes on any backtrace path.
package listdiff
