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
	"context"
	"errors"
	"hash/maphash"

	"znkr.io/listdiff/internal/config"
	"znkr.io/listdiff/internal/engine"
	"znkr.io/listdiff/internal/worker"
)

// dispatchThreshold is the trimmed cell count (N×M) above which the computation is offloaded to
// a worker. Below it, filling the table locally finishes before a worker would even be ready, so
// the handshake overhead is never worth paying.
const dispatchThreshold = 10_000

// ErrEquality is returned when the equality predicate and the hash function are supplied
// inconsistently. They must be supplied together: the hash stands in for the item on the worker
// side and has to agree with the predicate.
var ErrEquality = errors.New("listdiff: equality predicate and hash function must be supplied together")

// ErrProtocol is returned when the conversation with a worker breaks: a malformed message, a
// missing handshake reply, or out-of-order content. The invocation is aborted with no partial
// result.
var ErrProtocol = worker.ErrProtocol

// hashSeed makes default hashes stable within a process. Hashes never leave the process, so
// stability across processes is not needed.
var hashSeed = maphash.MakeSeed()

// Diff compares the contents of x and y and returns the operations necessary to convert x into y
// when applied strictly in order.
//
// For large inputs the computation is offloaded to a worker goroutine; the dispatch decision can
// be overridden with [Remote] and [Local]. The call suspends on every worker round trip, a
// canceled ctx tears the worker down and aborts with no partial result.
//
// If x and y are identical, the output has length zero.
//
// The following options are supported: [Remote], [Local], [Logger]
func Diff[T comparable](ctx context.Context, x, y []T, opts ...Option) ([]Operation[T], error) {
	cfg := config.FromOptions(opts, config.Local|config.Remote|config.Logger)
	eq := func(a, b T) bool { return a == b }
	hash := func(v T) uint64 { return maphash.Comparable(hashSeed, v) }
	return diff(ctx, x, y, eq, hash, cfg)
}

// DiffFunc compares the contents of x and y using the provided equality predicate and returns the
// operations necessary to convert x into y when applied strictly in order.
//
// Both eq and hash must be supplied and have to agree: items that compare equal must hash
// identically, otherwise a worker will wrongly rule out matches without asking. Supplying only
// one of them returns [ErrEquality].
//
// The following options are supported: [Remote], [Local], [Logger]
func DiffFunc[T any](ctx context.Context, x, y []T, eq func(a, b T) bool, hash func(T) uint64, opts ...Option) ([]Operation[T], error) {
	if eq == nil || hash == nil {
		return nil, ErrEquality
	}
	cfg := config.FromOptions(opts, config.Local|config.Remote|config.Logger)
	return diff(ctx, x, y, eq, hash, cfg)
}

// DiffSync compares the contents of x and y and returns the operations necessary to convert x
// into y when applied strictly in order. Unlike [Diff], the computation always runs in the
// calling goroutine, irrespective of the input size.
//
// The following option is supported: [Local]
func DiffSync[T comparable](x, y []T, opts ...Option) []Operation[T] {
	config.FromOptions(opts, config.Local)
	eq := func(a, b T) bool { return a == b }
	return diffSync(x, y, eq)
}

// DiffSyncFunc compares the contents of x and y using the provided equality predicate, always in
// the calling goroutine. No hash function is needed: nothing crosses a worker boundary. A nil eq
// returns [ErrEquality].
//
// The following option is supported: [Local]
func DiffSyncFunc[T any](x, y []T, eq func(a, b T) bool, opts ...Option) ([]Operation[T], error) {
	if eq == nil {
		return nil, ErrEquality
	}
	config.FromOptions(opts, config.Local)
	return diffSync(x, y, eq), nil
}

func diff[T any](ctx context.Context, x, y []T, eq func(a, b T) bool, hash func(T) uint64, cfg config.Config) ([]Operation[T], error) {
	offset, xs, ys := trimCommon(x, y, eq)
	n, m := len(xs), len(ys)

	var raw []engine.Op
	var err error
	if offload(cfg, n, m) {
		xh := make([]uint64, n)
		for i, v := range xs {
			xh[i] = hash(v)
		}
		yh := make([]uint64, m)
		for i, v := range ys {
			yh[i] = hash(v)
		}
		answer := func(xi, yi int) bool { return eq(xs[xi], ys[yi]) }
		raw, err = worker.Run(ctx, xh, yh, answer, cfg.Logger)
	} else {
		raw, err = engine.Run(n, m, engine.EqualFunc(func(xi, yi int) bool { return eq(xs[xi], ys[yi]) }))
	}
	if err != nil {
		return nil, err
	}
	return materialize(raw, xs, ys, offset), nil
}

func diffSync[T any](x, y []T, eq func(a, b T) bool) []Operation[T] {
	offset, xs, ys := trimCommon(x, y, eq)
	// EqualFunc never fails, so neither can the engine.
	raw, _ := engine.Run(len(xs), len(ys), engine.EqualFunc(func(xi, yi int) bool { return eq(xs[xi], ys[yi]) }))
	return materialize(raw, xs, ys, offset)
}

// trimCommon strips the common prefix and the common suffix of the remainder. The returned offset
// is the prefix length; it has to be re-added to operation indices afterwards. Trimming is purely
// an optimization, correctness does not depend on it.
func trimCommon[T any](x, y []T, eq func(a, b T) bool) (offset int, xs, ys []T) {
	n, m := len(x), len(y)

	var pre int
	for pre < n && pre < m && eq(x[pre], y[pre]) {
		pre++
	}

	var suf int
	for suf < n-pre && suf < m-pre && eq(x[n-suf-1], y[m-suf-1]) {
		suf++
	}

	return pre, x[pre : n-suf], y[pre : m-suf]
}

// offload decides between local and remote execution from the trimmed lengths, unless the caller
// overrode the decision.
func offload(cfg config.Config, n, m int) bool {
	switch cfg.Dispatch {
	case config.DispatchLocal:
		return false
	case config.DispatchRemote:
		return true
	default:
		return n*m > dispatchThreshold
	}
}

// materialize converts index-form operations into [Operation] values by indexing the trimmed
// slices and shifting indices by the trim offset.
func materialize[T any](raw []engine.Op, xs, ys []T, offset int) []Operation[T] {
	if len(raw) == 0 {
		return nil
	}
	ops := make([]Operation[T], len(raw))
	for i, r := range raw {
		switch r.Kind {
		case engine.Insert:
			ops[i] = Operation[T]{Op: Insert, Index: offset + r.Index, Item: ys[r.Src]}
		case engine.Delete:
			ops[i] = Operation[T]{Op: Delete, Index: offset + r.Index, Item: xs[r.Src]}
		default:
			panic("never reached")
		}
	}
	return ops
}
