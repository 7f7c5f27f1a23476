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

// Package worker runs the edit-distance engine in an isolated goroutine that shares no list data
// with the caller.
//
// The worker only ever sees a hash per item. It represents each transferred item as a proxy
// (source list, index, hash) and resolves equality between an old proxy and a new proxy locally
// whenever the hashes differ. On a hash collision it asks the caller to compare the authoritative
// items, one question at a time: the engine's sequential fill guarantees that at most one equality
// query is outstanding, and the request/reply pairing below depends on that.
//
// # Protocol
//
// All messages travel over a dedicated channel pair, strictly ordered, one consumer per
// direction:
//
//	worker → caller   hello{requests}        handshake, carries the worker's handle
//	caller → worker   int, hashes...         old list length, then one uint64 per item
//	caller → worker   int, hashes...         new list length, then one uint64 per item
//	worker → caller   query{old, new}        hash collision, please compare the items
//	caller → worker   bool                   the authoritative answer
//	worker → caller   done{n}, op...         completion, then exactly n operations
//
// Operations reference items by their index in the caller's own lists, so no item value crosses
// the boundary in either direction.
//
// Any unexpected message type, count, or a closed channel is a fatal protocol fault for the
// invocation; there are no retries. The worker tears itself down after completion or on a fault
// by closing its reply channel. A caller that stops waiting must close the quit channel to tear
// the worker down, otherwise the worker goroutine leaks.
package worker

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"znkr.io/listdiff/internal/engine"
)

// ErrProtocol is returned when the conversation with the worker breaks: a malformed message, a
// missing handshake, or out-of-order content. The invocation is aborted with no partial result.
var ErrProtocol = errors.New("listdiff: worker protocol fault")

// Messages are deliberately sent as dynamically typed values: the channel carries small scalars
// and structs, and anything of an unexpected type is a protocol fault.
type (
	// hello is the worker's handshake reply. It carries the handle the caller addresses all
	// further messages to.
	hello struct{ requests chan any }

	// query asks the caller to resolve the equality of two items whose hashes collided.
	query struct{ old, new int }

	// done announces completion and the number of operations that follow.
	done struct{ n int }

	// op is one edit-script step. src indexes the caller's old list for deletions and the
	// caller's new list for insertions.
	op struct {
		kind  engine.Kind
		index int
		src   int
	}
)

// Run computes the edit script for two lists represented by their item hashes on a worker.
// answer resolves true equality of a hash collision against the caller's authoritative items.
// The worker is torn down before Run returns, whether it completes, faults, or ctx is canceled.
func Run(ctx context.Context, xh, yh []uint64, answer func(x, y int) bool, log *zap.Logger) ([]engine.Op, error) {
	return run(ctx, xh, yh, answer, log, spawn)
}

// spawn starts the worker context. The only state shared with the caller are the message
// channels and the quit signal.
func spawn(replies chan<- any, quit <-chan struct{}) {
	go workerMain(replies, quit)
}

func run(ctx context.Context, xh, yh []uint64, answer func(x, y int) bool, log *zap.Logger, spawn func(chan<- any, <-chan struct{})) ([]engine.Op, error) {
	replies := make(chan any)
	quit := make(chan struct{})
	defer close(quit) // tears the worker down on every exit path

	spawn(replies, quit)

	recv := func() (any, error) {
		select {
		case msg, ok := <-replies:
			if !ok {
				return nil, fmt.Errorf("%w: reply channel closed", ErrProtocol)
			}
			return msg, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	// Handshake: the worker's first message must be its handle.
	msg, err := recv()
	if err != nil {
		return nil, err
	}
	h, ok := msg.(hello)
	if !ok {
		return nil, fmt.Errorf("%w: expected handshake, got %T", ErrProtocol, msg)
	}
	log.Debug("diff worker ready", zap.Int("old", len(xh)), zap.Int("new", len(yh)))

	send := func(v any) error {
		select {
		case h.requests <- v:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	// Transfer both lists as a length followed by one hash per item. The items stay here.
	if err := send(len(xh)); err != nil {
		return nil, err
	}
	for _, v := range xh {
		if err := send(v); err != nil {
			return nil, err
		}
	}
	if err := send(len(yh)); err != nil {
		return nil, err
	}
	for _, v := range yh {
		if err := send(v); err != nil {
			return nil, err
		}
	}

	// Answer equality queries until the worker reports completion.
	for {
		msg, err := recv()
		if err != nil {
			return nil, err
		}
		switch m := msg.(type) {
		case query:
			if m.old < 0 || m.old >= len(xh) || m.new < 0 || m.new >= len(yh) {
				return nil, fmt.Errorf("%w: equality query out of range: old=%d new=%d", ErrProtocol, m.old, m.new)
			}
			log.Debug("equality round trip", zap.Int("old", m.old), zap.Int("new", m.new))
			if err := send(answer(m.old, m.new)); err != nil {
				return nil, err
			}
		case done:
			ops := make([]engine.Op, 0, m.n)
			for range m.n {
				msg, err := recv()
				if err != nil {
					return nil, err
				}
				o, ok := msg.(op)
				if !ok {
					return nil, fmt.Errorf("%w: expected operation, got %T", ErrProtocol, msg)
				}
				ops = append(ops, engine.Op{Kind: o.kind, Index: o.index, Src: o.src})
			}
			log.Debug("diff worker done", zap.Int("ops", len(ops)))
			return ops, nil
		default:
			return nil, fmt.Errorf("%w: unexpected message %T", ErrProtocol, msg)
		}
	}
}

// workerMain is the isolated context. It receives hashes and indices, never items, and exits
// after sending completion or on the first malformed message or quit signal. Closing the reply
// channel doubles as the teardown notification for the caller.
func workerMain(replies chan<- any, quit <-chan struct{}) {
	defer close(replies)

	w := &conn{replies: replies, requests: make(chan any), quit: quit}
	if !w.send(hello{requests: w.requests}) {
		return
	}

	xh, ok := w.recvList()
	if !ok {
		return
	}
	yh, ok := w.recvList()
	if !ok {
		return
	}

	ops, err := engine.Run(len(xh), len(yh), &remoteEquality{conn: w, xh: xh, yh: yh})
	if err != nil {
		return
	}

	if !w.send(done{n: len(ops)}) {
		return
	}
	for _, o := range ops {
		if !w.send(op{kind: o.Kind, index: o.Index, src: o.Src}) {
			return
		}
	}
}

// conn is the worker's end of the channel pair.
type conn struct {
	replies  chan<- any
	requests chan any
	quit     <-chan struct{}
}

func (w *conn) send(v any) bool {
	select {
	case w.replies <- v:
		return true
	case <-w.quit:
		return false
	}
}

func (w *conn) recv() (any, bool) {
	select {
	case msg, ok := <-w.requests:
		return msg, ok
	case <-w.quit:
		return nil, false
	}
}

// recvList receives one list transfer: a length followed by that many hashes.
func (w *conn) recvList() ([]uint64, bool) {
	msg, ok := w.recv()
	if !ok {
		return nil, false
	}
	n, ok := msg.(int)
	if !ok || n < 0 {
		return nil, false
	}
	hashes := make([]uint64, 0, n)
	for range n {
		msg, ok := w.recv()
		if !ok {
			return nil, false
		}
		h, ok := msg.(uint64)
		if !ok {
			return nil, false
		}
		hashes = append(hashes, h)
	}
	return hashes, true
}

// remoteEquality is the suspension-capable equality strategy: differing hashes decide inequality
// without a round trip, hash collisions suspend until the caller answers with the authoritative
// result. Proxies of the same source list are never compared; the engine only crosses lists.
type remoteEquality struct {
	conn   *conn
	xh, yh []uint64
}

var errTornDown = errors.New("worker torn down")

// Equal implements [engine.Equality].
func (r *remoteEquality) Equal(x, y int) (bool, error) {
	if r.xh[x] != r.yh[y] {
		return false, nil
	}
	if !r.conn.send(query{old: x, new: y}) {
		return false, errTornDown
	}
	msg, ok := r.conn.recv()
	if !ok {
		return false, errTornDown
	}
	eq, ok := msg.(bool)
	if !ok {
		return false, errTornDown
	}
	return eq, nil
}
