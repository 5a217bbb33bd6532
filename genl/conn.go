// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package genl is a small generic netlink client: it resolves
// dynamically numbered families, frames requests, multiplexes
// concurrent callers over one kernel socket and reassembles dump
// replies. It implements just enough of the protocol for command/
// attribute style families such as batman-adv.
package genl

import (
	"context"
	"sync"

	"github.com/sntns/robin/types/logger"
)

// Socket is the boundary between the connection and the kernel. The
// production implementation is an AF_NETLINK socket; tests substitute
// an in-memory fake.
type Socket interface {
	// Send writes one marshaled netlink frame.
	Send(b []byte) error
	// Receive blocks for one datagram, which may contain several
	// frames back to back.
	Receive() ([]byte, error)
	Close() error
}

// waiter is the collection point for one outstanding sequence number.
// The queue is unbounded: a single 64KB datagram can carry thousands
// of dump fragments, so the reader must never be forced to drop a
// frame for a claimed sequence just because the consumer is behind.
type waiter struct {
	wake chan struct{} // cap 1; signaled after every push and on failure

	mu     sync.Mutex
	queue  []frame
	failed bool // the read loop terminated; no more frames will come
}

func newWaiter() *waiter {
	return &waiter{wake: make(chan struct{}, 1)}
}

func (w *waiter) signal() {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *waiter) push(f frame) {
	w.mu.Lock()
	w.queue = append(w.queue, f)
	w.mu.Unlock()
	w.signal()
}

func (w *waiter) fail() {
	w.mu.Lock()
	w.failed = true
	w.mu.Unlock()
	w.signal()
}

// take drains the queued frames and reports whether the connection's
// read loop has terminated.
func (w *waiter) take() (fs []frame, failed bool) {
	w.mu.Lock()
	fs = w.queue
	w.queue = nil
	failed = w.failed
	w.mu.Unlock()
	return fs, failed
}

// Conn is a generic netlink connection. One Conn owns one socket:
// writes are serialized so sequence assignment is race free, and a
// single reader goroutine routes every inbound frame to the request
// that owns its sequence number. Any number of goroutines may issue
// requests concurrently.
type Conn struct {
	logf logger.Logf
	sock Socket
	pid  uint32

	wmu     sync.Mutex // serializes sends; guards nextSeq
	nextSeq uint32

	mu       sync.Mutex // guards the fields below
	pending  map[uint32]*waiter
	families map[string]Family
	closed   bool
	readErr  error

	readerDone chan struct{}
}

// NewConn wraps an already connected Socket and starts the read loop.
// pid is the port id the socket is bound to; replies are addressed to
// it. Pass logger.Discard to silence frame-level debug output.
func NewConn(sock Socket, pid uint32, logf logger.Logf) *Conn {
	if logf == nil {
		logf = logger.Discard
	}
	c := &Conn{
		logf:       logf,
		sock:       sock,
		pid:        pid,
		pending:    make(map[uint32]*waiter),
		families:   make(map[string]Family),
		readerDone: make(chan struct{}),
	}
	go c.reader()
	return c
}

// Close tears the connection down. Callers still waiting observe a
// transport error once the read loop exits.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.mu.Unlock()
	return c.sock.Close()
}

// reader is the only code path that reads the socket. It drains
// datagrams until the socket fails, demultiplexing every frame by
// sequence number.
func (c *Conn) reader() {
	defer close(c.readerDone)
	for {
		buf, err := c.sock.Receive()
		if err != nil {
			c.failPending(&TransportError{Op: "receive", Err: err})
			return
		}
		frames, err := parseFrames(buf)
		if err != nil {
			// Deliver what parsed; the rest of the datagram is gone.
			c.logf("genl: discarding tail of datagram: %v", err)
		}
		for i := range frames {
			c.route(frames[i])
		}
	}
}

func (c *Conn) route(f frame) {
	c.mu.Lock()
	w, ok := c.pending[f.seq]
	c.mu.Unlock()
	if !ok {
		// Nobody is waiting: the request timed out or was cancelled.
		c.logf("genl: dropping frame for unclaimed seq %d (type %d)", f.seq, f.typ)
		return
	}
	w.push(f)
}

func (c *Conn) failPending(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	if c.readErr == nil {
		c.readErr = err
	}
	for seq, w := range c.pending {
		w.fail()
		delete(c.pending, seq)
	}
}

func (c *Conn) readError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readErr != nil {
		return c.readErr
	}
	return ErrClosed
}

// send marshals and writes one request under the write lock, claiming
// a fresh sequence number and registering its waiter before the frame
// can possibly be answered.
func (c *Conn) send(familyID, flags uint16, m Message) (*waiter, uint32, error) {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, 0, ErrClosed
	}
	c.nextSeq++
	seq := c.nextSeq
	w := newWaiter()
	c.pending[seq] = w
	c.mu.Unlock()

	if err := c.sock.Send(marshalFrame(familyID, flags|Request, seq, c.pid, m)); err != nil {
		c.forget(seq)
		return nil, 0, &TransportError{Op: "send", Err: err}
	}
	return w, seq, nil
}

// forget removes the routing entry for seq so frames that straggle in
// afterwards are dropped instead of delivered to a dead waiter.
func (c *Conn) forget(seq uint32) {
	c.mu.Lock()
	delete(c.pending, seq)
	c.mu.Unlock()
}

// Execute sends one request to the family and collects its reply.
//
// With Dump set, it accumulates data frames in arrival order until the
// kernel's terminating frame and returns them all; an error frame at
// any point aborts the dump and surfaces the kernel error instead of a
// partial result. Without Dump, it returns the single data frame, or
// no frames for an acknowledged set request.
//
// Cancelling ctx abandons the request; a late reply is discarded. The
// kernel does not learn about the cancellation, so a set request may
// still take effect afterwards.
func (c *Conn) Execute(ctx context.Context, familyID, flags uint16, m Message) ([]Message, error) {
	w, seq, err := c.send(familyID, flags, m)
	if err != nil {
		return nil, err
	}
	defer c.forget(seq)

	dump := flags&Dump != 0
	var msgs []Message
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-w.wake:
		}
		frames, failed := w.take()
		for _, f := range frames {
			switch {
			case f.isError():
				return nil, &KernelError{Errno: f.errno}
			case f.isDone():
				return msgs, nil
			case f.isAck():
				// Success reply to a set request. Some kernels also
				// finish dumps with an error frame of code zero.
				return msgs, nil
			default:
				msgs = append(msgs, f.msg)
				if !dump {
					return msgs, nil
				}
			}
		}
		if failed {
			return nil, c.readError()
		}
	}
}
