// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package genltest provides an in-memory genl.Socket for testing
// request/reply flows without a kernel.
package genltest

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"syscall"

	"github.com/sntns/robin/genl"
	"github.com/sntns/robin/types/logger"
)

// A Request is one request frame decoded from a Socket send.
type Request struct {
	FamilyID uint16
	Flags    uint16
	Seq      uint32
	PID      uint32
	Command  uint8
	Version  uint8
	Data     []byte
}

// ParseRequest decodes the netlink and generic netlink headers of a
// request frame as produced by genl.Conn.
func ParseRequest(b []byte) (Request, error) {
	if len(b) < 20 {
		return Request{}, fmt.Errorf("genltest: short request frame: %d bytes", len(b))
	}
	return Request{
		FamilyID: binary.NativeEndian.Uint16(b[4:6]),
		Flags:    binary.NativeEndian.Uint16(b[6:8]),
		Seq:      binary.NativeEndian.Uint32(b[8:12]),
		PID:      binary.NativeEndian.Uint32(b[12:16]),
		Command:  b[16],
		Version:  b[17],
		Data:     b[20:],
	}, nil
}

// Func handles one request and returns the datagrams the fake kernel
// sends back. Returning an error fails the send itself.
type Func func(req Request) ([][]byte, error)

// Socket is an in-memory genl.Socket driven by a Func. Datagrams can
// also be injected out of band with Deliver, for exercising
// asynchronous or late arrivals.
type Socket struct {
	fn Func

	queue  chan []byte
	closed chan struct{}
	once   sync.Once

	mu   sync.Mutex
	sent []Request
}

// New returns a Socket whose kernel side is played by fn. fn may be
// nil, in which case requests are recorded but never answered.
func New(fn Func) *Socket {
	return &Socket{
		fn:     fn,
		queue:  make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

// Dial returns a genl.Conn backed by a new Socket, plus the Socket for
// out-of-band control.
func Dial(fn Func) (*genl.Conn, *Socket) {
	s := New(fn)
	return genl.NewConn(s, 1, logger.Discard), s
}

func (s *Socket) Send(b []byte) error {
	req, err := ParseRequest(b)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sent = append(s.sent, req)
	s.mu.Unlock()
	if s.fn == nil {
		return nil
	}
	out, err := s.fn(req)
	if err != nil {
		return err
	}
	for _, d := range out {
		s.Deliver(d)
	}
	return nil
}

func (s *Socket) Receive() ([]byte, error) {
	select {
	case b := <-s.queue:
		return b, nil
	case <-s.closed:
		return nil, errors.New("genltest: socket closed")
	}
}

func (s *Socket) Close() error {
	s.once.Do(func() { close(s.closed) })
	return nil
}

// Deliver queues one datagram for the connection's read loop.
func (s *Socket) Deliver(b []byte) {
	select {
	case s.queue <- b:
	case <-s.closed:
	}
}

// Sent returns all requests written so far, oldest first.
func (s *Socket) Sent() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.sent...)
}

func header(length int, typ uint16, seq uint32) []byte {
	b := make([]byte, 16, 16+length)
	binary.NativeEndian.PutUint32(b[0:4], uint32(16+length))
	binary.NativeEndian.PutUint16(b[4:6], typ)
	// flags left zero; the client does not consult reply flags
	binary.NativeEndian.PutUint32(b[8:12], seq)
	binary.NativeEndian.PutUint32(b[12:16], 1)
	return b
}

// DataFrame builds one data frame from the family, as a reply to seq.
func DataFrame(familyID uint16, seq uint32, cmd, version uint8, attrData []byte) []byte {
	b := header(4+len(attrData), familyID, seq)
	b = append(b, cmd, version, 0, 0)
	return append(b, attrData...)
}

// DoneFrame builds the NLMSG_DONE terminator for a dump.
func DoneFrame(seq uint32) []byte {
	b := header(4, 0x3, seq)
	return append(b, 0, 0, 0, 0)
}

// ErrorFrame builds an NLMSG_ERROR frame carrying errno.
func ErrorFrame(seq uint32, errno syscall.Errno) []byte {
	b := header(4, 0x2, seq)
	var code [4]byte
	binary.NativeEndian.PutUint32(code[:], uint32(-int32(errno)))
	return append(b, code[:]...)
}

// AckFrame builds the NLMSG_ERROR frame with code zero that
// acknowledges a successful set request.
func AckFrame(seq uint32) []byte { return ErrorFrame(seq, 0) }

// Datagram concatenates frames into a single receive, the way the
// kernel batches dump fragments.
func Datagram(frames ...[]byte) []byte {
	var b []byte
	for _, f := range frames {
		b = append(b, f...)
	}
	return b
}
