// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package genl

import (
	"encoding/binary"
	"errors"
	"syscall"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMarshalFrame(t *testing.T) {
	m := Message{
		Header: Header{Command: 9, Version: 1},
		Data:   []byte{8, 0, 3, 0, 2, 0, 0, 0}, // one u32 attribute
	}
	b := marshalFrame(0x1c, Request|Dump, 7, 1234, m)

	if got := binary.NativeEndian.Uint32(b[0:4]); got != uint32(len(b)) {
		t.Errorf("length field = %d, want %d", got, len(b))
	}
	if got := binary.NativeEndian.Uint16(b[4:6]); got != 0x1c {
		t.Errorf("type field = %#x, want 0x1c", got)
	}
	if got := binary.NativeEndian.Uint16(b[6:8]); got != Request|Dump {
		t.Errorf("flags = %#x, want %#x", got, Request|Dump)
	}
	if got := binary.NativeEndian.Uint32(b[8:12]); got != 7 {
		t.Errorf("seq = %d, want 7", got)
	}
	if got := binary.NativeEndian.Uint32(b[12:16]); got != 1234 {
		t.Errorf("pid = %d, want 1234", got)
	}
	if b[16] != 9 || b[17] != 1 {
		t.Errorf("genl header = %d/%d, want 9/1", b[16], b[17])
	}
	if !cmp.Equal(b[20:], m.Data) {
		t.Errorf("payload = % x, want % x", b[20:], m.Data)
	}
}

func TestParseFramesDatagram(t *testing.T) {
	// Two data frames followed by a done frame, batched the way the
	// kernel batches dump fragments.
	mk := func(typ uint16, seq uint32, payload []byte) []byte {
		b := make([]byte, 16+len(payload))
		binary.NativeEndian.PutUint32(b[0:4], uint32(len(b)))
		binary.NativeEndian.PutUint16(b[4:6], typ)
		binary.NativeEndian.PutUint32(b[8:12], seq)
		copy(b[16:], payload)
		return b
	}
	var datagram []byte
	datagram = append(datagram, mk(0x1c, 3, []byte{8, 1, 0, 0, 0xde, 0xad, 0xbe, 0xef})...)
	datagram = append(datagram, mk(0x1c, 3, []byte{8, 1, 0, 0, 0xca, 0xfe, 0xba, 0xbe})...)
	datagram = append(datagram, mk(nlmsgDone, 3, []byte{0, 0, 0, 0})...)

	frames, err := parseFrames(datagram)
	if err != nil {
		t.Fatalf("parseFrames: %v", err)
	}
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	for i := 0; i < 2; i++ {
		f := frames[i]
		if f.seq != 3 || f.isDone() || f.isError() || f.isAck() {
			t.Errorf("frame %d misclassified: %+v", i, f)
		}
		if f.msg.Header.Command != 8 || f.msg.Header.Version != 1 {
			t.Errorf("frame %d genl header = %+v", i, f.msg.Header)
		}
		if len(f.msg.Data) != 4 {
			t.Errorf("frame %d data length = %d, want 4", i, len(f.msg.Data))
		}
	}
	if !frames[2].isDone() {
		t.Errorf("final frame not done: %+v", frames[2])
	}
}

func TestParseFramesError(t *testing.T) {
	b := make([]byte, 20)
	binary.NativeEndian.PutUint32(b[0:4], 20)
	binary.NativeEndian.PutUint16(b[4:6], nlmsgError)
	binary.NativeEndian.PutUint32(b[8:12], 5)
	code := int32(syscall.EPERM)
	binary.NativeEndian.PutUint32(b[16:20], uint32(-code))

	frames, err := parseFrames(b)
	if err != nil {
		t.Fatalf("parseFrames: %v", err)
	}
	if len(frames) != 1 || !frames[0].isError() || frames[0].errno != syscall.EPERM {
		t.Fatalf("frames = %+v, want one EPERM error frame", frames)
	}

	// Code zero is an acknowledgment, not an error.
	binary.NativeEndian.PutUint32(b[16:20], 0)
	frames, err = parseFrames(b)
	if err != nil {
		t.Fatal(err)
	}
	if !frames[0].isAck() || frames[0].isError() {
		t.Fatalf("frame = %+v, want ack", frames[0])
	}
}

func TestParseFramesTruncated(t *testing.T) {
	b := make([]byte, 32)
	binary.NativeEndian.PutUint32(b[0:4], 64) // lies about its length
	binary.NativeEndian.PutUint16(b[4:6], 0x1c)
	if _, err := parseFrames(b); !errors.Is(err, errTruncatedFrame) {
		t.Errorf("parseFrames = %v, want errTruncatedFrame", err)
	}
}
