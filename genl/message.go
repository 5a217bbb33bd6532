// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package genl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"syscall"
)

// Wire constants from include/uapi/linux/netlink.h and genetlink.h.
// They are part of the kernel ABI and fixed for all time, so they are
// spelled out here rather than pulled from a platform-specific package;
// this keeps everything except the socket itself portable enough to
// test anywhere.
const (
	nlmsgHeaderLen = 16
	genlHeaderLen  = 4
	nlmsgAlignTo   = 4

	nlmsgError = 0x2 // NLMSG_ERROR
	nlmsgDone  = 0x3 // NLMSG_DONE

	// FamilyControl is the fixed id of the generic netlink control
	// family (GENL_ID_CTRL), the only family with a well-known number.
	FamilyControl = 0x10
)

// Request flags for the nlmsghdr flags field.
const (
	Request = 0x1 // NLM_F_REQUEST
	Ack     = 0x4 // NLM_F_ACK
	// Dump requests a multi-part reply terminated by NLMSG_DONE
	// (NLM_F_ROOT|NLM_F_MATCH).
	Dump = 0x100 | 0x200
)

// Control family commands and attributes (CTRL_CMD_*, CTRL_ATTR_*),
// used for family resolution.
const (
	ctrlCmdGetFamily = 0x3

	ctrlAttrFamilyID      = 0x1
	ctrlAttrFamilyName    = 0x2
	ctrlAttrVersion       = 0x3
	ctrlAttrMaxAttr       = 0x5
	ctrlAttrMcastGroups   = 0x7
	ctrlAttrMcastGrpName  = 0x1
	ctrlAttrMcastGrpID    = 0x2
)

func nlmsgAlign(n int) int { return (n + nlmsgAlignTo - 1) &^ (nlmsgAlignTo - 1) }

// Header is the generic netlink header carried inside every data frame.
type Header struct {
	Command uint8
	Version uint8
}

// Message is one generic netlink message: the family-level header plus
// a packed attribute payload.
type Message struct {
	Header Header
	Data   []byte
}

// marshalFrame wraps a Message in the netlink envelope: family id as
// the message type, request flags, the caller-assigned sequence number
// and our bound port id.
func marshalFrame(familyID uint16, flags uint16, seq, pid uint32, m Message) []byte {
	b := make([]byte, nlmsgHeaderLen+genlHeaderLen+len(m.Data))
	binary.NativeEndian.PutUint32(b[0:4], uint32(len(b)))
	binary.NativeEndian.PutUint16(b[4:6], familyID)
	binary.NativeEndian.PutUint16(b[6:8], flags)
	binary.NativeEndian.PutUint32(b[8:12], seq)
	binary.NativeEndian.PutUint32(b[12:16], pid)
	b[16] = m.Header.Command
	b[17] = m.Header.Version
	// b[18:20] reserved
	copy(b[nlmsgHeaderLen+genlHeaderLen:], m.Data)
	return b
}

// frame is one inbound netlink message, classified by its header type.
type frame struct {
	typ   uint16
	flags uint16
	seq   uint32
	errno syscall.Errno // valid when typ == NLMSG_ERROR; 0 means ack
	msg   Message       // valid for data frames
}

func (f *frame) isDone() bool  { return f.typ == nlmsgDone }
func (f *frame) isError() bool { return f.typ == nlmsgError && f.errno != 0 }
func (f *frame) isAck() bool   { return f.typ == nlmsgError && f.errno == 0 }

var errTruncatedFrame = errors.New("genl: truncated netlink frame")

// parseFrames splits one socket read into netlink frames. A receive
// may carry many frames back to back, each aligned to 4 bytes.
func parseFrames(b []byte) ([]frame, error) {
	var out []frame
	for off := 0; off < len(b); {
		rest := len(b) - off
		if rest < nlmsgHeaderLen {
			return out, fmt.Errorf("%w: %d trailing bytes", errTruncatedFrame, rest)
		}
		length := int(binary.NativeEndian.Uint32(b[off : off+4]))
		if length < nlmsgHeaderLen || length > rest {
			return out, fmt.Errorf("%w: declared length %d of %d available", errTruncatedFrame, length, rest)
		}
		f := frame{
			typ:   binary.NativeEndian.Uint16(b[off+4 : off+6]),
			flags: binary.NativeEndian.Uint16(b[off+6 : off+8]),
			seq:   binary.NativeEndian.Uint32(b[off+8 : off+12]),
		}
		payload := b[off+nlmsgHeaderLen : off+length]
		switch f.typ {
		case nlmsgError:
			if len(payload) < 4 {
				return out, fmt.Errorf("%w: error frame with %d byte payload", errTruncatedFrame, len(payload))
			}
			if code := int32(binary.NativeEndian.Uint32(payload[0:4])); code < 0 {
				f.errno = syscall.Errno(-code)
			}
		case nlmsgDone:
			// No payload of interest.
		default:
			if len(payload) < genlHeaderLen {
				return out, fmt.Errorf("%w: data frame with %d byte payload", errTruncatedFrame, len(payload))
			}
			f.msg = Message{
				Header: Header{Command: payload[0], Version: payload[1]},
				Data:   payload[genlHeaderLen:],
			}
		}
		out = append(out, f)
		off += nlmsgAlign(length)
	}
	return out, nil
}
