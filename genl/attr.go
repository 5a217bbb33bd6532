// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package genl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"slices"
)

// Netlink attributes are type/length/value blocks padded to a 4 byte
// boundary. See include/uapi/linux/netlink.h (struct nlattr).
const (
	nlaHeaderLen = 4
	nlaAlignTo   = 4

	// High bits of the nlattr type field.
	nlaFlagNested       = 0x8000
	nlaFlagNetByteOrder = 0x4000
	nlaTypeMask         = ^uint16(nlaFlagNested | nlaFlagNetByteOrder)
)

func nlaAlign(n int) int { return (n + nlaAlignTo - 1) &^ (nlaAlignTo - 1) }

// ErrAttributeMissing is returned by typed Attributes accessors when
// the requested tag is not present in the set.
var ErrAttributeMissing = errors.New("genl: attribute not present")

// ErrMalformedAttributes is returned when an attribute buffer is
// inconsistent enough that decoding cannot make forward progress.
var ErrMalformedAttributes = errors.New("genl: malformed attribute stream")

// A WidthError reports a fixed-width attribute whose payload does not
// have the expected size.
type WidthError struct {
	Type uint16
	Len  int
	Want int
}

func (e *WidthError) Error() string {
	return fmt.Sprintf("genl: attribute %d has length %d, want %d", e.Type, e.Len, e.Want)
}

// AttributeEncoder encodes a sequence of netlink attributes into the
// packed wire format. The zero value is not usable; call
// NewAttributeEncoder. Methods record the first error encountered and
// Encode returns it, so call sites can chain appends without checking
// each one.
type AttributeEncoder struct {
	b   []byte
	err error
}

func NewAttributeEncoder() *AttributeEncoder {
	return &AttributeEncoder{}
}

func (ae *AttributeEncoder) append(typ uint16, payload []byte) {
	if ae.err != nil {
		return
	}
	length := nlaHeaderLen + len(payload)
	if length > math.MaxUint16 {
		ae.err = fmt.Errorf("genl: attribute %d payload too large (%d bytes)", typ&nlaTypeMask, len(payload))
		return
	}
	var hdr [nlaHeaderLen]byte
	binary.NativeEndian.PutUint16(hdr[0:2], uint16(length))
	binary.NativeEndian.PutUint16(hdr[2:4], typ)
	ae.b = append(ae.b, hdr[:]...)
	ae.b = append(ae.b, payload...)
	// Pad the value out to the alignment boundary. The padding is not
	// part of the declared length.
	for len(ae.b)%nlaAlignTo != 0 {
		ae.b = append(ae.b, 0)
	}
}

// Uint8 appends a uint8 attribute.
func (ae *AttributeEncoder) Uint8(typ uint16, v uint8) {
	ae.append(typ, []byte{v})
}

// Uint16 appends a uint16 attribute in native byte order.
func (ae *AttributeEncoder) Uint16(typ uint16, v uint16) {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], v)
	ae.append(typ, b[:])
}

// Uint32 appends a uint32 attribute in native byte order.
func (ae *AttributeEncoder) Uint32(typ uint16, v uint32) {
	var b [4]byte
	binary.NativeEndian.PutUint32(b[:], v)
	ae.append(typ, b[:])
}

// Uint64 appends a uint64 attribute in native byte order.
func (ae *AttributeEncoder) Uint64(typ uint16, v uint64) {
	var b [8]byte
	binary.NativeEndian.PutUint64(b[:], v)
	ae.append(typ, b[:])
}

// Flag appends a zero-length flag attribute. Its presence is the value.
func (ae *AttributeEncoder) Flag(typ uint16) {
	ae.append(typ, nil)
}

// String appends a NUL-terminated string attribute.
func (ae *AttributeEncoder) String(typ uint16, s string) {
	b := make([]byte, 0, len(s)+1)
	b = append(b, s...)
	b = append(b, 0)
	ae.append(typ, b)
}

// Bytes appends a raw byte attribute.
func (ae *AttributeEncoder) Bytes(typ uint16, b []byte) {
	ae.append(typ, b)
}

// Nested appends an attribute whose payload is itself an attribute
// sequence, built by fn on a fresh encoder.
func (ae *AttributeEncoder) Nested(typ uint16, fn func(*AttributeEncoder) error) {
	if ae.err != nil {
		return
	}
	nae := NewAttributeEncoder()
	if err := fn(nae); err != nil {
		ae.err = err
		return
	}
	payload, err := nae.Encode()
	if err != nil {
		ae.err = err
		return
	}
	ae.append(typ|nlaFlagNested, payload)
}

// Encode returns the packed attribute buffer, or the first error
// recorded while appending.
func (ae *AttributeEncoder) Encode() ([]byte, error) {
	if ae.err != nil {
		return nil, ae.err
	}
	return ae.b, nil
}

// A Diagnostic describes a single attribute entry that could not be
// decoded. Decoding continues past diagnosable entries; unknown tags
// are not diagnostics, they are kept and simply never queried.
type Diagnostic struct {
	Offset int    // byte offset of the entry within the buffer
	Type   uint16 // attribute tag, zero if the header was unreadable
	Reason string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("attribute %d at offset %d: %s", d.Type, d.Offset, d.Reason)
}

// Attributes is a decoded attribute set, mapping tag to raw payload.
// Typed accessors validate the payload width at the point of use.
type Attributes struct {
	vals   map[uint16][]byte
	nested map[uint16]bool
	diags  []Diagnostic
}

// ParseAttributes decodes an attribute buffer. Individual malformed
// entries are recorded as diagnostics and skipped; ParseAttributes
// only fails when an entry's declared length makes it impossible to
// locate the next entry.
func ParseAttributes(b []byte) (*Attributes, error) {
	attrs := &Attributes{
		vals:   make(map[uint16][]byte),
		nested: make(map[uint16]bool),
	}
	for off := 0; off < len(b); {
		rest := len(b) - off
		if rest < nlaHeaderLen {
			attrs.diags = append(attrs.diags, Diagnostic{
				Offset: off,
				Reason: fmt.Sprintf("truncated attribute header (%d trailing bytes)", rest),
			})
			break
		}
		length := int(binary.NativeEndian.Uint16(b[off : off+2]))
		rawType := binary.NativeEndian.Uint16(b[off+2 : off+4])
		typ := rawType & nlaTypeMask
		if length < nlaHeaderLen {
			// A declared length shorter than its own header cannot be
			// stepped over.
			return nil, fmt.Errorf("genl: attribute %d at offset %d declares length %d: %w",
				typ, off, length, ErrMalformedAttributes)
		}
		end := off + length
		if end > len(b) {
			attrs.diags = append(attrs.diags, Diagnostic{
				Offset: off,
				Type:   typ,
				Reason: fmt.Sprintf("declared length %d exceeds remaining buffer (%d bytes)", length, rest),
			})
			break
		}
		attrs.vals[typ] = b[off+nlaHeaderLen : end]
		attrs.nested[typ] = rawType&nlaFlagNested != 0
		off = nlaAlign(end)
	}
	return attrs, nil
}

// Diagnostics returns the malformed-entry diagnostics recorded while
// decoding, in buffer order.
func (a *Attributes) Diagnostics() []Diagnostic { return a.diags }

// Len returns the number of decoded attributes.
func (a *Attributes) Len() int { return len(a.vals) }

// Tags returns the decoded tags in ascending order. Useful for
// attribute sequences that are really arrays, where the tag is an
// index rather than a name.
func (a *Attributes) Tags() []uint16 {
	tags := make([]uint16, 0, len(a.vals))
	for tag := range a.vals {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}

// Present reports whether the tag appeared in the buffer. Flag
// attributes carry no payload, so this is their only accessor.
func (a *Attributes) Present(typ uint16) bool {
	_, ok := a.vals[typ]
	return ok
}

// Bytes returns the raw payload of the tag.
func (a *Attributes) Bytes(typ uint16) ([]byte, bool) {
	v, ok := a.vals[typ]
	return v, ok
}

func (a *Attributes) fixed(typ uint16, want int) ([]byte, error) {
	v, ok := a.vals[typ]
	if !ok {
		return nil, fmt.Errorf("genl: attribute %d: %w", typ, ErrAttributeMissing)
	}
	if len(v) != want {
		return nil, &WidthError{Type: typ, Len: len(v), Want: want}
	}
	return v, nil
}

// Uint8 returns the tag's payload as a uint8, enforcing its width.
func (a *Attributes) Uint8(typ uint16) (uint8, error) {
	v, err := a.fixed(typ, 1)
	if err != nil {
		return 0, err
	}
	return v[0], nil
}

// Uint16 returns the tag's payload as a native-endian uint16.
func (a *Attributes) Uint16(typ uint16) (uint16, error) {
	v, err := a.fixed(typ, 2)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint16(v), nil
}

// Uint32 returns the tag's payload as a native-endian uint32.
func (a *Attributes) Uint32(typ uint16) (uint32, error) {
	v, err := a.fixed(typ, 4)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint32(v), nil
}

// Uint64 returns the tag's payload as a native-endian uint64.
func (a *Attributes) Uint64(typ uint16) (uint64, error) {
	v, err := a.fixed(typ, 8)
	if err != nil {
		return 0, err
	}
	return binary.NativeEndian.Uint64(v), nil
}

// String returns the tag's payload as a string, stripping the wire
// NUL terminator if present.
func (a *Attributes) String(typ uint16) (string, error) {
	v, ok := a.vals[typ]
	if !ok {
		return "", fmt.Errorf("genl: attribute %d: %w", typ, ErrAttributeMissing)
	}
	if n := len(v); n > 0 && v[n-1] == 0 {
		v = v[:n-1]
	}
	return string(v), nil
}

// Nested decodes the tag's payload as a nested attribute sequence.
func (a *Attributes) Nested(typ uint16) (*Attributes, error) {
	v, ok := a.vals[typ]
	if !ok {
		return nil, fmt.Errorf("genl: attribute %d: %w", typ, ErrAttributeMissing)
	}
	return ParseAttributes(v)
}
