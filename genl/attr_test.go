// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package genl

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAttributeRoundTrip(t *testing.T) {
	ae := NewAttributeEncoder()
	ae.Uint8(1, 0x7f)
	ae.Uint16(2, 0xbeef)
	ae.Uint32(3, 0xdeadbeef)
	ae.Uint64(4, 0x0123456789abcdef)
	ae.String(5, "bat0")
	ae.Bytes(6, []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff})
	ae.Flag(7)
	ae.Nested(8, func(nae *AttributeEncoder) error {
		nae.String(1, "BATMAN_IV")
		nae.Uint32(2, 42)
		return nil
	})

	b, err := ae.Encode()
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(b)%4 != 0 {
		t.Fatalf("encoded length %d not 4-aligned", len(b))
	}

	attrs, err := ParseAttributes(b)
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if diags := attrs.Diagnostics(); len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if v, err := attrs.Uint8(1); err != nil || v != 0x7f {
		t.Errorf("Uint8(1) = %v, %v; want 0x7f", v, err)
	}
	if v, err := attrs.Uint16(2); err != nil || v != 0xbeef {
		t.Errorf("Uint16(2) = %v, %v; want 0xbeef", v, err)
	}
	if v, err := attrs.Uint32(3); err != nil || v != 0xdeadbeef {
		t.Errorf("Uint32(3) = %v, %v; want 0xdeadbeef", v, err)
	}
	if v, err := attrs.Uint64(4); err != nil || v != 0x0123456789abcdef {
		t.Errorf("Uint64(4) = %v, %v", v, err)
	}
	if v, err := attrs.String(5); err != nil || v != "bat0" {
		t.Errorf("String(5) = %q, %v; want bat0", v, err)
	}
	if v, ok := attrs.Bytes(6); !ok || !cmp.Equal(v, []byte{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}) {
		t.Errorf("Bytes(6) = %x, %v", v, ok)
	}
	if !attrs.Present(7) {
		t.Error("Present(7) = false, want flag attribute present")
	}

	nested, err := attrs.Nested(8)
	if err != nil {
		t.Fatalf("Nested(8): %v", err)
	}
	if v, err := nested.String(1); err != nil || v != "BATMAN_IV" {
		t.Errorf("nested String(1) = %q, %v", v, err)
	}
	if v, err := nested.Uint32(2); err != nil || v != 42 {
		t.Errorf("nested Uint32(2) = %v, %v", v, err)
	}
}

func TestAttributeStringTermination(t *testing.T) {
	ae := NewAttributeEncoder()
	ae.String(1, "eth0")
	b, err := ae.Encode()
	if err != nil {
		t.Fatal(err)
	}
	// "eth0\0" is 5 bytes: header length 9, padded to 12.
	if got := binary.NativeEndian.Uint16(b[0:2]); got != 9 {
		t.Errorf("declared length = %d, want 9", got)
	}
	if len(b) != 12 {
		t.Errorf("buffer length = %d, want 12", len(b))
	}
	if b[8] != 'e' || b[12-4] != 0 {
		t.Errorf("unexpected payload layout: % x", b)
	}

	// A non-terminated string on the wire is still readable.
	raw := []byte{8, 0, 1, 0, 'b', 'a', 't', '0'}
	attrs, err := ParseAttributes(raw)
	if err != nil {
		t.Fatal(err)
	}
	if v, err := attrs.String(1); err != nil || v != "bat0" {
		t.Errorf("String(1) = %q, %v; want bat0", v, err)
	}
}

func TestParseAttributesTruncated(t *testing.T) {
	ae := NewAttributeEncoder()
	ae.Uint32(1, 1)
	ae.Uint32(2, 2)
	ae.String(3, "wlan0")
	full, err := ae.Encode()
	if err != nil {
		t.Fatal(err)
	}

	// At every truncation point decoding must stop cleanly: either a
	// hard malformed error or the prefix plus a diagnostic, never a
	// read past the bound (which would panic).
	for cut := 0; cut < len(full); cut++ {
		attrs, err := ParseAttributes(full[:cut])
		if err != nil {
			if !errors.Is(err, ErrMalformedAttributes) {
				t.Errorf("cut %d: unexpected error %v", cut, err)
			}
			continue
		}
		whole := cut / 8 // attrs 1 and 2 are 8 bytes each on the wire
		if whole > 2 {
			whole = 2
		}
		if attrs.Len() < whole {
			t.Errorf("cut %d: decoded %d attrs, want at least %d", cut, attrs.Len(), whole)
		}
		if cut%8 != 0 && len(attrs.Diagnostics()) == 0 && attrs.Len() != 3 {
			t.Errorf("cut %d: truncation swallowed without diagnostic", cut)
		}
	}
}

func TestParseAttributesMalformed(t *testing.T) {
	// Declared length shorter than the attribute header: no forward
	// progress is possible.
	raw := []byte{2, 0, 1, 0, 0, 0, 0, 0}
	if _, err := ParseAttributes(raw); !errors.Is(err, ErrMalformedAttributes) {
		t.Errorf("ParseAttributes = %v, want ErrMalformedAttributes", err)
	}

	// Declared length beyond the buffer: diagnostic, not error.
	raw = []byte{32, 0, 1, 0, 1, 2, 3, 4}
	attrs, err := ParseAttributes(raw)
	if err != nil {
		t.Fatalf("ParseAttributes: %v", err)
	}
	if len(attrs.Diagnostics()) != 1 {
		t.Errorf("diagnostics = %v, want one entry", attrs.Diagnostics())
	}
	if attrs.Present(1) {
		t.Error("overlong attribute should not be decoded")
	}
}

func TestParseAttributesSkipsUnknownAndContinues(t *testing.T) {
	ae := NewAttributeEncoder()
	ae.Uint8(1, 5) // 1-byte payload forces padding before the next attr
	ae.Uint32(200, 7)
	ae.Uint32(2, 9)
	b, err := ae.Encode()
	if err != nil {
		t.Fatal(err)
	}
	attrs, err := ParseAttributes(b)
	if err != nil {
		t.Fatal(err)
	}
	// Tag 200 is unknown to any consumer here, but decoding must keep
	// it and carry on to tag 2 across the padding.
	if v, err := attrs.Uint32(200); err != nil || v != 7 {
		t.Errorf("Uint32(200) = %v, %v", v, err)
	}
	if v, err := attrs.Uint32(2); err != nil || v != 9 {
		t.Errorf("Uint32(2) = %v, %v", v, err)
	}
}

func TestAttributeWidthMismatch(t *testing.T) {
	ae := NewAttributeEncoder()
	ae.Uint16(1, 0xffff)
	b, err := ae.Encode()
	if err != nil {
		t.Fatal(err)
	}
	attrs, err := ParseAttributes(b)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := attrs.Uint32(1); err == nil {
		t.Fatal("Uint32 on 2-byte payload succeeded")
	} else {
		var we *WidthError
		if !errors.As(err, &we) || we.Len != 2 || we.Want != 4 {
			t.Errorf("error = %v, want WidthError{Len: 2, Want: 4}", err)
		}
	}
	if _, err := attrs.Uint16(99); !errors.Is(err, ErrAttributeMissing) {
		t.Errorf("missing tag error = %v, want ErrAttributeMissing", err)
	}
}
