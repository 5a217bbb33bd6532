// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv_test

import (
	"testing"

	"github.com/sntns/robin/batadv"
)

func TestParseHardwareAddr(t *testing.T) {
	want := batadv.HardwareAddr{0x02, 0xab, 0x00, 0xcd, 0x12, 0xff}
	for _, s := range []string{
		"02:AB:00:CD:12:FF",
		"02:ab:00:cd:12:ff",
		"02-ab-00-cd-12-ff",
	} {
		got, err := batadv.ParseHardwareAddr(s)
		if err != nil {
			t.Errorf("ParseHardwareAddr(%q): %v", s, err)
			continue
		}
		if got != want {
			t.Errorf("ParseHardwareAddr(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestParseHardwareAddrRejects(t *testing.T) {
	for _, s := range []string{
		"",
		"02:ab:00:cd:12",
		"02:ab:00:cd:12:ff:00:11", // EUI-64
		"zz:ab:00:cd:12:ff",
	} {
		if _, err := batadv.ParseHardwareAddr(s); err == nil {
			t.Errorf("ParseHardwareAddr(%q) accepted", s)
		}
	}
}

func TestHardwareAddrString(t *testing.T) {
	a := batadv.HardwareAddr{0x02, 0xab, 0x00, 0xcd, 0x12, 0xff}
	if got, want := a.String(), "02:AB:00:CD:12:FF"; got != want {
		t.Errorf("String = %q, want %q", got, want)
	}
}

func TestHardwareAddrTextRoundTrip(t *testing.T) {
	a := batadv.HardwareAddr{0x02, 0xab, 0x00, 0xcd, 0x12, 0xff}
	text, err := a.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText: %v", err)
	}
	var b batadv.HardwareAddr
	if err := b.UnmarshalText(text); err != nil {
		t.Fatalf("UnmarshalText: %v", err)
	}
	if a != b {
		t.Errorf("round trip = %v, want %v", b, a)
	}
}

func TestClientFlagsString(t *testing.T) {
	for _, tt := range []struct {
		flags batadv.ClientFlags
		want  string
	}{
		{0, "........"},
		{batadv.ClientWifi, "..W....."},
		{batadv.ClientRoam | batadv.ClientNoPurge, ".R..P..."},
		{batadv.ClientDel | batadv.ClientTemp, "D......T"},
	} {
		if got := tt.flags.String(); got != tt.want {
			t.Errorf("ClientFlags(%#x).String() = %q, want %q", uint32(tt.flags), got, tt.want)
		}
	}
}

func TestVLANID(t *testing.T) {
	for _, tt := range []struct {
		vid  uint16
		want int
	}{
		{0, -1},
		{7, -1},          // no tag bit: untagged regardless of low bits
		{0x8000, 0},      // tagged, VLAN 0
		{0x8000 | 7, 7},
		{0x8000 | 4094, 4094},
	} {
		if got := batadv.VLANID(tt.vid); got != tt.want {
			t.Errorf("VLANID(%#x) = %d, want %d", tt.vid, got, tt.want)
		}
	}
}

func TestGatewayModeStrings(t *testing.T) {
	for _, tt := range []struct {
		mode batadv.GatewayModeValue
		want string
	}{
		{batadv.GatewayOff, "off"},
		{batadv.GatewayClient, "client"},
		{batadv.GatewayServer, "server"},
		{batadv.GatewayModeValue(9), "unknown"},
	} {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("GatewayModeValue(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
	for _, s := range []string{"off", "client", "server"} {
		mode, ok := batadv.ParseGatewayMode(s)
		if !ok || mode.String() != s {
			t.Errorf("ParseGatewayMode(%q) = %v, %v", s, mode, ok)
		}
	}
	if _, ok := batadv.ParseGatewayMode("turbo"); ok {
		t.Error("ParseGatewayMode accepted unknown mode")
	}
}
