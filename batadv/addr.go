// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"fmt"
	"net"
)

// HardwareAddr is a 6 byte EUI-48 mesh node address. It is a value
// type so records holding one are comparable and copyable.
type HardwareAddr [6]byte

// ParseHardwareAddr parses the usual colon or dash separated textual
// forms, case insensitively. Only 6 byte addresses are accepted.
func ParseHardwareAddr(s string) (HardwareAddr, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return HardwareAddr{}, err
	}
	if len(hw) != 6 {
		return HardwareAddr{}, fmt.Errorf("address %q is not 6 bytes", s)
	}
	var a HardwareAddr
	copy(a[:], hw)
	return a, nil
}

func hardwareAddrFromBytes(b []byte) (HardwareAddr, bool) {
	var a HardwareAddr
	if len(b) != len(a) {
		return a, false
	}
	copy(a[:], b)
	return a, true
}

// String formats the address as uppercase colon separated hex, the
// convention used throughout batman-adv tooling.
func (a HardwareAddr) String() string {
	return fmt.Sprintf("%02X:%02X:%02X:%02X:%02X:%02X",
		a[0], a[1], a[2], a[3], a[4], a[5])
}

// IsZero reports whether a is the all-zero address.
func (a HardwareAddr) IsZero() bool {
	return a == HardwareAddr{}
}

func (a HardwareAddr) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *HardwareAddr) UnmarshalText(text []byte) error {
	parsed, err := ParseHardwareAddr(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
