// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import "time"

// MeshInfo describes a batman-adv mesh interface as reported by the
// kernel, including the routing algorithm it runs.
type MeshInfo struct {
	Name     string       `json:"name"`
	Index    int          `json:"index"`
	Address  HardwareAddr `json:"address"`
	Version  string       `json:"version"`
	AlgoName string       `json:"algo_name"`
}

// Neighbor is one directly reachable mesh node on a hard interface.
//
// Throughput is only reported by throughput-based algorithms (B.A.T.M.A.N. V)
// and is nil otherwise.
type Neighbor struct {
	Address    HardwareAddr  `json:"address"`
	HardIf     string        `json:"hard_if"`
	LastSeen   time.Duration `json:"last_seen"`
	Throughput *uint32       `json:"throughput_kbps,omitempty"`
}

// Originator is one known mesh node together with the currently
// selected next hop toward it. TQ is reported by B.A.T.M.A.N. IV,
// Throughput by B.A.T.M.A.N. V; the one the algorithm does not use is
// nil.
type Originator struct {
	Address    HardwareAddr  `json:"address"`
	NextHop    HardwareAddr  `json:"next_hop"`
	HardIf     string        `json:"hard_if"`
	LastSeen   time.Duration `json:"last_seen"`
	TQ         *uint8        `json:"tq,omitempty"`
	Throughput *uint32       `json:"throughput_kbps,omitempty"`
	Best       bool          `json:"best"`
}

// Gateway is one mesh node announcing itself as an internet gateway.
// Bandwidths are in kbit/s.
type Gateway struct {
	Address       HardwareAddr `json:"address"`
	Router        HardwareAddr `json:"router"`
	HardIf        string       `json:"hard_if"`
	BandwidthDown uint32       `json:"bandwidth_down_kbps"`
	BandwidthUp   uint32       `json:"bandwidth_up_kbps"`
	TQ            *uint8       `json:"tq,omitempty"`
	Throughput    *uint32      `json:"throughput_kbps,omitempty"`
	Best          bool         `json:"best"`
}

// TranslationLocal is one client address announced by this node in
// the local translation table.
type TranslationLocal struct {
	Client   HardwareAddr  `json:"client"`
	VID      uint16        `json:"vid"`
	Flags    ClientFlags   `json:"flags"`
	CRC32    uint32        `json:"crc32"`
	LastSeen time.Duration `json:"last_seen"`
}

// TranslationGlobal is one client address announced by another mesh
// node in the global translation table.
type TranslationGlobal struct {
	Client     HardwareAddr `json:"client"`
	Originator HardwareAddr `json:"originator"`
	VID        uint16       `json:"vid"`
	TTVN       uint8        `json:"ttvn"`
	LastTTVN   uint8        `json:"last_ttvn"`
	CRC32      uint32       `json:"crc32"`
	Flags      ClientFlags  `json:"flags"`
	Best       bool         `json:"best"`
}

// vlanTagged is the bit set in a TT VID when the entry belongs to a
// tagged VLAN (BATADV_VLAN_HAS_TAG).
const vlanTagged = 0x8000

// VLANID decodes a raw TT VID: -1 for untagged traffic, otherwise the
// 802.1Q VLAN id.
func VLANID(vid uint16) int {
	if vid&vlanTagged == 0 {
		return -1
	}
	return int(vid &^ vlanTagged)
}

// HardInterface is one slave interface of a mesh.
type HardInterface struct {
	Index   int          `json:"index"`
	Name    string       `json:"name"`
	Address HardwareAddr `json:"address"`
	Active  bool         `json:"active"`
}

// GatewayModeInfo is the gateway client/server configuration of a
// mesh interface. Bandwidths are in kbit/s and only meaningful in
// server mode; SelClass only in client mode.
type GatewayModeInfo struct {
	Mode          GatewayModeValue `json:"mode"`
	BandwidthDown uint32           `json:"bandwidth_down_kbps,omitempty"`
	BandwidthUp   uint32           `json:"bandwidth_up_kbps,omitempty"`
	SelClass      uint32           `json:"sel_class,omitempty"`
}

// RoutingAlgo is one routing algorithm known to the kernel module.
type RoutingAlgo struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}
