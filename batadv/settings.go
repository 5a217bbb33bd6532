// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/sntns/robin/genl"
)

// settingKind describes the wire encoding of a mesh tunable.
type settingKind int

const (
	settingBool settingKind = iota // u8, 0 or 1
	settingU8
	settingU32
)

type settingDef struct {
	attr uint16
	kind settingKind
}

// meshSettings maps tunable names to their SET_MESH/GET_MESH
// attributes. The names follow batctl's command names.
var meshSettings = map[string]settingDef{
	"aggregation":           {AttrAggregatedOGMsEnabled, settingBool},
	"ap_isolation":          {AttrAPIsolationEnabled, settingBool},
	"bonding":               {AttrBondingEnabled, settingBool},
	"bridge_loop_avoidance": {AttrBridgeLoopAvoidanceEnabled, settingBool},
	"distributed_arp_table": {AttrDistributedARPTableEnabled, settingBool},
	"fragmentation":         {AttrFragmentationEnabled, settingBool},
	"multicast_forceflood":  {AttrMulticastForcefloodEnabled, settingBool},
	"network_coding":        {AttrNetworkCodingEnabled, settingBool},
	"hop_penalty":           {AttrHopPenalty, settingU8},
	"isolation_mark":        {AttrIsolationMark, settingU32},
	"multicast_fanout":      {AttrMulticastFanout, settingU32},
	"orig_interval":         {AttrOrigInterval, settingU32},
}

// SettingNames lists the mesh tunables this client knows, sorted.
func SettingNames() []string {
	names := make([]string, 0, len(meshSettings))
	for name := range meshSettings {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsBoolSetting reports whether a tunable takes only 0 or 1.
func IsBoolSetting(name string) bool {
	def, ok := meshSettings[name]
	return ok && def.kind == settingBool
}

// MeshSetting reads one mesh tunable by name. Boolean and u8 settings
// are widened to uint32.
func (c *Client) MeshSetting(ctx context.Context, mesh, name string) (uint32, error) {
	def, ok := meshSettings[name]
	if !ok {
		return 0, fmt.Errorf("batadv: unknown setting %q", name)
	}
	attrs, err := c.getMesh(ctx, mesh)
	if err != nil {
		return 0, err
	}
	switch def.kind {
	case settingBool, settingU8:
		v, err := requireUint8(attrs, def.attr)
		return uint32(v), err
	default:
		return requireUint32(attrs, def.attr)
	}
}

// SetMeshSetting writes one mesh tunable by name, validating the value
// against the tunable's wire width.
func (c *Client) SetMeshSetting(ctx context.Context, mesh, name string, value uint32) error {
	def, ok := meshSettings[name]
	if !ok {
		return fmt.Errorf("batadv: unknown setting %q", name)
	}
	switch def.kind {
	case settingBool:
		if value > 1 {
			return fmt.Errorf("batadv: setting %q takes 0 or 1, got %d", name, value)
		}
	case settingU8:
		if value > math.MaxUint8 {
			return fmt.Errorf("batadv: setting %q takes at most %d, got %d", name, math.MaxUint8, value)
		}
	}
	return c.setMesh(ctx, mesh, func(ae *genl.AttributeEncoder) {
		switch def.kind {
		case settingBool, settingU8:
			ae.Uint8(def.attr, uint8(value))
		default:
			ae.Uint32(def.attr, value)
		}
	})
}

func (c *Client) boolSetting(ctx context.Context, mesh, name string) (bool, error) {
	v, err := c.MeshSetting(ctx, mesh, name)
	return v != 0, err
}

func (c *Client) setBoolSetting(ctx context.Context, mesh, name string, enabled bool) error {
	var v uint32
	if enabled {
		v = 1
	}
	return c.SetMeshSetting(ctx, mesh, name, v)
}

// Aggregation reports whether OGM aggregation is enabled on the mesh.
func (c *Client) Aggregation(ctx context.Context, mesh string) (bool, error) {
	return c.boolSetting(ctx, mesh, "aggregation")
}

func (c *Client) SetAggregation(ctx context.Context, mesh string, enabled bool) error {
	return c.setBoolSetting(ctx, mesh, "aggregation", enabled)
}

// APIsolation reports whether access point isolation is enabled.
func (c *Client) APIsolation(ctx context.Context, mesh string) (bool, error) {
	return c.boolSetting(ctx, mesh, "ap_isolation")
}

func (c *Client) SetAPIsolation(ctx context.Context, mesh string, enabled bool) error {
	return c.setBoolSetting(ctx, mesh, "ap_isolation", enabled)
}

// BridgeLoopAvoidance reports whether the bridge loop avoidance
// mechanism is enabled.
func (c *Client) BridgeLoopAvoidance(ctx context.Context, mesh string) (bool, error) {
	return c.boolSetting(ctx, mesh, "bridge_loop_avoidance")
}

func (c *Client) SetBridgeLoopAvoidance(ctx context.Context, mesh string, enabled bool) error {
	return c.setBoolSetting(ctx, mesh, "bridge_loop_avoidance", enabled)
}
