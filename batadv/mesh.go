// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"
	"fmt"

	"github.com/sntns/robin/genl"
)

// Mesh queries the basic state of a mesh interface: its address, the
// batman-adv version string and the routing algorithm it runs.
func (c *Client) Mesh(ctx context.Context, mesh string) (MeshInfo, error) {
	attrs, err := c.getMesh(ctx, mesh)
	if err != nil {
		return MeshInfo{}, err
	}
	var info MeshInfo
	if info.Name, err = attrs.String(AttrMeshIfName); err != nil {
		return MeshInfo{}, &MissingAttributeError{Attr: AttrMeshIfName}
	}
	idx, err := requireUint32(attrs, AttrMeshIfIndex)
	if err != nil {
		return MeshInfo{}, err
	}
	info.Index = int(idx)
	if info.Address, err = requireAddr(attrs, AttrMeshAddress); err != nil {
		return MeshInfo{}, err
	}
	// Version and algorithm are informational; old kernels may omit
	// them.
	info.Version, _ = attrs.String(AttrVersion)
	info.AlgoName, _ = attrs.String(AttrAlgoName)
	return info, nil
}

// gwBandwidthUnit is the unit of the GW bandwidth attributes on the
// wire: multiples of 100 kbit/s.
const gwBandwidthUnit = 100

// GatewayMode reads the gateway configuration of a mesh interface.
func (c *Client) GatewayMode(ctx context.Context, mesh string) (GatewayModeInfo, error) {
	attrs, err := c.getMesh(ctx, mesh)
	if err != nil {
		return GatewayModeInfo{}, err
	}
	mode, err := requireUint8(attrs, AttrGWMode)
	if err != nil {
		return GatewayModeInfo{}, err
	}
	info := GatewayModeInfo{Mode: GatewayModeValue(mode)}
	if down, err := attrs.Uint32(AttrGWBandwidthDown); err == nil {
		info.BandwidthDown = down * gwBandwidthUnit
	}
	if up, err := attrs.Uint32(AttrGWBandwidthUp); err == nil {
		info.BandwidthUp = up * gwBandwidthUnit
	}
	if class, err := attrs.Uint32(AttrGWSelClass); err == nil {
		info.SelClass = class
	}
	return info, nil
}

// SetGatewayMode configures the gateway mode of a mesh interface.
// Bandwidths are rounded down to the wire's 100 kbit/s granularity
// and only sent in server mode; SelClass is only sent in client mode
// when nonzero.
func (c *Client) SetGatewayMode(ctx context.Context, mesh string, info GatewayModeInfo) error {
	switch info.Mode {
	case GatewayOff, GatewayClient, GatewayServer:
	default:
		return fmt.Errorf("batadv: invalid gateway mode %d", info.Mode)
	}
	return c.setMesh(ctx, mesh, func(ae *genl.AttributeEncoder) {
		ae.Uint8(AttrGWMode, uint8(info.Mode))
		if info.Mode == GatewayServer {
			ae.Uint32(AttrGWBandwidthDown, info.BandwidthDown/gwBandwidthUnit)
			ae.Uint32(AttrGWBandwidthUp, info.BandwidthUp/gwBandwidthUnit)
		}
		if info.Mode == GatewayClient && info.SelClass != 0 {
			ae.Uint32(AttrGWSelClass, info.SelClass)
		}
	})
}
