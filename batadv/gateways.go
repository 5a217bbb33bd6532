// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"

	"github.com/sntns/robin/genl"
)

// Gateways dumps the list of mesh nodes announcing themselves as
// internet gateways, with their advertised bandwidths converted to
// kbit/s.
func (c *Client) Gateways(ctx context.Context, mesh string) ([]Gateway, error) {
	return dumpRecords(ctx, c, CmdGetGateways, mesh, func(attrs *genl.Attributes) (Gateway, error) {
		var g Gateway
		var err error
		if g.Address, err = requireAddr(attrs, AttrOrigAddress); err != nil {
			return Gateway{}, err
		}
		if g.Router, err = requireAddr(attrs, AttrRouter); err != nil {
			return Gateway{}, err
		}
		down, err := requireUint32(attrs, AttrBandwidthDown)
		if err != nil {
			return Gateway{}, err
		}
		up, err := requireUint32(attrs, AttrBandwidthUp)
		if err != nil {
			return Gateway{}, err
		}
		g.BandwidthDown = down * gwBandwidthUnit
		g.BandwidthUp = up * gwBandwidthUnit
		g.HardIf = c.hardIfName(attrs)
		g.TQ = optUint8(attrs, AttrTQ)
		g.Throughput = optUint32(attrs, AttrThroughput)
		g.Best = attrs.Present(AttrFlagBest)
		return g, nil
	})
}
