// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"
	"time"

	"github.com/sntns/robin/genl"
)

// Originators dumps the originator table of a mesh interface: every
// node the mesh knows about and the next hop currently selected for
// it.
func (c *Client) Originators(ctx context.Context, mesh string) ([]Originator, error) {
	return dumpRecords(ctx, c, CmdGetOriginators, mesh, func(attrs *genl.Attributes) (Originator, error) {
		var o Originator
		var err error
		if o.Address, err = requireAddr(attrs, AttrOrigAddress); err != nil {
			return Originator{}, err
		}
		if o.NextHop, err = requireAddr(attrs, AttrNeighAddress); err != nil {
			return Originator{}, err
		}
		lastSeen, err := requireUint32(attrs, AttrLastSeenMsecs)
		if err != nil {
			return Originator{}, err
		}
		o.LastSeen = time.Duration(lastSeen) * time.Millisecond
		o.HardIf = c.hardIfName(attrs)
		o.TQ = optUint8(attrs, AttrTQ)
		o.Throughput = optUint32(attrs, AttrThroughput)
		o.Best = attrs.Present(AttrFlagBest)
		return o, nil
	})
}
