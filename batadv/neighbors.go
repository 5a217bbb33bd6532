// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"
	"time"

	"github.com/sntns/robin/genl"
)

// Neighbors dumps the single-hop neighbor list of a mesh interface.
// Records the kernel sent in a shape the model cannot represent are
// skipped and reported via the returned error; the good records are
// returned either way.
func (c *Client) Neighbors(ctx context.Context, mesh string) ([]Neighbor, error) {
	return dumpRecords(ctx, c, CmdGetNeighbors, mesh, func(attrs *genl.Attributes) (Neighbor, error) {
		var n Neighbor
		var err error
		if n.Address, err = requireAddr(attrs, AttrNeighAddress); err != nil {
			return Neighbor{}, err
		}
		lastSeen, err := requireUint32(attrs, AttrLastSeenMsecs)
		if err != nil {
			return Neighbor{}, err
		}
		n.LastSeen = time.Duration(lastSeen) * time.Millisecond
		n.HardIf = c.hardIfName(attrs)
		n.Throughput = optUint32(attrs, AttrThroughput)
		return n, nil
	})
}
