// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"
	"fmt"

	"github.com/sntns/robin/genl"
)

// HardInterfaces dumps the hard interfaces enslaved to a mesh
// interface.
func (c *Client) HardInterfaces(ctx context.Context, mesh string) ([]HardInterface, error) {
	return dumpRecords(ctx, c, CmdGetHardIf, mesh, func(attrs *genl.Attributes) (HardInterface, error) {
		idx, err := requireUint32(attrs, AttrHardIfIndex)
		if err != nil {
			return HardInterface{}, err
		}
		h := HardInterface{Index: int(idx)}
		if name, err := attrs.String(AttrHardIfName); err == nil {
			h.Name = name
		} else if name, err := c.links.NameByIndex(int(idx)); err == nil {
			h.Name = name
		} else {
			h.Name = fmt.Sprintf("if%d", idx)
		}
		if addr, err := requireAddr(attrs, AttrHardAddress); err == nil {
			h.Address = addr
		}
		h.Active = attrs.Present(AttrActive)
		return h, nil
	})
}
