// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"

	"github.com/sntns/robin/genl"
	"github.com/sntns/robin/rtnl"
	"github.com/sntns/robin/types/logger"
)

var _ LinkManager = rtnl.Links{}

// Dial opens a generic netlink connection, resolves the batadv family
// and returns a client using the host's rtnetlink for interface
// resolution. The caller owns the client and must Close it.
func Dial(ctx context.Context, logf logger.Logf) (*Client, error) {
	conn, err := genl.Dial(logf)
	if err != nil {
		return nil, err
	}
	c, err := New(ctx, conn, rtnl.Links{}, logf)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return c, nil
}
