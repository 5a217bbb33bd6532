// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sntns/robin/batadv"
)

var gwModeCmd = &ffcli.Command{
	Name:       "gw_mode",
	ShortUsage: "robctl gw_mode [--json]\nrobctl gw_mode [flags] off|client|server",
	ShortHelp:  "Show or set the gateway mode.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("gw_mode")
		fs.BoolVar(&gwModeArgs.json, "json", false, "output machine readable JSON")
		fs.UintVar(&gwModeArgs.down, "down", 10000, "server mode: download bandwidth to announce, kbit/s")
		fs.UintVar(&gwModeArgs.up, "up", 2000, "server mode: upload bandwidth to announce, kbit/s")
		fs.UintVar(&gwModeArgs.selClass, "sel-class", 0, "client mode: gateway selection class (0 leaves the kernel default)")
		return fs
	})(),
	Exec: runGWMode,
}

var gwModeArgs struct {
	json     bool
	down     uint
	up       uint
	selClass uint
}

func runGWMode(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return flag.ErrHelp
	}
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		if len(args) == 0 {
			info, err := c.GatewayMode(ctx, meshIf())
			if err != nil {
				return err
			}
			if gwModeArgs.json {
				return printJSON(info)
			}
			switch info.Mode {
			case batadv.GatewayServer:
				printf("server (announced bw: %.1f/%.1f MBit)\n",
					float64(info.BandwidthDown)/1000, float64(info.BandwidthUp)/1000)
			case batadv.GatewayClient:
				if info.SelClass != 0 {
					printf("client (selection class: %d)\n", info.SelClass)
				} else {
					outln("client")
				}
			default:
				outln(info.Mode)
			}
			return nil
		}

		mode, ok := batadv.ParseGatewayMode(args[0])
		if !ok {
			return fmt.Errorf("unknown gateway mode %q; want off, client or server", args[0])
		}
		info := batadv.GatewayModeInfo{Mode: mode}
		if mode == batadv.GatewayServer {
			info.BandwidthDown = uint32(gwModeArgs.down)
			info.BandwidthUp = uint32(gwModeArgs.up)
		}
		if mode == batadv.GatewayClient {
			info.SelClass = uint32(gwModeArgs.selClass)
		}
		return c.SetGatewayMode(ctx, meshIf(), info)
	})
}
