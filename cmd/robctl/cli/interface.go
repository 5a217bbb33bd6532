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

var interfaceCmd = &ffcli.Command{
	Name:       "interface",
	ShortUsage: "robctl interface [--json]\nrobctl interface add|del <dev>...\nrobctl interface [--algo <name>] create | destroy",
	ShortHelp:  "Show or change the hard interfaces of the mesh.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("interface")
		fs.BoolVar(&interfaceArgs.json, "json", false, "output machine readable JSON")
		fs.StringVar(&interfaceArgs.algo, "algo", "", "create: routing algorithm for the new mesh interface")
		return fs
	})(),
	Exec: runInterface,
}

var interfaceArgs struct {
	json bool
	algo string
}

func runInterface(ctx context.Context, args []string) error {
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		if len(args) == 0 {
			ifs, err := c.HardInterfaces(ctx, meshIf())
			if err != nil {
				return err
			}
			if interfaceArgs.json {
				return printJSON(ifs)
			}
			for _, hi := range ifs {
				state := "inactive"
				if hi.Active {
					state = "active"
				}
				printf("%s: %s\n", hi.Name, state)
			}
			return nil
		}

		switch verb, devs := args[0], args[1:]; verb {
		case "add":
			if len(devs) == 0 {
				return flag.ErrHelp
			}
			for _, dev := range devs {
				if err := c.AddInterface(meshIf(), dev); err != nil {
					return fmt.Errorf("add %s: %w", dev, err)
				}
			}
			return nil
		case "del":
			if len(devs) == 0 {
				return flag.ErrHelp
			}
			for _, dev := range devs {
				if err := c.DelInterface(meshIf(), dev); err != nil {
					return fmt.Errorf("del %s: %w", dev, err)
				}
			}
			return nil
		case "create":
			return c.CreateMeshInterface(meshIf(), interfaceArgs.algo)
		case "destroy":
			return c.DestroyMeshInterface(meshIf())
		default:
			return fmt.Errorf("unknown interface action %q", verb)
		}
	})
}

var meshInfoCmd = &ffcli.Command{
	Name:       "mesh_info",
	ShortUsage: "robctl mesh_info [--json]",
	ShortHelp:  "Show the mesh interface address, version and algorithm.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("mesh_info")
		fs.BoolVar(&meshInfoArgs.json, "json", false, "output machine readable JSON")
		return fs
	})(),
	Exec: runMeshInfo,
}

var meshInfoArgs struct {
	json bool
}

func runMeshInfo(ctx context.Context, args []string) error {
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		info, err := c.Mesh(ctx, meshIf())
		if err != nil {
			return err
		}
		if meshInfoArgs.json {
			return printJSON(info)
		}
		printf("%s (index %d) %s\n", info.Name, info.Index, info.Address)
		if info.Version != "" {
			printf("batman-adv %s\n", info.Version)
		}
		if info.AlgoName != "" {
			printf("routing algorithm: %s\n", info.AlgoName)
		}
		return nil
	})
}
