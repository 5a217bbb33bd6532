// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sntns/robin/batadv"
)

var routingAlgoCmd = &ffcli.Command{
	Name:       "routing_algo",
	ShortUsage: "robctl routing_algo [--json]\nrobctl routing_algo <name>",
	ShortHelp:  "List routing algorithms or select the default for new meshes.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("routing_algo")
		fs.BoolVar(&routingAlgoArgs.json, "json", false, "output machine readable JSON")
		return fs
	})(),
	Exec: runRoutingAlgo,
}

var routingAlgoArgs struct {
	json bool
}

func runRoutingAlgo(ctx context.Context, args []string) error {
	if len(args) > 1 {
		return flag.ErrHelp
	}
	if len(args) == 1 {
		return batadv.SetDefaultRoutingAlgo(args[0])
	}
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		algos, err := c.RoutingAlgos(ctx, meshIf())
		if err != nil {
			return err
		}
		if routingAlgoArgs.json {
			return printJSON(algos)
		}
		outln("Available routing algorithms:")
		for _, a := range algos {
			printf(" %s %s\n", best(a.Active), a.Name)
		}
		if def, err := batadv.DefaultRoutingAlgo(); err == nil {
			printf("Default for new interfaces: %s\n", def)
		}
		return nil
	})
}
