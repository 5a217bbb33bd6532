// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sntns/robin/batadv"
)

func printJSON(v any) error {
	enc := json.NewEncoder(Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func fmtLastSeen(d time.Duration) string {
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// fmtMetric renders whichever link metric the routing algorithm
// reports: TQ for B.A.T.M.A.N. IV, throughput for V.
func fmtMetric(tq *uint8, throughput *uint32) string {
	switch {
	case tq != nil:
		return fmt.Sprintf("%3d", *tq)
	case throughput != nil:
		return fmt.Sprintf("%.1f MBit", float64(*throughput)/1000)
	}
	return "-"
}

func best(b bool) string {
	if b {
		return "*"
	}
	return " "
}

var neighborsCmd = &ffcli.Command{
	Name:       "neighbors",
	ShortUsage: "robctl neighbors [--json]",
	ShortHelp:  "List single-hop neighbors.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("neighbors")
		fs.BoolVar(&neighborsArgs.json, "json", false, "output machine readable JSON")
		return fs
	})(),
	Exec: runNeighbors,
}

var neighborsArgs struct {
	json bool
}

func runNeighbors(ctx context.Context, args []string) error {
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		neighbors, err := c.Neighbors(ctx, meshIf())
		if err != nil {
			return err
		}
		if neighborsArgs.json {
			return printJSON(neighbors)
		}
		w := tabwriter.NewWriter(Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "IF\tNeighbor\tlast-seen\tthroughput")
		for _, n := range neighbors {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				n.HardIf, n.Address, fmtLastSeen(n.LastSeen), fmtMetric(nil, n.Throughput))
		}
		return w.Flush()
	})
}

var originatorsCmd = &ffcli.Command{
	Name:       "originators",
	ShortUsage: "robctl originators [--json]",
	ShortHelp:  "List known mesh nodes and selected next hops.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("originators")
		fs.BoolVar(&originatorsArgs.json, "json", false, "output machine readable JSON")
		return fs
	})(),
	Exec: runOriginators,
}

var originatorsArgs struct {
	json bool
}

func runOriginators(ctx context.Context, args []string) error {
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		origs, err := c.Originators(ctx, meshIf())
		if err != nil {
			return err
		}
		if originatorsArgs.json {
			return printJSON(origs)
		}
		w := tabwriter.NewWriter(Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, " \tOriginator\tlast-seen\tmetric\tNexthop\toutgoingIF")
		for _, o := range origs {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				best(o.Best), o.Address, fmtLastSeen(o.LastSeen),
				fmtMetric(o.TQ, o.Throughput), o.NextHop, o.HardIf)
		}
		return w.Flush()
	})
}

var gatewaysCmd = &ffcli.Command{
	Name:       "gateways",
	ShortUsage: "robctl gateways [--json]",
	ShortHelp:  "List announced internet gateways.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("gateways")
		fs.BoolVar(&gatewaysArgs.json, "json", false, "output machine readable JSON")
		return fs
	})(),
	Exec: runGateways,
}

var gatewaysArgs struct {
	json bool
}

func runGateways(ctx context.Context, args []string) error {
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		gws, err := c.Gateways(ctx, meshIf())
		if err != nil {
			return err
		}
		if gatewaysArgs.json {
			return printJSON(gws)
		}
		w := tabwriter.NewWriter(Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, " \tGateway\tmetric\tNexthop\toutgoingIF\tbandwidth")
		for _, g := range gws {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f/%.1f MBit\n",
				best(g.Best), g.Address, fmtMetric(g.TQ, g.Throughput),
				g.Router, g.HardIf,
				float64(g.BandwidthDown)/1000, float64(g.BandwidthUp)/1000)
		}
		return w.Flush()
	})
}

var translocalCmd = &ffcli.Command{
	Name:       "translocal",
	ShortUsage: "robctl translocal [--json]",
	ShortHelp:  "List the local translation table.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("translocal")
		fs.BoolVar(&translocalArgs.json, "json", false, "output machine readable JSON")
		return fs
	})(),
	Exec: runTranslocal,
}

var translocalArgs struct {
	json bool
}

func runTranslocal(ctx context.Context, args []string) error {
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		entries, err := c.TranslationLocalTable(ctx, meshIf())
		if err != nil {
			return err
		}
		if translocalArgs.json {
			return printJSON(entries)
		}
		w := tabwriter.NewWriter(Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, "Client\tVID\tFlags\tlast-seen\tCRC")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%d\t[%s]\t%s\t%#010x\n",
				e.Client, batadv.VLANID(e.VID), e.Flags, fmtLastSeen(e.LastSeen), e.CRC32)
		}
		return w.Flush()
	})
}

var transglobalCmd = &ffcli.Command{
	Name:       "transglobal",
	ShortUsage: "robctl transglobal [--json]",
	ShortHelp:  "List the global translation table.",
	FlagSet: (func() *flag.FlagSet {
		fs := newFlagSet("transglobal")
		fs.BoolVar(&transglobalArgs.json, "json", false, "output machine readable JSON")
		return fs
	})(),
	Exec: runTransglobal,
}

var transglobalArgs struct {
	json bool
}

func runTransglobal(ctx context.Context, args []string) error {
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		entries, err := c.TranslationGlobalTable(ctx, meshIf())
		if err != nil {
			return err
		}
		if transglobalArgs.json {
			return printJSON(entries)
		}
		w := tabwriter.NewWriter(Stdout, 0, 8, 2, ' ', 0)
		fmt.Fprintln(w, " \tClient\tVID\tFlags\tttvn\tOriginator\t(ttvn)")
		for _, e := range entries {
			fmt.Fprintf(w, "%s\t%s\t%d\t[%s]\t%d\t%s\t(%d)\n",
				best(e.Best), e.Client, batadv.VLANID(e.VID), e.Flags,
				e.TTVN, e.Originator, e.LastTTVN)
		}
		return w.Flush()
	})
}
