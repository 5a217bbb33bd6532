// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package cli contains the cmd/robctl CLI code in a package that can
// be included in wrapper binaries.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sntns/robin/batadv"
	"github.com/sntns/robin/types/logger"
)

var Stderr io.Writer = os.Stderr
var Stdout io.Writer = os.Stdout

func errf(format string, a ...any) {
	fmt.Fprintf(Stderr, format, a...)
}

func printf(format string, a ...any) {
	fmt.Fprintf(Stdout, format, a...)
}

// outln is like fmt.Println except it honors a replaced Stdout.
func outln(a ...any) {
	fmt.Fprintln(Stdout, a...)
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.SetOutput(Stderr)
	return fs
}

// newClient dials the kernel. Replaced in tests.
var newClient = func(ctx context.Context, logf logger.Logf) (*batadv.Client, error) {
	return batadv.Dial(ctx, logf)
}

var rootArgs struct {
	meshIf string
	debug  bool
}

// meshIf is the interface the current command operates on.
func meshIf() string { return rootArgs.meshIf }

func logf() logger.Logf {
	if rootArgs.debug {
		return logger.WithPrefix(logger.Default, "robctl: ")
	}
	return logger.Discard
}

// withClient dials, runs fn and closes the client.
func withClient(ctx context.Context, fn func(ctx context.Context, c *batadv.Client) error) error {
	c, err := newClient(ctx, logf())
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return fmt.Errorf("%w (try running as root)", err)
		}
		return err
	}
	defer c.Close()
	err = fn(ctx, c)
	if errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w (try running as root)", err)
	}
	return err
}

// aliases maps batctl's short command names onto the long ones.
var aliases = map[string]string{
	"n":   "neighbors",
	"o":   "originators",
	"gwl": "gateways",
	"gw":  "gw_mode",
	"tl":  "translocal",
	"tg":  "transglobal",
	"if":  "interface",
	"ra":  "routing_algo",
}

// CleanUpArgs rewrites short command aliases to their long names.
func CleanUpArgs(args []string) []string {
	out := append([]string(nil), args...)
	for i, arg := range out {
		if strings.HasPrefix(arg, "-") {
			continue
		}
		if long, ok := aliases[arg]; ok {
			out[i] = long
		}
		break
	}
	return out
}

// Run runs the CLI. The args do not include the binary name.
func Run(args []string) error {
	args = CleanUpArgs(args)

	cfg := loadConfig()

	rootfs := newFlagSet("robctl")
	rootfs.StringVar(&rootArgs.meshIf, "meshif", cfg.MeshIf, "mesh interface to operate on")
	rootfs.BoolVar(&rootArgs.debug, "debug", cfg.Debug, "log netlink activity to stderr")

	rootCmd := &ffcli.Command{
		Name:       "robctl",
		ShortUsage: "robctl [--meshif <iface>] <subcommand> [command flags]",
		ShortHelp:  "Inspect and configure batman-adv mesh interfaces.",
		LongHelp: strings.TrimSpace(`
For help on subcommands, add --help after: "robctl neighbors --help".
`),
		Subcommands: append([]*ffcli.Command{
			neighborsCmd,
			originatorsCmd,
			gatewaysCmd,
			gwModeCmd,
			translocalCmd,
			transglobalCmd,
			interfaceCmd,
			routingAlgoCmd,
			meshInfoCmd,
		}, settingCommands()...),
		FlagSet: rootfs,
		Exec:    func(context.Context, []string) error { return flag.ErrHelp },
	}

	if err := rootCmd.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	err := rootCmd.Run(context.Background())
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}
