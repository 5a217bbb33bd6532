// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/sntns/robin/batadv"
)

// settingCommands builds one subcommand per mesh tunable, batctl
// style: no argument reads the value, one argument writes it.
func settingCommands() []*ffcli.Command {
	var cmds []*ffcli.Command
	for _, name := range batadv.SettingNames() {
		name := name
		usage := fmt.Sprintf("robctl %s [<value>]", name)
		help := fmt.Sprintf("Show or set the %s mesh setting.", name)
		if batadv.IsBoolSetting(name) {
			usage = fmt.Sprintf("robctl %s [0|1|enable|disable]", name)
		}
		cmds = append(cmds, &ffcli.Command{
			Name:       name,
			ShortUsage: usage,
			ShortHelp:  help,
			FlagSet:    newFlagSet(name),
			Exec: func(ctx context.Context, args []string) error {
				return runSetting(ctx, name, args)
			},
		})
	}
	return cmds
}

func runSetting(ctx context.Context, name string, args []string) error {
	if len(args) > 1 {
		return flag.ErrHelp
	}
	return withClient(ctx, func(ctx context.Context, c *batadv.Client) error {
		if len(args) == 0 {
			v, err := c.MeshSetting(ctx, meshIf(), name)
			if err != nil {
				return err
			}
			if batadv.IsBoolSetting(name) {
				if v != 0 {
					outln("enabled")
				} else {
					outln("disabled")
				}
				return nil
			}
			outln(v)
			return nil
		}
		v, err := parseSettingValue(name, args[0])
		if err != nil {
			return err
		}
		return c.SetMeshSetting(ctx, meshIf(), name, v)
	})
}

func parseSettingValue(name, s string) (uint32, error) {
	if batadv.IsBoolSetting(name) {
		switch s {
		case "1", "enable", "enabled", "on", "true":
			return 1, nil
		case "0", "disable", "disabled", "off", "false":
			return 0, nil
		}
		return 0, fmt.Errorf("%s takes a boolean, got %q", name, s)
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", name, err)
	}
	return uint32(v), nil
}
