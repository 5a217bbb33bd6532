// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

// The robctl command inspects and configures batman-adv mesh
// interfaces over generic netlink.
package main

import (
	"fmt"
	"os"

	"github.com/sntns/robin/cmd/robctl/cli"
)

func main() {
	if err := cli.Run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
