// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package cli

import (
	"os"

	"github.com/BurntSushi/toml"
)

const defaultConfigPath = "/etc/robin/robctl.toml"

// Config are the defaults robctl starts from; command line flags
// override them. The file is optional.
type Config struct {
	MeshIf string `toml:"meshif"`
	Debug  bool   `toml:"debug"`
}

// configPath returns the config file location, honoring the
// ROBCTL_CONFIG environment variable.
func configPath() string {
	if p := os.Getenv("ROBCTL_CONFIG"); p != "" {
		return p
	}
	return defaultConfigPath
}

// loadConfig reads the config file if present. A missing file yields
// the built-in defaults; a malformed one is reported and otherwise
// treated the same.
func loadConfig() Config {
	cfg := Config{MeshIf: "bat0"}
	path := configPath()
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
		errf("robctl: config %s: %v\n", path, err)
	}
	if cfg.MeshIf == "" {
		cfg.MeshIf = "bat0"
	}
	return cfg
}
