// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"fmt"
	"os"
	"strings"
)

// routingAlgoPath is the module parameter holding the routing
// algorithm newly created mesh interfaces get. Overridable for tests.
var routingAlgoPath = "/sys/module/batman_adv/parameters/routing_algo"

// DefaultRoutingAlgo reads the routing algorithm the module assigns to
// new mesh interfaces.
func DefaultRoutingAlgo() (string, error) {
	b, err := os.ReadFile(routingAlgoPath)
	if err != nil {
		return "", fmt.Errorf("batadv: read default routing algo: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

// SetDefaultRoutingAlgo selects the routing algorithm future mesh
// interfaces will run. Existing interfaces are unaffected.
func SetDefaultRoutingAlgo(name string) error {
	if err := os.WriteFile(routingAlgoPath, []byte(name+"\n"), 0o644); err != nil {
		return fmt.Errorf("batadv: set default routing algo: %w", err)
	}
	return nil
}
