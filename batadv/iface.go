// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import "fmt"

// CreateMeshInterface creates a new batadv mesh interface. A non-empty
// algo selects the routing algorithm by setting the module default
// before creation, mirroring what batctl does.
func (c *Client) CreateMeshInterface(mesh, algo string) error {
	if algo != "" {
		if err := SetDefaultRoutingAlgo(algo); err != nil {
			return err
		}
	}
	return c.links.CreateMesh(mesh)
}

// DestroyMeshInterface removes a batadv mesh interface and releases
// its slaves.
func (c *Client) DestroyMeshInterface(mesh string) error {
	return c.links.DestroyMesh(mesh)
}

// AddInterface enslaves a hard interface to a mesh interface, creating
// the mesh interface first if it does not exist yet.
func (c *Client) AddInterface(mesh, dev string) error {
	if _, err := c.links.IndexByName(mesh); err != nil {
		if err := c.links.CreateMesh(mesh); err != nil {
			return err
		}
	}
	return c.links.SetMaster(dev, mesh)
}

// DelInterface releases a hard interface from its mesh. When the mesh
// interface is left without slaves it is destroyed, matching batctl's
// behavior.
func (c *Client) DelInterface(mesh, dev string) error {
	if err := c.links.UnsetMaster(dev); err != nil {
		return err
	}
	n, err := c.links.CountMembers(mesh)
	if err != nil {
		return fmt.Errorf("batadv: count members of %q: %w", mesh, err)
	}
	if n == 0 {
		return c.links.DestroyMesh(mesh)
	}
	return nil
}
