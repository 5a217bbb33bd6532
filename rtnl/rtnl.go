// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package rtnl wraps the rtnetlink operations the mesh tooling needs:
// name/index resolution and batadv link lifecycle (create a mesh
// interface, enslave and release hard interfaces).
package rtnl

import (
	"errors"
	"fmt"

	"github.com/vishvananda/netlink"
)

// ErrLinkNotFound reports that a named or indexed interface does not
// exist.
var ErrLinkNotFound = errors.New("rtnl: link not found")

// Links performs rtnetlink operations against the host network
// namespace. The zero value is ready to use.
type Links struct{}

func (Links) IndexByName(name string) (int, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return 0, wrapNotFound(err, name)
	}
	return link.Attrs().Index, nil
}

func (Links) NameByIndex(index int) (string, error) {
	link, err := netlink.LinkByIndex(index)
	if err != nil {
		return "", wrapNotFound(err, fmt.Sprintf("index %d", index))
	}
	return link.Attrs().Name, nil
}

// CreateMesh creates a new batadv mesh interface. The routing
// algorithm it runs is whatever the module default is at creation
// time.
func (Links) CreateMesh(name string) error {
	link := &netlink.GenericLink{
		LinkAttrs: netlink.LinkAttrs{Name: name},
		LinkType:  "batadv",
	}
	if err := netlink.LinkAdd(link); err != nil {
		return fmt.Errorf("rtnl: create %q: %w", name, err)
	}
	return nil
}

// DestroyMesh removes a batadv mesh interface, releasing its slaves.
func (Links) DestroyMesh(name string) error {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return wrapNotFound(err, name)
	}
	if err := netlink.LinkDel(link); err != nil {
		return fmt.Errorf("rtnl: destroy %q: %w", name, err)
	}
	return nil
}

// SetMaster enslaves dev to the mesh interface master.
func (Links) SetMaster(dev, master string) error {
	d, err := netlink.LinkByName(dev)
	if err != nil {
		return wrapNotFound(err, dev)
	}
	m, err := netlink.LinkByName(master)
	if err != nil {
		return wrapNotFound(err, master)
	}
	if err := netlink.LinkSetMaster(d, m); err != nil {
		return fmt.Errorf("rtnl: enslave %q to %q: %w", dev, master, err)
	}
	return nil
}

// UnsetMaster releases dev from its master interface.
func (Links) UnsetMaster(dev string) error {
	d, err := netlink.LinkByName(dev)
	if err != nil {
		return wrapNotFound(err, dev)
	}
	if err := netlink.LinkSetNoMaster(d); err != nil {
		return fmt.Errorf("rtnl: release %q: %w", dev, err)
	}
	return nil
}

// CountMembers counts the interfaces currently enslaved to master.
func (Links) CountMembers(master string) (int, error) {
	m, err := netlink.LinkByName(master)
	if err != nil {
		return 0, wrapNotFound(err, master)
	}
	links, err := netlink.LinkList()
	if err != nil {
		return 0, fmt.Errorf("rtnl: list links: %w", err)
	}
	n := 0
	for _, l := range links {
		if l.Attrs().MasterIndex == m.Attrs().Index {
			n++
		}
	}
	return n, nil
}

func wrapNotFound(err error, what string) error {
	var nf netlink.LinkNotFoundError
	if errors.As(err, &nf) {
		return fmt.Errorf("%w: %s", ErrLinkNotFound, what)
	}
	return fmt.Errorf("rtnl: %s: %w", what, err)
}
