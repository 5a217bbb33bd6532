// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package genl

import (
	"context"
	"fmt"
	"syscall"
)

// Family describes a resolved generic netlink family. The numeric ID
// is assigned by the kernel at module load and is only stable for the
// current boot, which is why it must be looked up by name rather than
// hardcoded.
type Family struct {
	ID      uint16
	Name    string
	Version uint32
	MaxAttr uint32
	Groups  []MulticastGroup
}

// MulticastGroup is one multicast group exported by a family.
type MulticastGroup struct {
	Name string
	ID   uint32
}

// GetFamily resolves a family name to its kernel-assigned numeric id
// via the nlctrl control family. The result is cached for the life of
// the connection; re-resolution only happens on a fresh Conn.
//
// Returns ErrFamilyNotFound when the kernel does not know the name,
// which usually means the module is not loaded.
func (c *Conn) GetFamily(ctx context.Context, name string) (Family, error) {
	c.mu.Lock()
	f, ok := c.families[name]
	c.mu.Unlock()
	if ok {
		return f, nil
	}

	ae := NewAttributeEncoder()
	ae.String(ctrlAttrFamilyName, name)
	data, err := ae.Encode()
	if err != nil {
		return Family{}, err
	}

	msgs, err := c.Execute(ctx, FamilyControl, Request, Message{
		Header: Header{Command: ctrlCmdGetFamily, Version: 1},
		Data:   data,
	})
	if err != nil {
		if errno, ok := kernelErrno(err); ok && errno == syscall.ENOENT {
			return Family{}, fmt.Errorf("family %q: %w", name, ErrFamilyNotFound)
		}
		return Family{}, err
	}
	if len(msgs) == 0 {
		return Family{}, fmt.Errorf("family %q: empty control reply", name)
	}

	f, err = parseFamily(name, msgs[0].Data)
	if err != nil {
		return Family{}, err
	}

	c.mu.Lock()
	c.families[name] = f
	c.mu.Unlock()
	return f, nil
}

func parseFamily(name string, data []byte) (Family, error) {
	attrs, err := ParseAttributes(data)
	if err != nil {
		return Family{}, fmt.Errorf("family %q: %w", name, err)
	}
	id, err := attrs.Uint16(ctrlAttrFamilyID)
	if err != nil {
		return Family{}, fmt.Errorf("family %q: reading family id: %w", name, err)
	}
	f := Family{ID: id, Name: name}
	if v, err := attrs.Uint32(ctrlAttrVersion); err == nil {
		f.Version = v
	}
	if v, err := attrs.Uint32(ctrlAttrMaxAttr); err == nil {
		f.MaxAttr = v
	}
	if groups, err := attrs.Nested(ctrlAttrMcastGroups); err == nil {
		// The group list is an array: each element's tag is its index
		// and its payload is a nested name/id pair.
		for _, idx := range groups.Tags() {
			g, err := groups.Nested(idx)
			if err != nil {
				continue
			}
			gname, err := g.String(ctrlAttrMcastGrpName)
			if err != nil {
				continue
			}
			gid, err := g.Uint32(ctrlAttrMcastGrpID)
			if err != nil {
				continue
			}
			f.Groups = append(f.Groups, MulticastGroup{Name: gname, ID: gid})
		}
	}
	return f, nil
}
