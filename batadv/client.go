// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package batadv talks to the batman-adv kernel mesh subsystem over
// generic netlink. It resolves the "batadv" family, issues the get and
// set commands the module exposes and builds typed records from the
// attribute sets the kernel returns.
package batadv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sntns/robin/genl"
	"github.com/sntns/robin/types/logger"
)

// LinkResolver translates between interface names and indexes. The
// kernel identifies interfaces by index in most replies; listings want
// names.
type LinkResolver interface {
	IndexByName(name string) (int, error)
	NameByIndex(index int) (string, error)
}

// LinkManager extends LinkResolver with the rtnetlink operations
// needed to create and wire batadv mesh interfaces.
type LinkManager interface {
	LinkResolver
	CreateMesh(name string) error
	DestroyMesh(name string) error
	SetMaster(dev, master string) error
	UnsetMaster(dev string) error
	CountMembers(master string) (int, error)
}

// Client is a handle on the batadv generic netlink family. It is safe
// for concurrent use; requests issued concurrently share the
// underlying connection.
type Client struct {
	conn   *genl.Conn
	links  LinkManager
	family genl.Family
	logf   logger.Logf
}

// New wraps an existing generic netlink connection and resolves the
// batadv family on it. It fails with genl.ErrFamilyNotFound when the
// batman-adv module is not loaded.
func New(ctx context.Context, conn *genl.Conn, links LinkManager, logf logger.Logf) (*Client, error) {
	if logf == nil {
		logf = logger.Discard
	}
	fam, err := conn.GetFamily(ctx, FamilyName)
	if err != nil {
		return nil, err
	}
	logf("batadv: family %q resolved to id %#x", FamilyName, fam.ID)
	return &Client{conn: conn, links: links, family: fam, logf: logf}, nil
}

// Close releases the underlying netlink connection.
func (c *Client) Close() error { return c.conn.Close() }

// Family reports the resolved generic netlink family.
func (c *Client) Family() genl.Family { return c.family }

// meshIndex resolves a mesh interface name for use as
// BATADV_ATTR_MESH_IFINDEX in a request.
func (c *Client) meshIndex(name string) (int, error) {
	idx, err := c.links.IndexByName(name)
	if err != nil {
		return 0, fmt.Errorf("mesh interface %q: %w", name, err)
	}
	return idx, nil
}

func meshMessage(cmd uint8, ifindex int, extra func(*genl.AttributeEncoder)) (genl.Message, error) {
	ae := genl.NewAttributeEncoder()
	ae.Uint32(AttrMeshIfIndex, uint32(ifindex))
	if extra != nil {
		extra(ae)
	}
	data, err := ae.Encode()
	if err != nil {
		return genl.Message{}, err
	}
	return genl.Message{
		Header: genl.Header{Command: cmd, Version: genlVersion},
		Data:   data,
	}, nil
}

// getMesh issues CMD_GET_MESH for one interface and returns the reply
// attributes.
func (c *Client) getMesh(ctx context.Context, mesh string) (*genl.Attributes, error) {
	idx, err := c.meshIndex(mesh)
	if err != nil {
		return nil, err
	}
	msg, err := meshMessage(CmdGetMesh, idx, nil)
	if err != nil {
		return nil, err
	}
	msgs, err := c.conn.Execute(ctx, c.family.ID, genl.Request, msg)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, errors.New("batadv: empty reply to mesh query")
	}
	return c.parseReply(msgs[0])
}

// setMesh issues CMD_SET_MESH with the attributes written by fn and
// waits for the kernel ack.
func (c *Client) setMesh(ctx context.Context, mesh string, fn func(*genl.AttributeEncoder)) error {
	idx, err := c.meshIndex(mesh)
	if err != nil {
		return err
	}
	msg, err := meshMessage(CmdSetMesh, idx, fn)
	if err != nil {
		return err
	}
	_, err = c.conn.Execute(ctx, c.family.ID, genl.Request|genl.Ack, msg)
	return err
}

func (c *Client) parseReply(m genl.Message) (*genl.Attributes, error) {
	attrs, err := genl.ParseAttributes(m.Data)
	if err != nil {
		return nil, err
	}
	for _, d := range attrs.Diagnostics() {
		c.logf("batadv: %v", d)
	}
	return attrs, nil
}

// dumpRecords runs a dump command scoped to one mesh interface and
// builds a record per reply message. A record that cannot be built is
// skipped; the successfully built records are returned together with
// the per-record failures joined into one error.
func dumpRecords[T any](ctx context.Context, c *Client, cmd uint8, mesh string, build func(*genl.Attributes) (T, error)) ([]T, error) {
	idx, err := c.meshIndex(mesh)
	if err != nil {
		return nil, err
	}
	msg, err := meshMessage(cmd, idx, nil)
	if err != nil {
		return nil, err
	}
	msgs, err := c.conn.Execute(ctx, c.family.ID, genl.Request|genl.Dump, msg)
	if err != nil {
		return nil, err
	}
	var (
		out  []T
		errs []error
	)
	for i, m := range msgs {
		attrs, err := c.parseReply(m)
		if err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
			continue
		}
		rec, err := build(attrs)
		if err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
			continue
		}
		out = append(out, rec)
	}
	return out, errors.Join(errs...)
}

// hardIfName names the hard interface a dump record belongs to,
// preferring the name attribute and falling back to resolving the
// index. An interface that vanished mid-dump is rendered by index.
func (c *Client) hardIfName(attrs *genl.Attributes) string {
	if name, err := attrs.String(AttrHardIfName); err == nil {
		return name
	}
	idx, err := attrs.Uint32(AttrHardIfIndex)
	if err != nil {
		return ""
	}
	if name, err := c.links.NameByIndex(int(idx)); err == nil {
		return name
	}
	return fmt.Sprintf("if%d", idx)
}

func requireAddr(attrs *genl.Attributes, attr uint16) (HardwareAddr, error) {
	b, ok := attrs.Bytes(attr)
	if !ok {
		return HardwareAddr{}, &MissingAttributeError{Attr: attr}
	}
	a, ok := hardwareAddrFromBytes(b)
	if !ok {
		return HardwareAddr{}, &InvalidAttributeValueError{
			Attr:   attr,
			Reason: fmt.Sprintf("address is %d bytes, want 6", len(b)),
		}
	}
	return a, nil
}

func requireUint32(attrs *genl.Attributes, attr uint16) (uint32, error) {
	v, err := attrs.Uint32(attr)
	if err != nil {
		if errors.Is(err, genl.ErrAttributeMissing) {
			return 0, &MissingAttributeError{Attr: attr}
		}
		return 0, &InvalidAttributeValueError{Attr: attr, Reason: err.Error()}
	}
	return v, nil
}

func requireUint8(attrs *genl.Attributes, attr uint16) (uint8, error) {
	v, err := attrs.Uint8(attr)
	if err != nil {
		if errors.Is(err, genl.ErrAttributeMissing) {
			return 0, &MissingAttributeError{Attr: attr}
		}
		return 0, &InvalidAttributeValueError{Attr: attr, Reason: err.Error()}
	}
	return v, nil
}

func optUint32(attrs *genl.Attributes, attr uint16) *uint32 {
	if v, err := attrs.Uint32(attr); err == nil {
		return &v
	}
	return nil
}

func optUint8(attrs *genl.Attributes, attr uint16) *uint8 {
	if v, err := attrs.Uint8(attr); err == nil {
		return &v
	}
	return nil
}
