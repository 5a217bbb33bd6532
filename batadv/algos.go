// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"
	"errors"

	"github.com/sntns/robin/genl"
)

// AvailableRoutingAlgos lists the routing algorithm names the loaded
// batman-adv module supports. The dump is family-wide and takes no
// mesh interface.
func (c *Client) AvailableRoutingAlgos(ctx context.Context) ([]string, error) {
	msg := genl.Message{
		Header: genl.Header{Command: CmdGetRoutingAlgos, Version: genlVersion},
	}
	msgs, err := c.conn.Execute(ctx, c.family.ID, genl.Request|genl.Dump, msg)
	if err != nil {
		return nil, err
	}
	var (
		names []string
		errs  []error
	)
	for i, m := range msgs {
		attrs, err := c.parseReply(m)
		if err != nil {
			errs = append(errs, &RecordError{Index: i, Err: err})
			continue
		}
		name, err := attrs.String(AttrAlgoName)
		if err != nil {
			errs = append(errs, &RecordError{Index: i, Err: &MissingAttributeError{Attr: AttrAlgoName}})
			continue
		}
		names = append(names, name)
	}
	return names, errors.Join(errs...)
}

// RoutingAlgos lists the available routing algorithms, marking the one
// the given mesh interface runs as active. With an empty mesh name no
// algorithm is marked.
func (c *Client) RoutingAlgos(ctx context.Context, mesh string) ([]RoutingAlgo, error) {
	names, err := c.AvailableRoutingAlgos(ctx)
	if err != nil {
		return nil, err
	}
	var active string
	if mesh != "" {
		info, err := c.Mesh(ctx, mesh)
		if err != nil {
			return nil, err
		}
		active = info.AlgoName
	}
	algos := make([]RoutingAlgo, len(names))
	for i, name := range names {
		algos[i] = RoutingAlgo{Name: name, Active: name == active}
	}
	return algos, nil
}
