// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

import (
	"context"
	"time"

	"github.com/sntns/robin/genl"
)

// TranslationLocalTable dumps the local translation table: the client
// addresses this node announces to the mesh.
func (c *Client) TranslationLocalTable(ctx context.Context, mesh string) ([]TranslationLocal, error) {
	return dumpRecords(ctx, c, CmdGetTranstableLocal, mesh, func(attrs *genl.Attributes) (TranslationLocal, error) {
		var t TranslationLocal
		var err error
		if t.Client, err = requireAddr(attrs, AttrTTAddress); err != nil {
			return TranslationLocal{}, err
		}
		vid, err := attrs.Uint16(AttrTTVID)
		if err == nil {
			t.VID = vid
		}
		if flags, err := attrs.Uint32(AttrTTFlags); err == nil {
			t.Flags = ClientFlags(flags)
		}
		if crc, err := attrs.Uint32(AttrTTCRC32); err == nil {
			t.CRC32 = crc
		}
		if lastSeen, err := attrs.Uint32(AttrLastSeenMsecs); err == nil {
			t.LastSeen = time.Duration(lastSeen) * time.Millisecond
		}
		return t, nil
	})
}

// TranslationGlobalTable dumps the global translation table: the
// client addresses other mesh nodes announce, with the originator
// serving each.
func (c *Client) TranslationGlobalTable(ctx context.Context, mesh string) ([]TranslationGlobal, error) {
	return dumpRecords(ctx, c, CmdGetTranstableGlobal, mesh, func(attrs *genl.Attributes) (TranslationGlobal, error) {
		var t TranslationGlobal
		var err error
		if t.Client, err = requireAddr(attrs, AttrTTAddress); err != nil {
			return TranslationGlobal{}, err
		}
		if t.Originator, err = requireAddr(attrs, AttrOrigAddress); err != nil {
			return TranslationGlobal{}, err
		}
		if vid, err := attrs.Uint16(AttrTTVID); err == nil {
			t.VID = vid
		}
		if ttvn, err := attrs.Uint8(AttrTTTTVN); err == nil {
			t.TTVN = ttvn
		}
		if last, err := attrs.Uint8(AttrTTLastTTVN); err == nil {
			t.LastTTVN = last
		}
		if crc, err := attrs.Uint32(AttrTTCRC32); err == nil {
			t.CRC32 = crc
		}
		if flags, err := attrs.Uint32(AttrTTFlags); err == nil {
			t.Flags = ClientFlags(flags)
		}
		t.Best = attrs.Present(AttrFlagBest)
		return t, nil
	})
}
