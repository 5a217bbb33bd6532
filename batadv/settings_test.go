// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv_test

import (
	"context"
	"slices"
	"testing"

	"github.com/sntns/robin/batadv"
	"github.com/sntns/robin/genl"
	"github.com/sntns/robin/genl/genltest"
)

func TestSetMeshSetting(t *testing.T) {
	c, s := newTestClient(t, newFakeLinks(), func(req genltest.Request) ([][]byte, error) {
		checkMeshRequest(t, req, batadv.CmdSetMesh, genl.Request|genl.Ack)
		return [][]byte{genltest.AckFrame(req.Seq)}, nil
	})

	if err := c.SetMeshSetting(context.Background(), "bat0", "aggregation", 1); err != nil {
		t.Fatalf("SetMeshSetting: %v", err)
	}

	sent := s.Sent()
	req := sent[len(sent)-1]
	attrs, err := genl.ParseAttributes(req.Data)
	if err != nil {
		t.Fatalf("request attributes: %v", err)
	}
	if v, err := attrs.Uint8(batadv.AttrAggregatedOGMsEnabled); err != nil || v != 1 {
		t.Errorf("aggregation attr = %d, %v; want 1", v, err)
	}
}

func TestSetMeshSettingValidation(t *testing.T) {
	c, s := newTestClient(t, newFakeLinks(), nil)
	ctx := context.Background()

	if err := c.SetMeshSetting(ctx, "bat0", "aggregation", 2); err == nil {
		t.Error("boolean setting accepted value 2")
	}
	if err := c.SetMeshSetting(ctx, "bat0", "hop_penalty", 300); err == nil {
		t.Error("u8 setting accepted value 300")
	}
	if err := c.SetMeshSetting(ctx, "bat0", "warp_drive", 1); err == nil {
		t.Error("unknown setting accepted")
	}
	for _, req := range s.Sent() {
		if req.FamilyID != genl.FamilyControl {
			t.Errorf("invalid setting reached the wire: %+v", req)
		}
	}
}

func TestMeshSetting(t *testing.T) {
	c, _ := newTestClient(t, newFakeLinks(), func(req genltest.Request) ([][]byte, error) {
		checkMeshRequest(t, req, batadv.CmdGetMesh, genl.Request)
		data := encodeAttrs(func(ae *genl.AttributeEncoder) {
			ae.Uint8(batadv.AttrAggregatedOGMsEnabled, 1)
			ae.Uint32(batadv.AttrOrigInterval, 1000)
			ae.Uint8(batadv.AttrHopPenalty, 30)
		})
		return [][]byte{genltest.DataFrame(testFamilyID, req.Seq, batadv.CmdGetMesh, 1, data)}, nil
	})

	ctx := context.Background()
	for _, tt := range []struct {
		name string
		want uint32
	}{
		{"aggregation", 1},
		{"orig_interval", 1000},
		{"hop_penalty", 30},
	} {
		got, err := c.MeshSetting(ctx, "bat0", tt.name)
		if err != nil {
			t.Errorf("MeshSetting(%q): %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("MeshSetting(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestMeshSettingRoundTrip(t *testing.T) {
	var stored uint8
	c, _ := newTestClient(t, newFakeLinks(), func(req genltest.Request) ([][]byte, error) {
		attrs, err := genl.ParseAttributes(req.Data)
		if err != nil {
			return nil, err
		}
		switch req.Command {
		case batadv.CmdSetMesh:
			stored, _ = attrs.Uint8(batadv.AttrAPIsolationEnabled)
			return [][]byte{genltest.AckFrame(req.Seq)}, nil
		case batadv.CmdGetMesh:
			data := encodeAttrs(func(ae *genl.AttributeEncoder) {
				ae.Uint8(batadv.AttrAPIsolationEnabled, stored)
			})
			return [][]byte{genltest.DataFrame(testFamilyID, req.Seq, batadv.CmdGetMesh, 1, data)}, nil
		}
		return nil, nil
	})

	ctx := context.Background()
	if err := c.SetMeshSetting(ctx, "bat0", "ap_isolation", 1); err != nil {
		t.Fatalf("SetMeshSetting: %v", err)
	}
	got, err := c.MeshSetting(ctx, "bat0", "ap_isolation")
	if err != nil {
		t.Fatalf("MeshSetting: %v", err)
	}
	if got != 1 {
		t.Errorf("ap_isolation after enabling = %d, want 1", got)
	}
	enabled, err := c.APIsolation(ctx, "bat0")
	if err != nil || !enabled {
		t.Errorf("APIsolation = %v, %v; want true", enabled, err)
	}
}

func TestSettingNames(t *testing.T) {
	names := batadv.SettingNames()
	if !slices.IsSorted(names) {
		t.Errorf("SettingNames not sorted: %v", names)
	}
	for _, want := range []string{"aggregation", "ap_isolation", "bridge_loop_avoidance", "orig_interval"} {
		if !slices.Contains(names, want) {
			t.Errorf("SettingNames missing %q", want)
		}
	}
	if !batadv.IsBoolSetting("fragmentation") {
		t.Error("fragmentation not recognized as boolean")
	}
	if batadv.IsBoolSetting("orig_interval") {
		t.Error("orig_interval wrongly recognized as boolean")
	}
}

func TestGatewayModeRoundTrip(t *testing.T) {
	// The fake kernel stores the set attributes and echoes them back,
	// reproducing the wire's 100 kbit/s bandwidth granularity.
	var stored struct {
		mode     uint8
		down, up uint32
	}
	c, _ := newTestClient(t, newFakeLinks(), func(req genltest.Request) ([][]byte, error) {
		attrs, err := genl.ParseAttributes(req.Data)
		if err != nil {
			return nil, err
		}
		switch req.Command {
		case batadv.CmdSetMesh:
			stored.mode, _ = attrs.Uint8(batadv.AttrGWMode)
			stored.down, _ = attrs.Uint32(batadv.AttrGWBandwidthDown)
			stored.up, _ = attrs.Uint32(batadv.AttrGWBandwidthUp)
			return [][]byte{genltest.AckFrame(req.Seq)}, nil
		case batadv.CmdGetMesh:
			data := encodeAttrs(func(ae *genl.AttributeEncoder) {
				ae.Uint8(batadv.AttrGWMode, stored.mode)
				ae.Uint32(batadv.AttrGWBandwidthDown, stored.down)
				ae.Uint32(batadv.AttrGWBandwidthUp, stored.up)
			})
			return [][]byte{genltest.DataFrame(testFamilyID, req.Seq, batadv.CmdGetMesh, 1, data)}, nil
		}
		return nil, nil
	})

	ctx := context.Background()
	set := batadv.GatewayModeInfo{
		Mode:          batadv.GatewayServer,
		BandwidthDown: 10000,
		BandwidthUp:   2000,
	}
	if err := c.SetGatewayMode(ctx, "bat0", set); err != nil {
		t.Fatalf("SetGatewayMode: %v", err)
	}
	if stored.down != 100 || stored.up != 20 {
		t.Errorf("wire bandwidths = %d/%d, want 100/20 (100 kbit/s units)", stored.down, stored.up)
	}

	got, err := c.GatewayMode(ctx, "bat0")
	if err != nil {
		t.Fatalf("GatewayMode: %v", err)
	}
	if got != set {
		t.Errorf("GatewayMode = %+v, want %+v", got, set)
	}
}

func TestSetGatewayModeInvalid(t *testing.T) {
	c, _ := newTestClient(t, newFakeLinks(), nil)
	err := c.SetGatewayMode(context.Background(), "bat0", batadv.GatewayModeInfo{Mode: 7})
	if err == nil {
		t.Fatal("invalid gateway mode accepted")
	}
}
