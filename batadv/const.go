// Copyright (c) The Robin Authors
// SPDX-License-Identifier: BSD-3-Clause

package batadv

// FamilyName is the well-known generic netlink family name registered
// by the batman-adv module. The numeric family id is assigned at
// module load and must be resolved at runtime.
const FamilyName = "batadv"

// genlVersion is BATADV_GENL_VERSION, sent in every request header.
const genlVersion = 1

// Commands from enum batadv_nl_commands in uapi/linux/batman_adv.h.
const (
	CmdGetMesh             uint8 = 1
	CmdTPMeter             uint8 = 2
	CmdTPMeterCancel       uint8 = 3
	CmdGetRoutingAlgos     uint8 = 4
	CmdGetHardIf           uint8 = 5
	CmdGetTranstableLocal  uint8 = 6
	CmdGetTranstableGlobal uint8 = 7
	CmdGetOriginators      uint8 = 8
	CmdGetNeighbors        uint8 = 9
	CmdGetGateways         uint8 = 10
	CmdGetBLAClaim         uint8 = 11
	CmdGetBLABackbone      uint8 = 12
	CmdGetDATCache         uint8 = 13
	CmdGetMcastFlags       uint8 = 14
	CmdSetMesh             uint8 = 15
	CmdSetHardIf           uint8 = 16
	CmdGetVLAN             uint8 = 17
	CmdSetVLAN             uint8 = 18
)

// Attributes from enum batadv_nl_attrs in uapi/linux/batman_adv.h.
const (
	AttrVersion                     uint16 = 1
	AttrAlgoName                    uint16 = 2
	AttrMeshIfIndex                 uint16 = 3
	AttrMeshIfName                  uint16 = 4
	AttrMeshAddress                 uint16 = 5
	AttrHardIfIndex                 uint16 = 6
	AttrHardIfName                  uint16 = 7
	AttrHardAddress                 uint16 = 8
	AttrOrigAddress                 uint16 = 9
	AttrTPMeterResult               uint16 = 10
	AttrTPMeterTestTime             uint16 = 11
	AttrTPMeterBytes                uint16 = 12
	AttrTPMeterCookie               uint16 = 13
	AttrPad                         uint16 = 14
	AttrActive                      uint16 = 15
	AttrTTAddress                   uint16 = 16
	AttrTTTTVN                      uint16 = 17
	AttrTTLastTTVN                  uint16 = 18
	AttrTTCRC32                     uint16 = 19
	AttrTTVID                       uint16 = 20
	AttrTTFlags                     uint16 = 21
	AttrFlagBest                    uint16 = 22
	AttrLastSeenMsecs               uint16 = 23
	AttrNeighAddress                uint16 = 24
	AttrTQ                          uint16 = 25
	AttrThroughput                  uint16 = 26
	AttrBandwidthUp                 uint16 = 27
	AttrBandwidthDown               uint16 = 28
	AttrRouter                      uint16 = 29
	AttrBLAOwn                      uint16 = 30
	AttrBLAAddress                  uint16 = 31
	AttrBLAVID                      uint16 = 32
	AttrBLABackbone                 uint16 = 33
	AttrBLACRC                      uint16 = 34
	AttrDATCacheIP4Address          uint16 = 35
	AttrDATCacheHWAddress           uint16 = 36
	AttrDATCacheVID                 uint16 = 37
	AttrMcastFlags                  uint16 = 38
	AttrMcastFlagsPriv              uint16 = 39
	AttrVLANID                      uint16 = 40
	AttrAggregatedOGMsEnabled       uint16 = 41
	AttrAPIsolationEnabled          uint16 = 42
	AttrIsolationMark               uint16 = 43
	AttrIsolationMask               uint16 = 44
	AttrBondingEnabled              uint16 = 45
	AttrBridgeLoopAvoidanceEnabled  uint16 = 46
	AttrDistributedARPTableEnabled  uint16 = 47
	AttrFragmentationEnabled        uint16 = 48
	AttrGWBandwidthDown             uint16 = 49
	AttrGWBandwidthUp               uint16 = 50
	AttrGWMode                      uint16 = 51
	AttrGWSelClass                  uint16 = 52
	AttrHopPenalty                  uint16 = 53
	AttrLogLevel                    uint16 = 54
	AttrMulticastForcefloodEnabled  uint16 = 55
	AttrNetworkCodingEnabled        uint16 = 56
	AttrOrigInterval                uint16 = 57
	AttrELPInterval                 uint16 = 58
	AttrThroughputOverride          uint16 = 59
	AttrMulticastFanout             uint16 = 60
)

// ClientFlags are the translation table client flags (BATADV_TT_CLIENT_*).
type ClientFlags uint32

const (
	ClientDel      ClientFlags = 1 << 0
	ClientRoam     ClientFlags = 1 << 1
	ClientWifi     ClientFlags = 1 << 4
	ClientIsolated ClientFlags = 1 << 5
	ClientNoPurge  ClientFlags = 1 << 8
	ClientNew      ClientFlags = 1 << 9
	ClientPending  ClientFlags = 1 << 10
	ClientTemp     ClientFlags = 1 << 11
)

// String renders the flags the way batctl does in its translation
// table listings: one letter per set flag.
func (f ClientFlags) String() string {
	flags := []struct {
		bit ClientFlags
		c   byte
	}{
		{ClientDel, 'D'},
		{ClientRoam, 'R'},
		{ClientWifi, 'W'},
		{ClientIsolated, 'I'},
		{ClientNoPurge, 'P'},
		{ClientNew, 'N'},
		{ClientPending, 'X'},
		{ClientTemp, 'T'},
	}
	b := make([]byte, len(flags))
	for i, fl := range flags {
		b[i] = '.'
		if f&fl.bit != 0 {
			b[i] = fl.c
		}
	}
	return string(b)
}

// GatewayModeValue is the wire value of BATADV_ATTR_GW_MODE.
type GatewayModeValue uint8

const (
	GatewayOff    GatewayModeValue = 0
	GatewayClient GatewayModeValue = 1
	GatewayServer GatewayModeValue = 2
)

func (m GatewayModeValue) String() string {
	switch m {
	case GatewayOff:
		return "off"
	case GatewayClient:
		return "client"
	case GatewayServer:
		return "server"
	}
	return "unknown"
}

// ParseGatewayMode maps the textual mode names back to wire values.
func ParseGatewayMode(s string) (GatewayModeValue, bool) {
	switch s {
	case "off":
		return GatewayOff, true
	case "client":
		return GatewayClient, true
	case "server":
		return GatewayServer, true
	}
	return 0, false
}
