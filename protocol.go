// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

// Protocol identifies the network protocol dialect a demo's messages are
// encoded in. It is inferred from the first SERVERINFO or VERSION message
// read, and is an attribute of the demo thereafter — it is never
// re-inferred on write.
type Protocol uint32

const (
	ProtocolUnknown   Protocol = 0
	ProtocolNetQuake  Protocol = 15
	ProtocolFitzQuake Protocol = 666
	ProtocolBJP3      Protocol = 10002
)

// String returns a human-readable protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolUnknown:
		return "unknown"
	case ProtocolNetQuake:
		return "netquake"
	case ProtocolFitzQuake:
		return "fitzquake"
	case ProtocolBJP3:
		return "bjp3"
	default:
		return "invalid"
	}
}

// Message type codes shared by all protocols.
const (
	MsgBad              = 0x00
	MsgNop              = 0x01
	MsgDisconnect       = 0x02
	MsgUpdateStat       = 0x03
	MsgVersion          = 0x04
	MsgSetView          = 0x05
	MsgSound            = 0x06
	MsgTime             = 0x07
	MsgPrint            = 0x08
	MsgStuffText        = 0x09
	MsgSetAngle         = 0x0A
	MsgServerInfo       = 0x0B
	MsgLightStyle       = 0x0C
	MsgUpdateName       = 0x0D
	MsgUpdateFrags      = 0x0E
	MsgClientData       = 0x0F
	MsgStopSound        = 0x10
	MsgUpdateColors     = 0x11
	MsgParticle         = 0x12
	MsgDamage           = 0x13
	MsgSpawnStatic      = 0x14
	MsgSpawnBinary      = 0x15
	MsgSpawnBaseline    = 0x16
	MsgTempEntity       = 0x17
	MsgSetPause         = 0x18
	MsgSignonNum        = 0x19
	MsgCenterPrint      = 0x1A
	MsgKilledMonster    = 0x1B
	MsgFoundSecret      = 0x1C
	MsgSpawnStaticSound = 0x1D
	MsgIntermission     = 0x1E
	MsgFinale           = 0x1F
	MsgCDTrack          = 0x20
	MsgSellScreen       = 0x21
	MsgCutscene         = 0x22
)

// FitzQuake-only message type codes.
const (
	MsgFQSkybox            = 0x25
	MsgFQBF                = 0x28
	MsgFQFog               = 0x29
	MsgFQSpawnBaseline2    = 0x2A
	MsgFQSpawnStatic2      = 0x2B
	MsgFQSpawnStaticSound2 = 0x2C
)

// BJP3-only message type codes. BJP3SKYBOX shares 0x25 with FQSKYBOX and
// is handled identically (a NUL-terminated string payload).
const (
	MsgBJP3ShowLmp = 0x23
	MsgBJP3HideLmp = 0x24
	MsgBJP3Skybox  = 0x25
	MsgBJP3Fog     = 0x33
)

// maxBlockLength is the largest permitted Block.Length.
const maxBlockLength = 65536

// cbBlocks is the progress-callback cadence, in blocks.
const cbBlocks = 2160
