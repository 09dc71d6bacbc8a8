// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"math/bits"

	"github.com/quakedemo/demo/internal/wire"
)

// fixedSizes maps a message type to its payload size when that size does
// not depend on the active protocol. Types absent from this table are
// either FitzQuake fixed additions or variable-length, handled separately.
var fixedSizes = map[uint8]uint32{
	MsgBad:           0,
	MsgNop:           0,
	MsgDisconnect:    0,
	MsgSpawnBinary:   0,
	MsgKilledMonster: 0,
	MsgFoundSecret:   0,
	MsgIntermission:  0,
	MsgSellScreen:    0,

	MsgSetPause:  1,
	MsgSignonNum: 1,

	MsgSetView:      2,
	MsgStopSound:    2,
	MsgUpdateColors: 2,
	MsgCDTrack:      2,

	MsgSetAngle:    3,
	MsgUpdateFrags: 3,

	MsgVersion: 4,
	MsgTime:    4,

	MsgUpdateStat: 5,

	MsgDamage: 8,

	MsgSpawnStaticSound: 9,

	MsgParticle: 11,

	MsgSpawnStatic: 13,

	MsgSpawnBaseline: 15,
}

// fqFixedSizes are FitzQuake-only fixed-size messages, consulted only
// when protocol is FitzQuake and the type was not found in fixedSizes.
var fqFixedSizes = map[uint8]uint32{
	MsgFQBF:                0,
	MsgFQFog:               6,
	MsgFQSpawnStaticSound2: 10,
}

// cstringCap is the maximum number of non-NUL bytes accepted in a
// string-payload message before it is treated as corrupt.
const cstringCap = 2047

// readCString reads bytes up to and including a terminating NUL, up to
// cstringCap non-NUL bytes. The returned slice includes the NUL.
func readCString(rd *wire.Reader) ([]byte, error) {
	buf := make([]byte, 0, 16)
	for len(buf) <= cstringCap {
		b, err := rd.ReadU8()
		if err != nil {
			return nil, translateEOF(err)
		}
		buf = append(buf, b)
		if b == 0 {
			return buf, nil
		}
	}
	return nil, newError(CodeCorruptDemo, "string payload exceeds %d bytes without a terminator", cstringCap)
}

// translateEOF converts a wire-level EOF condition encountered mid-message
// into the codec's UnexpectedEof error.
func translateEOF(err error) error {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CodecError); ok {
		return ce
	}
	return newError(CodeUnexpectedEOF, "%v", err)
}

// readFixedMessage reads n raw payload bytes for a fixed-size message.
func readFixedMessage(rd *wire.Reader, n uint32) ([]byte, error) {
	data, err := rd.ReadN(int(n))
	if err != nil {
		return nil, translateEOF(err)
	}
	return data, nil
}

// readMessagePayload reads and returns the payload bytes for a message of
// the given type under the given protocol. typ is the already-consumed
// type byte.
func readMessagePayload(rd *wire.Reader, protocol Protocol, typ uint8) ([]byte, error) {
	if size, ok := fixedSizes[typ]; ok {
		if protocol == ProtocolBJP3 && (typ == MsgSpawnBaseline || typ == MsgSpawnStatic) {
			size++
		}
		return readFixedMessage(rd, size)
	}

	if protocol == ProtocolFitzQuake {
		if size, ok := fqFixedSizes[typ]; ok {
			return readFixedMessage(rd, size)
		}
	}

	switch typ {
	case MsgPrint, MsgStuffText, MsgCenterPrint, MsgFinale, MsgCutscene:
		return readCString(rd)

	case MsgFQSkybox: // shared with MsgBJP3Skybox (0x25)
		if protocol == ProtocolFitzQuake || protocol == ProtocolBJP3 {
			return readCString(rd)
		}
		return nil, newError(CodeCorruptDemo, "skybox message under unsupported protocol %s", protocol)

	case MsgBJP3ShowLmp:
		if protocol != ProtocolBJP3 {
			return nil, newError(CodeCorruptDemo, "bjp3 showlmp under protocol %s", protocol)
		}
		return readBJP3ShowLmp(rd)

	case MsgBJP3HideLmp:
		if protocol != ProtocolBJP3 {
			return nil, newError(CodeCorruptDemo, "bjp3 hidelmp under protocol %s", protocol)
		}
		return readCString(rd)

	case MsgBJP3Fog:
		if protocol != ProtocolBJP3 {
			return nil, newError(CodeCorruptDemo, "bjp3 fog under protocol %s", protocol)
		}
		return readBJP3Fog(rd)

	case MsgFQSpawnBaseline2:
		if protocol != ProtocolFitzQuake {
			return nil, newError(CodeCorruptDemo, "spawnbaseline2 under protocol %s", protocol)
		}
		return readFQMaskedFixed(rd, 15)

	case MsgFQSpawnStatic2:
		if protocol != ProtocolFitzQuake {
			return nil, newError(CodeCorruptDemo, "spawnstatic2 under protocol %s", protocol)
		}
		return readFQMaskedFixed(rd, 13)

	case MsgSound:
		return readSound(rd, protocol)

	case MsgServerInfo:
		return readServerInfo(rd)

	case MsgLightStyle, MsgUpdateName:
		return readIndexedString(rd)

	case MsgClientData:
		return readClientData(rd, protocol)

	case MsgTempEntity:
		return readTempEntity(rd)

	default:
		if typ&0x80 == 0 {
			return nil, newError(CodeCorruptDemo, "message type %#02x is neither fixed, variable, nor an entity update", typ)
		}
		return readEntityUpdate(rd, protocol, typ)
	}
}

func readBJP3ShowLmp(rd *wire.Reader) ([]byte, error) {
	s1, err := readCString(rd)
	if err != nil {
		return nil, err
	}
	s2, err := readCString(rd)
	if err != nil {
		return nil, err
	}
	xy, err := rd.ReadN(2)
	if err != nil {
		return nil, translateEOF(err)
	}
	data := make([]byte, 0, len(s1)+len(s2)+2)
	data = append(data, s1...)
	data = append(data, s2...)
	data = append(data, xy...)
	return data, nil
}

func readBJP3Fog(rd *wire.Reader) ([]byte, error) {
	enable, err := rd.ReadU8()
	if err != nil {
		return nil, translateEOF(err)
	}
	if enable == 0 {
		return []byte{enable}, nil
	}
	rest, err := rd.ReadN(7)
	if err != nil {
		return nil, translateEOF(err)
	}
	data := make([]byte, 0, 8)
	data = append(data, enable)
	data = append(data, rest...)
	return data, nil
}

// readFQMaskedFixed reads the FitzQuake SPAWNBASELINE2/SPAWNSTATIC2
// payload: a mask byte followed by base+popcount({0x01,0x02,0x04}&mask)
// bytes.
func readFQMaskedFixed(rd *wire.Reader, base uint32) ([]byte, error) {
	mask, err := rd.ReadU8()
	if err != nil {
		return nil, translateEOF(err)
	}
	extra := uint32(0)
	for _, bit := range [...]byte{0x01, 0x02, 0x04} {
		if mask&bit != 0 {
			extra++
		}
	}
	rest, err := rd.ReadN(int(base + extra))
	if err != nil {
		return nil, translateEOF(err)
	}
	data := make([]byte, 0, 1+base+extra)
	data = append(data, mask)
	data = append(data, rest...)
	return data, nil
}

func readSound(rd *wire.Reader, protocol Protocol) ([]byte, error) {
	mask, err := rd.ReadU8()
	if err != nil {
		return nil, translateEOF(err)
	}
	size := uint32(10)
	if mask&0x01 != 0 {
		size++
	}
	if mask&0x02 != 0 {
		size++
	}
	if protocol == ProtocolFitzQuake {
		if mask&0x08 != 0 {
			size++
		}
		if mask&0x10 != 0 {
			size++
		}
	}
	if protocol == ProtocolBJP3 {
		// sound_num is a short rather than a byte.
		size++
	}
	rest, err := rd.ReadN(int(size - 1))
	if err != nil {
		return nil, translateEOF(err)
	}
	data := make([]byte, 0, size)
	data = append(data, mask)
	data = append(data, rest...)
	return data, nil
}

func readServerInfo(rd *wire.Reader) ([]byte, error) {
	fixed, err := rd.ReadN(6)
	if err != nil {
		return nil, translateEOF(err)
	}
	data := append([]byte(nil), fixed...)

	title, err := readCString(rd)
	if err != nil {
		return nil, err
	}
	data = append(data, title...)

	for {
		s, err := readCString(rd)
		if err != nil {
			return nil, err
		}
		data = append(data, s...)
		if len(s) == 1 {
			break
		}
	}
	for {
		s, err := readCString(rd)
		if err != nil {
			return nil, err
		}
		data = append(data, s...)
		if len(s) == 1 {
			break
		}
	}
	return data, nil
}

func readIndexedString(rd *wire.Reader) ([]byte, error) {
	idx, err := rd.ReadU8()
	if err != nil {
		return nil, translateEOF(err)
	}
	s, err := readCString(rd)
	if err != nil {
		return nil, err
	}
	data := make([]byte, 0, 1+len(s))
	data = append(data, idx)
	data = append(data, s...)
	return data, nil
}

func readClientData(rd *wire.Reader, protocol Protocol) ([]byte, error) {
	size := uint32(14)
	mask16, err := rd.ReadU16LE()
	if err != nil {
		return nil, translateEOF(err)
	}
	mask := uint32(mask16)

	var extra1, extra2 byte
	haveExtra1, haveExtra2 := false, false
	if protocol == ProtocolFitzQuake {
		if mask&0x8000 != 0 {
			extra1, err = rd.ReadU8()
			if err != nil {
				return nil, translateEOF(err)
			}
			haveExtra1 = true
			mask |= uint32(extra1) << 16
			size++

			if mask&0x00800000 != 0 {
				extra2, err = rd.ReadU8()
				if err != nil {
					return nil, translateEOF(err)
				}
				haveExtra2 = true
				mask |= uint32(extra2) << 24
				size++
			}
		}
	}

	var bytemask uint32 = 0x70FF
	if protocol == ProtocolFitzQuake {
		bytemask = 0x037F70FF
	}
	size += uint32(bits.OnesCount32(mask & bytemask))

	if protocol == ProtocolBJP3 && mask&0x4000 != 0 {
		// SU_WEAPON is a short.
		size++
	}

	if mask&0x80000000 != 0 {
		return nil, newError(CodeCorruptDemo, "clientdata mask sets unsupported high bit")
	}

	data := make([]byte, size)
	data[0] = byte(mask16)
	data[1] = byte(mask16 >> 8)
	i := 2
	if haveExtra1 {
		data[i] = extra1
		i++
	}
	if haveExtra2 {
		data[i] = extra2
		i++
	}
	rest, err := rd.ReadN(int(size) - i)
	if err != nil {
		return nil, translateEOF(err)
	}
	copy(data[i:], rest)
	return data, nil
}

var tempEntitySizes = map[uint8]uint32{
	0: 7, 1: 7, 2: 7, 3: 7, 4: 7, 7: 7, 8: 7, 10: 7, 11: 7,
	5: 15, 6: 15, 9: 15, 13: 15,
	12: 9,
}

func readTempEntity(rd *wire.Reader) ([]byte, error) {
	subtype, err := rd.ReadU8()
	if err != nil {
		return nil, translateEOF(err)
	}
	size, ok := tempEntitySizes[subtype]
	if !ok {
		return nil, newError(CodeCorruptDemo, "temp_entity subtype %d has no known size", subtype)
	}
	rest, err := rd.ReadN(int(size - 1))
	if err != nil {
		return nil, translateEOF(err)
	}
	data := make([]byte, 0, size)
	data = append(data, subtype)
	data = append(data, rest...)
	return data, nil
}

// readEntityUpdate reads the default "quick update" branch: a type byte
// with the high bit set, whose low 7 bits form the primary mask.
func readEntityUpdate(rd *wire.Reader, protocol Protocol, typ uint8) ([]byte, error) {
	mask := uint32(typ & 0x7F)
	size := uint32(1)

	var e1, e2, e3 byte
	haveE1, haveE2, haveE3 := false, false, false

	if mask&0x01 != 0 {
		b, err := rd.ReadU8()
		if err != nil {
			return nil, translateEOF(err)
		}
		e1 = b
		haveE1 = true
		mask |= uint32(e1) << 8
		size++
	}

	if protocol == ProtocolFitzQuake {
		if mask&0x8000 != 0 {
			b, err := rd.ReadU8()
			if err != nil {
				return nil, translateEOF(err)
			}
			e2 = b
			haveE2 = true
			mask |= uint32(e2) << 16
			size++
		}
		if mask&0x800000 != 0 {
			b, err := rd.ReadU8()
			if err != nil {
				return nil, translateEOF(err)
			}
			e3 = b
			haveE3 = true
			mask |= uint32(e3) << 24
			size++
		}
	}

	var bytemask uint32 = 0x7F50
	if protocol == ProtocolFitzQuake {
		bytemask = 0xF7F50
	}
	size += uint32(bits.OnesCount32(mask & bytemask))
	size += uint32(bits.OnesCount32(mask&0x0E)) * 2

	if protocol == ProtocolBJP3 && mask&0x0400 != 0 {
		// U_MODEL is a short.
		size++
	}

	data := make([]byte, size)
	i := 0
	if haveE1 {
		data[i] = e1
		i++
	}
	if haveE2 {
		data[i] = e2
		i++
	}
	if haveE3 {
		data[i] = e3
		i++
	}
	rest, err := rd.ReadN(int(size) - i)
	if err != nil {
		return nil, translateEOF(err)
	}
	copy(data[i:], rest)
	return data, nil
}
