// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"github.com/quakedemo/demo/internal/wire"
)

// readMessage reads one message (type byte plus protocol- and
// type-dependent payload) from rd.
func readMessage(rd *wire.Reader, protocol Protocol) (Message, error) {
	typ, err := rd.ReadU8()
	if err != nil {
		return Message{}, translateEOF(err)
	}
	data, err := readMessagePayload(rd, protocol, typ)
	if err != nil {
		return Message{}, err
	}
	return Message{Type: typ, Data: data}, nil
}

// writeMessage writes m's type byte and payload verbatim. The codec never
// re-derives a payload from semantic fields, so writing is always a
// straight byte copy regardless of protocol or type.
func writeMessage(wr *wire.Writer, m *Message) error {
	if err := wr.WriteU8(m.Type); err != nil {
		return newError(CodeCannotWrite, "%v", err)
	}
	if err := wr.WriteBytes(m.Data); err != nil {
		return newError(CodeCannotWrite, "%v", err)
	}
	return nil
}

// errProtocolNotPresent signals that a message does not carry a protocol
// identifier, as distinct from carrying an unsupported one.
var errProtocolNotPresent = &CodecError{Code: codeProtocolNotPresent}

// inferredProtocol extracts the protocol identifier carried by a SERVERINFO
// or VERSION message's first four payload bytes (little-endian). It
// returns errProtocolNotPresent if typ does not carry one.
func inferredProtocol(typ uint8, data []byte) (Protocol, error) {
	if typ != MsgServerInfo && typ != MsgVersion {
		return 0, errProtocolNotPresent
	}
	if len(data) < 4 {
		return 0, newError(CodeCorruptDemo, "protocol-carrying message too short")
	}
	raw := uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
	p := Protocol(raw)
	switch p {
	case ProtocolNetQuake, ProtocolFitzQuake, ProtocolBJP3:
		return p, nil
	default:
		return 0, ErrUnknownProtocol
	}
}
