// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package demo implements a reader/writer for Quake engine demo files
// (stock NetQuake, FitzQuake, and the BJP3 variant). It captures demos as
// an ordered sequence of blocks, each an ordered sequence of messages,
// without interpreting message payloads — round-tripping a well-formed
// demo through Read then Write reproduces it byte-for-byte.
package demo

// Message is one recorded game event within a Block: a one-byte type code
// followed by a type- and protocol-dependent payload. The codec captures
// Data verbatim; it never interprets the payload.
type Message struct {
	Type uint8
	Data []byte
}

// Size is the payload length, equal to len(m.Data).
func (m *Message) Size() uint32 { return uint32(len(m.Data)) }

// wireSize is the number of bytes this message occupies on the wire,
// including its type byte.
func (m *Message) wireSize() uint32 { return 1 + m.Size() }

// Block is one frame of recorded data: a view-angles triplet plus an
// ordered run of Messages whose cumulative wire size must equal Length.
type Block struct {
	// Length is the declared payload length: the sum, over Messages, of
	// (1 + len(Data)). It must be <= 65536.
	Length uint32

	// Angles holds view pitch, yaw, and roll.
	Angles [3]float32

	Messages []Message
}

// messagesWireSize returns the sum of each message's wire size.
func (b *Block) messagesWireSize() uint32 {
	var total uint32
	for i := range b.Messages {
		total += b.Messages[i].wireSize()
	}
	return total
}

// Demo is the top-level in-memory representation of one demo file.
type Demo struct {
	// Protocol is the network protocol dialect inferred from the first
	// SERVERINFO or VERSION message read. It is ProtocolUnknown if no
	// such message was present.
	Protocol Protocol

	// Track is the signed CD-track header value; -1 denotes none.
	Track int32

	Blocks []Block
}

// Release drops the demo's block and message data, preparing it (and any
// registered references) for garbage collection. Go's runtime reclaims
// memory automatically; Release exists to give callers a deterministic
// point at which to stop holding large demos in memory, mirroring the
// original library's recursive free.
func (d *Demo) Release() {
	if d == nil {
		return
	}
	d.Blocks = nil
}

// ReleaseData clears d's blocks while keeping the Demo shell (Protocol and
// Track) intact, so the value can be reused for another Read.
func (d *Demo) ReleaseData() {
	if d == nil {
		return
	}
	d.Blocks = nil
}
