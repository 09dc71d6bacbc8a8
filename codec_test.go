// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func serverInfoPayload(protocol Protocol) []byte {
	var data []byte
	data = append(data, byte(protocol), byte(protocol>>8), byte(protocol>>16), byte(protocol>>24))
	data = append(data, 4, 0)
	data = append(data, append([]byte("start"), 0)...)
	data = append(data, 0) // empty models run
	data = append(data, 0) // empty sounds run
	return data
}

func sampleDemo() *Demo {
	return &Demo{
		Track: 5,
		Blocks: []Block{
			{
				Angles: [3]float32{1, 2, 3},
				Messages: []Message{
					{Type: MsgServerInfo, Data: serverInfoPayload(ProtocolFitzQuake)},
					{Type: MsgPrint, Data: append([]byte("hello"), 0)},
				},
			},
			{
				Angles: [3]float32{0.5, -0.5, 0},
				Messages: []Message{
					{Type: MsgNop, Data: []byte{}},
				},
			},
		},
	}
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	d := sampleDemo()

	var buf bytes.Buffer
	if err := Write(&buf, d, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Track != d.Track {
		t.Fatalf("track = %d, want %d", got.Track, d.Track)
	}
	if got.Protocol != ProtocolFitzQuake {
		t.Fatalf("protocol = %s, want fitzquake", got.Protocol)
	}
	if len(got.Blocks) != len(d.Blocks) {
		t.Fatalf("blocks = %d, want %d", len(got.Blocks), len(d.Blocks))
	}
	for i := range d.Blocks {
		if got.Blocks[i].Angles != d.Blocks[i].Angles {
			t.Fatalf("block %d angles = %v, want %v", i, got.Blocks[i].Angles, d.Blocks[i].Angles)
		}
		if len(got.Blocks[i].Messages) != len(d.Blocks[i].Messages) {
			t.Fatalf("block %d message count = %d, want %d", i, len(got.Blocks[i].Messages), len(d.Blocks[i].Messages))
		}
	}
}

func TestReadThenWriteIsByteIdentical(t *testing.T) {
	d := sampleDemo()
	var original bytes.Buffer
	if err := Write(&original, d, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}

	parsed, err := Read(bytes.NewReader(original.Bytes()), nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	var rewritten bytes.Buffer
	if err := Write(&rewritten, parsed, nil); err != nil {
		t.Fatalf("Write (second pass): %v", err)
	}

	if !bytes.Equal(original.Bytes(), rewritten.Bytes()) {
		t.Fatalf("round-trip mismatch: %d vs %d bytes", original.Len(), rewritten.Len())
	}
}

func TestReadRejectsBlockLengthOverflow(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("0\n")
	buf.Write([]byte{0x01, 0x00, 0x01, 0x00}) // length = 65537, exceeds the 65536 maximum
	if _, err := Read(&buf, nil); err == nil {
		t.Fatal("expected error for oversized block length")
	}
}

func TestReadRejectsMismatchedMessageSum(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("0\n")
	buf.Write([]byte{20, 0, 0, 0}) // declares 20 bytes of messages but only one 1-byte nop follows
	buf.Write(make([]byte, 12))    // angles, excluded from the declared length
	buf.WriteByte(MsgNop)          // 1-byte message, total consumed = 1, not 20
	if _, err := Read(&buf, nil); err == nil {
		t.Fatal("expected error for declared length not matching message sum")
	}
}

func TestReadAcceptsBareSingleNopBlock(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("0\n")
	buf.Write([]byte{1, 0, 0, 0}) // length = 1: the messages payload alone, angles excluded
	buf.Write(make([]byte, 12))  // angles
	buf.WriteByte(MsgNop)        // 1-byte message, consumed = 1, matches declared length

	d, err := Read(&buf, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(d.Blocks) != 1 || len(d.Blocks[0].Messages) != 1 {
		t.Fatalf("got %d blocks, want 1 block with 1 message", len(d.Blocks))
	}
	if d.Blocks[0].Length != 1 {
		t.Fatalf("Length = %d, want 1", d.Blocks[0].Length)
	}
}

func TestReadPropagatesUnknownProtocol(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("0\n")

	payload := serverInfoPayload(Protocol(999999))
	length := uint32(1 + len(payload))
	buf.Write([]byte{byte(length), byte(length >> 8), byte(length >> 16), byte(length >> 24)})
	buf.Write(make([]byte, 12))
	buf.WriteByte(MsgServerInfo)
	buf.Write(payload)

	if _, err := Read(&buf, nil); err == nil {
		t.Fatal("expected unknown protocol error")
	}
}

func TestWriteFileRefusesExistingByDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.dem")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	d := sampleDemo()
	err := WriteFile(path, d, nil)
	if err != ErrFileExists {
		t.Fatalf("got %v, want ErrFileExists", err)
	}

	if err := WriteFile(path, d, &WriteOptions{Replace: true}); err != nil {
		t.Fatalf("WriteFile with Replace: %v", err)
	}

	got, err := ReadFile(path, nil)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.Track != d.Track {
		t.Fatalf("track = %d, want %d", got.Track, d.Track)
	}
}

func TestWriteSkipsEmptyBlocks(t *testing.T) {
	d := &Demo{
		Track: 0,
		Blocks: []Block{
			{}, // zero-length, no messages: must be elided
			{Angles: [3]float32{1, 1, 1}, Messages: []Message{{Type: MsgNop, Data: []byte{}}}},
		},
	}
	var buf bytes.Buffer
	if err := Write(&buf, d, nil); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.Blocks) != 1 {
		t.Fatalf("blocks = %d, want 1 (empty block elided)", len(got.Blocks))
	}
}
