// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"bytes"
	"testing"

	"github.com/quakedemo/demo/internal/wire"
)

func roundTripMessage(t *testing.T, protocol Protocol, m Message) Message {
	t.Helper()
	var buf bytes.Buffer
	if err := writeMessage(wire.NewWriter(&buf), &m); err != nil {
		t.Fatalf("writeMessage: %v", err)
	}
	got, err := readMessage(wire.NewReader(&buf), protocol)
	if err != nil {
		t.Fatalf("readMessage: %v", err)
	}
	return got
}

func TestFixedSizeMessageRoundTrip(t *testing.T) {
	m := Message{Type: MsgUpdateStat, Data: []byte{1, 2, 3, 4, 5}}
	got := roundTripMessage(t, ProtocolNetQuake, m)
	if got.Type != m.Type || !bytes.Equal(got.Data, m.Data) {
		t.Fatalf("got %+v, want %+v", got, m)
	}
}

func TestZeroSizeFixedMessageRoundTrip(t *testing.T) {
	m := Message{Type: MsgNop, Data: []byte{}}
	got := roundTripMessage(t, ProtocolNetQuake, m)
	if got.Type != m.Type || len(got.Data) != 0 {
		t.Fatalf("got %+v, want zero-length nop", got)
	}
}

func TestFitzQuakeFixedAdditions(t *testing.T) {
	m := Message{Type: MsgFQFog, Data: make([]byte, 6)}
	got := roundTripMessage(t, ProtocolFitzQuake, m)
	if len(got.Data) != 6 {
		t.Fatalf("fog payload = %d bytes, want 6", len(got.Data))
	}
}

func TestBJP3AdjustsSpawnBaselineAndSpawnStatic(t *testing.T) {
	for _, typ := range []uint8{MsgSpawnBaseline, MsgSpawnStatic} {
		base := fixedSizes[typ]
		mNetQuake := Message{Type: typ, Data: make([]byte, base)}
		roundTripMessage(t, ProtocolNetQuake, mNetQuake)

		mBJP3 := Message{Type: typ, Data: make([]byte, base+1)}
		got := roundTripMessage(t, ProtocolBJP3, mBJP3)
		if uint32(len(got.Data)) != base+1 {
			t.Fatalf("type %#x under bjp3: got %d bytes, want %d", typ, len(got.Data), base+1)
		}
	}
}

func TestStringPayloadMessageRoundTrip(t *testing.T) {
	m := Message{Type: MsgPrint, Data: append([]byte("hello world"), 0)}
	got := roundTripMessage(t, ProtocolNetQuake, m)
	if !bytes.Equal(got.Data, m.Data) {
		t.Fatalf("got %q, want %q", got.Data, m.Data)
	}
}

func TestStringPayloadRequiresTerminator(t *testing.T) {
	rd := wire.NewReader(bytes.NewReader(bytes.Repeat([]byte{'a'}, cstringCap+1)))
	if _, err := readCString(rd); err == nil {
		t.Fatal("expected error for unterminated string exceeding cap")
	}
}

func TestSkyboxSharedBetweenFitzQuakeAndBJP3(t *testing.T) {
	payload := append([]byte("sky/cloud"), 0)
	for _, p := range []Protocol{ProtocolFitzQuake, ProtocolBJP3} {
		m := Message{Type: MsgFQSkybox, Data: payload}
		got := roundTripMessage(t, p, m)
		if !bytes.Equal(got.Data, payload) {
			t.Fatalf("protocol %s: got %q, want %q", p, got.Data, payload)
		}
	}
}

func TestSkyboxRejectedUnderNetQuake(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(MsgFQSkybox)
	buf.Write(append([]byte("x"), 0))
	if _, err := readMessage(wire.NewReader(&buf), ProtocolNetQuake); err == nil {
		t.Fatal("expected error for skybox message under netquake")
	}
}

func TestSoundMaskSizingPerProtocol(t *testing.T) {
	cases := []struct {
		protocol Protocol
		mask     byte
		wantSize int
	}{
		{ProtocolNetQuake, 0x00, 10},
		{ProtocolNetQuake, 0x03, 12},
		{ProtocolFitzQuake, 0x1B, 14},
		{ProtocolBJP3, 0x00, 11},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		buf.WriteByte(MsgSound)
		buf.WriteByte(c.mask)
		buf.Write(make([]byte, 32))
		m, err := readMessage(wire.NewReader(&buf), c.protocol)
		if err != nil {
			t.Fatalf("protocol %s mask %#x: %v", c.protocol, c.mask, err)
		}
		if len(m.Data) != c.wantSize {
			t.Fatalf("protocol %s mask %#x: size = %d, want %d", c.protocol, c.mask, len(m.Data), c.wantSize)
		}
	}
}

func TestServerInfoRoundTrip(t *testing.T) {
	var payload []byte
	payload = append(payload, 0x9A, 0x02, 0x00, 0x00) // protocol 666 LE
	payload = append(payload, 8, 0)                   // maxclients, gametype
	payload = append(payload, append([]byte("dm3"), 0)...)
	payload = append(payload, append([]byte("progs/player.mdl"), 0)...)
	payload = append(payload, 0) // end models
	payload = append(payload, append([]byte("sound/weapon.wav"), 0)...)
	payload = append(payload, 0) // end sounds

	m := Message{Type: MsgServerInfo, Data: payload}
	got := roundTripMessage(t, ProtocolFitzQuake, m)
	if !bytes.Equal(got.Data, payload) {
		t.Fatalf("got %d bytes, want %d", len(got.Data), len(payload))
	}
}

func TestClientDataMinimal(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(MsgClientData)
	buf.Write([]byte{0, 0}) // mask = 0
	buf.Write(make([]byte, 14))
	m, err := readMessage(wire.NewReader(&buf), ProtocolNetQuake)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Data) != 14 {
		t.Fatalf("size = %d, want 14", len(m.Data))
	}
}

func TestEntityUpdateMinimal(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x80) // high bit set, mask low bits all zero
	buf.Write(make([]byte, 1))
	m, err := readMessage(wire.NewReader(&buf), ProtocolNetQuake)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Data) != 1 {
		t.Fatalf("size = %d, want 1", len(m.Data))
	}
}

func TestEntityUpdateWithExtraMaskByte(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(0x81) // high bit + mask bit 0x01 -> extramask1 present
	buf.WriteByte(0x00) // extramask1, no additional bits set
	buf.Write(make([]byte, 1))
	m, err := readMessage(wire.NewReader(&buf), ProtocolNetQuake)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Data) != 2 {
		t.Fatalf("size = %d, want 2 (extramask1 + base)", len(m.Data))
	}
}

func TestTempEntitySizing(t *testing.T) {
	cases := map[uint8]int{0: 7, 5: 15, 12: 9}
	for subtype, want := range cases {
		var buf bytes.Buffer
		buf.WriteByte(MsgTempEntity)
		buf.WriteByte(subtype)
		buf.Write(make([]byte, 16))
		m, err := readMessage(wire.NewReader(&buf), ProtocolNetQuake)
		if err != nil {
			t.Fatalf("subtype %d: %v", subtype, err)
		}
		if len(m.Data) != want {
			t.Fatalf("subtype %d: size = %d, want %d", subtype, len(m.Data), want)
		}
	}
}

func TestTempEntityUnknownSubtypeIsCorrupt(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(MsgTempEntity)
	buf.WriteByte(200)
	if _, err := readMessage(wire.NewReader(&buf), ProtocolNetQuake); err == nil {
		t.Fatal("expected error for unknown temp_entity subtype")
	}
}

func TestFQSpawnBaseline2Sizing(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteByte(MsgFQSpawnBaseline2)
	buf.WriteByte(0x07) // bits 0x01, 0x02, 0x04 all set -> extra = 3
	buf.Write(make([]byte, 18))
	m, err := readMessage(wire.NewReader(&buf), ProtocolFitzQuake)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Data) != 1+15+3 {
		t.Fatalf("size = %d, want %d", len(m.Data), 1+15+3)
	}
}
