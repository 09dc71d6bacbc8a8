// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package framing_test

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/quakedemo/demo/internal/framing"
)

func TestStreamRoundTrip(t *testing.T) {
	var raw bytes.Buffer
	w := framing.NewWriter(&raw, framing.WithByteOrder(binary.BigEndian), framing.WithProtocol(framing.BinaryStream))
	r := framing.NewReader(&raw, framing.WithByteOrder(binary.BigEndian), framing.WithProtocol(framing.BinaryStream))

	frames := [][]byte{
		{},
		[]byte("one block"),
		bytes.Repeat([]byte{'x'}, 253),
		bytes.Repeat([]byte{'y'}, 254),
		bytes.Repeat([]byte{'z'}, 70000),
	}

	for i, f := range frames {
		n, err := w.Write(f)
		if err != nil {
			t.Fatalf("write[%d]: %v", i, err)
		}
		if n != len(f) {
			t.Fatalf("write[%d]: n=%d want=%d", i, n, len(f))
		}
	}

	for i, want := range frames {
		got := make([]byte, len(want))
		n, err := io.ReadFull(r, got)
		if err != nil && err != io.EOF {
			t.Fatalf("read[%d]: %v", i, err)
		}
		if n != len(want) || !bytes.Equal(got, want) {
			t.Fatalf("read[%d]: got %d bytes, want %d", i, n, len(want))
		}
	}
}

func TestPacketPassthrough(t *testing.T) {
	var raw bytes.Buffer
	w := framing.NewWriter(&raw, framing.WithProtocol(framing.Datagram))
	r := framing.NewReader(&raw, framing.WithProtocol(framing.Datagram))

	payload := []byte("packet payload")
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := make([]byte, len(payload))
	n, err := r.Read(got)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if n != len(payload) || !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got[:n], payload)
	}
}

func TestForwarderRelaysFrames(t *testing.T) {
	var src bytes.Buffer
	w := framing.NewWriter(&src, framing.WithProtocol(framing.BinaryStream))
	for _, s := range []string{"first", "second", "third"} {
		if _, err := w.Write([]byte(s)); err != nil {
			t.Fatalf("seed write: %v", err)
		}
	}

	var dst bytes.Buffer
	fwd := framing.NewForwarder(&dst, &src, framing.WithProtocol(framing.BinaryStream))
	for i := 0; i < 3; i++ {
		if _, err := fwd.ForwardOnce(); err != nil {
			t.Fatalf("forward[%d]: %v", i, err)
		}
	}
	if _, err := fwd.ForwardOnce(); err != io.EOF {
		t.Fatalf("forward[eof]: got %v, want io.EOF", err)
	}

	r := framing.NewReader(&dst, framing.WithProtocol(framing.BinaryStream))
	for _, want := range []string{"first", "second", "third"} {
		got := make([]byte, len(want))
		if _, err := io.ReadFull(r, got); err != nil {
			t.Fatalf("verify read: %v", err)
		}
		if string(got) != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestWithWriteTCPShortFrameUsesSingleByteLengthPrefix(t *testing.T) {
	var raw bytes.Buffer
	w := framing.NewWriter(&raw, framing.WithWriteTCP())
	if _, err := w.Write([]byte("hello")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if raw.Bytes()[0] != 5 {
		t.Fatalf("expected single-byte length prefix 5, got %d", raw.Bytes()[0])
	}
}
