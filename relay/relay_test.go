// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relay_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/quakedemo/demo"
	"github.com/quakedemo/demo/internal/framing"
	"github.com/quakedemo/demo/relay"
)

func serverInfoBlock(protocol demo.Protocol) demo.Block {
	payload := make([]byte, 0, 8)
	payload = append(payload,
		byte(protocol), byte(protocol>>8), byte(protocol>>16), byte(protocol>>24),
		16, 0, // maxclients, gametype
	)
	payload = append(payload, 0) // empty map title
	payload = append(payload, 0) // empty models run terminator
	payload = append(payload, 0) // empty sounds run terminator

	return demo.Block{
		Messages: []demo.Message{{Type: demo.MsgServerInfo, Data: payload}},
	}
}

func TestForwarderRelaysAndTracksProtocol(t *testing.T) {
	info := serverInfoBlock(demo.ProtocolFitzQuake)
	encoded, err := relay.Encode(&info)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	var upstream bytes.Buffer
	if _, err := framing.NewWriter(&upstream, framing.WithWriteLocal()).Write(encoded); err != nil {
		t.Fatalf("frame upstream: %v", err)
	}

	var downstream bytes.Buffer
	fwd := relay.NewForwarder(&downstream, relay.Local, &upstream, relay.Local)

	block, err := fwd.ForwardBlock()
	if err != nil {
		t.Fatalf("ForwardBlock: %v", err)
	}
	if len(block.Messages) != 1 || block.Messages[0].Type != demo.MsgServerInfo {
		t.Fatalf("unexpected decoded block: %+v", block)
	}
	if fwd.Protocol() != demo.ProtocolFitzQuake {
		t.Fatalf("Protocol() = %v, want fitzquake", fwd.Protocol())
	}

	if _, err := fwd.ForwardBlock(); err != io.EOF {
		t.Fatalf("ForwardBlock at end: got %v, want io.EOF", err)
	}
}
