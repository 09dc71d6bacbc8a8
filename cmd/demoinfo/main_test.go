// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/quakedemo/demo"
)

func TestSummarizeCountsMessagesByType(t *testing.T) {
	d := &demo.Demo{
		Protocol: demo.ProtocolFitzQuake,
		Track:    3,
		Blocks: []demo.Block{
			{Messages: []demo.Message{
				{Type: demo.MsgNop},
				{Type: demo.MsgNop},
				{Type: demo.MsgPrint, Data: []byte("hi\x00")},
			}},
			{Messages: []demo.Message{
				{Type: demo.MsgNop},
			}},
		},
	}

	s := summarize(d)
	if s.Protocol != "fitzquake" {
		t.Fatalf("Protocol = %q, want fitzquake", s.Protocol)
	}
	if s.BlockCount != 2 {
		t.Fatalf("BlockCount = %d, want 2", s.BlockCount)
	}
	if s.MessageCount != 4 {
		t.Fatalf("MessageCount = %d, want 4", s.MessageCount)
	}
	if s.MessagesByType["0x01"] != 3 {
		t.Fatalf("nop count = %d, want 3", s.MessagesByType["0x01"])
	}
	if s.MessagesByType["0x08"] != 1 {
		t.Fatalf("print count = %d, want 1", s.MessagesByType["0x08"])
	}
}
