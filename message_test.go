// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import "testing"

func TestInferredProtocolFromVersion(t *testing.T) {
	data := []byte{0x0F, 0x00, 0x00, 0x00} // 15 LE = NetQuake
	p, err := inferredProtocol(MsgVersion, data)
	if err != nil {
		t.Fatal(err)
	}
	if p != ProtocolNetQuake {
		t.Fatalf("got %s, want netquake", p)
	}
}

func TestInferredProtocolRejectsUnknown(t *testing.T) {
	data := []byte{0xFF, 0xFF, 0x00, 0x00}
	if _, err := inferredProtocol(MsgVersion, data); err == nil {
		t.Fatal("expected error for unrecognized protocol value")
	}
}

func TestInferredProtocolNotPresentForOtherTypes(t *testing.T) {
	_, err := inferredProtocol(MsgPrint, []byte{0, 0, 0, 0})
	if err != errProtocolNotPresent {
		t.Fatalf("got %v, want errProtocolNotPresent", err)
	}
}
