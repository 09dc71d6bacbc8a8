// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package framing provides a portable, non-blocking-aware message framing
// layer used to relay re-serialized demo blocks between connections. On
// stream transports it adds a compact length prefix; on boundary-preserving
// transports (SeqPacket/Datagram) it is pass-through. It never interprets
// the bytes it frames — the relay package is the one that decides a frame
// boundary coincides with one Block's wire encoding.
package framing
