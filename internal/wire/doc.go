// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wire provides the little-endian byte I/O primitives the demo
// codec is built on: single-byte reads, fixed-width little-endian
// integer/float reads, bulk reads, one-byte peek, and the symmetric
// writes.
//
// All multi-byte values on the wire are little-endian regardless of host
// byte order; every read here performs explicit byte assembly rather than
// relying on host representation.
package wire
