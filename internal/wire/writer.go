// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wire

import (
	"io"
	"math"
)

// Writer writes little-endian primitives to an underlying io.Writer.
type Writer struct {
	w       io.Writer
	scratch [4]byte
}

// NewWriter returns a Writer that writes to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// writeAll writes all of buf, turning a short write without an error into
// io.ErrShortWrite per the io.Writer contract.
func (wr *Writer) writeAll(buf []byte) error {
	n, err := wr.w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

// WriteU8 writes a single byte.
func (wr *Writer) WriteU8(b byte) error {
	buf := wr.scratch[:1]
	buf[0] = b
	return wr.writeAll(buf)
}

// WriteU16LE writes a little-endian 16-bit unsigned integer.
func (wr *Writer) WriteU16LE(v uint16) error {
	buf := wr.scratch[:2]
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	return wr.writeAll(buf)
}

// WriteU32LE writes a little-endian 32-bit unsigned integer.
func (wr *Writer) WriteU32LE(v uint32) error {
	buf := wr.scratch[:4]
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	return wr.writeAll(buf)
}

// WriteF32LE writes a 32-bit IEEE-754 float as a little-endian 32-bit
// write of its bit pattern.
func (wr *Writer) WriteF32LE(f float32) error {
	return wr.WriteU32LE(math.Float32bits(f))
}

// WriteBytes writes buf verbatim.
func (wr *Writer) WriteBytes(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	return wr.writeAll(buf)
}
