// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"io"
	"os"

	"github.com/quakedemo/demo/internal/wire"
)

// Write serializes d to w. Blocks with zero messages and a declared length
// of 0 are elided, matching the reference writer's behavior. Every other
// block is written with a length prefix computed from its messages' wire
// sizes; Block.Length is not written, and a Length that differs from that
// sum is not reported as an error.
func Write(w io.Writer, d *Demo, opts *WriteOptions) error {
	if w == nil || d == nil {
		return ErrBadParams
	}
	wr := wire.NewWriter(w)

	if err := writeCDTrack(wr, d.Track); err != nil {
		return newError(CodeCannotWrite, "%v", err)
	}

	for i := range d.Blocks {
		b := &d.Blocks[i]
		if b.Length == 0 && len(b.Messages) == 0 {
			continue
		}
		if err := writeBlock(wr, b); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile serializes d to a new file at path. By default it refuses to
// overwrite an existing file; set opts.Replace to allow it.
func WriteFile(path string, d *Demo, opts *WriteOptions) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	replace := false
	if opts != nil {
		replace = opts.Replace
	}
	if !replace {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return ErrFileExists
		}
		return newError(CodeCannotWrite, "%v", err)
	}

	werr := Write(f, d, opts)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	if cerr != nil {
		return newError(CodeCannotWrite, "%v", cerr)
	}
	return nil
}

// WriteBlock re-serializes a single block exactly as Write would emit it
// within a demo stream: a length prefix, the view angles, then each
// message's type byte and payload in order. It is exported for callers
// that relay individual blocks rather than whole demo files.
func WriteBlock(w io.Writer, b *Block) error {
	if w == nil || b == nil {
		return ErrBadParams
	}
	return writeBlock(wire.NewWriter(w), b)
}

func writeBlock(wr *wire.Writer, b *Block) error {
	length := b.messagesWireSize()
	if err := wr.WriteU32LE(length); err != nil {
		return newError(CodeCannotWrite, "%v", err)
	}
	for _, a := range b.Angles {
		if err := wr.WriteF32LE(a); err != nil {
			return newError(CodeCannotWrite, "%v", err)
		}
	}
	for i := range b.Messages {
		if err := writeMessage(wr, &b.Messages[i]); err != nil {
			return err
		}
	}
	return nil
}
