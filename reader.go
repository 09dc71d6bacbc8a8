// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"errors"
	"io"
	"os"

	"github.com/quakedemo/demo/internal/wire"
)

// Read parses a complete demo stream from r.
func Read(r io.Reader, opts *ReadOptions) (*Demo, error) {
	if r == nil {
		return nil, ErrBadParams
	}
	rd := wire.NewReader(r)

	track, err := readCDTrack(rd)
	if err != nil {
		return nil, err
	}

	d := &Demo{Track: track}
	var progress ProgressFunc
	if opts != nil {
		progress = opts.Progress
	}

	blockCount := 0
	for {
		_, err := rd.PeekU8()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, translateEOF(err)
		}

		block, err := readBlock(rd, d)
		if err != nil {
			return nil, err
		}
		d.Blocks = append(d.Blocks, block)

		blockCount++
		if progress != nil && blockCount%cbBlocks == 0 {
			progress(rd.Pos())
		}
	}

	return d, nil
}

// ReadFile opens path and parses it as a demo file.
func ReadFile(path string, opts *ReadOptions) (*Demo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newError(CodeCannotOpenDemo, "%v", err)
	}
	defer f.Close()
	return Read(f, opts)
}

// ReadBlock decodes a single re-serialized block produced by WriteBlock,
// given a protocol known from prior blocks (a live relay has no file
// header to infer it from). It returns the protocol the block leaves in
// effect — unchanged from the argument unless the block carries the first
// SERVERINFO or VERSION message of the session — so callers can thread it
// into the next call. It is exported for callers that consume blocks
// individually rather than a whole demo stream.
func ReadBlock(r io.Reader, protocol Protocol) (Block, Protocol, error) {
	if r == nil {
		return Block{}, protocol, ErrBadParams
	}
	d := &Demo{Protocol: protocol}
	b, err := readBlock(wire.NewReader(r), d)
	if err != nil {
		return Block{}, protocol, err
	}
	return b, d.Protocol, nil
}

// readBlock reads one length-prefixed block and, as a side effect, infers
// d.Protocol from the first SERVERINFO or VERSION message it contains if
// the protocol is not already known.
func readBlock(rd *wire.Reader, d *Demo) (Block, error) {
	length, err := rd.ReadU32LE()
	if err != nil {
		return Block{}, translateEOF(err)
	}
	if length > maxBlockLength {
		return Block{}, newError(CodeCorruptDemo, "block length %d exceeds maximum %d", length, maxBlockLength)
	}

	var b Block
	b.Length = length

	for i := range b.Angles {
		v, err := rd.ReadF32LE()
		if err != nil {
			return Block{}, translateEOF(err)
		}
		b.Angles[i] = v
	}

	var consumed uint32
	for consumed < length {
		m, err := readMessage(rd, d.Protocol)
		if err != nil {
			return Block{}, err
		}
		consumed += m.wireSize()
		b.Messages = append(b.Messages, m)

		if d.Protocol == ProtocolUnknown {
			if p, perr := inferredProtocol(m.Type, m.Data); perr == nil {
				d.Protocol = p
			} else if !errors.Is(perr, errProtocolNotPresent) {
				return Block{}, perr
			}
		}
	}
	if consumed != length {
		return Block{}, newError(CodeCorruptDemo, "message sizes sum to %d, declared block length is %d", consumed, length)
	}

	return b, nil
}
