// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relay forwards recorded blocks from a live upstream source (for
// example a demo being recorded by a running server, or another relay) to
// one or more downstream spectators, the way a Quake QTV or MVD proxy
// relays a match in progress without itself being a player. It never
// interprets block contents beyond what is needed to track the active
// protocol; a relayed block reaches its spectators with the exact bytes
// demo.WriteBlock would have produced.
package relay

import (
	"bytes"
	"io"

	"github.com/quakedemo/demo"
	"github.com/quakedemo/demo/internal/framing"
)

// These are re-exported so callers can recognize the non-blocking
// control-flow signals without importing internal/framing.
var (
	// ErrWouldBlock means the current Forward call made no further
	// progress without waiting; the caller should retry later.
	ErrWouldBlock = framing.ErrWouldBlock
	// ErrMore means the current Forward call's result is usable but more
	// data from the same in-flight frame will follow.
	ErrMore = framing.ErrMore
)

// Transport describes the boundary behavior of a relay connection, so
// Forwarder can pick the same framing defaults the codec's transport
// layer would for that kind of socket.
type Transport uint8

const (
	// TCP and Unix stream sockets: framing adds a length prefix.
	TCP Transport = iota
	UnixStream
	// Local is a same-host stream transport; framing uses native byte
	// order instead of network byte order.
	Local
	// UDP, Unix datagram sockets, and boundary-preserving transports
	// (WebSocket, SCTP): framing is pass-through, one frame per packet.
	UDP
	UnixPacket
	SeqPacket
)

func (t Transport) readOptions() []framing.Option {
	switch t {
	case TCP:
		return []framing.Option{framing.WithReadTCP()}
	case UnixStream:
		return []framing.Option{framing.WithReadUnix()}
	case Local:
		return []framing.Option{framing.WithReadLocal()}
	case UDP:
		return []framing.Option{framing.WithReadUDP()}
	case UnixPacket:
		return []framing.Option{framing.WithReadUnixPacket()}
	case SeqPacket:
		return []framing.Option{framing.WithReadSCTP()}
	default:
		return []framing.Option{framing.WithReadTCP()}
	}
}

func (t Transport) writeOptions() []framing.Option {
	switch t {
	case TCP:
		return []framing.Option{framing.WithWriteTCP()}
	case UnixStream:
		return []framing.Option{framing.WithWriteUnix()}
	case Local:
		return []framing.Option{framing.WithWriteLocal()}
	case UDP:
		return []framing.Option{framing.WithWriteUDP()}
	case UnixPacket:
		return []framing.Option{framing.WithWriteUnixPacket()}
	case SeqPacket:
		return []framing.Option{framing.WithWriteSCTP()}
	default:
		return []framing.Option{framing.WithWriteTCP()}
	}
}

// maxRelayedBlock bounds the scratch buffer used to hold one in-flight
// frame; it matches the codec's own maxBlockLength plus room for the
// length prefix and angles that are not part of Block.Length.
const maxRelayedBlock = 65536 + 4096

// Forwarder relays one upstream block source to one downstream sink,
// tracking the protocol the blocks carry so a late-joining caller can be
// told which dialect is in effect.
//
// A Forwarder is not safe for concurrent use. On ErrWouldBlock or ErrMore
// the caller must retry ForwardBlock on the same Forwarder to complete the
// in-flight frame, exactly as internal/framing's own Forwarder requires.
type Forwarder struct {
	src      io.Reader
	dst      io.Writer
	protocol demo.Protocol
	buf      []byte
}

// NewForwarder returns a Forwarder that relays framed blocks read from src
// (using srcTransport's framing defaults) to dst (using dstTransport's).
func NewForwarder(dst io.Writer, dstTransport Transport, src io.Reader, srcTransport Transport) *Forwarder {
	return &Forwarder{
		src: framing.NewReader(src, srcTransport.readOptions()...),
		dst: framing.NewWriter(dst, dstTransport.writeOptions()...),
		buf: make([]byte, maxRelayedBlock),
	}
}

// Protocol returns the protocol dialect inferred so far, or
// demo.ProtocolUnknown if no SERVERINFO or VERSION message has been
// relayed yet.
func (f *Forwarder) Protocol() demo.Protocol { return f.protocol }

// ForwardBlock reads one framed block from the source, decodes it well
// enough to track the active protocol, and writes the same bytes as one
// framed block to the destination. It returns the decoded Block on
// success so the caller (e.g. a CLI printing a running summary) does not
// need to re-parse what it just relayed.
//
// On ErrWouldBlock or ErrMore, the returned Block is the zero value and
// the caller must call ForwardBlock again to retry the same frame.
func (f *Forwarder) ForwardBlock() (demo.Block, error) {
	n, err := f.src.Read(f.buf)
	if err != nil {
		if err == ErrWouldBlock || err == ErrMore {
			return demo.Block{}, err
		}
		if err == io.EOF {
			return demo.Block{}, io.EOF
		}
		return demo.Block{}, err
	}

	block, protocol, err := demo.ReadBlock(bytes.NewReader(f.buf[:n]), f.protocol)
	if err != nil {
		return demo.Block{}, err
	}
	f.protocol = protocol

	wn, werr := f.dst.Write(f.buf[:n])
	if werr != nil {
		if werr == ErrWouldBlock || werr == ErrMore {
			return demo.Block{}, werr
		}
		return demo.Block{}, werr
	}
	if wn != n {
		return demo.Block{}, io.ErrShortWrite
	}

	return block, nil
}

// Encode re-serializes block exactly as a file writer would and returns
// the bytes, suitable for handing to a framing.Writer to seed a relay from
// an in-memory Demo rather than a live connection. The bytes are not
// framed: NewForwarder's source side reads one frame per block, so they
// must be written through a framing.Writer before a Forwarder can read them.
func Encode(block *demo.Block) ([]byte, error) {
	var buf bytes.Buffer
	if err := demo.WriteBlock(&buf, block); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
