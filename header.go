// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import (
	"io"
	"strconv"

	"github.com/quakedemo/demo/internal/wire"
)

// maxTrackDigits is the maximum number of header characters (a '-' sign
// included) accepted before the terminating newline.
const maxTrackDigits = 6

// readCDTrack reads the ASCII CD-track header: an optional leading '-' and
// decimal digits, at most maxTrackDigits characters in all, then '\n'.
func readCDTrack(rd *wire.Reader) (int32, error) {
	var (
		value int32
		sign  int32 = 1
		count int
	)
	for {
		b, err := rd.ReadU8()
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				return 0, ErrUnexpectedEOF
			}
			return 0, translateEOF(err)
		}
		if b == '\n' {
			break
		}
		if b == '-' {
			sign = -1
		} else {
			digit := int32(b) - '0'
			if digit < 0 || digit > 9 {
				return 0, newError(CodeCorruptDemo, "invalid byte %#x in cd-track header", b)
			}
			value = value*10 + digit
		}
		count++
		if count > maxTrackDigits {
			return 0, newError(CodeCorruptDemo, "cd-track header exceeds %d characters", maxTrackDigits)
		}
	}
	return sign * value, nil
}

// writeCDTrack emits the canonical signed decimal representation of track
// followed by '\n'.
func writeCDTrack(wr *wire.Writer, track int32) error {
	s := strconv.Itoa(int(track)) + "\n"
	return wr.WriteBytes([]byte(s))
}
