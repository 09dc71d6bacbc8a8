// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

// ProgressFunc is invoked with the current byte offset into the demo
// stream, roughly every 2160 blocks read. It is advisory only — the
// cadence is not part of the read result — and must not retain the
// offset value beyond the call or block on external state; the codec
// does not recover from a panicking callback.
type ProgressFunc func(offset uint64)

// ReadOptions configures Read and ReadFile.
type ReadOptions struct {
	// Progress, if non-nil, is called periodically during a read with the
	// current byte offset.
	Progress ProgressFunc
}

// WriteOptions configures WriteFile. It has no effect on Write, which
// always writes to the supplied io.Writer without existence checks.
type WriteOptions struct {
	// Replace allows WriteFile to overwrite an existing file. If false and
	// the target path already exists, WriteFile fails with ErrFileExists.
	Replace bool
}
