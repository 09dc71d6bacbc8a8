// Copyright 2026 The Quake Demo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package demo

import "fmt"

// ErrorCode is a stable, externally observable error identifier. The
// numeric values match the original C library's return codes so that
// tooling built against either can agree on meaning; value 2 is
// intentionally unassigned.
type ErrorCode int

const (
	CodeOK              ErrorCode = 0
	CodeCannotOpenDemo  ErrorCode = 1
	CodeCorruptDemo     ErrorCode = 3
	CodeFileExists      ErrorCode = 4
	CodeCannotWrite     ErrorCode = 5
	CodeUnknownProtocol ErrorCode = 6
	CodeUnexpectedEOF   ErrorCode = 7
	CodeBadParams       ErrorCode = 8
	CodeNoMemory        ErrorCode = 9

	// codeProtocolNotPresent is an internal sentinel distinguishing "this
	// message does not carry a protocol identifier" from "the protocol it
	// carries is unsupported". It must never be returned from a public
	// function.
	codeProtocolNotPresent ErrorCode = 50
)

// DescribeError returns a human-readable description of code, matching
// the original library's demo_error() table.
func DescribeError(code ErrorCode) string {
	switch code {
	case CodeOK:
		return "no error"
	case CodeCannotOpenDemo:
		return "cannot open file"
	case CodeCorruptDemo:
		return "corrupt demo"
	case CodeFileExists:
		return "demo file exists"
	case CodeCannotWrite:
		return "cannot write demo data to file"
	case CodeUnknownProtocol:
		return "demo has unknown protocol"
	case CodeUnexpectedEOF:
		return "demo file ended unexpectedly"
	case CodeBadParams:
		return "invalid parameters supplied"
	case CodeNoMemory:
		return "memory allocation failed"
	default:
		return "unknown demo error"
	}
}

// CodecError is the error type returned by every exported function in
// this package. Its Code field lets callers key off the stable numeric
// code; its Error() string carries additional context.
type CodecError struct {
	Code ErrorCode
	msg  string
}

func (e *CodecError) Error() string {
	if e.msg == "" {
		return DescribeError(e.Code)
	}
	return fmt.Sprintf("%s: %s", DescribeError(e.Code), e.msg)
}

func newError(code ErrorCode, format string, args ...any) *CodecError {
	return &CodecError{Code: code, msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors for errors.Is-style comparisons against the zero-context
// case of each code.
var (
	ErrCannotOpenDemo  = &CodecError{Code: CodeCannotOpenDemo}
	ErrCorruptDemo     = &CodecError{Code: CodeCorruptDemo}
	ErrFileExists      = &CodecError{Code: CodeFileExists}
	ErrCannotWrite     = &CodecError{Code: CodeCannotWrite}
	ErrUnknownProtocol = &CodecError{Code: CodeUnknownProtocol}
	ErrUnexpectedEOF   = &CodecError{Code: CodeUnexpectedEOF}
	ErrBadParams       = &CodecError{Code: CodeBadParams}
	ErrNoMemory        = &CodecError{Code: CodeNoMemory}
)

// Is reports whether target is a *CodecError with the same Code, so that
// errors.Is(err, demo.ErrCorruptDemo) works regardless of the message
// attached to err.
func (e *CodecError) Is(target error) bool {
	t, ok := target.(*CodecError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
