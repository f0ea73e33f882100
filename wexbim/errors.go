// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "fmt"

// ErrorKind identifies the category of a decode error or diagnostic.
type ErrorKind int

const (
	// ErrBadMagic: the leading i32 does not equal the WexBIM magic number. Fatal.
	ErrBadMagic ErrorKind = iota
	// ErrUnsupportedVersion: the version byte is greater than 4. Fatal.
	ErrUnsupportedVersion
	// ErrUnexpectedEOF: a read ran past the end of the buffer or a sub-cursor.
	// Fatal at file level, demoted to ErrCorruptBlock inside a geometry block.
	ErrUnexpectedEOF
	// ErrTrailingBytes: a length-prefixed sub-region was not fully consumed. Block-level warning.
	ErrTrailingBytes
	// ErrIndexOutOfRange: a face record referenced an index >= N. Block-level: drop block.
	ErrIndexOutOfRange
	// ErrCountMismatch: the triangle-index write head did not equal 3*T at block end. Block-level: drop block.
	ErrCountMismatch
	// ErrUnknownProduct: a shape referenced a product label with no table entry. Logged, shape kept with zeroed product data.
	ErrUnknownProduct
	// ErrCorruptBlock: a geometry block could not be parsed and was dropped.
	ErrCorruptBlock
)

var errorKindNames = [...]string{
	"BadMagic",
	"UnsupportedVersion",
	"UnexpectedEOF",
	"TrailingBytes",
	"IndexOutOfRange",
	"CountMismatch",
	"UnknownProduct",
	"CorruptBlock",
}

// String returns the name of the error kind.
func (k ErrorKind) String() string {

	if k < 0 || int(k) >= len(errorKindNames) {
		return "Unknown"
	}
	return errorKindNames[k]
}

// DecodeError is a fatal, file-level decode failure.
type DecodeError struct {
	Kind   ErrorKind
	Offset int64
	Err    error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {

	if e.Err != nil {
		return fmt.Sprintf("wexbim: %s at offset %d: %v", e.Kind, e.Offset, e.Err)
	}
	return fmt.Sprintf("wexbim: %s at offset %d", e.Kind, e.Offset)
}

// Unwrap returns the wrapped cause, if any.
func (e *DecodeError) Unwrap() error {

	return e.Err
}

// Diagnostic is a non-fatal, block-level condition encountered during decode.
// Unless Config.StrictBlocks turns a geometry-block diagnostic into a
// fatal error, a Diagnostic does not abort the overall decode. For
// geometry-block kinds the offending block is dropped from the scene and
// decoding continues with the next one; for ErrUnknownProduct the shape
// is kept.
type Diagnostic struct {
	Kind        ErrorKind
	RegionIndex int
	BlockIndex  int
	Message     string
}

// Error implements the error interface so a Diagnostic can be used
// wherever an error is expected (e.g. wrapped into a DecodeError by a
// caller running with Config.StrictBlocks).
func (d Diagnostic) Error() string {

	return fmt.Sprintf("wexbim: %s in region %d block %d: %s", d.Kind, d.RegionIndex, d.BlockIndex, d.Message)
}

// Diagnostics is the list of block-level conditions collected during a decode.
type Diagnostics []Diagnostic

// Summarize returns the count of diagnostics for each error kind present.
func (d Diagnostics) Summarize() map[ErrorKind]int {

	out := make(map[ErrorKind]int)
	for _, diag := range d {
		out[diag.Kind]++
	}
	return out
}
