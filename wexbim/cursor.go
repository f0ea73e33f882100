// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import (
	"encoding/binary"
	"math"
)

// Cursor is a little-endian typed reader over an immutable byte buffer.
// Every read advances the offset by its exact natural width; reads past
// end of stream return ErrUnexpectedEOF.
type Cursor struct {
	buf    []byte
	offset int
	base   int64 // absolute file offset of buf[0], for error reporting on sub-cursors
}

// NewCursor returns a Cursor reading from the start of buf.
func NewCursor(buf []byte) *Cursor {

	return &Cursor{buf: buf}
}

// Offset returns the current read position within this cursor's buffer.
func (c *Cursor) Offset() int {

	return c.offset
}

// AbsOffset returns the current read position as an absolute offset in
// the original top-level file, accounting for sub-cursor nesting.
func (c *Cursor) AbsOffset() int64 {

	return c.base + int64(c.offset)
}

// IsAtEnd returns true if every byte of this cursor's buffer has been read.
func (c *Cursor) IsAtEnd() bool {

	return c.offset >= len(c.buf)
}

// Remaining returns the number of unread bytes in this cursor.
func (c *Cursor) Remaining() int {

	return len(c.buf) - c.offset
}

func (c *Cursor) require(n int) error {

	if c.Remaining() < n {
		return &DecodeError{Kind: ErrUnexpectedEOF, Offset: c.AbsOffset()}
	}
	return nil
}

// ReadU8 reads one unsigned byte.
func (c *Cursor) ReadU8() (uint8, error) {

	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.buf[c.offset]
	c.offset++
	return v, nil
}

// ReadI16 reads a little-endian signed 16-bit integer.
func (c *Cursor) ReadI16() (int16, error) {

	if err := c.require(2); err != nil {
		return 0, err
	}
	v := int16(binary.LittleEndian.Uint16(c.buf[c.offset:]))
	c.offset += 2
	return v, nil
}

// ReadU16 reads a little-endian unsigned 16-bit integer.
func (c *Cursor) ReadU16() (uint16, error) {

	if err := c.require(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.buf[c.offset:])
	c.offset += 2
	return v, nil
}

// ReadI32 reads a little-endian signed 32-bit integer.
func (c *Cursor) ReadI32() (int32, error) {

	if err := c.require(4); err != nil {
		return 0, err
	}
	v := int32(binary.LittleEndian.Uint32(c.buf[c.offset:]))
	c.offset += 4
	return v, nil
}

// ReadU32 reads a little-endian unsigned 32-bit integer.
func (c *Cursor) ReadU32() (uint32, error) {

	if err := c.require(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.buf[c.offset:])
	c.offset += 4
	return v, nil
}

// ReadF32 reads a little-endian IEEE-754 single precision float.
func (c *Cursor) ReadF32() (float32, error) {

	if err := c.require(4); err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint32(c.buf[c.offset:])
	c.offset += 4
	return math.Float32frombits(bits), nil
}

// ReadF64 reads a little-endian IEEE-754 double precision float.
func (c *Cursor) ReadF64() (float64, error) {

	if err := c.require(8); err != nil {
		return 0, err
	}
	bits := binary.LittleEndian.Uint64(c.buf[c.offset:])
	c.offset += 8
	return math.Float64frombits(bits), nil
}

// ReadF32Array reads n consecutive little-endian float32 values.
func (c *Cursor) ReadF32Array(n int) ([]float32, error) {

	if err := c.require(n * 4); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint32(c.buf[c.offset:])
		out[i] = math.Float32frombits(bits)
		c.offset += 4
	}
	return out, nil
}

// ReadF64Array reads n consecutive little-endian float64 values.
func (c *Cursor) ReadF64Array(n int) ([]float64, error) {

	if err := c.require(n * 8); err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		bits := binary.LittleEndian.Uint64(c.buf[c.offset:])
		out[i] = math.Float64frombits(bits)
		c.offset += 8
	}
	return out, nil
}

// Borrow returns a contiguous slice of n bytes without copying, advancing the cursor past it.
func (c *Cursor) Borrow(n int) ([]byte, error) {

	if err := c.require(n); err != nil {
		return nil, err
	}
	s := c.buf[c.offset : c.offset+n]
	c.offset += n
	return s, nil
}

// Sub carves an independent sub-cursor spanning the next length bytes
// and advances this cursor past them. The caller should check the
// sub-cursor's IsAtEnd after use to detect TrailingBytes corruption.
func (c *Cursor) Sub(length int) (*Cursor, error) {

	b, err := c.Borrow(length)
	if err != nil {
		return nil, err
	}
	return &Cursor{buf: b, base: c.base + int64(c.offset-length)}, nil
}
