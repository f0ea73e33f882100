// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// Magic is the required leading 32-bit sentinel of a WexBIM file.
const Magic int32 = 94132117

// MaxSupportedVersion is the highest version byte this decoder accepts.
const MaxSupportedVersion uint8 = 4

// Header is the fixed-layout file header: magic, version, section
// counts, meter scale, optional local world origin, and region count.
type Header struct {
	Magic        int32
	Version      uint8
	NumShapes    int32
	NumVertices  int32
	NumTriangles int32
	NumMatrices  int32
	NumProducts  int32
	NumStyles    int32
	MeterScale   float32
	WorldOrigin  math32.Vector3 // zero when Version <= 3
	NumRegions   int16
}

// readHeader parses and validates the file header. Magic mismatch and
// unsupported version are both fatal.
func readHeader(c *Cursor) (*Header, error) {

	magic, err := c.ReadI32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, &DecodeError{Kind: ErrBadMagic, Offset: c.AbsOffset()}
	}

	version, err := c.ReadU8()
	if err != nil {
		return nil, err
	}
	if version < 1 || version > MaxSupportedVersion {
		return nil, &DecodeError{Kind: ErrUnsupportedVersion, Offset: c.AbsOffset()}
	}

	h := &Header{Magic: magic, Version: version}

	if h.NumShapes, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if h.NumVertices, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if h.NumTriangles, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if h.NumMatrices, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if h.NumProducts, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if h.NumStyles, err = c.ReadI32(); err != nil {
		return nil, err
	}
	if h.MeterScale, err = c.ReadF32(); err != nil {
		return nil, err
	}

	if version > 3 {
		wx, err := c.ReadF64()
		if err != nil {
			return nil, err
		}
		wy, err := c.ReadF64()
		if err != nil {
			return nil, err
		}
		wz, err := c.ReadF64()
		if err != nil {
			return nil, err
		}
		h.WorldOrigin.Set(float32(wx), float32(wy), float32(wz))
	}

	if h.NumRegions, err = c.ReadI16(); err != nil {
		return nil, err
	}

	return h, nil
}
