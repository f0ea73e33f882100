// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// MeshGeometry is the host-side vertex/index buffer pair produced by
// one geometry block: separate per-vertex position and normal arrays, and a
// triangle index list. It owns its buffers; when a block is shared by
// several instances, one MeshGeometry is referenced by all of them.
type MeshGeometry struct {
	Positions math32.ArrayF32 // 3 floats per vertex
	Normals   math32.ArrayF32 // 3 floats per vertex
	Indices   math32.ArrayU32 // 3 per triangle
}

// indexWidth returns the byte width used to encode vertex indices for
// a block with n vertices: 1 byte up to 0xFF, 2 bytes up to 0xFFFF,
// otherwise 4.
func indexWidth(n int32) int {

	switch {
	case n <= 0xFF:
		return 1
	case n <= 0xFFFF:
		return 2
	default:
		return 4
	}
}

func readIndex(c *Cursor, width int) (uint32, error) {

	switch width {
	case 1:
		v, err := c.ReadU8()
		return uint32(v), err
	case 2:
		v, err := c.ReadU16()
		return uint32(v), err
	default:
		return c.ReadU32()
	}
}

// readGeometryBlock reads one length-prefixed geometry sub-region:
// sub-version, vertex count N, triangle count T, N positions, then a
// face list that fills an index buffer of length 3T and accumulates
// per-vertex normals.
//
// The parent cursor is advanced past blockLength bytes regardless of
// what happens inside: a malformed block never prevents parsing the
// next one. Any structural failure inside the sub-region (short read,
// bad index, miscounted indices) is reported as a Diagnostic and the
// block is dropped, except TrailingBytes which is logged and the
// geometry is still returned.
func readGeometryBlock(parent *Cursor, blockLength int, regionIdx, blockIdx int) (*MeshGeometry, *Diagnostic, error) {

	c, err := parent.Sub(blockLength)
	if err != nil {
		return nil, nil, err
	}

	corrupt := func(err error) (*MeshGeometry, *Diagnostic, error) {
		return nil, &Diagnostic{Kind: ErrCorruptBlock, RegionIndex: regionIdx, BlockIndex: blockIdx, Message: err.Error()}, nil
	}

	if _, err := c.ReadU8(); err != nil { // subVersion: not format-dependent past this point
		return corrupt(err)
	}

	n, err := c.ReadI32()
	if err != nil {
		return corrupt(err)
	}
	t, err := c.ReadI32()
	if err != nil {
		return corrupt(err)
	}

	raw, err := c.ReadF32Array(int(n) * 3)
	if err != nil {
		return corrupt(err)
	}
	positions := math32.ArrayF32(raw)
	var v math32.Vector3
	for i := 0; i < int(n); i++ {
		positions.GetVector3(i*3, &v)
		remapped := remapVector3(v)
		positions.SetVector3(i*3, &remapped)
	}

	width := indexWidth(n)
	accum := newNormalAccumulator(int(n))
	indices := math32.NewArrayU32(0, int(t)*3)

	faceCount, err := c.ReadI32()
	if err != nil {
		return corrupt(err)
	}

	outOfRange := &Diagnostic{Kind: ErrIndexOutOfRange, RegionIndex: regionIdx, BlockIndex: blockIdx, Message: "face index out of range"}

	for f := int32(0); f < faceCount; f++ {
		k, err := c.ReadI32()
		if err != nil {
			return corrupt(err)
		}
		if k == 0 {
			continue
		}

		planar := k > 0
		if k < 0 {
			k = -k
		}

		if planar {
			u, err := c.ReadU8()
			if err != nil {
				return corrupt(err)
			}
			v, err := c.ReadU8()
			if err != nil {
				return corrupt(err)
			}
			normal := decodeNormal(u, v)

			for i := int32(0); i < 3*k; i++ {
				idx, err := readIndex(c, width)
				if err != nil {
					return corrupt(err)
				}
				if int32(idx) >= n {
					return nil, outOfRange, nil
				}
				indices.Append(idx)
				accum.add(int(idx), normal)
			}
		} else {
			for i := int32(0); i < 3*k; i++ {
				idx, err := readIndex(c, width)
				if err != nil {
					return corrupt(err)
				}
				u, err := c.ReadU8()
				if err != nil {
					return corrupt(err)
				}
				v, err := c.ReadU8()
				if err != nil {
					return corrupt(err)
				}
				if int32(idx) >= n {
					return nil, outOfRange, nil
				}
				indices.Append(idx)
				accum.add(int(idx), decodeNormal(u, v))
			}
		}
	}

	if len(indices) != int(t)*3 {
		return nil, &Diagnostic{Kind: ErrCountMismatch, RegionIndex: regionIdx, BlockIndex: blockIdx, Message: "triangle index write head did not reach 3T"}, nil
	}

	if !c.IsAtEnd() {
		log.Warn("region %d block %d: geometry sub-region has %d trailing bytes", regionIdx, blockIdx, c.Remaining())
	}

	return &MeshGeometry{
		Positions: positions,
		Normals:   accum.resolve(),
		Indices:   indices,
	}, nil, nil
}
