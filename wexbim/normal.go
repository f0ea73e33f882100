// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// decodeNormal converts a packed (u, v) octahedral-ish byte pair into a
// remapped unit normal. u and v are in [0, 255]; they are mapped to
// [-1, 1], the implicit z is reconstructed assuming the encoded vector
// lay in the source's forward hemisphere, then the vector is
// normalized, its z is negated to flip handedness between the
// producer's forward convention and the consumer's, and finally the
// axis remap is applied.
func decodeNormal(u, v uint8) math32.Vector3 {

	up := 2*float32(u)/255 - 1
	vp := 2*float32(v)/255 - 1

	zSq := 1 - up*up - vp*vp
	if zSq < 0 {
		zSq = 0
	}
	zp := math32.Sqrt(zSq)

	n := math32.Vector3{X: up, Y: vp, Z: zp}
	n.Normalize()
	n.Z = -n.Z

	return remapVector3(n)
}

// normalAccumulator collects per-vertex normal contributions during
// face decode and resolves them to unit normals once every face in a
// geometry block has been read.
type normalAccumulator struct {
	sum   []math32.Vector3
	count []uint32
}

func newNormalAccumulator(numVertices int) *normalAccumulator {

	return &normalAccumulator{
		sum:   make([]math32.Vector3, numVertices),
		count: make([]uint32, numVertices),
	}
}

// add accumulates n into vertex index i's running sum.
func (a *normalAccumulator) add(i int, n math32.Vector3) {

	a.sum[i].X += n.X
	a.sum[i].Y += n.Y
	a.sum[i].Z += n.Z
	a.count[i]++
}

// resolve divides each contributed vertex's sum by its contribution
// count and normalizes to unit length. Vertices with zero contribution
// (unreferenced by any triangle) are left as the zero vector.
func (a *normalAccumulator) resolve() math32.ArrayF32 {

	out := math32.NewArrayF32(len(a.sum)*3, len(a.sum)*3)
	for i, s := range a.sum {
		if a.count[i] == 0 {
			continue
		}
		n := s
		n.MultiplyScalar(1 / float32(a.count[i]))
		n.Normalize()
		out.SetVector3(i*3, &n)
	}
	return out
}
