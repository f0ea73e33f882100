// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// remapVector3 applies the fixed Z-up (producer) to Y-up (consumer)
// axis swap to a position or direction vector: (x, y, z) -> (x, z, y).
// Applying it twice is the identity.
func remapVector3(v math32.Vector3) math32.Vector3 {

	return math32.Vector3{X: v.X, Y: v.Z, Z: v.Y}
}

// remapBox3 applies the axis remap to both corners of a bounding box.
func remapBox3(b math32.Box3) math32.Box3 {

	return math32.Box3{Min: remapVector3(b.Min), Max: remapVector3(b.Max)}
}

// remapMatrix4 applies T * M * T where T is the Y/Z swap permutation,
// computed without a double multiply as a swap of rows 1<->2 and
// columns 1<->2 of the column-major matrix.
func remapMatrix4(m *math32.Matrix4) *math32.Matrix4 {

	out := *m
	// Swap rows 1 and 2 (0-based) within each column.
	for col := 0; col < 4; col++ {
		i1 := col*4 + 1
		i2 := col*4 + 2
		out[i1], out[i2] = m[i2], m[i1]
	}
	swapped := out
	// Swap columns 1 and 2.
	for row := 0; row < 4; row++ {
		i1 := 1*4 + row
		i2 := 2*4 + row
		out[i1], out[i2] = swapped[i2], swapped[i1]
	}
	return &out
}
