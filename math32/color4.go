// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Color4 describes an RGBA color
type Color4 struct {
	R float32
	G float32
	B float32
	A float32
}

// Set sets this color individual R,G,B,A components
// Returns pointer to this updated color
func (c *Color4) Set(r, g, b, a float32) *Color4 {

	c.R = r
	c.G = g
	c.B = b
	c.A = a
	return c
}

// Equals returns if this color is equal to other.
func (c *Color4) Equals(other *Color4) bool {

	return c.R == other.R && c.G == other.G && c.B == other.B && c.A == other.A
}
