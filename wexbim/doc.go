// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package wexbim decodes the WexBIM binary interchange format produced
// by the Xbim toolchain into a renderable scene graph: for each product
// instance, a transform and a reference to a shared, indexed triangle
// mesh with per-vertex positions and unit normals, tagged with style
// and product identity.
//
// The package performs a single linear pass over a byte buffer: header,
// regions, styles, products, then per-region geometry blocks of shape
// instances and triangle meshes. It does not rasterize or manage GPU
// resources; it produces host-side vertex/index buffers and material
// descriptors for an external renderer to consume.
package wexbim
