// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import (
	"bytes"
	"encoding/binary"
	"testing"

	. "gopkg.in/check.v1"
)

// Test hooks gocheck into go test.
func Test(t *testing.T) { TestingT(t) }

// TableSuite exercises the header/region/style/product table parsers
// against hand-built byte buffers.
type TableSuite struct{}

var _ = Suite(&TableSuite{})

func (s *TableSuite) TestHeaderRejectsBadMagic(c *C) {

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(1))
	binary.Write(&buf, binary.LittleEndian, uint8(4))

	_, err := readHeader(NewCursor(buf.Bytes()))
	c.Assert(err, NotNil)
	de, ok := err.(*DecodeError)
	c.Assert(ok, Equals, true)
	c.Assert(de.Kind, Equals, ErrBadMagic)
}

func (s *TableSuite) TestStyleTableLookupIsTotal(c *C) {

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(3))
	binary.Write(&buf, binary.LittleEndian, int32(0))
	binary.Write(&buf, binary.LittleEndian, [4]float32{0.5, 0.5, 0.5, 1})

	styles, err := readStyles(NewCursor(buf.Bytes()), 1)
	c.Assert(err, IsNil)

	known := styles.Lookup(3)
	c.Assert(known.ID, Equals, int32(3))

	unknown := styles.Lookup(12345)
	c.Assert(unknown.ID, Equals, StyleUnknown)
}

func (s *TableSuite) TestProductTableRenderIDIsOneBased(c *C) {

	var buf bytes.Buffer
	writeProductRecord(&buf, 10, 1)
	writeProductRecord(&buf, 20, 1)

	products, err := readProducts(NewCursor(buf.Bytes()), 2)
	c.Assert(err, IsNil)

	p, ok := products.ByRenderID(1)
	c.Assert(ok, Equals, true)
	c.Assert(p.Label, Equals, int32(10))

	p2, ok := products.ByRenderID(2)
	c.Assert(ok, Equals, true)
	c.Assert(p2.Label, Equals, int32(20))
}

func (s *TableSuite) TestRegionBoundingBoxInvariant(c *C) {

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, int32(1))
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0})
	binary.Write(&buf, binary.LittleEndian, [3]float32{0, 0, 0})
	binary.Write(&buf, binary.LittleEndian, [3]float32{2, 2, 2})

	regions, err := readRegions(NewCursor(buf.Bytes()), 1)
	c.Assert(err, IsNil)
	c.Assert(regions[0].BBox.Min.X <= regions[0].BBox.Max.X, Equals, true)
	c.Assert(regions[0].BBox.Min.Y <= regions[0].BBox.Max.Y, Equals, true)
	c.Assert(regions[0].BBox.Min.Z <= regions[0].BBox.Max.Z, Equals, true)
}
