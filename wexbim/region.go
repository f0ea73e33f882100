// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// Region is a spatial partition: a population count and a bounding
// volume, already axis-remapped to the consumer's Y-up frame.
type Region struct {
	Population int32
	Centre     math32.Vector3
	BBox       math32.Box3
}

// RegionList is the ordered, immutable set of regions parsed from a
// file's region table.
type RegionList []Region

// readRegions reads the fixed-layout region table: count records of
// population (i32), centre (3 x f32), and bounding box (6 x f32,
// min/max), remapping centre and bbox to Y-up as each is read.
func readRegions(c *Cursor, numRegions int16) (RegionList, error) {

	regions := make(RegionList, 0, numRegions)
	for i := int16(0); i < numRegions; i++ {
		population, err := c.ReadI32()
		if err != nil {
			return nil, err
		}

		centre, err := readVector3(c)
		if err != nil {
			return nil, err
		}

		bbox, err := readBox3(c)
		if err != nil {
			return nil, err
		}

		if bbox.Min.X > bbox.Max.X || bbox.Min.Y > bbox.Max.Y || bbox.Min.Z > bbox.Max.Z {
			log.Warn("region %d: bounding box min not <= max componentwise", i)
		}

		regions = append(regions, Region{
			Population: population,
			Centre:     remapVector3(centre),
			BBox:       remapBox3(bbox),
		})
	}
	return regions, nil
}

// Containing returns the first region whose bounding box contains p,
// and true if one was found. A host can use this for coarse
// level-of-detail or visibility culling without re-deriving region
// bounds from the scene itself.
func (rl RegionList) Containing(p math32.Vector3) (*Region, bool) {

	for i := range rl {
		if rl[i].BBox.ContainsPoint(&p) {
			return &rl[i], true
		}
	}
	return nil, false
}

func readVector3(c *Cursor) (math32.Vector3, error) {

	x, err := c.ReadF32()
	if err != nil {
		return math32.Vector3{}, err
	}
	y, err := c.ReadF32()
	if err != nil {
		return math32.Vector3{}, err
	}
	z, err := c.ReadF32()
	if err != nil {
		return math32.Vector3{}, err
	}
	return math32.Vector3{X: x, Y: y, Z: z}, nil
}

func readBox3(c *Cursor) (math32.Box3, error) {

	min, err := readVector3(c)
	if err != nil {
		return math32.Box3{}, err
	}
	max, err := readVector3(c)
	if err != nil {
		return math32.Box3{}, err
	}
	return math32.Box3{Min: min, Max: max}, nil
}
