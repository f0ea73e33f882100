// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// ShapeInstance is one appearance of a product in the scene: its
// identity, its effective style, and an optional rigid transform.
// Transform is nil when the owning block's repetition was 1; no
// identity is stored. Scene assembly passes a nil Transform on to the
// singleton MeshNode, where nil means identity.
type ShapeInstance struct {
	ProductLabel   int32
	InstanceTypeID int16
	InstanceLabel  int32
	StyleID        int32
	StyleIndex     int32
	Transparent    bool
	Opacity        float32
	Transform      *math32.Matrix4
}

// readShapeInstances reads a repetition count R followed by R instance
// records. When R > 1, each record also carries a 4x4 transform (f32
// in version 1, f64 in version >= 2), axis-remapped on read.
func readShapeInstances(c *Cursor, version uint8, products *ProductTable, styles *StyleTable, diags *Diagnostics, regionIdx, blockIdx int) ([]ShapeInstance, error) {

	repetition, err := c.ReadI32()
	if err != nil {
		return nil, err
	}

	shapes := make([]ShapeInstance, 0, repetition)
	for i := int32(0); i < repetition; i++ {
		productLabel, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		instanceTypeID, err := c.ReadI16()
		if err != nil {
			return nil, err
		}
		instanceLabel, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		styleID, err := c.ReadI32()
		if err != nil {
			return nil, err
		}

		var transform *math32.Matrix4
		if repetition > 1 {
			m, err := readMatrix4(c, version)
			if err != nil {
				return nil, err
			}
			transform = remapMatrix4(m)
		}

		productType := int16(0)
		if p, ok := products.ByLabel(productLabel); ok {
			productType = p.ProductType
		} else {
			d := Diagnostic{
				Kind:        ErrUnknownProduct,
				RegionIndex: regionIdx,
				BlockIndex:  blockIdx,
				Message:     "shape references unknown product label",
			}
			log.Warn(d.Error())
			*diags = append(*diags, d)
		}

		effectiveID := styleID
		if productType == ProductTypeOpening || productType == ProductTypeSpace {
			effectiveID = StyleOpeningOrSpace
		}
		style := styles.Lookup(effectiveID)

		shapes = append(shapes, ShapeInstance{
			ProductLabel:   productLabel,
			InstanceTypeID: instanceTypeID,
			InstanceLabel:  instanceLabel,
			StyleID:        style.ID,
			StyleIndex:     style.Index,
			Transparent:    style.Transparent,
			Opacity:        style.Opacity,
			Transform:      transform,
		})
	}

	return shapes, nil
}

// readMatrix4 reads 16 column-major matrix elements, as f32 in version
// 1 or f64 narrowed to f32 in version >= 2.
func readMatrix4(c *Cursor, version uint8) (*math32.Matrix4, error) {

	m := math32.NewMatrix4()
	if version < 2 {
		vals, err := c.ReadF32Array(16)
		if err != nil {
			return nil, err
		}
		m.FromArray(vals, 0)
		return m, nil
	}

	vals, err := c.ReadF64Array(16)
	if err != nil {
		return nil, err
	}
	narrowed := make([]float32, 16)
	for i, v := range vals {
		narrowed[i] = float32(v)
	}
	m.FromArray(narrowed, 0)
	return m, nil
}
