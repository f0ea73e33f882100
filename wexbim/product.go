// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// Product type codes that force the opening/space sentinel style
// regardless of the style actually recorded against the shape.
const (
	ProductTypeOpening int16 = 3
	ProductTypeSpace   int16 = 4
)

// Product is a building-element identity: a label, an IFC product
// type, and an axis-aligned bounding box, plus a 1-based render id
// assigned in parse order.
type Product struct {
	Label       int32
	ProductType int16
	BBox        math32.Box3
	RenderID    int32
}

// ProductTable is the indexed, immutable set of products parsed from a
// file's product table, with O(1) lookup by label and by render id.
type ProductTable struct {
	products []Product
	byLabel  map[int32]*Product
}

// readProducts reads numProducts records of (label i32, productType
// i16, bbox 6xf32), assigning RenderID = i+1 in parse order.
func readProducts(c *Cursor, numProducts int32) (*ProductTable, error) {

	t := &ProductTable{
		products: make([]Product, 0, numProducts),
		byLabel:  make(map[int32]*Product, numProducts),
	}

	for i := int32(0); i < numProducts; i++ {
		label, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		productType, err := c.ReadI16()
		if err != nil {
			return nil, err
		}
		bbox, err := readBox3(c)
		if err != nil {
			return nil, err
		}

		t.products = append(t.products, Product{
			Label:       label,
			ProductType: productType,
			BBox:        remapBox3(bbox),
			RenderID:    i + 1,
		})
		t.byLabel[label] = &t.products[len(t.products)-1]
	}

	return t, nil
}

// ByLabel returns the product with the given label, and true if found.
func (t *ProductTable) ByLabel(label int32) (*Product, bool) {

	p, ok := t.byLabel[label]
	return p, ok
}

// ByRenderID returns the product whose 1-based render id matches id,
// and true if found.
func (t *ProductTable) ByRenderID(id int32) (*Product, bool) {

	if id < 1 || int(id) > len(t.products) {
		return nil, false
	}
	return &t.products[id-1], true
}

// Len returns the number of products in the table.
func (t *ProductTable) Len() int {

	return len(t.products)
}
