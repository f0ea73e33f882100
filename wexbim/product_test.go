// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func writeProductRecord(buf *bytes.Buffer, label int32, productType int16) {

	binary.Write(buf, binary.LittleEndian, label)
	binary.Write(buf, binary.LittleEndian, productType)
	binary.Write(buf, binary.LittleEndian, [3]float32{0, 0, 0})
	binary.Write(buf, binary.LittleEndian, [3]float32{1, 1, 1})
}

func TestReadProductsAssignsRenderID(t *testing.T) {

	var buf bytes.Buffer
	writeProductRecord(&buf, 100, 1)
	writeProductRecord(&buf, 200, 3)

	products, err := readProducts(NewCursor(buf.Bytes()), 2)
	if err != nil {
		t.Fatal(err)
	}

	p, ok := products.ByLabel(100)
	if !ok || p.RenderID != 1 {
		t.Fatalf("expected render id 1 for label 100, got %+v, %v", p, ok)
	}

	p2, ok := products.ByRenderID(2)
	if !ok || p2.Label != 200 || p2.ProductType != ProductTypeOpening {
		t.Fatalf("unexpected product at render id 2: %+v, %v", p2, ok)
	}

	if _, ok := products.ByLabel(999); ok {
		t.Fatal("expected no product for unknown label")
	}
	if _, ok := products.ByRenderID(0); ok {
		t.Fatal("render id is 1-based; 0 should not resolve")
	}
}
