// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import (
	"bytes"
	"encoding/binary"
	"testing"
)

type fileBuilder struct {
	buf bytes.Buffer
}

func newFileBuilder(numShapes, numVertices, numTriangles, numProducts, numStyles int32, numRegions int16) *fileBuilder {

	b := &fileBuilder{}
	binary.Write(&b.buf, binary.LittleEndian, Magic)
	binary.Write(&b.buf, binary.LittleEndian, uint8(4))
	binary.Write(&b.buf, binary.LittleEndian, numShapes)
	binary.Write(&b.buf, binary.LittleEndian, numVertices)
	binary.Write(&b.buf, binary.LittleEndian, numTriangles)
	binary.Write(&b.buf, binary.LittleEndian, int32(0)) // numMatrices
	binary.Write(&b.buf, binary.LittleEndian, numProducts)
	binary.Write(&b.buf, binary.LittleEndian, numStyles)
	binary.Write(&b.buf, binary.LittleEndian, float32(1.0))
	binary.Write(&b.buf, binary.LittleEndian, float64(0))
	binary.Write(&b.buf, binary.LittleEndian, float64(0))
	binary.Write(&b.buf, binary.LittleEndian, float64(0))
	binary.Write(&b.buf, binary.LittleEndian, numRegions)
	return b
}

func (b *fileBuilder) region(population int32, centre [3]float32, bboxMin, bboxMax [3]float32) *fileBuilder {

	binary.Write(&b.buf, binary.LittleEndian, population)
	binary.Write(&b.buf, binary.LittleEndian, centre)
	binary.Write(&b.buf, binary.LittleEndian, bboxMin)
	binary.Write(&b.buf, binary.LittleEndian, bboxMax)
	return b
}

func (b *fileBuilder) style(id, index int32, rgba [4]float32) *fileBuilder {

	binary.Write(&b.buf, binary.LittleEndian, id)
	binary.Write(&b.buf, binary.LittleEndian, index)
	binary.Write(&b.buf, binary.LittleEndian, rgba)
	return b
}

func (b *fileBuilder) product(label int32, productType int16, bboxMin, bboxMax [3]float32) *fileBuilder {

	binary.Write(&b.buf, binary.LittleEndian, label)
	binary.Write(&b.buf, binary.LittleEndian, productType)
	binary.Write(&b.buf, binary.LittleEndian, bboxMin)
	binary.Write(&b.buf, binary.LittleEndian, bboxMax)
	return b
}

func (b *fileBuilder) geomCount(n int32) *fileBuilder {

	binary.Write(&b.buf, binary.LittleEndian, n)
	return b
}

func (b *fileBuilder) singletonShape(product int32, instanceType int16, instanceLabel, styleID int32) *fileBuilder {

	binary.Write(&b.buf, binary.LittleEndian, int32(1)) // repetition
	binary.Write(&b.buf, binary.LittleEndian, product)
	binary.Write(&b.buf, binary.LittleEndian, instanceType)
	binary.Write(&b.buf, binary.LittleEndian, instanceLabel)
	binary.Write(&b.buf, binary.LittleEndian, styleID)
	return b
}

func (b *fileBuilder) repeatedShapes(product int32, instanceType int16, styleID int32, translations [][3]float64) *fileBuilder {

	binary.Write(&b.buf, binary.LittleEndian, int32(len(translations)))
	for i, tr := range translations {
		binary.Write(&b.buf, binary.LittleEndian, product)
		binary.Write(&b.buf, binary.LittleEndian, instanceType)
		binary.Write(&b.buf, binary.LittleEndian, int32(i+1))
		binary.Write(&b.buf, binary.LittleEndian, styleID)
		m := [16]float64{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, tr[0], tr[1], tr[2], 1}
		binary.Write(&b.buf, binary.LittleEndian, m)
	}
	return b
}

// triangleBlockBytes returns the bytes of scenario A's geometry block
// body (without the length prefix).
func triangleBlockBytes() []byte {

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint8(1))
	binary.Write(&buf, binary.LittleEndian, int32(3))
	binary.Write(&buf, binary.LittleEndian, int32(1))
	binary.Write(&buf, binary.LittleEndian, [9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	binary.Write(&buf, binary.LittleEndian, int32(1))
	binary.Write(&buf, binary.LittleEndian, int32(1))
	binary.Write(&buf, binary.LittleEndian, uint8(128))
	binary.Write(&buf, binary.LittleEndian, uint8(128))
	binary.Write(&buf, binary.LittleEndian, uint8(0))
	binary.Write(&buf, binary.LittleEndian, uint8(1))
	binary.Write(&buf, binary.LittleEndian, uint8(2))
	return buf.Bytes()
}

func (b *fileBuilder) geometryBlock(body []byte) *fileBuilder {

	binary.Write(&b.buf, binary.LittleEndian, int32(len(body)))
	b.buf.Write(body)
	return b
}

func (b *fileBuilder) bytes() []byte {

	return b.buf.Bytes()
}

// Scenario A: minimal single-triangle file.
func TestLoadScenarioAMinimalTriangle(t *testing.T) {

	data := newFileBuilder(1, 3, 1, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		style(7, 0, [4]float32{1, 0, 0, 1}).
		product(100, 1, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		geomCount(1).
		singletonShape(100, 1, 1, 7).
		geometryBlock(triangleBlockBytes()).
		bytes()

	scene, diags, err := Load(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	if len(scene.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(scene.Nodes))
	}
	n := scene.Nodes[0]
	if n.Instanced() {
		t.Fatal("expected a singleton node")
	}
	want := []float32{0, 0, 0, 1, 0, 0, 0, 0, 1}
	for i, v := range want {
		if n.Geometry.Positions[i] != v {
			t.Fatalf("position[%d] = %v, want %v", i, n.Geometry.Positions[i], v)
		}
	}
	if n.Material.RGBA.R != 1 || n.Material.Transparent {
		t.Fatalf("unexpected material: %+v", n.Material)
	}
}

// Scenario B: two-instance repeated geometry.
func TestLoadScenarioBTwoInstanceRepeated(t *testing.T) {

	data := newFileBuilder(2, 3, 1, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		style(7, 0, [4]float32{1, 0, 0, 1}).
		product(100, 1, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		geomCount(1).
		repeatedShapes(100, 1, 7, [][3]float64{{0, 0, 0}, {2, 0, 0}}).
		geometryBlock(triangleBlockBytes()).
		bytes()

	scene, diags, err := Load(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	if len(scene.Nodes) != 1 {
		t.Fatalf("expected 1 instanced node, got %d", len(scene.Nodes))
	}
	n := scene.Nodes[0]
	if !n.Instanced() || len(n.Transforms) != 2 {
		t.Fatalf("expected one instanced node with 2 transforms, got %+v", n)
	}
	// translation component after remap: (x, z, y) of the file's (x, y, z)=(2,0,0) stays (2,0,0)
	tr := n.Transforms[1]
	if tr[12] != 2 || tr[13] != 0 || tr[14] != 0 {
		t.Fatalf("unexpected remapped translation: %v", tr)
	}
}

// Scenario C: opening product forces sentinel style.
func TestLoadScenarioCOpeningForcesSentinelStyle(t *testing.T) {

	data := newFileBuilder(1, 3, 1, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		style(42, 0, [4]float32{0, 1, 0, 1}).
		product(100, ProductTypeOpening, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		geomCount(1).
		singletonShape(100, 1, 1, 42).
		geometryBlock(triangleBlockBytes()).
		bytes()

	scene, _, err := Load(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	n := scene.Nodes[0]
	if n.UserData[0].StyleID != StyleOpeningOrSpace {
		t.Fatalf("expected userData styleId -2, got %d", n.UserData[0].StyleID)
	}
	if n.Material.ID != StyleOpeningOrSpace {
		t.Fatalf("expected material bound to sentinel style, got %+v", n.Material)
	}
}

// Scenario D: corrupt block tolerance. First block has an out-of-range
// index; second block is a clean triangle. The first is dropped, the
// second survives, and exactly one IndexOutOfRange diagnostic is produced.
func TestLoadScenarioDCorruptBlockTolerance(t *testing.T) {

	var corruptBody bytes.Buffer
	binary.Write(&corruptBody, binary.LittleEndian, uint8(1))
	binary.Write(&corruptBody, binary.LittleEndian, int32(3)) // N=3
	binary.Write(&corruptBody, binary.LittleEndian, int32(1))
	binary.Write(&corruptBody, binary.LittleEndian, [9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	binary.Write(&corruptBody, binary.LittleEndian, int32(1))
	binary.Write(&corruptBody, binary.LittleEndian, int32(1))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(128))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(128))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(0))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(1))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(9)) // index 9 >= N=3

	data := newFileBuilder(2, 3, 1, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		style(7, 0, [4]float32{1, 0, 0, 1}).
		product(100, 1, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		geomCount(2).
		singletonShape(100, 1, 1, 7).
		geometryBlock(corruptBody.Bytes()).
		singletonShape(100, 1, 2, 7).
		geometryBlock(triangleBlockBytes()).
		bytes()

	scene, diags, err := Load(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 1 || diags[0].Kind != ErrIndexOutOfRange {
		t.Fatalf("expected exactly one IndexOutOfRange diagnostic, got %+v", diags)
	}
	if len(scene.Nodes) != 1 {
		t.Fatalf("expected 1 surviving node, got %d", len(scene.Nodes))
	}
}

// Scenario E: version gating.
func TestLoadScenarioEVersionGating(t *testing.T) {

	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, Magic)
	binary.Write(&buf, binary.LittleEndian, uint8(5))

	scene, _, err := Load(buf.Bytes(), nil)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrUnsupportedVersion {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	if scene != nil {
		t.Fatal("expected no scene on fatal error")
	}
}

// Scenario F: index width selection for N=300.
func TestLoadScenarioFIndexWidthSelection(t *testing.T) {

	n := int32(300)
	var body bytes.Buffer
	binary.Write(&body, binary.LittleEndian, uint8(1))
	binary.Write(&body, binary.LittleEndian, n)
	binary.Write(&body, binary.LittleEndian, int32(1)) // T=1
	positions := make([]float32, n*3)
	positions[3*299+0], positions[3*299+1], positions[3*299+2] = 5, 5, 5
	binary.Write(&body, binary.LittleEndian, positions)
	binary.Write(&body, binary.LittleEndian, int32(1)) // F=1
	binary.Write(&body, binary.LittleEndian, int32(1)) // K=+1
	binary.Write(&body, binary.LittleEndian, uint8(128))
	binary.Write(&body, binary.LittleEndian, uint8(128))
	binary.Write(&body, binary.LittleEndian, uint16(0))
	binary.Write(&body, binary.LittleEndian, uint16(1))
	binary.Write(&body, binary.LittleEndian, uint16(299))

	data := newFileBuilder(1, n, 1, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{10, 10, 0}).
		style(7, 0, [4]float32{1, 0, 0, 1}).
		product(100, 1, [3]float32{0, 0, 0}, [3]float32{10, 10, 0}).
		geomCount(1).
		singletonShape(100, 1, 1, 7).
		geometryBlock(body.Bytes()).
		bytes()

	scene, diags, err := Load(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected N=300 u16 indices to decode cleanly, got diagnostics %+v", diags)
	}
	if scene.Nodes[0].Geometry.Indices[2] != 299 {
		t.Fatalf("expected last index 299, got %d", scene.Nodes[0].Geometry.Indices[2])
	}
}

// A non-planar face in a real file still has to round-trip through the
// full decode pipeline, not just readGeometryBlock in isolation: this
// guards against the index-width/region-offset bookkeeping in
// LoadStreaming desynchronizing on a non-planar block the way the bare
// face-loop bug did.
func TestLoadNonPlanarFaceBlock(t *testing.T) {

	body := buildNonPlanarBlock(t)

	data := newFileBuilder(1, 4, 2, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		style(7, 0, [4]float32{1, 0, 0, 1}).
		product(100, 1, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		geomCount(1).
		singletonShape(100, 1, 1, 7).
		geometryBlock(body).
		bytes()

	scene, diags, err := Load(data, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
	if len(scene.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(scene.Nodes))
	}
	if got := len(scene.Nodes[0].Geometry.Indices); got != 6 {
		t.Fatalf("expected 6 indices (2 triangles x 3 corners), got %d", got)
	}
}

func TestLoadStreamingCancellation(t *testing.T) {

	data := newFileBuilder(1, 3, 1, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		style(7, 0, [4]float32{1, 0, 0, 1}).
		product(100, 1, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		geomCount(1).
		singletonShape(100, 1, 1, 7).
		geometryBlock(triangleBlockBytes()).
		bytes()

	_, _, err := LoadStreaming(data, nil, func(produced, total int) bool {
		return false
	})
	if err != ErrCancelled {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
}

func TestLoadStrictBlocksUpgradesDiagnosticToFatal(t *testing.T) {

	var corruptBody bytes.Buffer
	binary.Write(&corruptBody, binary.LittleEndian, uint8(1))
	binary.Write(&corruptBody, binary.LittleEndian, int32(3))
	binary.Write(&corruptBody, binary.LittleEndian, int32(1))
	binary.Write(&corruptBody, binary.LittleEndian, [9]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})
	binary.Write(&corruptBody, binary.LittleEndian, int32(1))
	binary.Write(&corruptBody, binary.LittleEndian, int32(1))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(128))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(128))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(0))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(1))
	binary.Write(&corruptBody, binary.LittleEndian, uint8(9))

	data := newFileBuilder(1, 3, 1, 1, 1, 1).
		region(1, [3]float32{0, 0, 0}, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		style(7, 0, [4]float32{1, 0, 0, 1}).
		product(100, 1, [3]float32{0, 0, 0}, [3]float32{1, 1, 0}).
		geomCount(1).
		singletonShape(100, 1, 1, 7).
		geometryBlock(corruptBody.Bytes()).
		bytes()

	cfg := DefaultConfig()
	cfg.StrictBlocks = true
	_, _, err := Load(data, cfg)
	de, ok := err.(*DecodeError)
	if !ok || de.Kind != ErrIndexOutOfRange {
		t.Fatalf("expected StrictBlocks to surface ErrIndexOutOfRange as fatal, got %v", err)
	}
}
