// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// UserData identifies the product instance an emitted mesh node stands
// for, so a host's picking layer can recover the hit element.
type UserData struct {
	ModelID       int32
	ProductLabel  int32
	InstanceLabel int32
	StyleID       int32
}

// MeshNode is one emitted scene node: shared geometry, a material, and
// either a single optional transform (singleton) or a non-empty list
// of per-instance transforms (instanced).
type MeshNode struct {
	Geometry   *MeshGeometry
	Material   *Style
	Transform  *math32.Matrix4   // singleton only; nil => identity
	Transforms []math32.Matrix4 // instanced only; non-empty
	UserData   []UserData       // one entry per instance for instanced nodes, one for singleton
}

// Instanced reports whether this node carries a per-instance transform
// list (a non-empty Transforms, possibly of length one).
func (n *MeshNode) Instanced() bool {

	return len(n.Transforms) > 0
}

// SceneRoot is the ordered output of a decode: one singleton node per
// surviving single-instance geometry block and one instanced node per
// style group of each surviving repeated block, plus the immutable tables
// built during the header/prelude pass.
type SceneRoot struct {
	Nodes    []MeshNode
	Regions  RegionList
	Styles   *StyleTable
	Products *ProductTable

	// Materials holds one host-built material per style id first
	// referenced by a node, populated by Config.MaterialFactory. Empty
	// when the config supplied no factory; callers then build their own
	// materials from each node's Material descriptor.
	Materials map[int32]any
}

// SceneStats is a cheap one-pass summary of a decoded scene.
type SceneStats struct {
	TriangleCount    int
	VertexCount      int
	InstanceCount    int
	SingletonNodes   int
	InstancedNodes   int
	TransparentNodes int
}

// Stats walks the scene once and summarizes it.
func (s *SceneRoot) Stats() SceneStats {

	var st SceneStats
	for i := range s.Nodes {
		n := &s.Nodes[i]
		st.TriangleCount += len(n.Geometry.Indices) / 3
		st.VertexCount += len(n.Geometry.Positions) / 3
		if n.Instanced() {
			st.InstancedNodes++
			st.InstanceCount += len(n.Transforms)
		} else {
			st.SingletonNodes++
			st.InstanceCount++
		}
		if n.Material != nil && n.Material.Transparent {
			st.TransparentNodes++
		}
	}
	return st
}

// materialize calls factory for styleID the first time it is seen,
// caching the result in cache. A nil factory is a no-op.
func materialize(cache map[int32]any, factory func(*Style) any, styles *StyleTable, styleID int32) {

	if factory == nil {
		return
	}
	if _, ok := cache[styleID]; ok {
		return
	}
	cache[styleID] = factory(styles.Lookup(styleID))
}

// assembleBlock turns one geometry block and its shape-instance list
// into scene nodes: none for an empty list, one singleton node for a
// single instance, otherwise one instanced node per effective style id (spec: partition by style,
// instanced mesh per partition).
func assembleBlock(geom *MeshGeometry, shapes []ShapeInstance, styles *StyleTable, modelID int32, materials map[int32]any, factory func(*Style) any) []MeshNode {

	if len(shapes) == 0 {
		return nil
	}

	if len(shapes) == 1 {
		s := shapes[0]
		materialize(materials, factory, styles, s.StyleID)
		return []MeshNode{{
			Geometry:  geom,
			Material:  styles.Lookup(s.StyleID),
			Transform: s.Transform,
			UserData: []UserData{{
				ModelID:       modelID,
				ProductLabel:  s.ProductLabel,
				InstanceLabel: s.InstanceLabel,
				StyleID:       s.StyleID,
			}},
		}}
	}

	order := make([]int32, 0, 4)
	groups := make(map[int32][]ShapeInstance)
	for _, s := range shapes {
		if _, ok := groups[s.StyleID]; !ok {
			order = append(order, s.StyleID)
		}
		groups[s.StyleID] = append(groups[s.StyleID], s)
	}

	nodes := make([]MeshNode, 0, len(order))
	for _, styleID := range order {
		group := groups[styleID]
		materialize(materials, factory, styles, styleID)
		transforms := make([]math32.Matrix4, len(group))
		userData := make([]UserData, len(group))
		for i, s := range group {
			if s.Transform != nil {
				transforms[i] = *s.Transform
			} else {
				transforms[i] = *math32.NewMatrix4()
			}
			userData[i] = UserData{
				ModelID:       modelID,
				ProductLabel:  s.ProductLabel,
				InstanceLabel: s.InstanceLabel,
				StyleID:       s.StyleID,
			}
		}
		nodes = append(nodes, MeshNode{
			Geometry:   geom,
			Material:   styles.Lookup(styleID),
			Transforms: transforms,
			UserData:   userData,
		})
	}
	return nodes
}
