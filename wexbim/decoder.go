// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "errors"

// ErrCancelled is returned by LoadStreaming when the yield hook returns
// false, aborting the decode early. Buffers produced up to that point
// are discarded; no partial scene is returned.
var ErrCancelled = errors.New("wexbim: decode cancelled by yield hook")

// Load parses data as a complete WexBIM file and returns the assembled
// scene plus any block-level diagnostics collected along the way. A
// nil cfg uses DefaultConfig. Fatal structural errors (bad magic,
// unsupported version, truncated file) abort the decode and return a
// nil scene.
func Load(data []byte, cfg *Config) (*SceneRoot, []Diagnostic, error) {

	return LoadStreaming(data, cfg, nil)
}

// LoadStreaming parses data like Load, but invokes yield after each
// batch of Config.YieldBatch geometry blocks with the running count of
// blocks produced and the total block count seen so far in already-
// visited regions. Returning false from yield cancels the decode:
// LoadStreaming returns (nil, nil, ErrCancelled) and no scene node from the
// in-progress batch is kept. A nil yield behaves as if it always
// returns true.
func LoadStreaming(data []byte, cfg *Config, yield func(produced, total int) bool) (*SceneRoot, []Diagnostic, error) {

	if cfg == nil {
		cfg = DefaultConfig()
	}
	batch := cfg.YieldBatch
	if batch <= 0 {
		batch = 1
	}

	c := NewCursor(data)

	header, err := readHeader(c)
	if err != nil {
		return nil, nil, err
	}

	regions, err := readRegions(c, header.NumRegions)
	if err != nil {
		return nil, nil, err
	}

	styles, err := readStyles(c, header.NumStyles)
	if err != nil {
		return nil, nil, err
	}

	products, err := readProducts(c, header.NumProducts)
	if err != nil {
		return nil, nil, err
	}

	var diags Diagnostics
	var nodes []MeshNode
	materials := make(map[int32]any)
	produced := 0
	total := 0

	for regionIdx := range regions {
		geomCount, err := c.ReadI32()
		if err != nil {
			return nil, nil, err
		}
		total += int(geomCount)

		for blockIdx := int32(0); blockIdx < geomCount; blockIdx++ {
			shapes, err := readShapeInstances(c, header.Version, products, styles, &diags, regionIdx, int(blockIdx))
			if err != nil {
				return nil, nil, err
			}

			blockLength, err := c.ReadI32()
			if err != nil {
				return nil, nil, err
			}

			geom, diag, err := readGeometryBlock(c, int(blockLength), regionIdx, int(blockIdx))
			if err != nil {
				return nil, nil, err
			}
			if diag != nil {
				if cfg.StrictBlocks {
					return nil, nil, &DecodeError{Kind: diag.Kind, Offset: c.AbsOffset(), Err: errors.New(diag.Message)}
				}
				log.Warn(diag.Error())
				diags = append(diags, *diag)
			} else {
				nodes = append(nodes, assembleBlock(geom, shapes, styles, cfg.ModelID, materials, cfg.MaterialFactory)...)
			}

			produced++
			if yield != nil && produced%batch == 0 {
				if !yield(produced, total) {
					return nil, nil, ErrCancelled
				}
			}
		}
	}

	if !c.IsAtEnd() {
		log.Warn("trailing %d bytes after last region's geometry blocks", c.Remaining())
	}

	scene := &SceneRoot{
		Nodes:     nodes,
		Regions:   regions,
		Styles:    styles,
		Products:  products,
		Materials: materials,
	}
	return scene, diags, nil
}
