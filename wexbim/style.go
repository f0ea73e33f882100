// Copyright 2016 The G3N Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wexbim

import "github.com/g3n/wexbim/math32"

// Sentinel style ids. StyleUnknown is returned for any id absent from
// the file; StyleOpeningOrSpace is forced onto product types Opening
// and Space regardless of their recorded style.
const (
	StyleUnknown        int32 = -1
	StyleOpeningOrSpace int32 = -2
)

// transparencyCutoff is the unnormalized alpha threshold below which a
// style is considered transparent; deliberately not 1.0 or 255/255.
const transparencyCutoff = 254.0 / 255.0

// Style is a material descriptor: a base color plus derived
// transparency and opacity, keyed by a style id.
type Style struct {
	ID          int32
	Index       int32
	RGBA        math32.Color4
	Transparent bool
	Opacity     float32
}

// StyleTable is the indexed, immutable palette of styles parsed from a
// file, with sentinel entries always present after readStyles returns.
type StyleTable struct {
	byIndex []Style
	byID    map[int32]*Style
}

// readStyles reads numStyles records of (id i32, index i32, rgba 4xf32)
// and appends the StyleUnknown and StyleOpeningOrSpace sentinels.
func readStyles(c *Cursor, numStyles int32) (*StyleTable, error) {

	t := &StyleTable{
		byIndex: make([]Style, 0, numStyles+2),
		byID:    make(map[int32]*Style, numStyles+2),
	}

	for i := int32(0); i < numStyles; i++ {
		id, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		index, err := c.ReadI32()
		if err != nil {
			return nil, err
		}
		r, err := c.ReadF32()
		if err != nil {
			return nil, err
		}
		g, err := c.ReadF32()
		if err != nil {
			return nil, err
		}
		b, err := c.ReadF32()
		if err != nil {
			return nil, err
		}
		a, err := c.ReadF32()
		if err != nil {
			return nil, err
		}
		t.add(Style{
			ID:          id,
			Index:       index,
			RGBA:        math32.Color4{R: r, G: g, B: b, A: a},
			Transparent: a < transparencyCutoff,
			Opacity:     a,
		})
	}

	t.add(Style{
		ID:          StyleUnknown,
		Index:       int32(len(t.byIndex)),
		RGBA:        math32.Color4{R: 0.6, G: 0.6, B: 0.6, A: 1},
		Transparent: false,
		Opacity:     1,
	})
	t.add(Style{
		ID:          StyleOpeningOrSpace,
		Index:       int32(len(t.byIndex)),
		RGBA:        math32.Color4{R: 0, G: 0, B: 0, A: 0},
		Transparent: true,
		Opacity:     0,
	})

	return t, nil
}

func (t *StyleTable) add(s Style) {

	t.byIndex = append(t.byIndex, s)
	t.byID[s.ID] = &t.byIndex[len(t.byIndex)-1]
}

// Lookup returns the style for id, or the StyleUnknown sentinel if id
// is absent from the table. Lookup is total: it always succeeds.
func (t *StyleTable) Lookup(id int32) *Style {

	if s, ok := t.byID[id]; ok {
		return s
	}
	return t.byID[StyleUnknown]
}

// Len returns the number of styles in the table, including sentinels.
func (t *StyleTable) Len() int {

	return len(t.byIndex)
}
