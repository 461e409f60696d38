// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package manifest parses the JSON document describing a cube: its
// per-axis line-number index, and the catalog of volume/attribute
// fragment shapes stored alongside it.
package manifest

import (
	"encoding/json"

	"github.com/equinor/oneseismic-sub000/oserrors"
)

// VolumeEntry describes one fragmented volume (the primary seismic
// amplitude volume, or a precomputed attribute volume) stored next to the
// manifest.
type VolumeEntry struct {
	Prefix string   `json:"prefix"`
	Ext    string   `json:"ext"`
	Shapes [][3]int `json:"shapes"`
}

// AttributeEntry describes one precomputed attribute volume, carrying the
// extra type/layout/labels metadata volumes don't need.
type AttributeEntry struct {
	Prefix string   `json:"prefix"`
	Ext    string   `json:"ext"`
	Type   string   `json:"type"`
	Layout string   `json:"layout"`
	Labels []string `json:"labels"`
	Shapes [][3]int `json:"shapes"`
}

// Manifest is the parsed per-cube metadata document. Only Dimensions is
// required by the planner; everything else describes the fragment
// catalog used to resolve resource paths.
type Manifest struct {
	Dimensions  [][]int          `json:"dimensions"`
	LineNumbers [][]int          `json:"line_numbers,omitempty"`
	LineLabels  []string         `json:"line_labels,omitempty"`
	Vol         []VolumeEntry    `json:"vol,omitempty"`
	Attr        []AttributeEntry `json:"attr,omitempty"`
}

// Parse decodes and validates a manifest document. It requires
// `dimensions` to hold exactly 3 axes, each strictly monotonically
// increasing, matching the cube's natural line-number ordering.
func Parse(raw []byte) (Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, oserrors.Wrap(oserrors.KindBadDocument, err, "manifest is not valid JSON")
	}

	if len(m.Dimensions) == 0 {
		return Manifest{}, oserrors.NewBadDocument("manifest is missing required field \"dimensions\"")
	}
	if len(m.Dimensions) != 3 {
		return Manifest{}, oserrors.NewBadDocument("manifest has %d dimensions, want 3", len(m.Dimensions))
	}

	for axis, line := range m.Dimensions {
		if len(line) == 0 {
			return Manifest{}, oserrors.NewBadDocument("manifest dimension %d is empty", axis)
		}
		for i := 1; i < len(line); i++ {
			if line[i] <= line[i-1] {
				return Manifest{}, oserrors.NewBadDocument(
					"manifest dimension %d is not strictly monotonically increasing at index %d", axis, i,
				)
			}
		}
	}

	return m, nil
}

// CubeShape returns the cube shape implied by the length of each
// dimension's line-number index.
func (m Manifest) CubeShape() []int {
	shape := make([]int, len(m.Dimensions))
	for i, line := range m.Dimensions {
		shape[i] = len(line)
	}
	return shape
}

// IndexOf returns the position of lineno within dimension dim's index, or
// a NotFound error if it is absent.
func (m Manifest) IndexOf(dim, lineno int) (int, error) {
	if dim < 0 || dim >= len(m.Dimensions) {
		return 0, oserrors.NewOutOfRange("dimension %d out of range for manifest with %d axes", dim, len(m.Dimensions))
	}
	for i, n := range m.Dimensions[dim] {
		if n == lineno {
			return i, nil
		}
	}
	return 0, oserrors.NewNotFound("lineno %d not found in manifest dimension %d", lineno, dim)
}

// Squeeze drops axis dim from the per-axis line-number index, the way
// GVT.Squeeze drops it from a cube/fragment shape.
func (m Manifest) Squeeze(dim int) ([][]int, error) {
	if dim < 0 || dim >= len(m.Dimensions) {
		return nil, oserrors.NewOutOfRange("dimension %d out of range for manifest with %d axes", dim, len(m.Dimensions))
	}
	out := make([][]int, 0, len(m.Dimensions)-1)
	for i, line := range m.Dimensions {
		if i == dim {
			continue
		}
		out = append(out, line)
	}
	return out, nil
}

// ResourcePrefixExt returns the {prefix, ext} pair used to build fragment
// resource paths, preferring the first "vol" catalog entry (the primary
// amplitude volume) and falling back to the first "attr" entry. Absent
// any catalog entries it falls back to the conventional "src"/"f32" pair
// used by the reference fragment shatter tool.
func (m Manifest) ResourcePrefixExt() (prefix, ext string) {
	if len(m.Vol) > 0 {
		return m.Vol[0].Prefix, m.Vol[0].Ext
	}
	if len(m.Attr) > 0 {
		return m.Attr[0].Prefix, m.Attr[0].Ext
	}
	return "src", "f32"
}
