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

package process

import (
	"fmt"
	"strings"

	"github.com/equinor/oneseismic-sub000/geometry"
	"github.com/equinor/oneseismic-sub000/messages"
	"github.com/equinor/oneseismic-sub000/oserrors"
)

// sliceProcess extracts a single axis-aligned plane out of each fragment
// it is handed and assembles the per-fragment tiles needed to place them
// into the squeezed output cube.
type sliceProcess struct {
	task   messages.SliceTask
	dim    geometry.Dim
	fs     geometry.FS
	gvt2d  geometry.GVT
	layout geometry.SliceLayout // FS.SliceStride(dim): extracts a fragment's plane
	tiles  []messages.Tile
}

func newSliceProcess() *sliceProcess { return &sliceProcess{} }

func (p *sliceProcess) Init(taskRaw []byte) error {
	task, err := messages.DecodeSliceTask(taskRaw)
	if err != nil {
		return err
	}

	cs, err := geometry.NewCS(task.CubeShape[0], task.CubeShape[1], task.CubeShape[2])
	if err != nil {
		return err
	}
	fs, err := geometry.NewFS(task.Shape[0], task.Shape[1], task.Shape[2])
	if err != nil {
		return err
	}
	gvt, err := geometry.New(cs, fs)
	if err != nil {
		return err
	}
	dim, err := gvt.Dim(task.Dim)
	if err != nil {
		return err
	}
	layout, err := fs.SliceStride(dim)
	if err != nil {
		return err
	}
	gvt2d, err := gvt.Squeeze(dim)
	if err != nil {
		return err
	}

	p.task = task
	p.dim = dim
	p.fs = fs
	p.gvt2d = gvt2d
	p.layout = layout
	p.tiles = nil
	return nil
}

func (p *sliceProcess) Fragments() (string, error) {
	if p.fs.Len() == 0 {
		return "", errNotInitialized()
	}
	parts := make([]string, len(p.task.Ids))
	for i, id := range p.task.Ids {
		parts[i] = fmt.Sprintf(
			"%s/%d-%d-%d/%d-%d-%d.%s",
			p.task.Prefix, p.fs.At(0), p.fs.At(1), p.fs.At(2), id[0], id[1], id[2], p.task.Ext,
		)
	}
	return strings.Join(parts, ";"), nil
}

func (p *sliceProcess) Add(index int, raw []byte) error {
	if p.fs.Len() == 0 {
		return errNotInitialized()
	}
	if index < 0 || index >= len(p.task.Ids) {
		return oserrors.NewOutOfRange("fragment index %d out of range for task with %d ids", index, len(p.task.Ids))
	}

	src, err := asFloat32(raw)
	if err != nil {
		return err
	}

	srcBase := p.layout.InitialSkip * p.task.LocalIdx
	values := make([]float32, 0, p.layout.Iterations*p.layout.ChunkSize)
	for i := 0; i < p.layout.Iterations; i++ {
		start := srcBase + i*p.layout.Superstride
		end := start + p.layout.ChunkSize
		if end > len(src) {
			return oserrors.NewBadValue("fragment payload too short: need offset %d, have %d floats", end, len(src))
		}
		values = append(values, src[start:end]...)
	}

	rawID := p.task.Ids[index]
	fid, err := geometry.NewFID(rawID[0], rawID[1], rawID[2])
	if err != nil {
		return err
	}
	squeezedID, err := fid.Squeeze(p.dim)
	if err != nil {
		return err
	}
	inj, err := p.gvt2d.InjectionStride(squeezedID)
	if err != nil {
		return err
	}

	p.tiles = append(p.tiles, messages.Tile{
		Iterations:  inj.Iterations,
		ChunkSize:   inj.ChunkSize,
		InitialSkip: inj.InitialSkip,
		Superstride: inj.Superstride,
		Substride:   inj.Substride,
		Values:      values,
	})
	return nil
}

func (p *sliceProcess) Pack() ([]byte, error) {
	if p.fs.Len() == 0 {
		return nil, errNotInitialized()
	}
	attr := p.task.Prefix
	if attr == "" {
		attr = "amplitude"
	}
	return messages.PackSliceTiles(messages.SliceTiles{Attr: attr, Tiles: p.tiles})
}
