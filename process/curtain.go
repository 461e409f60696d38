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

// curtainProcess extracts full-depth traces at requested (x,y) positions
// out of each fragment it is handed. One chunk is emitted per requested
// trace; chunks accumulate across Add calls in call order, so Major
// indices (trace position within the whole curtain) advance monotonically
// regardless of which fragment a trace happened to live in.
type curtainProcess struct {
	task     messages.CurtainTask
	fs       geometry.FS
	gvt3     geometry.GVT
	depthDim geometry.Dim

	nextTrace int
	major     []int
	minor     []int
	values    []float32
}

func newCurtainProcess() *curtainProcess { return &curtainProcess{} }

func (p *curtainProcess) Init(taskRaw []byte) error {
	task, err := messages.DecodeCurtainTask(taskRaw)
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
	depthDim, err := gvt.Dim(2)
	if err != nil {
		return err
	}

	p.task = task
	p.fs = fs
	p.gvt3 = gvt
	p.depthDim = depthDim
	p.nextTrace = 0
	p.major = nil
	p.minor = nil
	p.values = nil
	return nil
}

func (p *curtainProcess) Fragments() (string, error) {
	if p.fs.Len() == 0 {
		return "", errNotInitialized()
	}
	parts := make([]string, len(p.task.Singles))
	for i, s := range p.task.Singles {
		parts[i] = fmt.Sprintf(
			"%s/%d-%d-%d/%d-%d-%d.%s",
			p.task.Prefix, p.fs.At(0), p.fs.At(1), p.fs.At(2), s.Id[0], s.Id[1], s.Id[2], p.task.Ext,
		)
	}
	return strings.Join(parts, ";"), nil
}

func (p *curtainProcess) Add(index int, raw []byte) error {
	if p.fs.Len() == 0 {
		return errNotInitialized()
	}
	if index < 0 || index >= len(p.task.Singles) {
		return oserrors.NewOutOfRange("fragment index %d out of range for task with %d singles", index, len(p.task.Singles))
	}

	single := p.task.Singles[index]
	fid, err := geometry.NewFID(single.Id[0], single.Id[1], single.Id[2])
	if err != nil {
		return err
	}

	src, err := asFloat32(raw)
	if err != nil {
		return err
	}

	padding := p.gvt3.Padding(fid, p.depthDim)
	zlen := p.fs.At(2) - padding
	zGlobalStart := fid.At(2) * p.fs.At(2)

	for _, c := range single.Coordinates {
		lx, ly := c[0], c[1]
		if lx < 0 || lx >= p.fs.At(0) || ly < 0 || ly >= p.fs.At(1) {
			return oserrors.NewOutOfRange("curtain local coordinate (%d,%d) out of range for fragment shape", lx, ly)
		}
		offset := (lx*p.fs.At(1) + ly) * p.fs.At(2)
		if offset+zlen > len(src) {
			return oserrors.NewBadValue("fragment payload too short for curtain extraction")
		}

		p.values = append(p.values, src[offset:offset+zlen]...)
		p.major = append(p.major, p.nextTrace, p.nextTrace+1)
		p.minor = append(p.minor, zGlobalStart, zGlobalStart+zlen-1)
		p.nextTrace++
	}
	return nil
}

func (p *curtainProcess) Pack() ([]byte, error) {
	if p.fs.Len() == 0 {
		return nil, errNotInitialized()
	}
	attr := p.task.Prefix
	if attr == "" {
		attr = "amplitude"
	}
	return messages.PackCurtainTraces(messages.CurtainTraces{
		Attr:   attr,
		Size:   len(p.major) / 2,
		Major:  p.major,
		Minor:  p.minor,
		Values: p.values,
	})
}
