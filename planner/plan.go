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

package planner

import (
	"github.com/google/uuid"

	"github.com/equinor/oneseismic-sub000/geometry"
	"github.com/equinor/oneseismic-sub000/manifest"
	"github.com/equinor/oneseismic-sub000/messages"
	"github.com/equinor/oneseismic-sub000/oserrors"
)

// Plan decodes a packed SliceQuery, loads its embedded manifest, and
// emits a packed task set: a list of SliceTask blobs of up to taskSize
// fragment IDs each, followed by a packed ProcessHeader as the final
// element. Consumers treat packed[len(packed)-1] as the header.
func Plan(queryRaw []byte, taskSize int) ([][]byte, error) {
	if taskSize < 1 {
		return nil, oserrors.NewInvalidArgument("task_size must be >= 1, was %d", taskSize)
	}

	q, err := messages.DecodeSliceQuery(queryRaw)
	if err != nil {
		return nil, err
	}
	if q.Pid == "" {
		q.Pid = uuid.NewString()
	}

	m, err := manifest.Parse(q.Manifest)
	if err != nil {
		return nil, err
	}

	cs, err := geometry.NewCS(m.CubeShape()...)
	if err != nil {
		return nil, err
	}
	fs, err := geometry.NewFS(q.Shape[0], q.Shape[1], q.Shape[2])
	if err != nil {
		return nil, err
	}
	gvt, err := geometry.New(cs, fs)
	if err != nil {
		return nil, err
	}

	dim, err := gvt.Dim(q.Dim)
	if err != nil {
		return nil, err
	}

	pin, err := m.IndexOf(q.Dim, q.Lineno)
	if err != nil {
		return nil, err
	}
	localIdx := pin % fs.At(dim.Int())

	ids, err := gvt.Slice(dim, pin)
	if err != nil {
		return nil, err
	}

	prefix, ext := m.ResourcePrefixExt()
	chunks := partition(ids, taskSize)

	cubeShape := [3]int{cs.At(0), cs.At(1), cs.At(2)}
	packed := make([][]byte, 0, len(chunks)+1)
	for _, chunk := range chunks {
		task := messages.SliceTask{
			Common:    q.Common,
			CubeShape: cubeShape,
			Dim:       q.Dim,
			LocalIdx:  localIdx,
			Ids:       idsToArrays(chunk),
			Prefix:    prefix,
			Ext:       ext,
		}
		b, err := task.EncodeJSON()
		if err != nil {
			return nil, err
		}
		packed = append(packed, b)
	}

	squeezed, err := gvt.Squeeze(dim)
	if err != nil {
		return nil, err
	}
	index, err := m.Squeeze(q.Dim)
	if err != nil {
		return nil, err
	}

	header := messages.ProcessHeader{
		Pid:      q.Pid,
		Function: q.Function,
		Nbundles: len(chunks),
		Ndims:    squeezed.NumDims(),
		Shape:    squeezed.CubeShape().Slice(),
		Index:    index,
		Labels:   nil,
	}
	hb, err := messages.PackHeader(header)
	if err != nil {
		return nil, err
	}
	return append(packed, hb), nil
}

func idsToArrays(ids []geometry.FID) [][3]int {
	out := make([][3]int, len(ids))
	for i, id := range ids {
		out[i] = [3]int{id.At(0), id.At(1), id.At(2)}
	}
	return out
}
