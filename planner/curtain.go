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
	"sort"

	"github.com/google/uuid"

	"github.com/equinor/oneseismic-sub000/geometry"
	"github.com/equinor/oneseismic-sub000/manifest"
	"github.com/equinor/oneseismic-sub000/messages"
	"github.com/equinor/oneseismic-sub000/oserrors"
)

// PlanCurtain decodes a packed CurtainQuery, loads its embedded manifest,
// and emits a packed task set. Requested (x,y) trace coordinates are
// grouped by the 3D fragment that contains them - one fragment can hold
// many columns, and a single column spans every fragment along the depth
// axis - producing one Single per touched fragment. As with Plan, the
// final packed element is a ProcessHeader.
func PlanCurtain(queryRaw []byte, taskSize int) ([][]byte, error) {
	if taskSize < 1 {
		return nil, oserrors.NewInvalidArgument("task_size must be >= 1, was %d", taskSize)
	}

	q, err := messages.DecodeCurtainQuery(queryRaw)
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

	depthDim, err := gvt.Dim(2)
	if err != nil {
		return nil, err
	}
	nz := gvt.FragmentCount(depthDim)

	type key struct{ fx, fy, fz int }
	groups := make(map[key][][2]int)

	for i := range q.Dim0s {
		x, y := q.Dim0s[i], q.Dim1s[i]
		if x < 0 || x >= cs.At(0) {
			return nil, oserrors.NewOutOfRange("curtain trace %d: x=%d out of range for cube shape %d", i, x, cs.At(0))
		}
		if y < 0 || y >= cs.At(1) {
			return nil, oserrors.NewOutOfRange("curtain trace %d: y=%d out of range for cube shape %d", i, y, cs.At(1))
		}
		fx, fy := x/fs.At(0), y/fs.At(1)
		lx, ly := x%fs.At(0), y%fs.At(1)
		for fz := 0; fz < nz; fz++ {
			k := key{fx, fy, fz}
			groups[k] = append(groups[k], [2]int{lx, ly})
		}
	}

	keys := make([]key, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.fx != b.fx {
			return a.fx < b.fx
		}
		if a.fy != b.fy {
			return a.fy < b.fy
		}
		return a.fz < b.fz
	})

	singles := make([]messages.Single, 0, len(keys))
	for _, k := range keys {
		singles = append(singles, messages.Single{
			Id:          [3]int{k.fx, k.fy, k.fz},
			Coordinates: groups[k],
		})
	}

	prefix, ext := m.ResourcePrefixExt()
	chunks := partition(singles, taskSize)
	cubeShape := [3]int{cs.At(0), cs.At(1), cs.At(2)}

	packed := make([][]byte, 0, len(chunks)+1)
	for _, chunk := range chunks {
		task := messages.CurtainTask{
			Common:    q.Common,
			CubeShape: cubeShape,
			Singles:   chunk,
			Prefix:    prefix,
			Ext:       ext,
		}
		b, err := task.EncodeJSON()
		if err != nil {
			return nil, err
		}
		packed = append(packed, b)
	}

	header := messages.ProcessHeader{
		Pid:      q.Pid,
		Function: q.Function,
		Nbundles: len(chunks),
		Ndims:    gvt.NumDims(),
		Shape:    cs.Slice(),
		Index:    m.Dimensions,
	}
	hb, err := messages.PackHeader(header)
	if err != nil {
		return nil, err
	}
	return append(packed, hb), nil
}
