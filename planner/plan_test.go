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
	"testing"

	"github.com/equinor/oneseismic-sub000/messages"
	"github.com/equinor/oneseismic-sub000/oserrors"
	"github.com/stretchr/testify/require"
)

func sliceQueryRaw(t *testing.T, dim, lineno int, manifest string) []byte {
	t.Helper()
	q := messages.SliceQuery{
		Common: messages.Common{Pid: "p1", Function: "slice", Shape: [3]int{3, 3, 3}},
		Manifest: []byte(manifest),
		Dim:      dim,
		Lineno:   lineno,
	}
	raw, err := q.EncodeJSON()
	require.NoError(t, err)
	return raw
}

const fiveCubeManifest = `{"dimensions": [[0,1,2,3,4],[0,1,2,3,4],[0,1,2,3,4]]}`

// A query that omits a pid gets one assigned by the planner, so every
// task and the response header can still be correlated with the query
// that produced them.
func TestPlanAssignsPidWhenMissing(t *testing.T) {
	q := messages.SliceQuery{
		Common:   messages.Common{Function: "slice", Shape: [3]int{3, 3, 3}},
		Manifest: []byte(fiveCubeManifest),
		Dim:      0,
		Lineno:   0,
	}
	raw, err := q.EncodeJSON()
	require.NoError(t, err)

	packed, err := Plan(raw, 3)
	require.NoError(t, err)

	header, err := messages.UnpackHeader(packed[len(packed)-1])
	require.NoError(t, err)
	require.NotEmpty(t, header.Pid)

	task, err := messages.DecodeSliceTask(packed[0])
	require.NoError(t, err)
	require.Equal(t, header.Pid, task.Pid)
}

// S1: inline slice, 3x3x3 fragments tiling a 5x5x5 cube.
func TestPlanS1(t *testing.T) {
	raw := sliceQueryRaw(t, 0, 0, fiveCubeManifest)

	packed, err := Plan(raw, 3)
	require.NoError(t, err)
	require.Len(t, packed, 3) // 2 task blobs (sizes 3,1) + header

	task0, err := messages.DecodeSliceTask(packed[0])
	require.NoError(t, err)
	require.Equal(t, 0, task0.LocalIdx)
	require.Len(t, task0.Ids, 3)
	require.Equal(t, [][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}}, task0.Ids)

	task1, err := messages.DecodeSliceTask(packed[1])
	require.NoError(t, err)
	require.Len(t, task1.Ids, 1)
	require.Equal(t, [][3]int{{0, 1, 1}}, task1.Ids)

	header, err := messages.UnpackHeader(packed[2])
	require.NoError(t, err)
	require.Equal(t, 2, header.Nbundles)
}

// S2: crossline slice on GVT(9x15x23, 3x9x5).
func TestPlanS2(t *testing.T) {
	manifestJSON := `{"dimensions": [` +
		rangeArray(9) + `,` + rangeArray(15) + `,` + rangeArray(23) + `]}`
	raw := sliceQueryRaw(t, 1, 11, manifestJSON)
	raw = withShape(t, raw, [3]int{3, 9, 5})

	packed, err := Plan(raw, 1000)
	require.NoError(t, err)
	require.Len(t, packed, 2) // one task blob (task_size large enough) + header

	task, err := messages.DecodeSliceTask(packed[0])
	require.NoError(t, err)
	require.Len(t, task.Ids, 15)
}

// S5: planner rejects unknown lineno.
func TestPlanS5(t *testing.T) {
	raw := sliceQueryRaw(t, 0, 99, `{"dimensions": [[1,2,3],[0,1],[0,1]]}`)
	raw = withShape(t, raw, [3]int{1, 1, 1})

	_, err := Plan(raw, 10)
	require.Error(t, err)
	require.True(t, oserrors.IsNotFound(err))
}

// S6: concatenating the ids of the planner's task blobs (excluding the
// header) yields exactly the slice ids in order, and no blob has more
// ids than task_size.
func TestPlanS6Partition(t *testing.T) {
	raw := sliceQueryRaw(t, 0, 0, fiveCubeManifest)

	for _, taskSize := range []int{1, 2, 3, 100} {
		packed, err := Plan(raw, taskSize)
		require.NoError(t, err)

		var all [][3]int
		for _, blob := range packed[:len(packed)-1] {
			task, err := messages.DecodeSliceTask(blob)
			require.NoError(t, err)
			require.LessOrEqual(t, len(task.Ids), taskSize)
			all = append(all, task.Ids...)
		}
		require.Equal(t, [][3]int{{0, 0, 0}, {0, 0, 1}, {0, 1, 0}, {0, 1, 1}}, all)
	}
}

// Invariant 4: planner output count is ceil(len(ids)/task_size) + 1.
func TestPlanOutputCountInvariant(t *testing.T) {
	raw := sliceQueryRaw(t, 0, 0, fiveCubeManifest)

	packed, err := Plan(raw, 3)
	require.NoError(t, err)
	require.Len(t, packed, 2+1) // ceil(4/3) = 2 tasks, + header
}

func TestPlanRejectsInvalidTaskSize(t *testing.T) {
	raw := sliceQueryRaw(t, 0, 0, fiveCubeManifest)

	_, err := Plan(raw, 0)
	require.Error(t, err)
	require.True(t, oserrors.IsInvalidArgument(err))
}

func rangeArray(n int) string {
	s := "["
	for i := 0; i < n; i++ {
		if i > 0 {
			s += ","
		}
		s += itoa(i)
	}
	return s + "]"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func withShape(t *testing.T, raw []byte, shape [3]int) []byte {
	t.Helper()
	q, err := messages.DecodeSliceQuery(raw)
	require.NoError(t, err)
	q.Shape = shape
	out, err := q.EncodeJSON()
	require.NoError(t, err)
	return out
}
