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

package messages

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Property 5: unpack(pack(x)) == x for the round-trippable message types.

func TestSliceQueryJSONRoundTrip(t *testing.T) {
	q := SliceQuery{
		Common: Common{
			Pid: "p1", Token: "t1", Guid: "g1",
			StorageEndpoint: "https://example", Shape: [3]int{3, 3, 3}, Function: "slice",
		},
		Manifest: json.RawMessage(`{"dimensions":[[0,1],[0,1],[0,1]]}`),
		Dim:      1,
		Lineno:   7,
	}
	raw, err := q.EncodeJSON()
	require.NoError(t, err)

	got, err := DecodeSliceQuery(raw)
	require.NoError(t, err)
	require.Equal(t, q.Pid, got.Pid)
	require.Equal(t, q.Dim, got.Dim)
	require.Equal(t, q.Lineno, got.Lineno)
	require.JSONEq(t, string(q.Manifest), string(got.Manifest))
}

func TestSliceTaskJSONRoundTrip(t *testing.T) {
	task := SliceTask{
		Common:    Common{Pid: "p1", Function: "slice"},
		CubeShape: [3]int{9, 15, 23},
		Dim:       1,
		LocalIdx:  2,
		Ids:       [][3]int{{0, 1, 0}, {1, 1, 2}},
		Prefix:    "src",
		Ext:       "f32",
	}
	raw, err := task.EncodeJSON()
	require.NoError(t, err)

	got, err := DecodeSliceTask(raw)
	require.NoError(t, err)
	require.Equal(t, task, got)
}

func TestCurtainTaskJSONRoundTrip(t *testing.T) {
	task := CurtainTask{
		Common:    Common{Pid: "p1", Function: "curtain"},
		CubeShape: [3]int{9, 15, 23},
		Singles: []Single{
			{Id: [3]int{0, 0, 0}, Coordinates: [][2]int{{1, 2}, {3, 4}}},
		},
		Prefix: "src",
		Ext:    "f32",
	}
	raw, err := task.EncodeJSON()
	require.NoError(t, err)

	got, err := DecodeCurtainTask(raw)
	require.NoError(t, err)
	require.Equal(t, task, got)
}

func TestTileMsgpackRoundTrip(t *testing.T) {
	s := SliceTiles{
		Attr: "amplitude",
		Tiles: []Tile{
			{Iterations: 2, ChunkSize: 3, InitialSkip: 1, Superstride: 5, Substride: 3, Values: []float32{1, 2, 3, 4, 5, 6}},
			{Iterations: 1, ChunkSize: 1, InitialSkip: 0, Superstride: 1, Substride: 1, Values: []float32{42}},
		},
	}
	raw, err := PackSliceTiles(s)
	require.NoError(t, err)

	got, err := UnpackSliceTiles(raw)
	require.NoError(t, err)
	require.Equal(t, s, got)
}

func TestCurtainTracesMsgpackRoundTrip(t *testing.T) {
	c := CurtainTraces{
		Attr:   "amplitude",
		Size:   2,
		Major:  []int{0, 1, 2, 2},
		Minor:  []int{0, 4, 0, 4},
		Values: []float32{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
	}
	raw, err := PackCurtainTraces(c)
	require.NoError(t, err)

	got, err := UnpackCurtainTraces(raw)
	require.NoError(t, err)
	require.Equal(t, c, got)
}

func TestProcessHeaderMsgpackRoundTrip(t *testing.T) {
	h := ProcessHeader{
		Pid: "p1", Function: "slice", Nbundles: 2, Ndims: 2,
		Shape:      []int{9, 23},
		Index:      [][]int{{0, 1, 2}, {0, 1, 2, 3}},
		Labels:     []string{"inline", "time"},
		Attributes: []string{"amplitude"},
	}
	raw, err := PackHeader(h)
	require.NoError(t, err)

	got, err := UnpackHeader(raw)
	require.NoError(t, err)
	require.Equal(t, h, got)
}

func TestPackEnvelopeShapeIsTwoElementArray(t *testing.T) {
	h := ProcessHeader{Pid: "p1", Nbundles: 1}
	bundle, err := PackSliceTiles(SliceTiles{Attr: "amplitude", Tiles: []Tile{{Iterations: 1, ChunkSize: 1, Values: []float32{1}}}})
	require.NoError(t, err)

	env, err := PackEnvelope(h, [][]byte{bundle})
	require.NoError(t, err)
	require.NotEmpty(t, env)
	require.Equal(t, byte(0x92), env[0]) // msgpack fixarray of length 2
}
