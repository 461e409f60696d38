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

package decoder

import (
	"testing"

	"github.com/equinor/oneseismic-sub000/messages"
	"github.com/stretchr/testify/require"
)

func buildTwoBundleResponse(t *testing.T) []byte {
	t.Helper()

	header := messages.ProcessHeader{
		Pid: "p1", Function: "slice", Nbundles: 2, Ndims: 2,
		Shape: []int{2, 2},
	}

	tileA := messages.Tile{Iterations: 1, ChunkSize: 2, InitialSkip: 0, Superstride: 2, Substride: 2, Values: []float32{1, 2}}
	bundleA, err := messages.PackSliceTiles(messages.SliceTiles{Attr: "amplitude", Tiles: []messages.Tile{tileA}})
	require.NoError(t, err)

	tileB := messages.Tile{Iterations: 1, ChunkSize: 2, InitialSkip: 0, Superstride: 2, Substride: 2, Values: []float32{3, 4}}
	bundleB, err := messages.PackSliceTiles(messages.SliceTiles{Attr: "dip", Tiles: []messages.Tile{tileB}})
	require.NoError(t, err)

	env, err := messages.PackEnvelope(header, [][]byte{bundleA, bundleB})
	require.NoError(t, err)
	return env
}

func TestDecoderWholeMessageAtOnce(t *testing.T) {
	raw := buildTwoBundleResponse(t)

	d := New()
	dst := make([]float32, 2)
	d.RegisterWriter("amplitude", dst)

	status, err := d.BufferAndProcess(raw)
	require.NoError(t, err)
	require.Equal(t, Paused, status) // paused right after header

	h, ok := d.Header()
	require.True(t, ok)
	require.Equal(t, 2, h.Nbundles)

	status, err = d.Process()
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, []float32{1, 2}, dst)
}

// S4: feeding a valid two-bundle response byte-by-byte must return
// Paused for every non-terminal prefix, exactly one Paused immediately
// after the header is available, and exactly one Done on the last byte.
func TestDecoderPiecewiseFeedS4(t *testing.T) {
	raw := buildTwoBundleResponse(t)

	d := New()
	amplitude := make([]float32, 2)
	dip := make([]float32, 2)
	d.RegisterWriter("amplitude", amplitude)
	d.RegisterWriter("dip", dip)

	doneCount := 0
	headerSeenAt := -1
	for i := 0; i < len(raw); i++ {
		status, err := d.BufferAndProcess(raw[i : i+1])
		require.NoError(t, err)
		if status == Done {
			doneCount++
			require.Equal(t, len(raw)-1, i, "Done must occur exactly on the last byte")
		} else if _, ok := d.Header(); ok && headerSeenAt == -1 {
			headerSeenAt = i
		}
	}

	require.Equal(t, 1, doneCount)
	require.GreaterOrEqual(t, headerSeenAt, 0)
	require.Equal(t, []float32{1, 2}, amplitude)
	require.Equal(t, []float32{3, 4}, dip)
}

// Invariant 7: decoder idempotence - any chunking of a complete message
// produces identical writer-buffer contents and terminates in Done
// exactly once. Like any caller, the test resumes with one Process call
// when the decoder pauses after the header.
func TestDecoderIdempotentAcrossChunking(t *testing.T) {
	raw := buildTwoBundleResponse(t)

	chunkings := [][]int{
		{len(raw)},
		splitEvery(raw, 3),
		splitEvery(raw, 7),
		onesAndRest(raw),
	}

	for _, sizes := range chunkings {
		d := New()
		amplitude := make([]float32, 2)
		dip := make([]float32, 2)
		d.RegisterWriter("amplitude", amplitude)
		d.RegisterWriter("dip", dip)

		offset := 0
		doneCount := 0
		headerSeen := false
		for _, size := range sizes {
			chunk := raw[offset : offset+size]
			offset += size
			status, err := d.BufferAndProcess(chunk)
			require.NoError(t, err)
			if _, ok := d.Header(); ok && !headerSeen {
				headerSeen = true
				status, err = d.Process()
				require.NoError(t, err)
			}
			if status == Done {
				doneCount++
			}
		}
		require.Equal(t, 1, doneCount)
		require.Equal(t, []float32{1, 2}, amplitude)
		require.Equal(t, []float32{3, 4}, dip)
	}
}

func TestDecoderDiscardsUnregisteredAttribute(t *testing.T) {
	raw := buildTwoBundleResponse(t)

	d := New()
	amplitude := make([]float32, 2)
	d.RegisterWriter("amplitude", amplitude)
	// "dip" intentionally left unregistered.

	status, err := d.BufferAndProcess(raw)
	require.NoError(t, err)
	require.Equal(t, Paused, status)
	status, err = d.Process()
	require.NoError(t, err)
	require.Equal(t, Done, status)
	require.Equal(t, []float32{1, 2}, amplitude)
}

func TestDecoderBadMessageRequiresReset(t *testing.T) {
	d := New()
	_, err := d.BufferAndProcess([]byte{0x93}) // fixarray len 3, envelope must be len 2
	require.Error(t, err)

	_, err = d.Process()
	require.Error(t, err, "decoder stays poisoned until Reset")

	d.Reset()
	raw := buildTwoBundleResponse(t)
	d.RegisterWriter("amplitude", make([]float32, 2))
	d.RegisterWriter("dip", make([]float32, 2))
	_, err = d.BufferAndProcess(raw)
	require.NoError(t, err)
}

func splitEvery(raw []byte, n int) []int {
	var sizes []int
	for i := 0; i < len(raw); i += n {
		end := i + n
		if end > len(raw) {
			end = len(raw)
		}
		sizes = append(sizes, end-i)
	}
	return sizes
}

func onesAndRest(raw []byte) []int {
	sizes := []int{1, 1, 1}
	sizes = append(sizes, len(raw)-3)
	return sizes
}
