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

package geometry

// SliceLayout is a single-loop strided-copy descriptor. All counts are in
// element units (multiply by element size, e.g. 4 for float32, to get a
// byte offset).
//
// Given a layout, a planar sub-array can be copied with a single loop:
//
//	for i := 0; i < iterations; i++ {
//	    copy(dst[i*substride:][:chunkSize], src[i*superstride:][:chunkSize])
//	}
//
// The exact roles of superstride/substride/initialSkip flip depending on
// whether the layout describes reading a plane out of an isolated fragment
// (FS.SliceStride) or writing a fragment's contribution into the larger
// squeezed cube (GVT.InjectionStride); see their doc comments.
type SliceLayout struct {
	// Iterations is the number of chunk-sized reads/writes to perform.
	Iterations int

	// ChunkSize is the number of contiguous elements moved per iteration.
	ChunkSize int

	// InitialSkip is the number of elements to skip to reach the start of
	// the data. For FS.SliceStride, this must still be scaled by the
	// fragment-local index before use. For GVT.InjectionStride it is
	// already a final element offset.
	InitialSkip int

	// Superstride is the element distance between a point and its
	// lateral neighbour in the larger structure (the cube, or a fragment
	// treated as a 1-fragment cube).
	Superstride int

	// Substride is the element distance between a point and its lateral
	// neighbour within an isolated fragment.
	Substride int
}
