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

import "github.com/equinor/oneseismic-sub000/oserrors"

// CP is a point in cube coordinates, i.e. coordinates into the full,
// padded survey volume. It holds that CP[i] < CS[i].
type CP struct{ tuple }

// NewCP builds a cube point from its per-axis coordinates.
func NewCP(vals ...int) (CP, error) {
	t, err := newTuple(vals)
	if err != nil {
		return CP{}, err
	}
	return CP{t}, nil
}

func (p CP) Equal(o CP) bool { return p.tuple.equal(o.tuple) }

// FP is a point in fragment-local coordinates. It holds that FP[i] < FS[i].
type FP struct{ tuple }

// NewFP builds a fragment point from its per-axis coordinates.
func NewFP(vals ...int) (FP, error) {
	t, err := newTuple(vals)
	if err != nil {
		return FP{}, err
	}
	return FP{t}, nil
}

func (p FP) Equal(o FP) bool { return p.tuple.equal(o.tuple) }

// FID identifies a fragment: its coordinate in the coarsened fragment
// grid. It holds that FID[i] < ceil(CS[i]/FS[i]).
type FID struct{ tuple }

// NewFID builds a fragment ID from its per-axis grid coordinates.
func NewFID(vals ...int) (FID, error) {
	t, err := newTuple(vals)
	if err != nil {
		return FID{}, err
	}
	return FID{t}, nil
}

func (id FID) Equal(o FID) bool { return id.tuple.equal(o.tuple) }

// Squeeze drops axis d from the fragment ID, shifting trailing axes left.
func (id FID) Squeeze(d Dim) (FID, error) {
	t, err := id.tuple.squeeze(d.Int())
	if err != nil {
		return FID{}, err
	}
	return FID{t}, nil
}

// CS is the shape of the cube: the extents of the full, padded volume in
// each axis. Every component must be positive.
type CS struct{ tuple }

// NewCS builds a cube shape. Every component must be > 0.
func NewCS(vals ...int) (CS, error) {
	t, err := newTuple(vals)
	if err != nil {
		return CS{}, err
	}
	for i := 0; i < t.Len(); i++ {
		if t.At(i) <= 0 {
			return CS{}, oserrors.NewInvalidArgument("cube shape component %d must be positive, was %d", i, t.At(i))
		}
	}
	return CS{t}, nil
}

// ToOffset computes the row-major element offset of a cube point within a
// buffer shaped like this cube: offset = sum_i p[i] * prod_{j>i} shape[j].
func (cs CS) ToOffset(p CP) (int, error) {
	if p.Len() != cs.Len() {
		return 0, oserrors.NewInvalidArgument(
			"point has %d dimensions, cube shape has %d", p.Len(), cs.Len(),
		)
	}
	return rowMajorOffset(cs.tuple, p.tuple)
}

// Squeeze drops axis d from the cube shape, shifting trailing axes left.
func (cs CS) Squeeze(d Dim) (CS, error) {
	t, err := cs.tuple.squeeze(d.Int())
	if err != nil {
		return CS{}, err
	}
	return CS{t}, nil
}

// FS is the shape of a single fragment. Every component must be positive
// and no larger than the corresponding CS component.
type FS struct{ tuple }

// NewFS builds a fragment shape. Every component must be > 0.
func NewFS(vals ...int) (FS, error) {
	t, err := newTuple(vals)
	if err != nil {
		return FS{}, err
	}
	for i := 0; i < t.Len(); i++ {
		if t.At(i) <= 0 {
			return FS{}, oserrors.NewInvalidArgument("fragment shape component %d must be positive, was %d", i, t.At(i))
		}
	}
	return FS{t}, nil
}

// ToOffset computes the row-major element offset of a fragment point
// within a single fragment buffer.
func (fs FS) ToOffset(p FP) (int, error) {
	if p.Len() != fs.Len() {
		return 0, oserrors.NewInvalidArgument(
			"point has %d dimensions, fragment shape has %d", p.Len(), fs.Len(),
		)
	}
	return rowMajorOffset(fs.tuple, p.tuple)
}

// Squeeze drops axis d from the fragment shape, shifting trailing axes left.
func (fs FS) Squeeze(d Dim) (FS, error) {
	t, err := fs.tuple.squeeze(d.Int())
	if err != nil {
		return FS{}, err
	}
	return FS{t}, nil
}

// SliceStride returns the layout for copying the dth-axis plane out of a
// single isolated fragment. The result's InitialSkip must still be
// multiplied by the fragment-local index before use (see GVT.InjectionStride
// for the already-scaled counterpart).
func (fs FS) SliceStride(d Dim) (SliceLayout, error) {
	if d.NumDims() != fs.Len() {
		return SliceLayout{}, oserrors.NewInvalidArgument(
			"dimension validated against %d dims, fragment shape has %d", d.NumDims(), fs.Len(),
		)
	}

	iterations := 1
	for i := 0; i < d.Int(); i++ {
		iterations *= fs.At(i)
	}

	chunkSize := 1
	for i := d.Int() + 1; i < fs.Len(); i++ {
		chunkSize *= fs.At(i)
	}

	superstride := 1
	for i := d.Int(); i < fs.Len(); i++ {
		superstride *= fs.At(i)
	}

	return SliceLayout{
		Iterations:  iterations,
		ChunkSize:   chunkSize,
		InitialSkip: chunkSize,
		Superstride: superstride,
		Substride:   chunkSize,
	}, nil
}

// rowMajorOffset computes sum_i p[i] * prod_{j>i} shape[j].
func rowMajorOffset(shape, p tuple) (int, error) {
	n := shape.Len()
	dimProduct := make([]int, n)
	dimProduct[n-1] = 1
	for i := n - 2; i >= 0; i-- {
		dimProduct[i] = dimProduct[i+1] * shape.At(i+1)
	}

	offset := 0
	for i := 0; i < n; i++ {
		if p.At(i) >= shape.At(i) {
			return 0, oserrors.NewOutOfRange(
				"coordinate %d on axis %d is out of range for shape component %d", p.At(i), i, shape.At(i),
			)
		}
		offset += p.At(i) * dimProduct[i]
	}
	return offset, nil
}
