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

// GVT (global volume translator) is an immutable pair of a cube shape and a
// fragment shape, plus the derived queries needed to map between cube
// coordinates, fragment coordinates and fragment IDs. It is a cheap value
// to copy and carries no identity of its own.
type GVT struct {
	cube CS
	frag FS
}

// New builds a GVT from a cube shape and a fragment shape. The two shapes
// must have the same dimensionality, and every fragment shape component
// must not exceed the corresponding cube shape component.
func New(cube CS, frag FS) (GVT, error) {
	if cube.Len() != frag.Len() {
		return GVT{}, oserrors.NewInvalidArgument(
			"cube shape has %d dimensions, fragment shape has %d", cube.Len(), frag.Len(),
		)
	}
	for i := 0; i < cube.Len(); i++ {
		if frag.At(i) > cube.At(i) {
			return GVT{}, oserrors.NewInvalidArgument(
				"fragment shape component %d (= %d) exceeds cube shape component (= %d)",
				i, frag.At(i), cube.At(i),
			)
		}
	}
	return GVT{cube: cube, frag: frag}, nil
}

// NumDims returns the dimensionality (ND) this GVT was built with.
func (g GVT) NumDims() int { return g.cube.Len() }

// CubeShape returns the cube shape this GVT was built with.
func (g GVT) CubeShape() CS { return g.cube }

// FragmentShape returns the fragment shape this GVT was built with.
func (g GVT) FragmentShape() FS { return g.frag }

// Dim validates d against this GVT's dimensionality and returns the
// corresponding Dim.
func (g GVT) Dim(d int) (Dim, error) { return NewDim(d, g.NumDims()) }

// ToLocal maps a cube point to the fragment-local coordinate of the
// fragment that contains it.
func (g GVT) ToLocal(p CP) (FP, error) {
	if p.Len() != g.NumDims() {
		return FP{}, oserrors.NewInvalidArgument("point has %d dims, gvt has %d", p.Len(), g.NumDims())
	}
	vals := make([]int, g.NumDims())
	for i := 0; i < g.NumDims(); i++ {
		if p.At(i) >= g.cube.At(i) {
			return FP{}, oserrors.NewOutOfRange("cube coordinate %d on axis %d exceeds cube shape %d", p.At(i), i, g.cube.At(i))
		}
		vals[i] = p.At(i) % g.frag.At(i)
	}
	return NewFP(vals...)
}

// FragID returns the ID of the fragment that contains the given cube point.
func (g GVT) FragID(p CP) (FID, error) {
	if p.Len() != g.NumDims() {
		return FID{}, oserrors.NewInvalidArgument("point has %d dims, gvt has %d", p.Len(), g.NumDims())
	}
	vals := make([]int, g.NumDims())
	for i := 0; i < g.NumDims(); i++ {
		if p.At(i) >= g.cube.At(i) {
			return FID{}, oserrors.NewOutOfRange("cube coordinate %d on axis %d exceeds cube shape %d", p.At(i), i, g.cube.At(i))
		}
		vals[i] = p.At(i) / g.frag.At(i)
	}
	return NewFID(vals...)
}

// ToGlobal maps a fragment ID and a fragment-local point to a cube point.
// It is the inverse of the pair (FragID, ToLocal).
func (g GVT) ToGlobal(id FID, p FP) (CP, error) {
	if id.Len() != g.NumDims() || p.Len() != g.NumDims() {
		return CP{}, oserrors.NewInvalidArgument("fragment id/point dimensionality mismatch with gvt")
	}
	vals := make([]int, g.NumDims())
	for i := 0; i < g.NumDims(); i++ {
		vals[i] = id.At(i)*g.frag.At(i) + p.At(i)
	}
	return NewCP(vals...)
}

// FragmentCount returns ceil(CS[d]/FS[d]), the number of fragments along
// axis d.
func (g GVT) FragmentCount(d Dim) int {
	global := g.cube.At(d.Int())
	local := g.frag.At(d.Int())
	return (global + local - 1) / local
}

// GlobalSize returns the number of points (samples) in the cube.
func (g GVT) GlobalSize() int {
	n := 1
	for i := 0; i < g.NumDims(); i++ {
		n *= g.cube.At(i)
	}
	return n
}

// Padding returns the number of samples of padding a fragment carries along
// axis d. Only the last fragment along an axis can carry padding; a
// cube that divides evenly into fragments along that axis has zero
// padding, never a full fragment's worth - the modulo-zero case means
// "no padding", not "fully padded".
func (g GVT) Padding(id FID, d Dim) int {
	if id.At(d.Int()) != g.FragmentCount(d)-1 {
		return 0
	}
	remainder := g.cube.At(d.Int()) % g.frag.At(d.Int())
	if remainder == 0 {
		return 0
	}
	return g.frag.At(d.Int()) - remainder
}

// Slice returns the fragment IDs whose fragments contain cube index n
// along axis d: the cartesian product of [0, FragmentCount(i)) for every
// axis i != d, with axis d pinned to n / FS[d]. The result is ordered
// lexicographically over the non-pinned axes, with the lowest axis index
// varying slowest.
func (g GVT) Slice(d Dim, n int) ([]FID, error) {
	if d.NumDims() != g.NumDims() {
		return nil, oserrors.NewInvalidArgument("dimension validated against %d dims, gvt has %d", d.NumDims(), g.NumDims())
	}
	if n < 0 || n >= g.cube.At(d.Int()) {
		return nil, oserrors.NewOutOfRange("line %d is out of range for cube shape component %d", n, g.cube.At(d.Int()))
	}

	nd := g.NumDims()
	begins := make([]int, nd)
	ends := make([]int, nd)
	pin := n / g.frag.At(d.Int())
	for i := 0; i < nd; i++ {
		ends[i] = g.FragmentCount(Dim{v: i, nd: nd})
	}
	begins[d.Int()] = pin
	ends[d.Int()] = pin + 1

	frames := cartesianProduct(begins, ends)
	out := make([]FID, 0, len(frames))
	for _, frame := range frames {
		id, err := NewFID(frame...)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

// InjectionStride returns the layout for placing a single fragment's
// last-axis-contiguous block into its position within a squeezed cube
// buffer. Unlike FS.SliceStride, InjectionStride's InitialSkip is already a
// final element offset; it must not be scaled again by a caller.
func (g GVT) InjectionStride(id FID) (SliceLayout, error) {
	if id.Len() != g.NumDims() {
		return SliceLayout{}, oserrors.NewInvalidArgument("fragment id has %d dims, gvt has %d", id.Len(), g.NumDims())
	}

	last, err := g.Dim(g.NumDims() - 1)
	if err != nil {
		return SliceLayout{}, err
	}

	origin := make([]int, g.NumDims())
	fp, err := NewFP(origin...)
	if err != nil {
		return SliceLayout{}, err
	}
	corner, err := g.ToGlobal(id, fp)
	if err != nil {
		return SliceLayout{}, err
	}
	initialSkip, err := g.cube.ToOffset(corner)
	if err != nil {
		return SliceLayout{}, err
	}

	iterations := 1
	for d := 0; d < g.NumDims(); d++ {
		if d == last.Int() {
			continue
		}
		dim, err := g.Dim(d)
		if err != nil {
			return SliceLayout{}, err
		}
		iterations *= g.frag.At(d) - g.Padding(id, dim)
	}

	return SliceLayout{
		Iterations:  iterations,
		ChunkSize:   g.frag.At(last.Int()) - g.Padding(id, last),
		InitialSkip: initialSkip,
		Superstride: g.cube.At(last.Int()),
		Substride:   g.frag.At(last.Int()),
	}, nil
}

// Squeeze drops axis d from both the cube and fragment shapes, shifting
// trailing axes left, and returns the GVT built from the result.
func (g GVT) Squeeze(d Dim) (GVT, error) {
	cs, err := g.cube.Squeeze(d)
	if err != nil {
		return GVT{}, err
	}
	fs, err := g.frag.Squeeze(d)
	if err != nil {
		return GVT{}, err
	}
	return New(cs, fs)
}
