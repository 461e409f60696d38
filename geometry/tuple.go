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

// Package geometry implements the global volume translator (GVT): the
// mapping between cube coordinates, fragment coordinates and fragment IDs
// for an N-dimensional, pre-shattered seismic cube.
//
// Points and dimensions
//
// All the tuple types below (CP, FP, FID, CS, FS) share the same physical
// representation - a short run of non-negative integers - but are kept as
// distinct Go types on purpose. A fragment point and a cube point are both
// "just" coordinates, but mixing them up silently is a real class of bug,
// so the compiler is enlisted to catch it: converting a CP to an FP requires
// an explicit, visible conversion.
//
// The acronyms follow the source material:
//
//	C - cube (the full survey volume)
//	F - fragment (a rectangular sub-block of the cube)
//	P - point/coordinate
//	S - shape
//	ID - identifier (a fragment's coordinate in the fragment grid)
package geometry

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/equinor/oneseismic-sub000/oserrors"
)

// MaxDims is the highest number of dimensions this package supports. The
// source this package is derived from hand-specialized its cartesian
// product for N in 1..5; Go generics can't parametrize array length, so
// this package validates the same cap at construction time instead.
const MaxDims = 5

// tuple is the shared representation for every coordinate/shape role
// (CP, FP, FID, CS, FS). It is deliberately unexported: callers only ever
// see the named role types below, which embed it.
type tuple struct {
	n int
	v [MaxDims]int
}

func newTuple(vals []int) (tuple, error) {
	if len(vals) == 0 {
		return tuple{}, oserrors.NewInvalidArgument("tuple must have at least one dimension")
	}
	if len(vals) > MaxDims {
		return tuple{}, oserrors.NewInvalidArgument(
			"tuple has %d dimensions, exceeds cap of %d", len(vals), MaxDims,
		)
	}
	var t tuple
	t.n = len(vals)
	copy(t.v[:t.n], vals)
	return t, nil
}

// Len returns the number of dimensions (ND) of this tuple.
func (t tuple) Len() int { return t.n }

// At returns the coordinate along axis d. It panics if d is out of the
// tuple's own dimensionality - that is a programmer error (a fixed,
// already-validated axis index), not a runtime data error.
func (t tuple) At(d int) int {
	if d < 0 || d >= t.n {
		panic(fmt.Sprintf("geometry: axis %d out of range for %d-dimensional tuple", d, t.n))
	}
	return t.v[d]
}

// Slice returns the tuple's components as a freshly allocated slice.
func (t tuple) Slice() []int {
	out := make([]int, t.n)
	copy(out, t.v[:t.n])
	return out
}

func (t tuple) equal(o tuple) bool {
	if t.n != o.n {
		return false
	}
	for i := 0; i < t.n; i++ {
		if t.v[i] != o.v[i] {
			return false
		}
	}
	return true
}

func (t tuple) String() string {
	parts := make([]string, t.n)
	for i := 0; i < t.n; i++ {
		parts[i] = strconv.Itoa(t.v[i])
	}
	return strings.Join(parts, "-")
}

// squeeze drops axis d from the tuple, shifting trailing axes left.
func (t tuple) squeeze(d int) (tuple, error) {
	if d < 0 || d >= t.n {
		return tuple{}, oserrors.NewOutOfRange("axis %d out of range for %d-dimensional tuple", d, t.n)
	}
	if t.n == 1 {
		return tuple{}, oserrors.NewInvalidArgument("cannot squeeze a 1-dimensional tuple")
	}
	vals := make([]int, 0, t.n-1)
	for i := 0; i < t.n; i++ {
		if i == d {
			continue
		}
		vals = append(vals, t.v[i])
	}
	return newTuple(vals)
}

// Dim is a validated axis index for an ND-dimensional geometry. Passing a
// Dim rather than a bare int catches the common bug of reusing an axis
// index derived from one cube's dimensionality against a different one.
type Dim struct {
	v  int
	nd int
}

// NewDim validates that 0 <= d < nd and returns the corresponding Dim.
func NewDim(d, nd int) (Dim, error) {
	if nd <= 0 {
		return Dim{}, oserrors.NewInvalidArgument("dimensionality must be positive, was %d", nd)
	}
	if d < 0 || d >= nd {
		return Dim{}, oserrors.NewOutOfRange("invalid dimension: expected 0 <= d < %d, was %d", nd, d)
	}
	return Dim{v: d, nd: nd}, nil
}

// Int returns the axis index as a plain int.
func (d Dim) Int() int { return d.v }

// NumDims returns the dimensionality this Dim was validated against.
func (d Dim) NumDims() int { return d.nd }
