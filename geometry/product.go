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

// cartesianProduct enumerates the cartesian product of [begins[i], ends[i])
// for every axis, in lexicographic order with axis 0 varying slowest and
// the last axis varying fastest. The source this package is derived from
// hand-unrolled this loop nest for N in 1..5 to keep the compiler's job
// easy; a plain recursive walk does the same job in Go without the
// code-size blowup.
func cartesianProduct(begins, ends []int) [][]int {
	n := len(begins)
	if n == 0 {
		return nil
	}

	total := 1
	for i := 0; i < n; i++ {
		total *= ends[i] - begins[i]
	}
	if total <= 0 {
		return [][]int{}
	}

	out := make([][]int, 0, total)
	frame := make([]int, n)

	var recurse func(axis int)
	recurse = func(axis int) {
		if axis == n {
			row := make([]int, n)
			copy(row, frame)
			out = append(out, row)
			return
		}
		for frame[axis] = begins[axis]; frame[axis] < ends[axis]; frame[axis]++ {
			recurse(axis + 1)
		}
	}
	recurse(0)

	return out
}
