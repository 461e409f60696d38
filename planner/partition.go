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

// Package planner turns a decoded query plus a manifest into a packed
// task set: a list of worker task blobs followed by a ProcessHeader.
package planner

// partition splits items into chunks of at most size elements each,
// preserving order. The last chunk may be smaller than size.
func partition[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	nchunks := (len(items) + size - 1) / size
	out := make([][]T, 0, nchunks)
	for i := 0; i < len(items); i += size {
		end := i + size
		if end > len(items) {
			end = len(items)
		}
		chunk := make([]T, end-i)
		copy(chunk, items[i:end])
		out = append(out, chunk)
	}
	return out
}
