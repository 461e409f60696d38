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

// Package process implements the per-query Extractor: a stateful handle
// that turns a worker task plus fetched fragment bytes into a packed
// response bundle. A handle is not safe for concurrent use; callers
// needing parallel extraction use one handle per query.
package process

import "github.com/equinor/oneseismic-sub000/oserrors"

// Process is the per-query extractor handle. A caller drives it through
// init, fragments, a serial-by-convention but any-order-by-index run of
// add calls, then pack.
type Process interface {
	// Init unpacks a fetch-task and resets internal state, discarding any
	// tiles accumulated by a previous init/add/pack cycle.
	Init(taskRaw []byte) error

	// Fragments returns the ";"-delimited list of fragment resource
	// names, in the task's order.
	Fragments() (string, error)

	// Add interprets raw as a little-endian float32 fragment and extracts
	// the index-th fragment's contribution into a new tile.
	Add(index int, raw []byte) error

	// Pack serializes the accumulated tiles into a packed response
	// bundle, in the order Add was called.
	Pack() ([]byte, error)
}

// Make builds a Process handle for kind, which must be one of "slice" or
// "curtain". An unrecognized kind returns (nil, nil): the caller must
// check for a nil handle, matching the reference factory's
// null-handle-on-unknown-kind contract.
func Make(kind string) (Process, error) {
	switch kind {
	case "slice":
		return newSliceProcess(), nil
	case "curtain":
		return newCurtainProcess(), nil
	default:
		return nil, nil
	}
}

func errNotInitialized() error {
	return oserrors.NewLogicError("process: add/fragments/pack called before a successful init")
}
