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
	"encoding/binary"
	"math"

	"github.com/equinor/oneseismic-sub000/oserrors"
)

// floatsToBytes packs a []float32 into its little-endian byte
// representation, matching the on-disk fragment format.
func floatsToBytes(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(f))
	}
	return out
}

// bytesToFloats unpacks a little-endian float32 byte slice. It returns an
// error-free empty slice for an empty input, and requires len(b) be a
// multiple of 4.
func bytesToFloats(b []byte) ([]float32, error) {
	if len(b)%4 != 0 {
		return nil, errNotMultipleOf4(len(b))
	}
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return out, nil
}

func errNotMultipleOf4(n int) error {
	return oserrors.NewBadMessage("float32 payload length %d is not a multiple of 4", n)
}
