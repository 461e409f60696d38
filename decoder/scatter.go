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
	"github.com/equinor/oneseismic-sub000/messages"
	"github.com/equinor/oneseismic-sub000/oserrors"
	"github.com/vmihailenco/msgpack/v5"
)

// scatterBundle decodes one complete bundle value (a slice bundle or a
// curtain bundle, distinguished by its array length) and writes it into
// the registered writer for its attribute. A bundle whose attribute has
// no registered writer is consumed and discarded silently, per §4.5
// rule 4.
func (d *Decoder) scatterBundle(raw []byte) error {
	count, _, err := peekArrayHeader(raw)
	if err != nil {
		return err
	}

	switch count {
	case 2:
		return d.scatterSlice(raw)
	case 5:
		return d.scatterCurtain(raw)
	default:
		return oserrors.NewBadMessage("bundle array has %d elements, want 2 (slice) or 5 (curtain)", count)
	}
}

func (d *Decoder) scatterSlice(raw []byte) error {
	var bundle messages.SliceTiles
	if err := msgpack.Unmarshal(raw, &bundle); err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding slice bundle")
	}

	dst, ok := d.writers[bundle.Attr]
	if !ok {
		return nil
	}

	for _, tile := range bundle.Tiles {
		for i := 0; i < tile.Iterations; i++ {
			dstStart := tile.InitialSkip + i*tile.Superstride
			srcStart := i * tile.Substride
			if err := scatterChunk(dst, dstStart, tile.Values, srcStart, tile.ChunkSize); err != nil {
				return err
			}
		}
	}
	return nil
}

func (d *Decoder) scatterCurtain(raw []byte) error {
	var bundle messages.CurtainTraces
	if err := msgpack.Unmarshal(raw, &bundle); err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding curtain bundle")
	}

	dst, ok := d.writers[bundle.Attr]
	if !ok {
		return nil
	}

	zlen := 0
	if len(d.header.Shape) >= 3 {
		zlen = d.header.Shape[2]
	}

	cursor := 0
	nchunks := len(bundle.Major) / 2
	for c := 0; c < nchunks; c++ {
		ifst, ilst := bundle.Major[c*2], bundle.Major[c*2+1]
		zfst, zlst := bundle.Minor[c*2], bundle.Minor[c*2+1]
		runLen := zlst - zfst + 1
		if runLen < 0 {
			return oserrors.NewBadMessage("curtain chunk %d has negative depth range", c)
		}
		for trace := ifst; trace < ilst; trace++ {
			dstStart := trace*zlen + zfst
			if err := scatterChunk(dst, dstStart, bundle.Values, cursor, runLen); err != nil {
				return err
			}
			cursor += runLen
		}
	}
	return nil
}

// scatterChunk copies n floats from src[srcStart:] into dst[dstStart:],
// bounds-checking both sides - a malformed or stale registered writer
// must not corrupt memory outside the buffer the caller handed us.
func scatterChunk(dst []float32, dstStart int, src []float32, srcStart, n int) error {
	if dstStart < 0 || dstStart+n > len(dst) {
		return oserrors.NewOutOfRange("scatter destination [%d:%d] exceeds writer buffer of length %d", dstStart, dstStart+n, len(dst))
	}
	if srcStart < 0 || srcStart+n > len(src) {
		return oserrors.NewBadMessage("scatter source [%d:%d] exceeds tile payload of length %d", srcStart, srcStart+n, len(src))
	}
	copy(dst[dstStart:dstStart+n], src[srcStart:srcStart+n])
	return nil
}
