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
	"github.com/equinor/oneseismic-sub000/oserrors"
	"github.com/vmihailenco/msgpack/v5"
)

// Tile is a single fragment's contribution to a slice: the strided-copy
// recipe that places Values into the larger squeezed-cube output buffer,
// plus the payload itself.
type Tile struct {
	Iterations  int
	ChunkSize   int
	InitialSkip int
	Superstride int
	Substride   int
	Values      []float32
}

var _ msgpack.CustomEncoder = Tile{}
var _ msgpack.CustomDecoder = (*Tile)(nil)

// EncodeMsgpack writes a Tile as the 6-element array
// [iterations, chunk_size, initial_skip, superstride, substride, bin(v)].
func (t Tile) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(6); err != nil {
		return err
	}
	ints := []int{t.Iterations, t.ChunkSize, t.InitialSkip, t.Superstride, t.Substride}
	for _, v := range ints {
		if err := enc.EncodeInt(int64(v)); err != nil {
			return err
		}
	}
	return enc.EncodeBytes(floatsToBytes(t.Values))
}

// DecodeMsgpack reads a Tile back from its 6-element array form.
func (t *Tile) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding tile array header")
	}
	if n != 6 {
		return oserrors.NewBadMessage("tile array has %d elements, want 6", n)
	}

	ints := make([]int, 5)
	for i := range ints {
		v, err := dec.DecodeInt()
		if err != nil {
			return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding tile field %d", i)
		}
		ints[i] = v
	}
	t.Iterations, t.ChunkSize, t.InitialSkip, t.Superstride, t.Substride = ints[0], ints[1], ints[2], ints[3], ints[4]

	raw, err := dec.DecodeBytes()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding tile payload")
	}
	t.Values, err = bytesToFloats(raw)
	if err != nil {
		return err
	}
	return nil
}

// SliceTiles is one attribute's bundle in a slice response: every tile
// extracted from every fragment that contributes to the slice, in the
// order fragments were added to the Process.
type SliceTiles struct {
	Attr  string
	Tiles []Tile
}

var _ msgpack.CustomEncoder = SliceTiles{}
var _ msgpack.CustomDecoder = (*SliceTiles)(nil)

// EncodeMsgpack writes a slice bundle as [attr_name, [tile, tile, ...]].
func (s SliceTiles) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(2); err != nil {
		return err
	}
	if err := enc.EncodeString(s.Attr); err != nil {
		return err
	}
	if err := enc.EncodeArrayLen(len(s.Tiles)); err != nil {
		return err
	}
	for _, tile := range s.Tiles {
		if err := enc.Encode(tile); err != nil {
			return err
		}
	}
	return nil
}

// DecodeMsgpack reads a slice bundle back from its array form.
func (s *SliceTiles) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding slice bundle array header")
	}
	if n != 2 {
		return oserrors.NewBadMessage("slice bundle array has %d elements, want 2", n)
	}
	s.Attr, err = dec.DecodeString()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding slice bundle attribute name")
	}

	ntiles, err := dec.DecodeArrayLen()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding slice bundle tile count")
	}
	s.Tiles = make([]Tile, ntiles)
	for i := range s.Tiles {
		if err := dec.Decode(&s.Tiles[i]); err != nil {
			return err
		}
	}
	return nil
}

// CurtainTraces is one attribute's bundle in a curtain response. Major
// holds (ifst, ilst) pairs and Minor holds (zfst, zlst) pairs, one pair
// per chunk, concatenated; Values holds the corresponding depth samples
// concatenated in chunk order.
type CurtainTraces struct {
	Attr   string
	Size   int
	Major  []int
	Minor  []int
	Values []float32
}

var _ msgpack.CustomEncoder = CurtainTraces{}
var _ msgpack.CustomDecoder = (*CurtainTraces)(nil)

// EncodeMsgpack writes a curtain bundle as
// [attr_name, size, major[2n], minor[2n], bin(v)].
func (c CurtainTraces) EncodeMsgpack(enc *msgpack.Encoder) error {
	if err := enc.EncodeArrayLen(5); err != nil {
		return err
	}
	if err := enc.EncodeString(c.Attr); err != nil {
		return err
	}
	if err := enc.EncodeInt(int64(c.Size)); err != nil {
		return err
	}
	if err := encodeIntArray(enc, c.Major); err != nil {
		return err
	}
	if err := encodeIntArray(enc, c.Minor); err != nil {
		return err
	}
	return enc.EncodeBytes(floatsToBytes(c.Values))
}

// DecodeMsgpack reads a curtain bundle back from its array form.
func (c *CurtainTraces) DecodeMsgpack(dec *msgpack.Decoder) error {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding curtain bundle array header")
	}
	if n != 5 {
		return oserrors.NewBadMessage("curtain bundle array has %d elements, want 5", n)
	}

	c.Attr, err = dec.DecodeString()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding curtain bundle attribute name")
	}
	c.Size, err = dec.DecodeInt()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding curtain bundle size")
	}
	c.Major, err = decodeIntArray(dec)
	if err != nil {
		return err
	}
	c.Minor, err = decodeIntArray(dec)
	if err != nil {
		return err
	}

	raw, err := dec.DecodeBytes()
	if err != nil {
		return oserrors.Wrap(oserrors.KindBadMessage, err, "decoding curtain bundle payload")
	}
	c.Values, err = bytesToFloats(raw)
	if err != nil {
		return err
	}
	return nil
}

func encodeIntArray(enc *msgpack.Encoder, vals []int) error {
	if err := enc.EncodeArrayLen(len(vals)); err != nil {
		return err
	}
	for _, v := range vals {
		if err := enc.EncodeInt(int64(v)); err != nil {
			return err
		}
	}
	return nil
}

func decodeIntArray(dec *msgpack.Decoder) ([]int, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "decoding int array header")
	}
	out := make([]int, n)
	for i := range out {
		out[i], err = dec.DecodeInt()
		if err != nil {
			return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "decoding int array element %d", i)
		}
	}
	return out, nil
}
