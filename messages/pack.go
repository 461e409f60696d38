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
	"bytes"

	"github.com/equinor/oneseismic-sub000/oserrors"
	"github.com/vmihailenco/msgpack/v5"
)

// PackHeader packs a ProcessHeader to its msgpack map form. It is also
// used, undecoded by the worker, as the final element of a plan's task
// blob list (see planner.Plan), where readers treat packed[len-1] as the
// header.
func PackHeader(h ProcessHeader) ([]byte, error) {
	b, err := msgpack.Marshal(h)
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "packing process header")
	}
	return b, nil
}

// UnpackHeader unpacks a ProcessHeader from its msgpack map form.
func UnpackHeader(raw []byte) (ProcessHeader, error) {
	var h ProcessHeader
	if err := msgpack.Unmarshal(raw, &h); err != nil {
		return ProcessHeader{}, oserrors.Wrap(oserrors.KindBadMessage, err, "unpacking process header")
	}
	return h, nil
}

// PackSliceTiles packs a slice bundle to its msgpack array form.
func PackSliceTiles(s SliceTiles) ([]byte, error) {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "packing slice tiles")
	}
	return b, nil
}

// UnpackSliceTiles unpacks a slice bundle from its msgpack array form.
func UnpackSliceTiles(raw []byte) (SliceTiles, error) {
	var s SliceTiles
	if err := msgpack.Unmarshal(raw, &s); err != nil {
		return SliceTiles{}, err
	}
	return s, nil
}

// PackCurtainTraces packs a curtain bundle to its msgpack array form.
func PackCurtainTraces(c CurtainTraces) ([]byte, error) {
	b, err := msgpack.Marshal(c)
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "packing curtain traces")
	}
	return b, nil
}

// UnpackCurtainTraces unpacks a curtain bundle from its msgpack array form.
func UnpackCurtainTraces(raw []byte) (CurtainTraces, error) {
	var c CurtainTraces
	if err := msgpack.Unmarshal(raw, &c); err != nil {
		return CurtainTraces{}, err
	}
	return c, nil
}

// PackEnvelope packs the top-level response envelope [header, body],
// where body is the list of already-encoded bundles (each produced by
// PackSliceTiles or PackCurtainTraces), preserving their relative order.
func PackEnvelope(h ProcessHeader, bundles [][]byte) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(2); err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "encoding envelope header")
	}
	if err := enc.Encode(h); err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "encoding process header")
	}
	if err := enc.EncodeArrayLen(len(bundles)); err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "encoding bundle count")
	}
	for _, b := range bundles {
		if _, err := buf.Write(b); err != nil {
			return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "writing bundle")
		}
	}
	return buf.Bytes(), nil
}
