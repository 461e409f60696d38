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

// Package messages defines the core's wire types: request queries and
// worker tasks (JSON text), and response bundles (MessagePack binary).
package messages

import (
	"encoding/json"

	"github.com/equinor/oneseismic-sub000/oserrors"
)

// Common carries the fields shared by every request message.
type Common struct {
	Pid             string `json:"pid"`
	Token           string `json:"token"`
	Guid            string `json:"guid"`
	StorageEndpoint string `json:"storage_endpoint"`
	Shape           [3]int `json:"shape"`
	Function        string `json:"function"`
}

// SliceQuery requests a single axis-aligned slice out of a cube.
type SliceQuery struct {
	Common
	Manifest json.RawMessage `json:"manifest"`
	Dim      int             `json:"dim"`
	Lineno   int             `json:"lineno"`
}

// EncodeJSON serializes the query to its text wire form.
func (q SliceQuery) EncodeJSON() ([]byte, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "encoding slice query")
	}
	return b, nil
}

// DecodeSliceQuery parses a slice query from its text wire form.
func DecodeSliceQuery(raw []byte) (SliceQuery, error) {
	var q SliceQuery
	if err := json.Unmarshal(raw, &q); err != nil {
		return SliceQuery{}, oserrors.Wrap(oserrors.KindBadMessage, err, "decoding slice query")
	}
	if q.Function == "" {
		q.Function = "slice"
	}
	return q, nil
}

// CurtainQuery requests a set of full-depth traces at the given (x,y)
// positions, paired up by index: trace i is at (dim0s[i], dim1s[i]).
type CurtainQuery struct {
	Common
	Manifest json.RawMessage `json:"manifest"`
	Dim0s    []int           `json:"dim0s"`
	Dim1s    []int           `json:"dim1s"`
}

// EncodeJSON serializes the query to its text wire form.
func (q CurtainQuery) EncodeJSON() ([]byte, error) {
	b, err := json.Marshal(q)
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "encoding curtain query")
	}
	return b, nil
}

// DecodeCurtainQuery parses a curtain query from its text wire form.
func DecodeCurtainQuery(raw []byte) (CurtainQuery, error) {
	var q CurtainQuery
	if err := json.Unmarshal(raw, &q); err != nil {
		return CurtainQuery{}, oserrors.Wrap(oserrors.KindBadMessage, err, "decoding curtain query")
	}
	if len(q.Dim0s) != len(q.Dim1s) {
		return CurtainQuery{}, oserrors.NewBadMessage(
			"curtain query has %d dim0s but %d dim1s", len(q.Dim0s), len(q.Dim1s),
		)
	}
	if q.Function == "" {
		q.Function = "curtain"
	}
	return q, nil
}
