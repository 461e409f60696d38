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
	"encoding/json"

	"github.com/equinor/oneseismic-sub000/oserrors"
)

// SliceTask is the per-worker unit the planner derives from a SliceQuery:
// enough information for a Process to fetch its fragments and extract a
// slice, without needing the original query or manifest again.
//
// LocalIdx is serialized under the wire name "lineno" for compatibility
// with the reference implementation, which conflates the line number with
// the fragment-local index derived from it; the Go field name keeps the
// two concepts distinct (see geometry's GVT.Slice and the planner).
type SliceTask struct {
	Common
	CubeShape [3]int   `json:"cube_shape"`
	Dim       int      `json:"dim"`
	LocalIdx  int      `json:"lineno"`
	Ids       [][3]int `json:"ids"`
	Prefix    string   `json:"prefix"`
	Ext       string   `json:"ext"`
}

// EncodeJSON serializes the task to its text wire form.
func (t SliceTask) EncodeJSON() ([]byte, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "encoding slice task")
	}
	return b, nil
}

// DecodeSliceTask parses a slice task from its text wire form.
func DecodeSliceTask(raw []byte) (SliceTask, error) {
	var t SliceTask
	if err := json.Unmarshal(raw, &t); err != nil {
		return SliceTask{}, oserrors.Wrap(oserrors.KindBadMessage, err, "decoding slice task")
	}
	return t, nil
}

// Single is one fragment's worth of curtain work: its ID, and the
// fragment-local (x,y) coordinates of every requested trace that falls
// inside it.
type Single struct {
	Id          [3]int   `json:"id"`
	Coordinates [][2]int `json:"coordinates"`
}

// CurtainTask is the per-worker unit the planner derives from a
// CurtainQuery, grouping requested trace coordinates by the fragment that
// contains them.
type CurtainTask struct {
	Common
	CubeShape [3]int   `json:"cube_shape"`
	Singles   []Single `json:"singles"`
	Prefix    string   `json:"prefix"`
	Ext       string   `json:"ext"`
}

// EncodeJSON serializes the task to its text wire form.
func (t CurtainTask) EncodeJSON() ([]byte, error) {
	b, err := json.Marshal(t)
	if err != nil {
		return nil, oserrors.Wrap(oserrors.KindBadMessage, err, "encoding curtain task")
	}
	return b, nil
}

// DecodeCurtainTask parses a curtain task from its text wire form.
func DecodeCurtainTask(raw []byte) (CurtainTask, error) {
	var t CurtainTask
	if err := json.Unmarshal(raw, &t); err != nil {
		return CurtainTask{}, oserrors.Wrap(oserrors.KindBadMessage, err, "decoding curtain task")
	}
	return t, nil
}
