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

// ProcessHeader describes the shape of a response body: how many bundles
// it carries, what the squeezed output shape is, and the per-axis line
// number index a caller needs to interpret it. It is also the last
// element the planner packs in a task set, where ntasks stands in for
// nbundles (see planner.Plan).
type ProcessHeader struct {
	Pid        string   `msgpack:"pid"`
	Function   string   `msgpack:"function"`
	Nbundles   int      `msgpack:"nbundles"`
	Ndims      int      `msgpack:"ndims"`
	Shape      []int    `msgpack:"shape"`
	Index      [][]int  `msgpack:"index"`
	Labels     []string `msgpack:"labels"`
	Attributes []string `msgpack:"attributes"`
}
