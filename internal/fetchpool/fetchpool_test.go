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

package fetchpool

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchAllPreservesOrder(t *testing.T) {
	p := New(4)
	defer p.Close()

	results, err := p.FetchAll(10, func(i int) ([]byte, error) {
		return []byte(fmt.Sprintf("frag-%d", i)), nil
	})
	require.NoError(t, err)

	for i, r := range results {
		require.Equal(t, fmt.Sprintf("frag-%d", i), string(r))
	}
}

func TestFetchAllSurfacesError(t *testing.T) {
	p := New(4)
	defer p.Close()

	boom := errors.New("boom")
	_, err := p.FetchAll(5, func(i int) ([]byte, error) {
		if i == 3 {
			return nil, boom
		}
		return []byte{byte(i)}, nil
	})
	require.ErrorIs(t, err, boom)
}

func TestFetchAllOnClosedPoolFallsBackSequential(t *testing.T) {
	p := New(2)
	p.Close()

	results, err := p.FetchAll(3, func(i int) ([]byte, error) {
		return []byte{byte(i)}, nil
	})
	require.NoError(t, err)
	require.Len(t, results, 3)
}
