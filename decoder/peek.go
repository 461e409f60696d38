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
	"encoding/binary"

	"github.com/equinor/oneseismic-sub000/oserrors"
)

// errShort is a sentinel for "not enough bytes buffered yet"; it never
// escapes the decoder package as a caller-visible error - the decoder
// maps it to a Paused result.
var errShort = oserrors.NewLogicError("decoder: short buffer")

// peekArrayHeader reads just the array-header token at buf[0] - not its
// elements - and reports the declared element count plus how many bytes
// the token itself occupies. Used for the envelope and nbundles phases,
// which only need the count, not the array's contents.
func peekArrayHeader(buf []byte) (count, consumed int, err error) {
	if len(buf) == 0 {
		return 0, 0, errShort
	}
	code := buf[0]
	switch {
	case code >= 0x90 && code <= 0x9f:
		return int(code & 0x0f), 1, nil
	case code == 0xdc:
		if len(buf) < 3 {
			return 0, 0, errShort
		}
		return int(binary.BigEndian.Uint16(buf[1:3])), 3, nil
	case code == 0xdd:
		if len(buf) < 5 {
			return 0, 0, errShort
		}
		return int(binary.BigEndian.Uint32(buf[1:5])), 5, nil
	default:
		return 0, 0, oserrors.NewBadMessage("expected array header, got msgpack code 0x%02x", code)
	}
}

// valueLen returns the total number of bytes the next complete msgpack
// value occupies, recursing into arrays and maps. It returns errShort if
// buf does not yet contain the full value.
func valueLen(buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, errShort
	}
	code := buf[0]

	switch {
	case code <= 0x7f, code >= 0xe0: // positive/negative fixint
		return 1, nil
	case code >= 0x80 && code <= 0x8f: // fixmap
		return mapLen(buf, 1, int(code&0x0f))
	case code >= 0x90 && code <= 0x9f: // fixarray
		return arrayLen(buf, 1, int(code&0x0f))
	case code >= 0xa0 && code <= 0xbf: // fixstr
		n := int(code & 0x1f)
		return need(buf, 1+n)
	case code == 0xc0: // nil
		return 1, nil
	case code == 0xc2, code == 0xc3: // false/true
		return 1, nil
	case code == 0xc4: // bin8
		return binLen(buf, 1, 1)
	case code == 0xc5: // bin16
		return binLen(buf, 2, 2)
	case code == 0xc6: // bin32
		return binLen(buf, 4, 4)
	case code == 0xca: // float32
		return need(buf, 5)
	case code == 0xcb: // float64
		return need(buf, 9)
	case code == 0xcc: // uint8
		return need(buf, 2)
	case code == 0xcd: // uint16
		return need(buf, 3)
	case code == 0xce: // uint32
		return need(buf, 5)
	case code == 0xcf: // uint64
		return need(buf, 9)
	case code == 0xd0: // int8
		return need(buf, 2)
	case code == 0xd1: // int16
		return need(buf, 3)
	case code == 0xd2: // int32
		return need(buf, 5)
	case code == 0xd3: // int64
		return need(buf, 9)
	case code == 0xd9: // str8
		return binLen(buf, 1, 1)
	case code == 0xda: // str16
		return binLen(buf, 2, 2)
	case code == 0xdb: // str32
		return binLen(buf, 4, 4)
	case code == 0xdc: // array16
		if len(buf) < 3 {
			return 0, errShort
		}
		return arrayLen(buf, 3, int(binary.BigEndian.Uint16(buf[1:3])))
	case code == 0xdd: // array32
		if len(buf) < 5 {
			return 0, errShort
		}
		return arrayLen(buf, 5, int(binary.BigEndian.Uint32(buf[1:5])))
	case code == 0xde: // map16
		if len(buf) < 3 {
			return 0, errShort
		}
		return mapLen(buf, 3, int(binary.BigEndian.Uint16(buf[1:3])))
	case code == 0xdf: // map32
		if len(buf) < 5 {
			return 0, errShort
		}
		return mapLen(buf, 5, int(binary.BigEndian.Uint32(buf[1:5])))
	default:
		return 0, oserrors.NewBadMessage("unsupported msgpack code 0x%02x", code)
	}
}

func need(buf []byte, n int) (int, error) {
	if len(buf) < n {
		return 0, errShort
	}
	return n, nil
}

func binLen(buf []byte, lenBytes, headerLen int) (int, error) {
	if len(buf) < 1+lenBytes {
		return 0, errShort
	}
	var n int
	switch lenBytes {
	case 1:
		n = int(buf[1])
	case 2:
		n = int(binary.BigEndian.Uint16(buf[1:3]))
	case 4:
		n = int(binary.BigEndian.Uint32(buf[1:5]))
	}
	return need(buf, 1+lenBytes+n)
}

func arrayLen(buf []byte, offset, count int) (int, error) {
	total := offset
	for i := 0; i < count; i++ {
		if total > len(buf) {
			return 0, errShort
		}
		n, err := valueLen(buf[total:])
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

func mapLen(buf []byte, offset, pairs int) (int, error) {
	return arrayLen(buf, offset, pairs*2)
}
