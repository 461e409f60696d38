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

// Package decoder implements the client-side streaming parser: a
// pull-parser state machine that ingests a response stream (envelope,
// header, N bundles) from arbitrary-sized byte chunks and scatters
// decoded tiles into caller-registered output buffers.
package decoder

import (
	"github.com/equinor/oneseismic-sub000/messages"
	"github.com/equinor/oneseismic-sub000/oserrors"
)

// Phase identifies where in the envelope/header/nbundles/bundles/done
// state machine the decoder currently is. Phases advance monotonically;
// a buffered byte is consumed at most once.
type Phase int

const (
	PhaseEnvelope Phase = iota
	PhaseHeader
	PhaseNBundles
	PhaseBundles
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseEnvelope:
		return "envelope"
	case PhaseHeader:
		return "header"
	case PhaseNBundles:
		return "nbundles"
	case PhaseBundles:
		return "bundles"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Status is the result of a Process call.
type Status int

const (
	Paused Status = iota
	Done
)

// Decoder is the per-response streaming state machine. It is not safe
// for concurrent use; a single caller drives it exclusively through
// Buffer/Process/BufferAndProcess until Done, then may Reset it for
// reuse.
type Decoder struct {
	phase           Phase
	buf             []byte
	header          messages.ProcessHeader
	headerKnown     bool
	bundlesConsumed int
	writers         map[string][]float32
	err             error
}

// New constructs an empty Decoder, ready to receive bytes for a fresh
// response.
func New() *Decoder {
	return &Decoder{writers: make(map[string][]float32)}
}

// Buffer appends raw bytes to the decoder's internal buffer without
// processing them.
func (d *Decoder) Buffer(raw []byte) {
	d.buf = append(d.buf, raw...)
}

// RegisterWriter installs buf as the destination for attribute attr's
// decoded tiles. buf is owned by the caller and must outlive every
// subsequent call to Process/BufferAndProcess that might write into it.
func (d *Decoder) RegisterWriter(attr string, buf []float32) {
	d.writers[attr] = buf
}

// Header returns the parsed ProcessHeader and true once it is known,
// or the zero value and false before then.
func (d *Decoder) Header() (messages.ProcessHeader, bool) {
	return d.header, d.headerKnown
}

// Reset clears the buffer and state machine, but leaves registered
// writers in place (callers that want a clean writer set must call
// RegisterWriter again themselves, or build a fresh Decoder).
func (d *Decoder) Reset() {
	d.phase = PhaseEnvelope
	d.buf = nil
	d.header = messages.ProcessHeader{}
	d.headerKnown = false
	d.bundlesConsumed = 0
	d.err = nil
}

// BufferAndProcess is a convenience combining Buffer and Process.
func (d *Decoder) BufferAndProcess(raw []byte) (Status, error) {
	d.Buffer(raw)
	return d.Process()
}

// Process advances the state machine as far as the currently buffered
// bytes allow, returning Paused when more bytes are needed and Done once
// every bundle has been consumed. Once an error is returned the decoder
// is unusable until Reset.
func (d *Decoder) Process() (Status, error) {
	if d.err != nil {
		return Paused, d.err
	}

	for {
		switch d.phase {
		case PhaseEnvelope:
			count, consumed, err := peekArrayHeader(d.buf)
			if err == errShort {
				return Paused, nil
			}
			if err != nil {
				return d.fail(err)
			}
			if count != 2 {
				return d.fail(oserrors.NewBadMessage("envelope array has %d elements, want 2", count))
			}
			d.buf = d.buf[consumed:]
			d.phase = PhaseHeader

		case PhaseHeader:
			n, err := valueLen(d.buf)
			if err == errShort {
				return Paused, nil
			}
			if err != nil {
				return d.fail(err)
			}
			h, uerr := messages.UnpackHeader(d.buf[:n])
			if uerr != nil {
				return d.fail(uerr)
			}
			d.buf = d.buf[n:]
			d.header = h
			d.headerKnown = true
			d.phase = PhaseNBundles
			// Rule 2: always pause here so the caller can inspect the
			// header and register writers before bundles are scattered.
			return Paused, nil

		case PhaseNBundles:
			count, consumed, err := peekArrayHeader(d.buf)
			if err == errShort {
				return Paused, nil
			}
			if err != nil {
				return d.fail(err)
			}
			if count != d.header.Nbundles {
				return d.fail(oserrors.NewBadMessage(
					"nbundles array declares %d bundles, header says %d", count, d.header.Nbundles,
				))
			}
			d.buf = d.buf[consumed:]
			d.phase = PhaseBundles

		case PhaseBundles:
			if d.bundlesConsumed == d.header.Nbundles {
				d.phase = PhaseDone
				continue
			}
			n, err := valueLen(d.buf)
			if err == errShort {
				return Paused, nil
			}
			if err != nil {
				return d.fail(err)
			}
			if err := d.scatterBundle(d.buf[:n]); err != nil {
				return d.fail(err)
			}
			d.buf = d.buf[n:]
			d.bundlesConsumed++

		case PhaseDone:
			return Done, nil
		}
	}
}

func (d *Decoder) fail(err error) (Status, error) {
	d.err = err
	return Paused, err
}
