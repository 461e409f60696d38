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

// Package oserrors defines the core's failure taxonomy: a small, closed set
// of error kinds that geometry, messages, planner, process and decoder use
// to report why an operation failed, without leaking format-specific detail
// (msgpack vs JSON vs HTTP) into the core.
package oserrors

import (
	"errors"
	"fmt"
)

// Kind identifies which failure taxonomy bucket an error belongs to.
type Kind int

const (
	// KindUnknown is never produced by this package; it is the zero value.
	KindUnknown Kind = iota

	// KindBadMessage means a wire-format message (text or msgpack) was
	// structurally malformed.
	KindBadMessage

	// KindBadDocument means a manifest (JSON) failed to parse or was
	// missing required structure.
	KindBadDocument

	// KindBadValue means a field held a value outside its legal domain,
	// such as an unrecognized enum.
	KindBadValue

	// KindNotFound means a requested lineno does not appear in the
	// manifest's index for the given dimension.
	KindNotFound

	// KindOutOfRange means a coordinate or axis index exceeded its shape.
	KindOutOfRange

	// KindInvalidArgument means a caller-supplied parameter (e.g. task
	// size) is nonsensical independent of any wire message.
	KindInvalidArgument

	// KindLogicError means an internal invariant was broken; this
	// indicates a bug in the core, not bad input.
	KindLogicError
)

func (k Kind) String() string {
	switch k {
	case KindBadMessage:
		return "BadMessage"
	case KindBadDocument:
		return "BadDocument"
	case KindBadValue:
		return "BadValue"
	case KindNotFound:
		return "NotFound"
	case KindOutOfRange:
		return "OutOfRange"
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindLogicError:
		return "LogicError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type carried through the core. Callers that
// need to branch on kind should use errors.As and inspect Kind, or one of
// the IsXxx helpers below.
type Error struct {
	Kind Kind
	Msg  string
	err  error // optional wrapped cause
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.err }

func newf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// NewBadMessage reports a malformed wire message.
func NewBadMessage(format string, args ...any) error { return newf(KindBadMessage, format, args...) }

// NewBadDocument reports a malformed manifest document.
func NewBadDocument(format string, args ...any) error {
	return newf(KindBadDocument, format, args...)
}

// NewBadValue reports a value outside its legal domain.
func NewBadValue(format string, args ...any) error { return newf(KindBadValue, format, args...) }

// NewNotFound reports a lineno absent from the manifest index.
func NewNotFound(format string, args ...any) error { return newf(KindNotFound, format, args...) }

// NewOutOfRange reports a coordinate or axis index beyond its shape.
func NewOutOfRange(format string, args ...any) error {
	return newf(KindOutOfRange, format, args...)
}

// NewInvalidArgument reports a nonsensical caller-supplied parameter.
func NewInvalidArgument(format string, args ...any) error {
	return newf(KindInvalidArgument, format, args...)
}

// NewLogicError reports a broken internal invariant. Seeing this means
// there is a bug in the core itself.
func NewLogicError(format string, args ...any) error {
	return newf(KindLogicError, format, args...)
}

// Wrap attaches a cause to an existing core error, preserving its Kind.
func Wrap(k Kind, cause error, format string, args ...any) error {
	e := newf(k, format, args...)
	e.err = cause
	return e
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

func IsBadMessage(err error) bool      { return Is(err, KindBadMessage) }
func IsBadDocument(err error) bool     { return Is(err, KindBadDocument) }
func IsBadValue(err error) bool        { return Is(err, KindBadValue) }
func IsNotFound(err error) bool        { return Is(err, KindNotFound) }
func IsOutOfRange(err error) bool      { return Is(err, KindOutOfRange) }
func IsInvalidArgument(err error) bool { return Is(err, KindInvalidArgument) }
func IsLogicError(err error) bool      { return Is(err, KindLogicError) }
