package oserrors

import (
	"errors"
	"testing"
)

func TestKindRoundTrip(t *testing.T) {
	cases := []struct {
		make func() error
		is   func(error) bool
		want Kind
	}{
		{func() error { return NewBadMessage("bad array header") }, IsBadMessage, KindBadMessage},
		{func() error { return NewBadDocument("missing dimensions") }, IsBadDocument, KindBadDocument},
		{func() error { return NewBadValue("unknown kind %q", "curtains") }, IsBadValue, KindBadValue},
		{func() error { return NewNotFound("lineno %d", 99) }, IsNotFound, KindNotFound},
		{func() error { return NewOutOfRange("axis %d", 3) }, IsOutOfRange, KindOutOfRange},
		{func() error { return NewInvalidArgument("task_size must be >= 1") }, IsInvalidArgument, KindInvalidArgument},
		{func() error { return NewLogicError("unreachable") }, IsLogicError, KindLogicError},
	}

	for _, c := range cases {
		err := c.make()
		if !c.is(err) {
			t.Errorf("%v: expected kind check to match", err)
		}
		var e *Error
		if !errors.As(err, &e) {
			t.Fatalf("%v: expected errors.As to succeed", err)
		}
		if e.Kind != c.want {
			t.Errorf("got kind %v, want %v", e.Kind, c.want)
		}
	}
}

func TestWrapPreservesKind(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(KindBadMessage, cause, "decoding envelope")
	if !IsBadMessage(err) {
		t.Fatalf("wrapped error lost its kind: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("wrapped error does not unwrap to cause")
	}
}

func TestDistinctKindsDoNotAlias(t *testing.T) {
	a := NewNotFound("lineno 3")
	if IsBadMessage(a) || IsOutOfRange(a) || IsInvalidArgument(a) {
		t.Fatalf("NotFound error matched an unrelated kind check")
	}
}
