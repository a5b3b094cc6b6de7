package profile

import (
	"errors"
	"fmt"
)

// Kind classifies engine failures.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindProfileRead
	KindProfileOpen
	KindMalformedLine
	KindUnknownReference
	KindWrite
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindProfileRead:
		return "profile read"
	case KindProfileOpen:
		return "profile open"
	case KindMalformedLine:
		return "malformed line"
	case KindUnknownReference:
		return "unknown reference"
	case KindWrite:
		return "write"
	}
	return "unknown"
}

// Sentinels for errors.Is. Any *Error of the same kind matches.
var (
	ErrInvalidInput     = &Error{Kind: KindInvalidInput}
	ErrProfileRead      = &Error{Kind: KindProfileRead}
	ErrProfileOpen      = &Error{Kind: KindProfileOpen}
	ErrMalformedLine    = &Error{Kind: KindMalformedLine}
	ErrUnknownReference = &Error{Kind: KindUnknownReference}
	ErrWrite            = &Error{Kind: KindWrite}
)

// Error is a typed engine failure.
type Error struct {
	Kind   Kind
	Path   string // Profile path, when known
	Line   int    // 1-based profile line, 0 when not tied to a line
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Line > 0 {
		msg += fmt.Sprintf(":%d", e.Line)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
