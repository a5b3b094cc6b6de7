package settings

import (
	"errors"
	"fmt"
)

// Kind classifies settings failures.
type Kind int

const (
	KindSettingsRead Kind = iota + 1
	KindSettingMissing
	KindEmptySettings
	KindMakeDir
	KindMakeFile
	KindProfileMissing
)

func (k Kind) String() string {
	switch k {
	case KindSettingsRead:
		return "settings read"
	case KindSettingMissing:
		return "setting missing"
	case KindEmptySettings:
		return "empty settings"
	case KindMakeDir:
		return "make directory"
	case KindMakeFile:
		return "make file"
	case KindProfileMissing:
		return "profile missing"
	}
	return "unknown"
}

// Error is a settings failure tied to a path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s %s", e.Kind, e.Path)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	var t *Error
	return errors.As(target, &t) && t.Kind == e.Kind
}

var (
	ErrSettingsRead   = &Error{Kind: KindSettingsRead}
	ErrSettingMissing = &Error{Kind: KindSettingMissing}
	ErrEmptySettings  = &Error{Kind: KindEmptySettings}
	ErrMakeDir        = &Error{Kind: KindMakeDir}
	ErrMakeFile       = &Error{Kind: KindMakeFile}
	ErrProfileMissing = &Error{Kind: KindProfileMissing}
)
