package wmconf

import (
	"errors"
	"fmt"
)

// Code identifies a class of configuration defect.
type Code string

const (
	ErrColorInvalid    Code = "COLOR_INVALID"
	ErrColorIndex      Code = "COLOR_INDEX"
	ErrKeyUnknown      Code = "KEY_UNKNOWN"
	ErrModifierUnknown Code = "MODIFIER_UNKNOWN"
	ErrButtonUnknown   Code = "BUTTON_UNKNOWN"
	ErrChordDuplicate  Code = "CHORD_DUPLICATE"
	ErrGroupInvalid    Code = "GROUP_INVALID"
	ErrLayoutInvalid   Code = "LAYOUT_INVALID"
	ErrScreenInvalid   Code = "SCREEN_INVALID"
	ErrCommandInvalid  Code = "COMMAND_INVALID"
)

// Error is one defect found by Validate. Field is a path such as
// "screens[0].top.widgets[3].background".
type Error struct {
	Code    Code
	Field   string
	Message string
	Wrapped error
}

func newError(code Code, field, format string, args ...any) *Error {
	return &Error{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c})
// finds any defect of class c.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

// HasCode reports whether err contains a defect with the given code.
func HasCode(err error, code Code) bool {
	return errors.Is(err, &Error{Code: code})
}

// Defects flattens the result of Validate.
func Defects(err error) []*Error {
	var out []*Error
	var walk func(error)
	walk = func(err error) {
		if err == nil {
			return
		}
		if e, ok := err.(*Error); ok {
			out = append(out, e)
			return
		}
		if j, ok := err.(interface{ Unwrap() []error }); ok {
			for _, e := range j.Unwrap() {
				walk(e)
			}
		}
	}
	walk(err)
	return out
}
