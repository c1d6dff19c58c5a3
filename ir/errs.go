package ir

import (
	"errors"
	"fmt"

	"github.com/daxa-format/go-daxa/token"
)

// Error classes for the whole module. Callers match with errors.Is.
var (
	ErrParse      = errors.New("parse error")
	ErrSchema     = errors.New("schema error")
	ErrName       = errors.New("name error")
	ErrType       = errors.New("type error")
	ErrValidation = errors.New("validation error")
	ErrInternal   = errors.New("internal error")
)

// Error carries an error class plus the optional source position and
// value path where it occurred. Unwrap exposes the class sentinel.
type Error struct {
	Class error
	Msg   string
	Path  string
	Pos   *token.Pos
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%v: %s", e.Class, e.Msg)
	if e.Path != "" {
		msg += fmt.Sprintf(" at %s", e.Path)
	}
	if e.Pos != nil {
		msg += " " + e.Pos.String()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Class }

// Errf builds an *Error with a position but no path.
func Errf(class error, pos *token.Pos, format string, args ...any) error {
	return &Error{Class: class, Msg: fmt.Sprintf(format, args...), Pos: pos}
}

// PathErrf builds an *Error with both a path and a position.
func PathErrf(class error, path string, pos *token.Pos, format string, args ...any) error {
	return &Error{Class: class, Msg: fmt.Sprintf(format, args...), Path: path, Pos: pos}
}
