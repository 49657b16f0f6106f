package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures so callers can branch with errors.Is.
type ErrorKind string

const (
	KindBackup        ErrorKind = "backup"
	KindNotFound      ErrorKind = "not found"
	KindPermission    ErrorKind = "permission denied"
	KindDependency    ErrorKind = "dependency"
	KindCommand       ErrorKind = "command"
	KindIO            ErrorKind = "io"
	KindParse         ErrorKind = "parse"
	KindSerialization ErrorKind = "serialization"
	KindConfig        ErrorKind = "config"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its kind.
var (
	ErrBackup        = &Error{Kind: KindBackup}
	ErrNotFound      = &Error{Kind: KindNotFound}
	ErrPermission    = &Error{Kind: KindPermission}
	ErrDependency    = &Error{Kind: KindDependency}
	ErrCommand       = &Error{Kind: KindCommand}
	ErrIO            = &Error{Kind: KindIO}
	ErrParse         = &Error{Kind: KindParse}
	ErrSerialization = &Error{Kind: KindSerialization}
	ErrConfig        = &Error{Kind: KindConfig}
)

type Error struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func NewError(kind ErrorKind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf builds an error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s error: %s", e.Kind, e.Op)
	default:
		return string(e.Kind) + " error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Op == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
