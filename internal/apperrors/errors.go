package apperrors

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindConfig    Kind = "config"
	KindTransport Kind = "transport"
	KindSchema    Kind = "schema"
	KindTimeout   Kind = "timeout"
	KindIO        Kind = "io"
	KindNotFound  Kind = "not_found"
)

// Error carries the failure kind so callers can branch with errors.Is against
// the sentinels below while the message keeps the full wrapped chain.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

var (
	ErrConfig    = &Error{Kind: KindConfig}
	ErrTransport = &Error{Kind: KindTransport}
	ErrSchema    = &Error{Kind: KindSchema}
	ErrTimeout   = &Error{Kind: KindTimeout}
	ErrIO        = &Error{Kind: KindIO}
	ErrNotFound  = &Error{Kind: KindNotFound}
)

func New(kind Kind, op string, err error) error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func Newf(kind Kind, op string, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	switch {
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Err != nil:
		return e.Err.Error()
	case e.Op != "":
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so a wrapped transport failure
// satisfies errors.Is(err, ErrTransport).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return "", false
}
