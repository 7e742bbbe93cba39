package domain

import (
	"errors"
	"fmt"
)

// Error kinds shared by the engine, the repositories and the service. Callers
// match them with errors.Is.
var (
	// ErrRange reports an element code outside [0, order) or [0, n!).
	ErrRange = errors.New("code out of range")
	// ErrNotSupported reports an encoding or branch that is not implemented.
	ErrNotSupported = errors.New("not supported")
	// ErrInconsistentPresentation reports duplicate or missing relations found
	// while classifying a polycyclic presentation.
	ErrInconsistentPresentation = errors.New("inconsistent presentation")
	// ErrDataCorruption reports stored data that contradicts itself.
	ErrDataCorruption = errors.New("data corruption")
	// ErrNotFound reports a missing repository record.
	ErrNotFound = errors.New("not found")
	// ErrInvalidRecord reports a record that failed strict decoding or validation.
	ErrInvalidRecord = errors.New("invalid record")
)

// Error wraps one of the sentinel kinds with the failing operation and detail.
type Error struct {
	Kind error
	Op   string
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	out := e.Kind.Error()
	if e.Op != "" {
		out = e.Op + ": " + out
	}
	if e.Msg != "" {
		out += ": " + e.Msg
	}
	return out
}

func (e *Error) Unwrap() error { return e.Kind }

// Errorf builds an *Error of the given kind.
func Errorf(kind error, op, format string, args ...any) error {
	return &Error{Kind: kind, Op: op, Msg: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing record of the named entity.
func NotFound(entity EntityType, label string) error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf("%s %s", entity, label)}
}
