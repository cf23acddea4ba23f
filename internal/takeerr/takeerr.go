// Package takeerr defines the user-facing error type returned by the runner,
// the target builder and the configuration loaders.
//
// An *Error carries a Kind, a human readable message and an optional internal
// cause. The CLI prints the message and, when tracing is enabled, the cause.
// Anything that is not an *Error is an unexpected internal fault.
package takeerr

import (
	"errors"
	"fmt"
)

// Kind classifies a user-facing error.
type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidTargetName
	KindInvalidTargetDefinition
	KindTargetNotFound
	KindMissingDefaultTarget
	KindCyclicDependency
	KindProcessExit
	KindInvalidConfig
)

var kindNames = map[Kind]string{
	KindUnknown:                 "unknown",
	KindInvalidTargetName:       "invalid target name",
	KindInvalidTargetDefinition: "invalid target definition",
	KindTargetNotFound:          "target not found",
	KindMissingDefaultTarget:    "missing default target",
	KindCyclicDependency:        "cyclic dependency",
	KindProcessExit:             "process exit",
	KindInvalidConfig:           "invalid configuration",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is the dedicated user-facing error.
type Error struct {
	Kind     Kind
	Message  string
	Internal error
	// ExitCode is set for KindProcessExit.
	ExitCode int
}

// Sentinels for use with errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidTargetName       = &Error{Kind: KindInvalidTargetName}
	ErrInvalidTargetDefinition = &Error{Kind: KindInvalidTargetDefinition}
	ErrTargetNotFound          = &Error{Kind: KindTargetNotFound}
	ErrMissingDefaultTarget    = &Error{Kind: KindMissingDefaultTarget}
	ErrCyclicDependency        = &Error{Kind: KindCyclicDependency}
	ErrProcessExit             = &Error{Kind: KindProcessExit}
	ErrInvalidConfig           = &Error{Kind: KindInvalidConfig}
)

// New creates an error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error of the given kind that keeps internal as its cause.
func Wrap(kind Kind, internal error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Internal: internal}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

// Unwrap exposes the internal cause.
func (e *Error) Unwrap() error {
	return e.Internal
}

// Is reports whether target is an *Error of the same kind. Sentinels carry no
// message, so a sentinel target matches on kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Message == "" {
		return t.Kind == e.Kind
	}
	return t == e
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

// IsUserError reports whether err is, or wraps, a user-facing error.
func IsUserError(err error) bool {
	_, ok := As(err)
	return ok
}
