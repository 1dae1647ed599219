package errors

import (
	stderrors "errors"
)

// Kind classifies a command failure.
type Kind int

const (
	// KindPermission: the invoker lacks a required permission. No state changed.
	KindPermission Kind = iota + 1
	// KindValidation: a parameter was out of range or malformed. No state changed.
	KindValidation
	// KindExternal: a Discord or filesystem call failed.
	KindExternal
)

func (k Kind) String() string {
	switch k {
	case KindPermission:
		return "permission"
	case KindValidation:
		return "validation"
	case KindExternal:
		return "external"
	default:
		return "unknown"
	}
}

// CommandError carries the message shown to the invoker and, for external
// failures, the underlying cause for the logs.
type CommandError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *CommandError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *CommandError) Unwrap() error { return e.Cause }

func Permission(msg string) error {
	return &CommandError{Kind: KindPermission, Message: msg}
}

func Validation(msg string) error {
	return &CommandError{Kind: KindValidation, Message: msg}
}

func External(msg string, cause error) error {
	return &CommandError{Kind: KindExternal, Message: msg, Cause: cause}
}

// AsCommandError unwraps err into a CommandError if it holds one.
func AsCommandError(err error) (*CommandError, bool) {
	var ce *CommandError
	if stderrors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// KindOf returns the kind of err, or 0 when err is not a CommandError.
func KindOf(err error) Kind {
	if ce, ok := AsCommandError(err); ok {
		return ce.Kind
	}
	return 0
}
