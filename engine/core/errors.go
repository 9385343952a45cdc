package core

import (
	"errors"
)

var (
	// ErrInvalidArgument reports a structurally impossible value supplied
	// at construction time, such as a negative count. Not retryable.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrPreconditionViolation reports an operation attempted on an
	// undefined geometry or an invalid binding. It is a programming error
	// in the caller, never a transient condition.
	ErrPreconditionViolation = errors.New("precondition violation")
)
