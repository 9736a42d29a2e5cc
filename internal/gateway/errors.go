package gateway

import (
	"errors"
	"fmt"
)

// Kind classifies gateway failures
type Kind int

const (
	// NetworkFailure means the backend could not be reached
	NetworkFailure Kind = iota + 1
	// ServerRejection means the backend answered but refused the call:
	// a non-2xx status or an envelope with success=false or an error set
	ServerRejection
	// ValidationFailure means the call was not attempted because the input
	// was incomplete (e.g. an update without an id)
	ValidationFailure
)

func (k Kind) String() string {
	switch k {
	case NetworkFailure:
		return "network failure"
	case ServerRejection:
		return "server rejection"
	case ValidationFailure:
		return "validation failure"
	default:
		return "unknown"
	}
}

// Error is returned by every gateway operation that fails
type Error struct {
	Kind    Kind
	Op      string // e.g. "fetch experience"
	Status  int    // HTTP status, 0 when no response was received
	Message string // server-supplied or default message, safe to display
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Op, msg, e.Status)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is a gateway error of the given kind
func IsKind(err error, kind Kind) bool {
	var gwErr *Error
	return errors.As(err, &gwErr) && gwErr.Kind == kind
}

// Message extracts the user-facing message from err
func Message(err error) string {
	if err == nil {
		return ""
	}
	var gwErr *Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return err.Error()
}

func validationError(op, message string) *Error {
	return &Error{Kind: ValidationFailure, Op: op, Message: message}
}
