package transport

import (
	"errors"
	"fmt"
)

type Kind int

const (
	NetworkUnavailable Kind = iota + 1
	ServerRejected
	MalformedResponse
	LocalValidation
)

func (k Kind) String() string {
	switch k {
	case NetworkUnavailable:
		return "network unavailable"
	case ServerRejected:
		return "server rejected"
	case MalformedResponse:
		return "malformed response"
	case LocalValidation:
		return "invalid input"
	default:
		return "unknown"
	}
}

// Error is the only failure shape that crosses the transport boundary.
type Error struct {
	Op      string
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Op + ": " + e.Kind.String()
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of a transport error anywhere in err's chain, or 0.
func KindOf(err error) Kind {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind
	}
	return 0
}

func Validation(op, msg string) *Error {
	return &Error{Op: op, Kind: LocalValidation, Message: msg}
}
