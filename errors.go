package deckconn

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameters is wrapped by every launch parameter validation error.
	ErrInvalidParameters = errors.New(ErrMsgInvalidParameters)
	// ErrInvalidInfo is returned when the info parameter is not a JSON object.
	ErrInvalidInfo = errors.New(ErrMsgInvalidInfo)
	// ErrNotConnected is returned by Send before Start completed.
	ErrNotConnected = errors.New(ErrMsgNotConnected)
	// ErrAlreadyStarted is returned by a second call to Start.
	ErrAlreadyStarted = errors.New(ErrMsgAlreadyStarted)
	// ErrConnectionClosed is returned by Send once the connection closed.
	ErrConnectionClosed = errors.New(ErrMsgConnectionClosed)
)

// DisconnectError reports a closure with any code other than normal closure.
type DisconnectError struct {
	Code   int
	Reason string
}

func (e *DisconnectError) Error() string {
	return fmt.Sprintf("%s (code %d, reason: %q)", ErrMsgUnexpectedClosure, e.Code, e.Reason)
}

// Is reports ErrConnectionClosed as a match so callers can test for closure uniformly.
func (e *DisconnectError) Is(target error) bool {
	return target == ErrConnectionClosed
}
