package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEnvelope is wrapped when a frame is not a JSON object with a string verb.
	ErrInvalidEnvelope = errors.New("invalid envelope")
	// ErrMalformedPayload is matched by every *MalformedPayloadError.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrUnknownVerb is returned by DecodeCommand for verbs outside the command catalog.
	ErrUnknownVerb = errors.New("unknown verb")
	// ErrUnsupportedImageFormat is returned for image formats without a data URI prefix.
	ErrUnsupportedImageFormat = errors.New("unsupported image format")

	errMissingField = errors.New("required field missing")
	errNilCommand   = errors.New("nil command")
)

// MalformedPayloadError reports a frame with a known verb whose required fields are
// missing or have the wrong JSON type.
type MalformedPayloadError struct {
	Verb  string
	Field string
	Err   error
}

func (e *MalformedPayloadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s for %q: %v", ErrMalformedPayload, e.Verb, e.Err)
	}
	return fmt.Sprintf("%s for %q: field %q: %v", ErrMalformedPayload, e.Verb, e.Field, e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// Is matches ErrMalformedPayload.
func (e *MalformedPayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// DecodeError reports a frame that could not be read as an envelope at all.
type DecodeError struct {
	Verb string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Verb == "" {
		return fmt.Sprintf("decode frame: %v", e.Err)
	}
	return fmt.Sprintf("decode frame %q: %v", e.Verb, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// EncodeError reports a command that could not be serialized. It never involves the transport.
type EncodeError struct {
	Verb string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("encode %q: %v", e.Verb, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

type fieldError struct {
	field string
	err   error
}

func (e *fieldError) Error() string { return fmt.Sprintf("%s: %v", e.field, e.err) }

func (e *fieldError) Unwrap() error { return e.err }

func malformed(verb string, err error) error {
	var fe *fieldError
	if errors.As(err, &fe) {
		return &MalformedPayloadError{Verb: verb, Field: fe.field, Err: fe.err}
	}
	return &MalformedPayloadError{Verb: verb, Err: err}
}
