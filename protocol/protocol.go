// Package protocol implements the JSON envelope codec spoken between a plugin and its host.
//
// Every frame is a JSON object carrying a verb in its "event" field:
//
//	{"event": "keyDown", "action": "...", "context": "...", "device": "...", "payload": {...}}
//
// Outgoing commands implement Command and are serialized with Encode. Incoming frames
// are parsed with Decode, which looks the verb up in a parser table and returns one of
// the Event variants. Frames with an unknown verb decode to Unrecognized without error.
package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MaxFrameSize is the largest frame Encode produces and Decode accepts.
const MaxFrameSize = 10 * 1024 * 1024 // 10MB max frame size

// Envelope keys.
const (
	FieldEvent      = "event"
	FieldContext    = "context"
	FieldAction     = "action"
	FieldDevice     = "device"
	FieldDeviceInfo = "deviceInfo"
	FieldPayload    = "payload"
	FieldUUID       = "uuid"
)

// Envelope is the wire form of every frame. Fields that do not apply to a verb are omitted.
type Envelope struct {
	Event      string          `json:"event"`
	Context    Context         `json:"context,omitempty"`
	Action     string          `json:"action,omitempty"`
	Device     string          `json:"device,omitempty"`
	DeviceInfo json.RawMessage `json:"deviceInfo,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	UUID       string          `json:"uuid,omitempty"`
}

// Encode serializes cmd into its envelope.
//
// Errors building the payload (for example an unreadable image file) are returned
// as *EncodeError naming the verb.
func Encode(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, &EncodeError{Err: errNilCommand}
	}

	env, err := cmd.envelope()
	if err != nil {
		return nil, &EncodeError{Verb: cmd.Verb(), Err: err}
	}

	out, err := json.Marshal(env)
	if err != nil {
		return nil, &EncodeError{Verb: cmd.Verb(), Err: err}
	}
	if len(out) > MaxFrameSize {
		return nil, &EncodeError{Verb: cmd.Verb(), Err: fmt.Errorf("frame size %d exceeds maximum %d bytes", len(out), MaxFrameSize)}
	}
	return out, nil
}

// Decode parses one frame received from the host.
//
// A frame that is not a JSON object returns a *DecodeError. A frame without a string
// "event" or with a verb missing from the table returns Unrecognized and a nil error. A known verb with a missing or mistyped required field
// returns a *MalformedPayloadError naming the verb and the field.
func Decode(data []byte) (Event, error) {
	verb, obj, err := splitFrame(data)
	if err != nil {
		return nil, err
	}

	parse, ok := eventParsers[verb]
	if !ok {
		return Unrecognized{Name: verb, Raw: data}, nil
	}

	ev, err := parse(obj)
	if err != nil {
		return nil, malformed(verb, err)
	}
	return ev, nil
}

// DecodeCommand parses a frame written by a plugin back into its Command.
//
// It is the counterpart of Encode and is what a host (or a test double of one) uses
// to read plugin traffic. A frame whose verb is not a known command but that carries
// a "uuid" is a registration and returns RegisterPlugin.
func DecodeCommand(data []byte) (Command, error) {
	verb, obj, err := splitFrame(data)
	if err != nil {
		return nil, err
	}

	parse, ok := commandParsers[verb]
	if !ok {
		if _, isRegistration := obj.fields[FieldUUID]; isRegistration && verb != "" {
			var uuid string
			if err := obj.require(FieldUUID, &uuid); err != nil {
				return nil, malformed(verb, err)
			}
			return RegisterPlugin{Event: verb, UUID: uuid}, nil
		}
		return nil, &DecodeError{Verb: verb, Err: ErrUnknownVerb}
	}

	cmd, err := parse(obj)
	if err != nil {
		return nil, malformed(verb, err)
	}
	return cmd, nil
}

// splitFrame parses data as a JSON object and extracts its verb.
func splitFrame(data []byte) (string, object, error) {
	if len(data) > MaxFrameSize {
		return "", object{}, &DecodeError{Err: fmt.Errorf("%w: frame size %d exceeds maximum %d bytes", ErrInvalidEnvelope, len(data), MaxFrameSize)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return "", object{}, &DecodeError{Err: fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)}
	}
	if fields == nil {
		return "", object{}, &DecodeError{Err: fmt.Errorf("%w: frame is null", ErrInvalidEnvelope)}
	}

	obj := object{fields: fields}
	raw, ok := fields[FieldEvent]
	if !ok || isNull(raw) {
		return "", obj, nil
	}

	// A verb that is not a string names no known event.
	var verb string
	if err := json.Unmarshal(raw, &verb); err != nil {
		return "", obj, nil
	}
	return verb, obj, nil
}

// object is a decoded JSON object with the dotted path it was found at.
type object struct {
	prefix string
	fields map[string]json.RawMessage
}

func (o object) path(key string) string {
	if o.prefix == "" {
		return key
	}
	return o.prefix + "." + key
}

// require decodes the field into dst and fails when it is absent or null.
func (o object) require(key string, dst any) error {
	raw, ok := o.fields[key]
	if !ok || isNull(raw) {
		return &fieldError{field: o.path(key), err: errMissingField}
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &fieldError{field: o.path(key), err: err}
	}
	return nil
}

// optional decodes the field into dst when it is present and not null.
func (o object) optional(key string, dst any) error {
	raw, ok := o.fields[key]
	if !ok || isNull(raw) {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &fieldError{field: o.path(key), err: err}
	}
	return nil
}

// object returns the required nested object stored under key.
func (o object) object(key string) (object, error) {
	var fields map[string]json.RawMessage
	if err := o.require(key, &fields); err != nil {
		return object{}, err
	}
	return object{prefix: o.path(key), fields: fields}, nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// marshalPayload encodes v for the envelope's payload or deviceInfo field.
func marshalPayload(v any) (json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(data), nil
}
