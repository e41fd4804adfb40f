package api

import (
	"bytes"
	"encoding/json"
)

// Envelope is the part of a backend answer the client reads regardless of
// resource: the user-facing message and the error text.
type Envelope struct {
	Message string
	Error   string
}

// ParseEnvelope extracts message/error strings from a JSON object body.
// Anything that is not an object, or fields that are not strings, yield an
// empty Envelope.
func ParseEnvelope(body []byte) Envelope {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return Envelope{}
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Envelope{}
	}
	return Envelope{
		Message: stringField(fields, "message"),
		Error:   stringField(fields, "error"),
	}
}

// Text returns the backend-supplied text, message first.
func (e Envelope) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// StatusUpdate builds the registration status payload under the configured
// field name ("verified" on the current backend).
func StatusUpdate(field, value string) map[string]string {
	return map[string]string{field: value}
}
