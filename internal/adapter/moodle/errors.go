package moodle

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrCredentialsRejected matches (via errors.Is) a token request that reached
// Moodle but returned no token.
var ErrCredentialsRejected = errors.New("moodle rejected the credentials")

// ErrResponseTooLarge is the cause of a transport CallError whose body
// exceeded the read limit.
var ErrResponseTooLarge = errors.New("moodle response too large")

// ErrorKind separates failures to talk to Moodle from errors Moodle reported.
type ErrorKind string

const (
	// KindTransport covers network errors, non-2xx responses and undecodable bodies.
	KindTransport ErrorKind = "transport"
	// KindApplication is a 2xx response whose JSON body encodes an error.
	KindApplication ErrorKind = "application"
)

// ErrorPayload is the error object Moodle embeds in response bodies.
type ErrorPayload struct {
	Exception string `json:"exception,omitempty"`
	ErrorCode string `json:"errorcode,omitempty"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
	DebugInfo string `json:"debuginfo,omitempty"`
}

func (p *ErrorPayload) isError() bool {
	return p.Exception != "" || p.ErrorCode != "" || p.Error != ""
}

func (p *ErrorPayload) summary() string {
	for _, s := range []string{p.Message, p.Error, p.ErrorCode, p.Exception} {
		if s != "" {
			return s
		}
	}
	return ""
}

// CallError is the failure side of every Moodle call.
type CallError struct {
	Function   string
	Kind       ErrorKind
	StatusCode int
	Message    string
	Payload    *ErrorPayload
	RawBody    []byte
	Err        error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("moodle %s (%s): %s", e.Function, e.Kind, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

func (e *CallError) Is(target error) bool {
	return target == ErrCredentialsRejected && e.Function == FunctionToken && e.Kind == KindApplication
}

// IsTransport reports whether Moodle could not be reached or answered with a non-2xx status.
func (e *CallError) IsTransport() bool {
	return e.Kind == KindTransport
}

// ContainsAny reports whether any field of the decoded error payload contains
// one of the markers. Matching is case-sensitive.
func (e *CallError) ContainsAny(markers []string) bool {
	if e.Payload == nil {
		return false
	}
	fields := []string{e.Payload.Message, e.Payload.Exception, e.Payload.ErrorCode, e.Payload.Error}
	for _, marker := range markers {
		for _, field := range fields {
			if marker != "" && strings.Contains(field, marker) {
				return true
			}
		}
	}
	return false
}

// Details is the sanitized view of the error that may be shown to API callers.
func (e *CallError) Details() map[string]interface{} {
	details := map[string]interface{}{
		"function": e.Function,
		"message":  e.Message,
	}
	if e.StatusCode != 0 {
		details["http_status"] = e.StatusCode
	}
	if e.Payload != nil {
		if e.Payload.Exception != "" {
			details["exception"] = e.Payload.Exception
		}
		if e.Payload.ErrorCode != "" {
			details["errorcode"] = e.Payload.ErrorCode
		}
	}
	return details
}

// AsCallError unwraps err into a *CallError.
func AsCallError(err error) (*CallError, bool) {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// decodeErrorPayload returns the embedded error object when body is a JSON
// object carrying one of Moodle's error fields.
func decodeErrorPayload(body []byte) (*ErrorPayload, bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var payload ErrorPayload
	if err := json.Unmarshal(trimmed, &payload); err != nil {
		return nil, false
	}
	if !payload.isError() {
		return nil, false
	}
	return &payload, true
}

func newApplicationError(function string, status int, payload *ErrorPayload, body []byte) *CallError {
	msg := payload.summary()
	if msg == "" {
		msg = "Unknown error from Moodle."
	}
	return &CallError{
		Function:   function,
		Kind:       KindApplication,
		StatusCode: status,
		Message:    msg,
		Payload:    payload,
		RawBody:    body,
	}
}

func newHTTPStatusError(function string, status int, body []byte) *CallError {
	ce := &CallError{
		Function:   function,
		Kind:       KindTransport,
		StatusCode: status,
		Message:    fmt.Sprintf("Moodle API HTTP error: status %d", status),
		RawBody:    body,
	}
	if payload, ok := decodeErrorPayload(body); ok {
		ce.Payload = payload
	}
	return ce
}

func newTransportError(function, message string, err error) *CallError {
	return &CallError{
		Function: function,
		Kind:     KindTransport,
		Message:  fmt.Sprintf("%s: %v", message, err),
		Err:      err,
	}
}
