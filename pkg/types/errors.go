package types

import (
	"errors"
	"fmt"
)

// ErrorKind classifies tool failures into a closed set understood by callers.
type ErrorKind string

const (
	// KindValidation covers bad or missing tool parameters. A validation
	// failure never reaches the network.
	KindValidation ErrorKind = "VALIDATION_ERROR"
	// KindNotConnected means a tool needed a live cluster connection that
	// was never established or whose last probe failed.
	KindNotConnected ErrorKind = "NOT_CONNECTED"
	// KindUnreachable covers connect and timeout failures against the
	// cluster REST endpoint.
	KindUnreachable ErrorKind = "UNREACHABLE"
	// KindUpstream means the cluster answered with a non-success status.
	KindUpstream ErrorKind = "UPSTREAM_ERROR"
	// KindDecode means the upstream body was not the JSON we expected.
	KindDecode ErrorKind = "DECODE_ERROR"
	// KindDelivery means the notification transport failed to hand off
	// the message.
	KindDelivery ErrorKind = "DELIVERY_ERROR"
)

// Error is the structured error returned by every failed tool invocation.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Status  int       `json:"status,omitempty"`
	Body    string    `json:"body,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validationf creates a VALIDATION_ERROR.
func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotConnectedf creates a NOT_CONNECTED error.
func NotConnectedf(format string, args ...any) *Error {
	return &Error{Kind: KindNotConnected, Message: fmt.Sprintf(format, args...)}
}

// Unreachablef creates an UNREACHABLE error.
func Unreachablef(format string, args ...any) *Error {
	return &Error{Kind: KindUnreachable, Message: fmt.Sprintf(format, args...)}
}

// Upstream creates an UPSTREAM_ERROR carrying the remote status and body
// for diagnostics.
func Upstream(status int, body, message string) *Error {
	return &Error{Kind: KindUpstream, Message: message, Status: status, Body: body}
}

// Decodef creates a DECODE_ERROR.
func Decodef(format string, args ...any) *Error {
	return &Error{Kind: KindDecode, Message: fmt.Sprintf(format, args...)}
}

// Deliveryf creates a DELIVERY_ERROR.
func Deliveryf(format string, args ...any) *Error {
	return &Error{Kind: KindDelivery, Message: fmt.Sprintf(format, args...)}
}

// Classify extracts the structured error from err. Errors produced outside
// the taxonomy are reported as UNREACHABLE so callers always see a kind.
func Classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{Kind: KindUnreachable, Message: err.Error()}
}
