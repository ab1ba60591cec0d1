package common

import (
	"errors"
	"fmt"
)

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

// RetCode classifies a client failure. Application-level "not found" outcomes
// are never errors, they are reported through the regular result values.
type RetCode uint8

const (
	// RetCValidation means a required field was missing or malformed.
	// Raised before any network I/O, never retried.
	RetCValidation RetCode = iota + 1
	// RetCConnectivity means the server could not be reached at all.
	RetCConnectivity
	// RetCTransport means the server was reached but the exchange failed
	// (unexpected status, malformed response, protocol error).
	RetCTransport
	// RetCUnsupported means the operation has no equivalent on the
	// selected transport.
	RetCUnsupported
	// RetCAuth means the server rejected or cannot serve the credential
	// operation (e.g. api key auth is not enabled for the database).
	RetCAuth
)

// String returns the name of the return code.
func (c RetCode) String() string {
	switch c {
	case RetCValidation:
		return "validation"
	case RetCConnectivity:
		return "connectivity"
	case RetCTransport:
		return "transport"
	case RetCUnsupported:
		return "unsupported"
	case RetCAuth:
		return "auth"
	default:
		return "unknown"
	}
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is the normalized failure type surfaced to callers. It always carries
// the logical operation and, for I/O failures, the transport that was in use,
// so failures can be diagnosed when running against either transport.
type Error struct {
	Code      RetCode
	Op        Operation
	Transport string // "http", "grpc" or empty for pre-I/O failures
	Msg       string
	Cause     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb []byte
	sb = fmt.Appendf(sb, "hydrakv: %s failed", e.Op)
	if e.Transport != "" {
		sb = fmt.Appendf(sb, " (%s)", e.Transport)
	}
	sb = fmt.Appendf(sb, ": %s: %s", e.Code, e.Msg)
	if e.Cause != nil {
		sb = fmt.Appendf(sb, ": %v", e.Cause)
	}
	return string(sb)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// --------------------------------------------------------------------------
// Constructors
// --------------------------------------------------------------------------

// NewValidationError reports a missing or malformed request field.
func NewValidationError(op Operation, msg string) *Error {
	return &Error{Code: RetCValidation, Op: op, Msg: msg}
}

// NewConnectivityError reports an unreachable server.
func NewConnectivityError(op Operation, transport string, cause error) *Error {
	return &Error{Code: RetCConnectivity, Op: op, Transport: transport, Msg: "server not reachable", Cause: cause}
}

// NewTransportError reports a failed exchange with a reachable server.
func NewTransportError(op Operation, transport, msg string, cause error) *Error {
	return &Error{Code: RetCTransport, Op: op, Transport: transport, Msg: msg, Cause: cause}
}

// NewUnsupportedError reports an operation the selected transport cannot carry.
func NewUnsupportedError(op Operation, transport string) *Error {
	return &Error{Code: RetCUnsupported, Op: op, Transport: transport, Msg: "operation not supported by this transport"}
}

// NewAuthError reports a server-side credential/configuration mismatch.
func NewAuthError(op Operation, transport, msg string) *Error {
	return &Error{Code: RetCAuth, Op: op, Transport: transport, Msg: msg}
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

// codeOf extracts the return code of a client error, 0 for foreign errors.
func codeOf(err error) RetCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}

// IsValidation reports whether err is a validation failure.
func IsValidation(err error) bool { return codeOf(err) == RetCValidation }

// IsConnectivity reports whether err is a connectivity failure.
func IsConnectivity(err error) bool { return codeOf(err) == RetCConnectivity }

// IsTransport reports whether err is a transport-level failure.
func IsTransport(err error) bool { return codeOf(err) == RetCTransport }

// IsUnsupported reports whether err marks an operation without an equivalent
// on the selected transport.
func IsUnsupported(err error) bool { return codeOf(err) == RetCUnsupported }

// IsAuth reports whether err is a server-reported auth/configuration mismatch.
func IsAuth(err error) bool { return codeOf(err) == RetCAuth }
