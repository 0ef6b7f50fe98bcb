// Package errdefs defines the error kinds surfaced by rdiff.
//
// Every kind is a concrete type so callers can discriminate with errors.As.
// Kinds that wrap a cause implement Unwrap.
package errdefs

import (
	"fmt"
	"strings"
)

// InvalidOverrideError is returned when an override token cannot be parsed.
type InvalidOverrideError struct {
	Token  string
	Reason string
}

// NewInvalidOverrideError returns an error for a malformed override token.
func NewInvalidOverrideError(token, reason string) *InvalidOverrideError {
	return &InvalidOverrideError{Token: token, Reason: reason}
}

// Error implements the error interface.
func (e *InvalidOverrideError) Error() string {
	return fmt.Sprintf("invalid override %q: %s", e.Token, e.Reason)
}

// URLParseError is returned when a profile URL is malformed or not absolute.
type URLParseError struct {
	URL string
	Err error
}

// NewURLParseError returns an error for an unparsable URL.
func NewURLParseError(rawURL string, err error) *URLParseError {
	return &URLParseError{URL: rawURL, Err: err}
}

// Error implements the error interface.
func (e *URLParseError) Error() string {
	return fmt.Sprintf("invalid url %q: %v", e.URL, e.Err)
}

func (e *URLParseError) Unwrap() error { return e.Err }

// InvalidShapeError is returned when a profile field has the wrong structure,
// e.g. params or body that are not objects.
type InvalidShapeError struct {
	Field  string
	Reason string
}

// NewInvalidShapeError returns an error for a field with an unexpected shape.
func NewInvalidShapeError(field, reason string) *InvalidShapeError {
	return &InvalidShapeError{Field: field, Reason: reason}
}

// Error implements the error interface.
func (e *InvalidShapeError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// InvalidHeaderError is returned for header names or values that cannot be sent.
type InvalidHeaderError struct {
	Name  string
	Value string
}

// NewInvalidHeaderError returns an error for an unsendable header.
func NewInvalidHeaderError(name, value string) *InvalidHeaderError {
	return &InvalidHeaderError{Name: name, Value: value}
}

// Error implements the error interface.
func (e *InvalidHeaderError) Error() string {
	return fmt.Sprintf("invalid header %q: %q", e.Name, e.Value)
}

// UnsupportedContentTypeError is returned when a request body cannot be
// serialized for the resolved content type.
type UnsupportedContentTypeError struct {
	ContentType string
}

// NewUnsupportedContentTypeError returns an error for an unsupported content type.
func NewUnsupportedContentTypeError(contentType string) *UnsupportedContentTypeError {
	return &UnsupportedContentTypeError{ContentType: contentType}
}

// Error implements the error interface.
func (e *UnsupportedContentTypeError) Error() string {
	return fmt.Sprintf("unsupported content type %q (supported: application/json, application/x-www-form-urlencoded, multipart/form-data)", e.ContentType)
}

// TransportError wraps connection, TLS and timeout failures of an HTTP call.
type TransportError struct {
	Method  string
	URL     string
	Timeout bool
	Err     error
}

// NewTransportError returns an error for a failed HTTP exchange.
func NewTransportError(method, rawURL string, timeout bool, err error) *TransportError {
	return &TransportError{Method: method, URL: rawURL, Timeout: timeout, Err: err}
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s %s: request timed out: %v", e.Method, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BodyDecodeError is returned when a body declared as JSON does not parse.
type BodyDecodeError struct {
	ContentType string
	Err         error
}

// NewBodyDecodeError returns an error for an undecodable response body.
func NewBodyDecodeError(contentType string, err error) *BodyDecodeError {
	return &BodyDecodeError{ContentType: contentType, Err: err}
}

// Error implements the error interface.
func (e *BodyDecodeError) Error() string {
	return fmt.Sprintf("cannot decode %s body: %v", e.ContentType, e.Err)
}

func (e *BodyDecodeError) Unwrap() error { return e.Err }

// ProfileNotFoundError is returned when a profile name is absent from a config.
type ProfileNotFoundError struct {
	Name   string
	Source string
}

// NewProfileNotFoundError returns an error for a missing profile.
func NewProfileNotFoundError(name, source string) *ProfileNotFoundError {
	return &ProfileNotFoundError{Name: name, Source: source}
}

// Error implements the error interface.
func (e *ProfileNotFoundError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("profile %s not found", e.Name)
	}
	return fmt.Sprintf("profile %s not found in file %s", e.Name, e.Source)
}

// ConfigValidationError attaches the failing profile name to a validation error.
type ConfigValidationError struct {
	Profile string
	Err     error
}

// NewConfigValidationError wraps err with the name of the profile that failed.
func NewConfigValidationError(profile string, err error) *ConfigValidationError {
	return &ConfigValidationError{Profile: profile, Err: err}
}

// Error implements the error interface.
func (e *ConfigValidationError) Error() string {
	return fmt.Sprintf("failed to validate profile %s: %v", e.Profile, e.Err)
}

func (e *ConfigValidationError) Unwrap() error { return e.Err }

// RequestError attaches the profile name and request slot (req1, req2 or
// request) to a send-time failure.
type RequestError struct {
	Profile string
	Target  string
	Err     error
}

// NewRequestError wraps a send-time failure with its location.
func NewRequestError(profile, target string, err error) *RequestError {
	return &RequestError{Profile: profile, Target: target, Err: err}
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	var sb strings.Builder
	sb.WriteString("profile ")
	sb.WriteString(e.Profile)
	if e.Target != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Target)
		sb.WriteString(")")
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *RequestError) Unwrap() error { return e.Err }
