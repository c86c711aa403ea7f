package client

import (
	"errors"
	"fmt"
	"regexp"
)

// Sentinel errors for every failure the FAXAGE API can report.
// Check them with errors.Is; use errors.As with *ResponseError to get the raw response.
var (
	ErrNoResponse        = errors.New("empty response from faxage")
	ErrLoginFailed       = errors.New("login incorrect")
	ErrInternal          = errors.New("internal faxage error")
	ErrUnknownOperation  = errors.New("unknown operation")
	ErrInvalidJobID      = errors.New("invalid job id")
	ErrInvalidFaxNumber  = errors.New("invalid fax number")
	ErrNoFiles           = errors.New("no files to fax")
	ErrBlockedNumber     = errors.New("blocked number")
	ErrNoIncomingFaxes   = errors.New("no incoming faxes available")
	ErrFaxIDNotFound     = errors.New("fax id not found")
	ErrMalformedResponse = errors.New("malformed response")

	// ErrInvalidRequest is returned before anything is sent when arguments fail local validation.
	ErrInvalidRequest = errors.New("invalid request")
)

// ResponseError is a classified or decoding failure for one operation.
type ResponseError struct {
	Operation string
	Kind      error
	Raw       string
	Cause     error
}

func (e *ResponseError) Error() string {
	msg := fmt.Sprintf("faxage %s: %v", e.Operation, e.Kind)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.Raw != "" {
		msg += fmt.Sprintf(" (response: %q)", truncate(e.Raw, 200))
	}
	return msg
}

func (e *ResponseError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// newResponseError is the only constructor of ResponseError, so no raw text
// leaves the package with the account password in it.
func newResponseError(op string, kind error, raw string, cause error) *ResponseError {
	return &ResponseError{Operation: op, Kind: kind, Raw: RedactPassword(raw), Cause: cause}
}

func malformed(op, raw string, cause error) error {
	return newResponseError(op, ErrMalformedResponse, raw, cause)
}

// passwordField matches the value of an echoed password field. On a line of
// its own the value runs to the end of the line; inside a form encoded query
// string it stops at the next '&'.
var passwordField = regexp.MustCompile(`(?im)(^[ \t]*password[ \t]*=[ \t]*)[^\r\n]*|([&?]password=)[^&\r\n]*`)

// RedactPassword replaces the value of every echoed password field in raw
// with "***". The rest of the text is left as is.
func RedactPassword(raw string) string {
	if raw == "" {
		return raw
	}
	return passwordField.ReplaceAllString(raw, "${1}${2}***")
}

func invalidRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
