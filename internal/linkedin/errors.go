package linkedin

import (
	"errors"
	"fmt"
	"strings"
)

const providerName = "linkedin"

var (
	// ErrInvalidURN is reported when the member URN is empty.
	ErrInvalidURN = errors.New("URN required")
	// ErrMissingComment is reported when a share has no commentary.
	ErrMissingComment = errors.New("comment required")
	// ErrEmptyImage is reported when an image upload has no bytes. There is
	// nothing to register a slot for, so the check runs before any request.
	ErrEmptyImage = errors.New("image data required")
)

// MissingEnvError is returned when required configuration is missing.
type MissingEnvError struct {
	Provider  string
	Variables []string
}

func (e MissingEnvError) Error() string {
	if len(e.Variables) == 0 {
		return fmt.Sprintf("%s credentials not configured", e.Provider)
	}
	return fmt.Sprintf("%s credentials not configured (missing %s)", e.Provider, strings.Join(e.Variables, ", "))
}

// ValidationError is raised locally, before any request is sent.
type ValidationError struct {
	Provider string
	Reason   string
	Err      error
}

func (e ValidationError) Error() string {
	reason := e.Reason
	if reason == "" && e.Err != nil {
		reason = e.Err.Error()
	}
	return fmt.Sprintf("%s validation failed: %s", e.Provider, reason)
}

func (e ValidationError) Unwrap() error { return e.Err }

func invalid(err error) error {
	return ValidationError{Provider: providerName, Reason: err.Error(), Err: err}
}

// TransportError describes a failed HTTP exchange. StatusCode is zero when
// no response was received.
type TransportError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s %s: %v", e.Method, e.URL, e.Err)
	}
	body := strings.TrimSpace(string(e.Body))
	if body == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.StatusCode, body)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UploadRegistrationError means the registerUpload response lacked fields
// the upload depends on.
type UploadRegistrationError struct {
	Missing []string
	Err     error
}

func (e *UploadRegistrationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed upload registration: %v", e.Err)
	}
	return fmt.Sprintf("malformed upload registration (missing %s)", strings.Join(e.Missing, ", "))
}

func (e *UploadRegistrationError) Unwrap() error { return e.Err }
