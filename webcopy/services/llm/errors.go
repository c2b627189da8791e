package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ErrorKind classifies a failed generation call.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	// KindInvalidInput means the service rejected the request itself; never retried.
	KindInvalidInput
	KindDeadlineExceeded
	// KindResourceExhausted covers quota and rate-limit rejections.
	KindResourceExhausted
	KindServerError
	// KindPermanent covers authentication, permission and not-found failures.
	KindPermanent
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindDeadlineExceeded:
		return "deadline_exceeded"
	case KindResourceExhausted:
		return "resource_exhausted"
	case KindServerError:
		return "server_error"
	case KindPermanent:
		return "permanent"
	default:
		return "unknown"
	}
}

// Transient reports whether a call failing with this kind may succeed on retry.
func (k ErrorKind) Transient() bool {
	switch k {
	case KindDeadlineExceeded, KindResourceExhausted, KindServerError:
		return true
	default:
		return false
	}
}

// Error is a classified generation failure.
type Error struct {
	Kind  ErrorKind
	Model string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidInput:
		return fmt.Sprintf("invalid input provided to %s: %v", e.Model, e.Err)
	case KindDeadlineExceeded:
		return fmt.Sprintf("deadline exceeded while generating content with %s: %v", e.Model, e.Err)
	case KindResourceExhausted:
		return fmt.Sprintf("resource exhausted (quota limit reached) for %s: %v", e.Model, e.Err)
	default:
		return fmt.Sprintf("%s: generation failed (%s): %v", e.Model, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsTransient reports whether err is worth retrying.
func IsTransient(err error) bool {
	return KindOf(err).Transient()
}

// Classify wraps a raw client error into an *Error. Errors that are already
// classified pass through unchanged.
func Classify(model string, err error) error {
	if err == nil {
		return nil
	}
	var classified *Error
	if errors.As(err, &classified) {
		return err
	}
	return &Error{Kind: classify(err), Model: model, Err: err}
}

func classify(err error) ErrorKind {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return kindForAPIError(apiErr.Code, apiErr.Status)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindDeadlineExceeded
	}
	if errors.Is(err, context.Canceled) {
		return KindUnknown
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		if netErr.Timeout() {
			return KindDeadlineExceeded
		}
		return KindServerError
	}
	return KindUnknown
}

// kindForAPIError maps an HTTP code, falling back to the RPC status name when
// the code is missing.
func kindForAPIError(code int, status string) ErrorKind {
	switch {
	case code == http.StatusBadRequest:
		return KindInvalidInput
	case code == http.StatusTooManyRequests:
		return KindResourceExhausted
	case code == http.StatusRequestTimeout || code == http.StatusGatewayTimeout:
		return KindDeadlineExceeded
	case code == http.StatusUnauthorized || code == http.StatusForbidden || code == http.StatusNotFound:
		return KindPermanent
	case code >= http.StatusInternalServerError:
		return KindServerError
	}

	switch strings.ToUpper(status) {
	case "INVALID_ARGUMENT", "FAILED_PRECONDITION", "OUT_OF_RANGE":
		return KindInvalidInput
	case "RESOURCE_EXHAUSTED":
		return KindResourceExhausted
	case "DEADLINE_EXCEEDED":
		return KindDeadlineExceeded
	case "INTERNAL", "UNAVAILABLE", "UNKNOWN", "ABORTED":
		return KindServerError
	case "UNAUTHENTICATED", "PERMISSION_DENIED", "NOT_FOUND":
		return KindPermanent
	}
	return KindUnknown
}
