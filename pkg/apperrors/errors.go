package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure the way the presentation layer needs to see it.
type Kind string

const (
	// KindNetwork means the request could not complete (DNS, refused, timeout, bad body).
	KindNetwork Kind = "network"
	// KindService means the service answered with a non-2xx status.
	KindService Kind = "service"
	// KindValidation means the operation was rejected before anything was dispatched.
	KindValidation Kind = "validation"
)

var (
	ErrNetwork    = errors.New("network failure")
	ErrService    = errors.New("service error")
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Error is a classified failure carrying a human-readable message.
type Error struct {
	Kind       Kind   // Classification of the failure
	Op         string // Operation that failed, e.g. "list batches"
	Message    string // Human-readable message
	StatusCode int    // HTTP status code for service errors
	Cause      error  // Underlying error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var parts []string
	if e.Op != "" {
		parts = append(parts, e.Op+":")
	}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("HTTP %d", e.StatusCode))
	}
	parts = append(parts, e.Message)

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", strings.Join(parts, " "), e.Cause)
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match the kind sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrService:
		return e.Kind == KindService
	case ErrValidation:
		return e.Kind == KindValidation
	case ErrNotFound:
		return e.Kind == KindService && e.StatusCode == http.StatusNotFound
	}
	return false
}

// Network wraps a transport failure.
func Network(op string, cause error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Message: "request could not complete", Cause: cause}
}

// Service records a non-2xx response.
func Service(op string, statusCode int, message string) *Error {
	return &Error{Kind: KindService, Op: op, Message: message, StatusCode: statusCode}
}

// Validation records a precondition that failed before dispatch.
func Validation(op, message string) *Error {
	return &Error{Kind: KindValidation, Op: op, Message: message}
}

// Validationf is Validation with a format string.
func Validationf(op, format string, args ...any) *Error {
	return Validation(op, fmt.Sprintf(format, args...))
}

// UserMessage returns the text a view should display for err.
// Classified errors read "failed to <op>: <message>"; validation errors show their message only.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var appErr *Error
	if !errors.As(err, &appErr) {
		return err.Error()
	}

	switch appErr.Kind {
	case KindNetwork:
		if appErr.Cause != nil {
			return fmt.Sprintf("failed to %s: %v", appErr.Op, appErr.Cause)
		}
		return fmt.Sprintf("failed to %s: %s", appErr.Op, appErr.Message)
	case KindService:
		return fmt.Sprintf("failed to %s: %s (HTTP %d)", appErr.Op, appErr.Message, appErr.StatusCode)
	default:
		return appErr.Message
	}
}
