package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// FieldError is an HTTPError that carries additional machine-actionable
// fields for the response body (quota numbers, upgrade pointers, hints).
type FieldError interface {
	HTTPError
	Fields() map[string]interface{}
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
		Hint    string // Optional guidance, e.g. where to put the key
	}

	// PlanRequiredError indicates the tenant's plan does not include API access
	PlanRequiredError struct {
		Message    string
		UpgradeURL string
	}

	// QuotaExceededError indicates the tenant's metered call budget is spent
	QuotaExceededError struct {
		Message string
		Used    int
		Limit   int
	}

	// UpstreamError indicates a failure from the AI provider, already mapped
	// to the status the caller should see
	UpstreamError struct {
		Message string
		Status  int
	}
)

// Error implementations
func (e *NotFoundError) Error() string      { return e.Message }
func (e *ValidationError) Error() string    { return e.Message }
func (e *UnauthorizedError) Error() string  { return e.Message }
func (e *PlanRequiredError) Error() string  { return e.Message }
func (e *QuotaExceededError) Error() string { return e.Message }
func (e *UpstreamError) Error() string      { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int      { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int    { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int  { return http.StatusUnauthorized }
func (e *PlanRequiredError) StatusCode() int  { return http.StatusForbidden }
func (e *QuotaExceededError) StatusCode() int { return http.StatusTooManyRequests }
func (e *UpstreamError) StatusCode() int      { return e.Status }

// Fields implementations (FieldError interface)
func (e *UnauthorizedError) Fields() map[string]interface{} {
	if e.Hint == "" {
		return nil
	}
	return map[string]interface{}{"message": e.Hint}
}

func (e *PlanRequiredError) Fields() map[string]interface{} {
	return map[string]interface{}{"upgrade_url": e.UpgradeURL}
}

func (e *QuotaExceededError) Fields() map[string]interface{} {
	return map[string]interface{}{"used": e.Used, "limit": e.Limit}
}

// Is allows errors.Is() to match sentinel errors
func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *UnauthorizedError) Is(target error) bool { return target == ErrUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)
