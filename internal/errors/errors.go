// Package errors defines the structured API error surface for the HTTP
// transport and the mapping from domain errors onto it.
package errors

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"climdex/internal/indices"
)

// APIError represents a structured API error response.
type APIError struct {
	StatusCode int         `json:"status_code"`
	ErrorCode  string      `json:"error_code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Render implements the render.Renderer interface for chi/render.
func (e *APIError) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.StatusCode)
	return nil
}

// New creates a new APIError with the given parameters.
func New(statusCode int, errorCode, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
	}
}

// NewWithDetails creates a new APIError with additional details.
func NewWithDetails(statusCode int, errorCode, message string, details interface{}) *APIError {
	return &APIError{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Message:    message,
		Details:    details,
	}
}

// Predefined error types for common scenarios.
var (
	ErrInvalidRequest    = New(http.StatusBadRequest, "INVALID_REQUEST", "Invalid request format")
	ErrValidationFailed  = New(http.StatusBadRequest, "VALIDATION_FAILED", "Request validation failed")
	ErrNotFound          = New(http.StatusNotFound, "NOT_FOUND", "Resource not found")
	ErrRateLimitExceeded = New(http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", "Rate limit exceeded")
	ErrInternalServer    = New(http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Internal server error")
)

// FromDomain maps a drought-index domain error to its API representation.
// Contract violations become 400s with distinct error codes; anything
// unrecognized is a 500.
func FromDomain(err error) *APIError {
	switch {
	case stderrors.Is(err, indices.ErrIncompatibleArguments):
		return NewWithDetails(http.StatusBadRequest, "INCOMPATIBLE_ARGUMENTS", "Incompatible argument combination", err.Error())
	case stderrors.Is(err, indices.ErrIncompatibleArrays):
		return NewWithDetails(http.StatusBadRequest, "INCOMPATIBLE_ARRAYS", "Input series have incompatible lengths", err.Error())
	case stderrors.Is(err, indices.ErrInvalidCalibration):
		return NewWithDetails(http.StatusBadRequest, "INVALID_CALIBRATION", "Invalid calibration window", err.Error())
	case stderrors.Is(err, indices.ErrInvalidLatitude):
		return NewWithDetails(http.StatusBadRequest, "INVALID_LATITUDE", "Latitude out of range", err.Error())
	case stderrors.Is(err, indices.ErrInvalidScale):
		return NewWithDetails(http.StatusBadRequest, "INVALID_SCALE", "Invalid months scale", err.Error())
	case stderrors.Is(err, indices.ErrEmptySeries):
		return NewWithDetails(http.StatusBadRequest, "EMPTY_SERIES", "Input series is empty", err.Error())
	case stderrors.Is(err, indices.ErrPalmerUnavailable):
		return New(http.StatusNotImplemented, "PALMER_UNAVAILABLE", "No Palmer water-balance model is configured")
	default:
		return ErrInternalServer
	}
}

// ErrorHandler writes APIErrors as JSON responses and logs them.
type ErrorHandler struct {
	logger         *slog.Logger
	includeDetails bool
}

// NewErrorHandler creates an error handler. includeDetails controls whether
// internal error details reach the response body.
func NewErrorHandler(logger *slog.Logger, includeDetails bool) *ErrorHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ErrorHandler{logger: logger, includeDetails: includeDetails}
}

// HandleError renders an error to the client, wrapping non-API errors as
// internal server errors.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		apiErr = ErrInternalServer
	}

	if !h.includeDetails && apiErr.StatusCode >= http.StatusInternalServerError {
		apiErr = New(apiErr.StatusCode, apiErr.ErrorCode, apiErr.Message)
	}

	logLevel := slog.LevelWarn
	if apiErr.StatusCode >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}
	h.logger.LogAttrs(r.Context(), logLevel, "request failed",
		slog.String("path", r.URL.Path),
		slog.Int("status", apiErr.StatusCode),
		slog.String("error_code", apiErr.ErrorCode),
		slog.String("error", err.Error()),
	)

	render.Status(r, apiErr.StatusCode)
	render.JSON(w, r, apiErr)
}
