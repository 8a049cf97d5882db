package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/inverted-index/internal/errors"
	"github.com/gcbaptista/inverted-index/internal/logging"
)

// ErrorCode represents standardized error codes for the API
type ErrorCode string

const (
	// Client Error Codes (4xx)
	ErrorCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrorCodeIndexNotFound    ErrorCode = "INDEX_NOT_FOUND"
	ErrorCodeJobNotFound      ErrorCode = "JOB_NOT_FOUND"
	ErrorCodeInvalidJSON      ErrorCode = "INVALID_JSON"
	ErrorCodeSourceNotFound   ErrorCode = "SOURCE_NOT_FOUND"
	ErrorCodeSourceForbidden  ErrorCode = "SOURCE_NOT_ALLOWED"
	ErrorCodeInvalidDocuments ErrorCode = "INVALID_DOCUMENTS"
	ErrorCodeRateLimited      ErrorCode = "RATE_LIMITED"

	// Server Error Codes (5xx)
	ErrorCodeSourceUnreachable ErrorCode = "SOURCE_UNREACHABLE"
	ErrorCodeInternalError     ErrorCode = "INTERNAL_ERROR"
)

// ErrorDetail provides additional context for an error
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// APIError represents a standardized API error response
type APIError struct {
	Error     string        `json:"error"`
	Code      ErrorCode     `json:"code"`
	Message   string        `json:"message"`
	Details   []ErrorDetail `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id,omitempty"`
}

// APIErrorResponse creates a standardized error response
func APIErrorResponse(code ErrorCode, message string, details ...ErrorDetail) *APIError {
	return &APIError{
		Error:     "Request failed",
		Code:      code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// SendError sends a standardized error response
func SendError(c *gin.Context, statusCode int, code ErrorCode, message string, details ...ErrorDetail) {
	errorResponse := APIErrorResponse(code, message, details...)

	// Add request ID if available
	if requestID, exists := c.Get(requestIDKey); exists {
		if id, ok := requestID.(string); ok {
			errorResponse.RequestID = id
		}
	}

	c.JSON(statusCode, errorResponse)
}

// SendValidationError sends a validation error with one detail per failed field
func SendValidationError(c *gin.Context, result *ValidationResult) {
	details := make([]ErrorDetail, len(result.Errors))
	for i, err := range result.Errors {
		details[i] = ErrorDetail{
			Field:   err.Field,
			Message: err.Message,
			Code:    "VALIDATION_ERROR",
		}
	}

	SendError(c, http.StatusBadRequest, ErrorCodeValidationFailed, "Request validation failed", details...)
}

// SendIndexNotFoundError sends a standardized index not found error
func SendIndexNotFoundError(c *gin.Context, location string) {
	message := "No index has been created yet"
	if location != "" {
		message = "Index for '" + location + "' not found"
	}
	SendError(c, http.StatusNotFound, ErrorCodeIndexNotFound, message)
}

// SendInvalidJSONError sends a standardized invalid JSON error
func SendInvalidJSONError(c *gin.Context, err error) {
	SendError(c, http.StatusBadRequest, ErrorCodeInvalidJSON,
		"Invalid JSON in request body: "+err.Error())
}

// SendRateLimitedError sends a standardized rate limit error
func SendRateLimitedError(c *gin.Context) {
	SendError(c, http.StatusTooManyRequests, ErrorCodeRateLimited,
		"Too many index creation requests, retry later")
}

// SendInternalError sends a standardized internal server error
func SendInternalError(c *gin.Context, operation string, err error) {
	SendError(c, http.StatusInternalServerError, ErrorCodeInternalError,
		"Internal error during "+operation+": "+err.Error())
}

// SendEngineError maps an engine or source error onto its HTTP status and code.
func SendEngineError(c *gin.Context, operation string, err error) {
	var notFound *internalErrors.IndexNotFoundError
	switch {
	case errors.As(err, &notFound):
		SendIndexNotFoundError(c, notFound.Location)
	case errors.Is(err, internalErrors.ErrJobNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeJobNotFound, err.Error())
	case errors.Is(err, internalErrors.ErrSourceNotAllowed):
		SendError(c, http.StatusForbidden, ErrorCodeSourceForbidden, err.Error())
	case errors.Is(err, internalErrors.ErrSourceNotFound):
		SendError(c, http.StatusNotFound, ErrorCodeSourceNotFound, err.Error())
	case errors.Is(err, internalErrors.ErrNetwork):
		SendError(c, http.StatusBadGateway, ErrorCodeSourceUnreachable, err.Error())
	case errors.Is(err, internalErrors.ErrInvalidJSON), errors.Is(err, internalErrors.ErrInvalidInput):
		SendError(c, http.StatusUnprocessableEntity, ErrorCodeInvalidDocuments, err.Error())
	default:
		logging.FromContext(c.Request.Context()).Error("request failed", "operation", operation, "err", err)
		SendInternalError(c, operation, err)
	}
}
