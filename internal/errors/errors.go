package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions
var (
	// ErrIndexNotFound is returned when no index is stored for a location,
	// or when the most recent index is requested from an empty store
	ErrIndexNotFound = errors.New("index not found")

	// ErrInvalidInput is returned when a document collection cannot be indexed
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourceNotFound is returned when a local document source does not exist
	ErrSourceNotFound = errors.New("source not found")

	// ErrNetwork is returned when a remote document source cannot be fetched
	ErrNetwork = errors.New("network error")

	// ErrInvalidJSON is returned when a source payload is not a JSON object of documents
	ErrInvalidJSON = errors.New("invalid json")

	// ErrJobNotFound is returned when a background job ID is unknown
	ErrJobNotFound = errors.New("job not found")

	// ErrSourceNotAllowed is returned when a location falls outside the configured source policy
	ErrSourceNotAllowed = errors.New("source not allowed")
)

// IndexNotFoundError represents an index not found error with context
type IndexNotFoundError struct {
	Location string
}

func (e *IndexNotFoundError) Error() string {
	if e.Location == "" {
		return "no index has been created yet"
	}
	return fmt.Sprintf("index for '%s' not found", e.Location)
}

func (e *IndexNotFoundError) Is(target error) bool {
	return target == ErrIndexNotFound
}

// NewIndexNotFoundError creates a new IndexNotFoundError.
// An empty location means the store holds no index at all.
func NewIndexNotFoundError(location string) *IndexNotFoundError {
	return &IndexNotFoundError{Location: location}
}

// ValidationError represents an input validation error with context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// SourceNotFoundError is returned by local sources for a missing path
type SourceNotFoundError struct {
	Location string
	Err      error
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("sorry, the file '%s' does not exist", e.Location)
}

func (e *SourceNotFoundError) Is(target error) bool {
	return target == ErrSourceNotFound
}

func (e *SourceNotFoundError) Unwrap() error {
	return e.Err
}

// NewSourceNotFoundError creates a new SourceNotFoundError
func NewSourceNotFoundError(location string, err error) *SourceNotFoundError {
	return &SourceNotFoundError{Location: location, Err: err}
}

// NetworkError wraps a transport failure or an unexpected HTTP status
type NetworkError struct {
	Location   string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching '%s': unexpected HTTP status %d", e.Location, e.StatusCode)
	}
	return fmt.Sprintf("fetching '%s': %v", e.Location, e.Err)
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrNetwork
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new NetworkError for a transport failure
func NewNetworkError(location string, err error) *NetworkError {
	return &NetworkError{Location: location, Err: err}
}

// NewHTTPStatusError creates a new NetworkError for a non-2xx response
func NewHTTPStatusError(location string, statusCode int) *NetworkError {
	return &NetworkError{Location: location, StatusCode: statusCode}
}

// InvalidJSONError is returned when a payload cannot be decoded into documents
type InvalidJSONError struct {
	Location string
	Reason   string
	Err      error
}

func (e *InvalidJSONError) Error() string {
	msg := fmt.Sprintf("JSON file '%s' is not valid", e.Location)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidJSONError) Is(target error) bool {
	return target == ErrInvalidJSON
}

func (e *InvalidJSONError) Unwrap() error {
	return e.Err
}

// NewInvalidJSONError creates a new InvalidJSONError
func NewInvalidJSONError(location, reason string, err error) *InvalidJSONError {
	return &InvalidJSONError{Location: location, Reason: reason, Err: err}
}

// JobNotFoundError represents a job not found error with context
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job with ID '%s' not found", e.JobID)
}

func (e *JobNotFoundError) Is(target error) bool {
	return target == ErrJobNotFound
}

// NewJobNotFoundError creates a new JobNotFoundError
func NewJobNotFoundError(jobID string) *JobNotFoundError {
	return &JobNotFoundError{JobID: jobID}
}

// SourceNotAllowedError is returned before any read when a location is rejected by the source policy
type SourceNotAllowedError struct {
	Location string
	Reason   string
}

func (e *SourceNotAllowedError) Error() string {
	return fmt.Sprintf("source '%s' is not allowed: %s", e.Location, e.Reason)
}

func (e *SourceNotAllowedError) Is(target error) bool {
	return target == ErrSourceNotAllowed
}

// NewSourceNotAllowedError creates a new SourceNotAllowedError
func NewSourceNotAllowedError(location, reason string) *SourceNotAllowedError {
	return &SourceNotAllowedError{Location: location, Reason: reason}
}
