// Package api exposes index management and search over HTTP.
package api

import "strings"

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult holds the result of validation operations
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// ValidateLocation validates a document source location.
// field names the request field or parameter the location came from.
func ValidateLocation(field, location string) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if location == "" {
		result.AddError(field, "Location is required")
		return result
	}

	if strings.TrimSpace(location) != location {
		result.AddError(field, "Location cannot have leading or trailing whitespace")
		return result
	}

	return result
}

// ValidateCreateIndexRequest validates a CreateIndexRequest
func ValidateCreateIndexRequest(req *CreateIndexRequest) *ValidationResult {
	if req == nil {
		result := &ValidationResult{Valid: true}
		result.AddError("body", "Request body is required")
		return result
	}
	return ValidateLocation("location", req.Location)
}

// ValidateSearchRequest validates a SearchRequest.
// An omitted location is valid and selects the most recent index.
func ValidateSearchRequest(req *SearchRequest) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if req == nil {
		result.AddError("body", "Request body is required")
		return result
	}

	if len(req.Terms) == 0 {
		result.AddError("terms", "Terms are required")
	}

	if req.Location != "" && strings.TrimSpace(req.Location) != req.Location {
		result.AddError("location", "Location cannot have leading or trailing whitespace")
	}

	return result
}
