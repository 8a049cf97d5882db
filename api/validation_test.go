package api

import (
	"encoding/json"
	"testing"
)

func TestValidationResult_AddError(t *testing.T) {
	result := &ValidationResult{Valid: true}

	result.AddError("field1", "error message")

	if result.Valid {
		t.Error("Expected Valid to be false after adding error")
	}

	if len(result.Errors) != 1 {
		t.Fatalf("Expected 1 error, got %d", len(result.Errors))
	}

	if result.Errors[0].Field != "field1" {
		t.Errorf("Expected field 'field1', got '%s'", result.Errors[0].Field)
	}

	if result.Errors[0].Message != "error message" {
		t.Errorf("Expected message 'error message', got '%s'", result.Errors[0].Message)
	}
}

func TestValidationResult_HasErrors(t *testing.T) {
	result := &ValidationResult{Valid: true}

	if result.HasErrors() {
		t.Error("Expected HasErrors to be false for empty result")
	}

	result.AddError("field", "message")

	if !result.HasErrors() {
		t.Error("Expected HasErrors to be true after adding error")
	}
}

func TestValidateLocation(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		wantError bool
	}{
		{"local path", "/data/books.json", false},
		{"relative path", "books.json", false},
		{"url", "https://example.com/books.json", false},
		{"empty", "", true},
		{"leading whitespace", " books.json", true},
		{"trailing whitespace", "books.json\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateLocation("location", tt.location)
			if result.HasErrors() != tt.wantError {
				t.Errorf("ValidateLocation(%q) errors = %v, wantError %v", tt.location, result.Errors, tt.wantError)
			}
			if tt.wantError && result.Errors[0].Field != "location" {
				t.Errorf("Expected field 'location', got '%s'", result.Errors[0].Field)
			}
		})
	}
}

func TestValidateCreateIndexRequest(t *testing.T) {
	if result := ValidateCreateIndexRequest(nil); !result.HasErrors() {
		t.Error("Expected error for nil request")
	}
	if result := ValidateCreateIndexRequest(&CreateIndexRequest{Location: "books.json"}); result.HasErrors() {
		t.Errorf("Unexpected errors: %v", result.Errors)
	}
}

func TestValidateSearchRequest(t *testing.T) {
	tests := []struct {
		name       string
		req        *SearchRequest
		wantFields []string
	}{
		{"nil request", nil, []string{"body"}},
		{"string terms", &SearchRequest{Terms: json.RawMessage(`"hello"`)}, nil},
		{"null terms are allowed", &SearchRequest{Terms: json.RawMessage(`null`)}, nil},
		{"named", &SearchRequest{Terms: json.RawMessage(`["a"]`), Location: "books.json"}, nil},
		{"missing terms", &SearchRequest{Location: "books.json"}, []string{"terms"}},
		{"missing terms and padded location", &SearchRequest{Location: " x "}, []string{"terms", "location"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateSearchRequest(tt.req)
			if len(result.Errors) != len(tt.wantFields) {
				t.Fatalf("Expected %d errors, got %v", len(tt.wantFields), result.Errors)
			}
			for i, field := range tt.wantFields {
				if result.Errors[i].Field != field {
					t.Errorf("Error %d: expected field '%s', got '%s'", i, field, result.Errors[i].Field)
				}
			}
		})
	}
}
