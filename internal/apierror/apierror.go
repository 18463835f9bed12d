// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
// Field/Available/Requested are populated only when the underlying typed error
// carries them, so the UI can render a precise message.
type APIError struct {
	Detail    string `json:"detail"`
	Field     string `json:"field,omitempty"`
	Available *int   `json:"available,omitempty"`
	Requested *int   `json:"requested,omitempty"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// NewQuantities builds an envelope for capacity/stock conflicts that carry
// available vs requested quantities.
func NewQuantities(msg string, available, requested int) *APIError {
	return &APIError{Detail: msg, Available: &available, Requested: &requested}
}

// Validation wraps multiple field errors from request binding.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "validation error", Fields: fields}
}
