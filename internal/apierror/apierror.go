// Package apierror holds the error envelopes every 4xx/5xx response uses.
// Handlers return these instead of raw errors so internals never reach
// clients.
package apierror

// APIError carries a single human-readable message.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError carries per-field messages for a 422.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation error", Fields: fields}
}
