package errors

import "fmt"

// APIError is the error shape returned to HTTP clients. Code is the HTTP
// status code the boundary should respond with.
type APIError struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Details *string `json:"details,omitempty"`
}

func (e APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%d %s: %s", e.Code, e.Message, *e.Details)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}

// NewAPIError creates a new APIError with the given status code, message
// and optional details.
func NewAPIError(code int, message string, details *string) APIError {
	return APIError{
		Code:    code,
		Message: message,
		Details: details,
	}
}
