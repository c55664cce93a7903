package nderror

import "net/http"

type (
	// An NDError represents the error format that can be rendered by the newsdesk server.
	NDError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if nderr, ok := err.(*NDError); ok && nderr.HTTPCode > 0 {
		return nderr.HTTPCode
	}
	return http.StatusInternalServerError
}

// New returns a new NDError with the given message.
func New(message string) *NDError {
	return &NDError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new NDError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *NDError {
	return &NDError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// NotFound returns a new NDError for a missing resource.
func NotFound(message string) *NDError {
	return NewWithTagCode(http.StatusNotFound, "not-found", message)
}

// Conflict returns a new NDError for a resource state conflict.
func Conflict(tag, message string) *NDError {
	return NewWithTagCode(http.StatusConflict, tag, message)
}

// Error implements error interface.
func (e *NDError) Error() string {
	return e.FieldError.Message
}
