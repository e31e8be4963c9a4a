package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is an application-specific error type
type AppError struct {
	Code    string
	Message string
	Status  int // HTTP status code, set for CodeHTTP only
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// wraps an error with a code and message
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// NewHTTP creates an HTTP_ERROR carrying the response status code
func NewHTTP(status int, cause error) *AppError {
	return &AppError{
		Code:    CodeHTTP,
		Message: fmt.Sprintf("http status code: %d", status),
		Status:  status,
		Cause:   cause,
	}
}

// HasCode reports whether any AppError in err's chain carries code
func HasCode(err error, code string) bool {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return false
		}
		if appErr.Code == code {
			return true
		}
		err = appErr.Cause
	}
	return false
}

// StatusCode returns the HTTP status carried by an HTTP_ERROR in err's chain
func StatusCode(err error) (int, bool) {
	var appErr *AppError
	for err != nil {
		if !stderrors.As(err, &appErr) {
			return 0, false
		}
		if appErr.Code == CodeHTTP {
			return appErr.Status, true
		}
		err = appErr.Cause
	}
	return 0, false
}

// Error code constants
const (
	CodeInternal   = "INTERNAL_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeInvalidArg = "INVALID_ARGUMENT" // bad input detected before any network call
	CodeParams     = "INVALID_PARAMS"   // bad parameters file content
	CodeHTTP       = "HTTP_ERROR"       // API answered with status >= 400
	CodeExternal   = "EXTERNAL_ERROR"
	CodeConflict   = "CONFLICT"         // Resource already exists (UNIQUE violation)
	CodeDependency = "DEPENDENCY_ERROR" // Foreign key constraint violation
)
