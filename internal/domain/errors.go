package domain

import (
	"errors"
	"net/http"
)

// ErrorCode classifies an AppError. Each code maps to one HTTP status.
type ErrorCode int

const (
	CodeNotFound ErrorCode = iota + 1
	CodeAlreadyExists
	CodeValidation
	CodeInternal
	CodeUnauthorized
)

var codeInfo = map[ErrorCode]struct {
	name   string
	status int
}{
	CodeNotFound:      {"not_found", http.StatusNotFound},
	CodeAlreadyExists: {"already_exists", http.StatusConflict},
	CodeValidation:    {"validation", http.StatusBadRequest},
	CodeInternal:      {"internal", http.StatusInternalServerError},
	CodeUnauthorized:  {"unauthorized", http.StatusUnauthorized},
}

// String returns a stable lowercase name, used as a log attribute.
func (c ErrorCode) String() string {
	if info, ok := codeInfo[c]; ok {
		return info.name
	}
	return "unknown"
}

// HTTPStatus returns the response status for c. Unknown codes are 500.
func (c ErrorCode) HTTPStatus() int {
	if info, ok := codeInfo[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// AppError is a classified failure. Message is safe to show to clients;
// Err is the underlying cause and stays server-side.
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Sentinel values carrying the default public message of each code.
//
// Match categories with the Is* helpers rather than errors.Is: the helpers
// compare codes, so they also match instances built with NewAppError.
var (
	ErrNotFound      = &AppError{Code: CodeNotFound, Message: "not found"}
	ErrAlreadyExists = &AppError{Code: CodeAlreadyExists, Message: "already exists"}
	ErrValidation    = &AppError{Code: CodeValidation, Message: "validation error"}
	ErrInternal      = &AppError{Code: CodeInternal, Message: "internal error"}
	ErrUnauthorized  = &AppError{Code: CodeUnauthorized, Message: "authentication failed"}
)

// NewAppError returns an AppError with code and public message wrapping err.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// CodeOf returns the code of the first AppError in err's chain, or
// CodeInternal when there is none.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

func IsNotFound(err error) bool      { return isCode(err, CodeNotFound) }
func IsAlreadyExists(err error) bool { return isCode(err, CodeAlreadyExists) }
func IsValidation(err error) bool    { return isCode(err, CodeValidation) }
func IsInternal(err error) bool      { return isCode(err, CodeInternal) }
func IsUnauthorized(err error) bool  { return isCode(err, CodeUnauthorized) }

func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// HTTPStatusCode maps err to a response status. Anything that is not an
// *AppError is a 500.
func HTTPStatusCode(err error) int {
	return CodeOf(err).HTTPStatus()
}
