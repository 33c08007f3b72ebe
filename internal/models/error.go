package models

import (
	"fmt"
	"net/http"
)

// ErrorType tags a domain error for the HTTP boundary
type ErrorType string

const (
	ErrServerError                ErrorType = "SERVER_ERROR"
	ErrParsing                    ErrorType = "PARSING_ERROR"
	ErrValidation                 ErrorType = "VALIDATION_ERROR"
	ErrMissingAuthorizationHeader ErrorType = "MISSING_AUTHORIZATION_HEADER"
	ErrInvalidCredentials         ErrorType = "INVALID_CREDENTIALS"
	ErrRangeStore                 ErrorType = "RANGE_STORE_ERROR"
	ErrRecordNotFound             ErrorType = "TIMESHEET_RECORD_NOT_FOUND"
	ErrAlreadyClockedIn           ErrorType = "ALREADY_CLOCKED_IN"
	ErrNotClockedIn               ErrorType = "NOT_CLOCKED_IN"
	ErrRecordMismatch             ErrorType = "TIMESHEET_RECORD_MISMATCH"
	ErrRecordValidation           ErrorType = "TIMESHEET_RECORD_VALIDATION_ERROR"
	ErrInvalidDate                ErrorType = "INVALID_DATE"
)

// Error is the single domain error shape. It is raised from deep call
// stacks and serialized once, at the HTTP boundary, as {"errors": [...]}.
type Error struct {
	Type    ErrorType   `json:"type"`
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// NewError creates a domain error without diagnostic data
func NewError(errType ErrorType, message string, code int) *Error {
	return &Error{Type: errType, Message: message, Code: code}
}

// NewErrorWithData creates a domain error carrying diagnostic data
func NewErrorWithData(errType ErrorType, message string, code int, data interface{}) *Error {
	return &Error{Type: errType, Message: message, Code: code, Data: data}
}

// ValidationErrors aggregates schema failures for one request body, one
// entry per invalid field.
type ValidationErrors struct {
	Errors []*Error
}

// Error implements the error interface
func (e *ValidationErrors) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return e.Errors[0].Error()
}

// NewParsingError reports a malformed stored row. rowNumber is the 1-based
// sheet row the data came from (header row included).
func NewParsingError(rowNumber int, row []string, cause error) *Error {
	return &Error{
		Type:    ErrParsing,
		Message: fmt.Sprintf("error parsing record from row: %d", rowNumber),
		Code:    http.StatusInternalServerError,
		Data: map[string]interface{}{
			"row":   row,
			"cause": cause.Error(),
		},
	}
}
