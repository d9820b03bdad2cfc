package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response status classes
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// Default messages
const (
	MsgBadRequest    = "invalid request"
	MsgUnauthorized  = "authentication required"
	MsgForbidden     = "access denied"
	MsgNotFound      = "resource not found"
	MsgConflict      = "resource conflict"
	MsgInternalError = "internal error"
	MsgInvalidBody   = "invalid request body"
	MsgInvalidToken  = "invalid token"
	MsgTokenExpired  = "token expired"
	MsgDuplicate     = "duplicate resource"
	MsgInvalidRef    = "invalid reference"
	MsgResourceInUse = "resource in use"
)

// AppError is the typed error used for every expected failure.
// StatusCode is the HTTP status; Status is the class derived from it.
type AppError struct {
	StatusCode int         `json:"-"`
	Status     string      `json:"status"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	return e.Message
}

// IsClientError reports whether the error is caller-side (4xx)
func (e *AppError) IsClientError() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// New creates a new AppError. It never validates its arguments.
func New(message string, statusCode int) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Status:     statusClass(statusCode),
		Message:    message,
	}
}

// NewWithDetails creates a new AppError with details
func NewWithDetails(message string, statusCode int, details interface{}) *AppError {
	err := New(message, statusCode)
	err.Details = details
	return err
}

func statusClass(statusCode int) string {
	if statusCode >= 400 && statusCode < 500 {
		return StatusFail
	}
	return StatusError
}

// BadRequest creates a 400 error
func BadRequest(message string) *AppError {
	if message == "" {
		message = MsgBadRequest
	}
	return New(message, http.StatusBadRequest)
}

// Unauthorized creates a 401 error
func Unauthorized(message string) *AppError {
	if message == "" {
		message = MsgUnauthorized
	}
	return New(message, http.StatusUnauthorized)
}

// Forbidden creates a 403 error
func Forbidden(message string) *AppError {
	if message == "" {
		message = MsgForbidden
	}
	return New(message, http.StatusForbidden)
}

// NotFound creates a 404 error
func NotFound(message string) *AppError {
	if message == "" {
		message = MsgNotFound
	}
	return New(message, http.StatusNotFound)
}

// Conflict creates a 409 error
func Conflict(message string) *AppError {
	if message == "" {
		message = MsgConflict
	}
	return New(message, http.StatusConflict)
}

// Internal creates a 500 error
func Internal(message string) *AppError {
	if message == "" {
		message = MsgInternalError
	}
	return New(message, http.StatusInternalServerError)
}

// Respond writes the wire representation of appErr. The underlying cause is
// attached as details only outside production.
func Respond(c *gin.Context, appErr *AppError, cause error, production bool) {
	body := gin.H{
		"status":  appErr.Status,
		"message": appErr.Message,
	}
	if !production {
		if appErr.Details != nil {
			body["details"] = appErr.Details
		} else if cause != nil && cause != error(appErr) {
			body["details"] = cause.Error()
		}
	}
	c.JSON(appErr.StatusCode, body)
}
