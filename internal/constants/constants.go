package constants

import "time"

// Context keys shared by middleware and handlers
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserName  = "user_name"
	ContextKeyBody      = "sanitized_body"
	ContextKeyRequestID = "request_id"
)

const RequestIDHeader = "X-Request-ID"

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Credentials
const (
	MinPasswordLength = 8
	PasswordSymbols   = "!@#$%^&*"
	TokenTTL          = time.Hour
)

// Window used by the upcoming events feed
const UpcomingWindow = 24 * time.Hour
