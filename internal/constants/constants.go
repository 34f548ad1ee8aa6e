package constants

// Context keys
const (
	ContextKeyUser      = "current_user"
	ContextKeyRequestID = "request_id"
)

// Pagination
const (
	MinPage         = 1
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Task validation
const (
	MinTitleLength = 1
	MaxTitleLength = 200
)

// HTTP
const (
	HeaderRequestID = "X-Request-ID"
	TokenType       = "bearer"
)

const AppName = "Task Management API"
