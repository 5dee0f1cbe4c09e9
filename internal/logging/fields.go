// Package logging provides standard field definitions for structured logging
package logging

// Standard log field values and constants for structured logging
const (
	// Standard field names
	FieldRequestID    = "req_id"
	FieldHTTPMethod   = "method"
	FieldHTTPPath     = "path"
	FieldHTTPStatus   = "status"
	FieldLatencyMs    = "latency_ms"
	FieldService      = "service"
	FieldVersion      = "version"
	FieldError        = "error"
	FieldErrorCode    = "error_code"
	FieldResponseTime = "response_time_ms"
	FieldCheckName    = "check_name"
	FieldCheckStatus  = "check_status"
	FieldUserID       = "user_id"
	FieldUsername     = "username"
	FieldUserCount    = "user_count"
	FieldTotalUsers   = "total_users"

	// Log levels
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"

	// Output formats
	FormatJSON = "json"
	FormatText = "text"

	// Health check statuses
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusOK        = "ok"
)
