package constants

import "time"

// Session and context keys
const (
	SessionCookieName   = "leave_session"
	ContextKeyUserID    = "user_id"
	ContextKeySession   = "session"
	ContextKeyRequestID = "request_id"
	HeaderRequestID     = "X-Request-ID"
)

// Password policy
const (
	MinPasswordLength = 8
)

// Leave request limits
const (
	DefaultMaxLeaveDays   = 30
	MaxLeaveTypeLength    = 50
	MaxReasonLength       = 500
	MaxAdminCommentLength = 500
	MaxEmployeeNameLength = 100
	DefaultLeaveType      = "Annual Leave"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Login throttling
const (
	DefaultLoginRateLimit  = 5
	DefaultLoginRateWindow = time.Minute
)

// Export layouts
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02 15:04"
)
