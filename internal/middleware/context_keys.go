package middleware

// contextKey is the type of keys this package stores in contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerKey    = contextKey("logger")
	sessionIDKey = contextKey("sessionID")
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	// SessionIDHeader carries the dashboard session id in both directions.
	SessionIDHeader = "X-Session-ID"
)
