package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionMiddleware binds every request to a dashboard session. A request
// without an X-Session-ID header starts a new session whose id is echoed back.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			sessionID = uuid.NewString()
			GetLoggerFromContext(c).Debug("Starting new session", slog.String("session_id", sessionID))
		}
		c.Header(SessionIDHeader, sessionID)
		c.Set(string(sessionIDKey), sessionID)
		c.Next()
	}
}

// GetSessionID retrieves the session id set by SessionMiddleware.
func GetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(string(sessionIDKey))
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}
