package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
	"github.com/SscSPs/ledger_desk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up all application routes. Every /api/v1 request is bound
// to the ledger session named by its X-Session-ID header.
func RegisterRoutes(r *gin.Engine, sessions portssvc.SessionProvider) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	v1 := r.Group("/api/v1", middleware.SessionMiddleware())

	registerAccountRoutes(v1, sessions)
	registerJournalRoutes(v1, sessions)
	registerEntryRoutes(v1, sessions)
	registerLedgerRoutes(v1, sessions)
}

// sessionFor returns the ledger session of the current request.
func sessionFor(c *gin.Context, sessions portssvc.SessionProvider) portssvc.LedgerSessionSvc {
	sessionID, _ := middleware.GetSessionID(c)
	return sessions.Session(sessionID)
}
