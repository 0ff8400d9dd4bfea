package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
	"github.com/SscSPs/ledger_desk/internal/dto"
	"github.com/gin-gonic/gin"
)

func registerLedgerRoutes(rg *gin.RouterGroup, sessions portssvc.SessionProvider) {
	rg.GET("/ledger", ledgerSnapshot(sessions))
}

// ledgerSnapshot godoc
// @Summary Get the session's ledger view
// @Description Returns the cached accounts, journals and entries of the active journal
// @Tags ledger
// @Produce  json
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 200 {object} dto.LedgerViewResponse "Ledger view"
// @Router /ledger [get]
func ledgerSnapshot(sessions portssvc.SessionProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := sessionFor(c, sessions).Snapshot()
		c.JSON(http.StatusOK, dto.ToLedgerViewResponse(view))
	}
}
