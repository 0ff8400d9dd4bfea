package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
	"github.com/SscSPs/ledger_desk/internal/dto"
	"github.com/SscSPs/ledger_desk/internal/middleware"
	"github.com/gin-gonic/gin"
)

type accountHandler struct {
	sessions portssvc.SessionProvider
}

func newAccountHandler(sessions portssvc.SessionProvider) *accountHandler {
	return &accountHandler{sessions: sessions}
}

func registerAccountRoutes(rg *gin.RouterGroup, sessions portssvc.SessionProvider) {
	h := newAccountHandler(sessions)

	accounts := rg.Group("/accounts")
	{
		accounts.GET("", h.listAccounts)
		accounts.GET("/resolve", h.resolveAccount)
	}
}

// listAccounts godoc
// @Summary Refresh the account directory
// @Description Reloads the accounts of the session's directory from the store
// @Tags accounts
// @Produce  json
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 200 {array} dto.AccountResponse "Accounts"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	accounts, err := sessionFor(c, h.sessions).RefreshAccounts(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to refresh accounts")
		return
	}
	middleware.GetLoggerFromContext(c).Debug("Accounts refreshed", slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToAccountResponses(accounts))
}

// resolveAccount godoc
// @Summary Resolve an account reference
// @Description Turns an id, code, name or "name (code)" label into the canonical account id
// @Tags accounts
// @Produce  json
// @Param   ref query string true "Account reference"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 200 {object} dto.ResolveAccountResponse "Canonical account id"
// @Failure 400 {object} dto.ErrorResponse "Missing reference"
// @Failure 404 {object} dto.ErrorResponse "No account matches"
// @Router /accounts/resolve [get]
func (h *accountHandler) resolveAccount(c *gin.Context) {
	var params dto.ResolveAccountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Failed to bind resolve query")
		return
	}

	id, err := sessionFor(c, h.sessions).ResolveAccount(c.Request.Context(), domain.RefFromString(params.Ref))
	if err != nil {
		respondError(c, err, "Failed to resolve account reference")
		return
	}
	c.JSON(http.StatusOK, dto.ResolveAccountResponse{Ref: params.Ref, AccountID: id})
}
