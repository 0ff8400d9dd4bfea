package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
	"github.com/SscSPs/ledger_desk/internal/dto"
	"github.com/SscSPs/ledger_desk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// maxEntryBody bounds the size of a submitted entry.
const maxEntryBody = 1 << 20

type entryHandler struct {
	sessions portssvc.SessionProvider
}

func newEntryHandler(sessions portssvc.SessionProvider) *entryHandler {
	return &entryHandler{sessions: sessions}
}

func registerEntryRoutes(rg *gin.RouterGroup, sessions portssvc.SessionProvider) {
	h := newEntryHandler(sessions)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("/validate", h.validateEntry)
		entries.POST("", h.createEntry)
		entries.DELETE("/:entryID", h.deleteEntry)
	}
}

// validateEntry godoc
// @Summary Validate a journal entry
// @Description Checks an entry and returns its canonical form without creating it
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body object true "Journal entry; journal and account keys accept their alternate spellings"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 200 {object} dto.ValidateEntryResponse "Canonical entry"
// @Failure 400 {object} dto.ErrorResponse "Every problem found in the entry"
// @Router /journal-entries/validate [post]
func (h *entryHandler) validateEntry(c *gin.Context) {
	input, ok := h.bindEntry(c)
	if !ok {
		return
	}

	canonical, err := sessionFor(c, h.sessions).ValidateEntry(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Journal entry failed validation")
		return
	}
	c.JSON(http.StatusOK, dto.ValidateEntryResponse{Valid: true, Entry: canonical})
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Validates an entry, submits its canonical form and adds it to the session's view
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   entry body object true "Journal entry; journal and account keys accept their alternate spellings"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 201 {object} domain.JournalEntry "Created entry"
// @Failure 400 {object} dto.ErrorResponse "Every problem found in the entry"
// @Failure 409 {object} dto.ErrorResponse "Conflicting change"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /journal-entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	input, ok := h.bindEntry(c)
	if !ok {
		return
	}

	created, err := sessionFor(c, h.sessions).CreateEntry(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Failed to create journal entry")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// deleteEntry godoc
// @Summary Delete a journal entry
// @Description Deletes an entry and drops it from the session's view
// @Tags journal-entries
// @Param   entryID path string true "Entry ID"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /journal-entries/{entryID} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	entryID := c.Param("entryID")

	if err := sessionFor(c, h.sessions).DeleteEntry(c.Request.Context(), entryID); err != nil {
		respondError(c, err, "Failed to delete journal entry")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *entryHandler) bindEntry(c *gin.Context) (domain.EntryInput, bool) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxEntryBody))
	if err != nil {
		respondBindError(c, err, "Failed to read journal entry body")
		return domain.EntryInput{}, false
	}
	input, err := dto.DecodeEntryInput(body)
	if err != nil {
		respondBindError(c, err, "Failed to decode journal entry")
		return domain.EntryInput{}, false
	}
	middleware.GetLoggerFromContext(c).Debug("Journal entry decoded", slog.Int("lines", len(input.Lines)))
	return input, true
}
