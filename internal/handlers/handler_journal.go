package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
	"github.com/SscSPs/ledger_desk/internal/dto"
	"github.com/SscSPs/ledger_desk/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	sessions portssvc.SessionProvider
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(sessions portssvc.SessionProvider) *journalHandler {
	return &journalHandler{sessions: sessions}
}

func registerJournalRoutes(rg *gin.RouterGroup, sessions portssvc.SessionProvider) {
	h := newJournalHandler(sessions)

	journals := rg.Group("/journals")
	{
		journals.GET("", h.listJournals)
		journals.POST("", h.createJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
		journals.GET("/:journalID/entries", h.listEntries)
	}
}

// listJournals godoc
// @Summary List journals
// @Description Lists journals, optionally filtered by type and code
// @Tags journals
// @Produce  json
// @Param   journalType query string false "Journal type"
// @Param   code query string false "Journal code"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 200 {array} dto.JournalResponse "Journals"
// @Failure 400 {object} dto.ErrorResponse "Invalid filter"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err, "Failed to bind journal list query")
		return
	}

	journals, err := sessionFor(c, h.sessions).ListJournals(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondError(c, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponses(journals))
}

// createJournal godoc
// @Summary Create a journal
// @Description Creates a journal; name, code and journal type are required
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal details"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 201 {object} dto.JournalResponse "Created journal"
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 409 {object} dto.ErrorResponse "Journal code already in use"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Failed to bind JSON for CreateJournal")
		return
	}

	journal, err := sessionFor(c, h.sessions).CreateJournal(c.Request.Context(), req.ToNewJournal())
	if err != nil {
		respondError(c, err, "Failed to create journal")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Journal created successfully", slog.String("journal_id", journal.JournalID), slog.String("code", journal.Code))
	c.JSON(http.StatusCreated, dto.ToJournalResponse(*journal))
}

// deleteJournal godoc
// @Summary Delete a journal
// @Description Deletes a journal and drops it from the session's view
// @Tags journals
// @Param   journalID path string true "Journal ID"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Journal not found"
// @Failure 409 {object} dto.ErrorResponse "Journal cannot be deleted in its current state"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable"
// @Router /journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	journalID := c.Param("journalID")

	if err := sessionFor(c, h.sessions).DeleteJournal(c.Request.Context(), journalID); err != nil {
		respondError(c, err, "Failed to delete journal")
		return
	}

	middleware.GetLoggerFromContext(c).Info("Journal deleted successfully", slog.String("journal_id", journalID))
	c.Status(http.StatusNoContent)
}

// listEntries godoc
// @Summary Select a journal and list its entries
// @Description Loads the journal's entries into the session's view; an unknown journal yields an empty list
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   X-Session-ID header string false "Ledger session id"
// @Success 200 {object} dto.ListEntriesResponse "Journal entries"
// @Failure 400 {object} dto.ErrorResponse "Malformed journal id"
// @Failure 409 {object} dto.ErrorResponse "Replaced by a newer selection"
// @Failure 502 {object} dto.ErrorResponse "Store unavailable (strict mode)"
// @Router /journals/{journalID}/entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	journalID := c.Param("journalID")

	entries, err := sessionFor(c, h.sessions).SelectJournal(c.Request.Context(), journalID)
	if err != nil {
		respondError(c, err, "Failed to load journal entries")
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Journal entries loaded", slog.String("journal_id", journalID), slog.Int("count", len(entries)))
	c.JSON(http.StatusOK, dto.ListEntriesResponse{JournalID: journalID, Entries: entries})
}
