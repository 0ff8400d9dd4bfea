package dto

import "github.com/SscSPs/ledger_desk/internal/core/domain"

// LedgerViewResponse is the session's cached ledger view.
type LedgerViewResponse struct {
	Accounts        []AccountResponse     `json:"accounts"`
	Journals        []JournalResponse     `json:"journals"`
	ActiveJournalID string                `json:"activeJournalId,omitempty"`
	Entries         []domain.JournalEntry `json:"entries"`
}

// ToLedgerViewResponse converts a domain.LedgerView.
func ToLedgerViewResponse(v domain.LedgerView) LedgerViewResponse {
	entries := v.Entries
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return LedgerViewResponse{
		Accounts:        ToAccountResponses(v.Accounts),
		Journals:        ToJournalResponses(v.Journals),
		ActiveJournalID: v.ActiveJournalID,
		Entries:         entries,
	}
}
