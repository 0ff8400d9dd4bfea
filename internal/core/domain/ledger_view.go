package domain

// LedgerView is a point-in-time copy of a session's view cache.
type LedgerView struct {
	Accounts        []Account      `json:"accounts"`
	Journals        []Journal      `json:"journals"`
	ActiveJournalID string         `json:"activeJournalId,omitempty"`
	Entries         []JournalEntry `json:"entries"`
}
