package dto

import (
	"time"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a new journal.
// Presence of the fields is checked by the registry so that every missing
// field is reported at once.
type CreateJournalRequest struct {
	Name        string             `json:"name" binding:"max=100"`
	Code        string             `json:"code" binding:"max=20"`
	JournalType domain.JournalType `json:"journalType" binding:"omitempty,oneof=GENERAL SALES PURCHASE CASH BANK"`
}

// ToNewJournal converts the request into the domain input.
func (r CreateJournalRequest) ToNewJournal() domain.NewJournal {
	return domain.NewJournal{Name: r.Name, Code: r.Code, JournalType: r.JournalType}
}

// ListJournalsParams defines the query parameters for listing journals.
type ListJournalsParams struct {
	JournalType domain.JournalType `form:"journalType" binding:"omitempty,oneof=GENERAL SALES PURCHASE CASH BANK"`
	Code        string             `form:"code" binding:"omitempty,max=20"`
}

// ToFilter converts the params into the domain filter.
func (p ListJournalsParams) ToFilter() domain.JournalFilter {
	return domain.JournalFilter{JournalType: p.JournalType, Code: p.Code}
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID   string             `json:"id"`
	Name        string             `json:"name"`
	Code        string             `json:"code"`
	JournalType domain.JournalType `json:"journalType"`
	CreatedAt   *time.Time         `json:"createdAt,omitempty"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j domain.Journal) JournalResponse {
	res := JournalResponse{
		JournalID:   j.JournalID,
		Name:        j.Name,
		Code:        j.Code,
		JournalType: j.JournalType,
	}
	if !j.CreatedAt.IsZero() {
		createdAt := j.CreatedAt
		res.CreatedAt = &createdAt
	}
	return res
}

// ToJournalResponses converts a slice of domain.Journal.
func ToJournalResponses(journals []domain.Journal) []JournalResponse {
	res := make([]JournalResponse, len(journals))
	for i, j := range journals {
		res[i] = ToJournalResponse(j)
	}
	return res
}
