package dto

import (
	"fmt"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/core/normalize"
	"github.com/tidwall/gjson"
)

// DecodeEntryInput reads a candidate entry from a request body. The journal may
// arrive under journalId, journal, journal_id or journalID and each line's
// account under accountId, account, account_id or accountID; either may be a
// bare value or an embedded object.
func DecodeEntryInput(body []byte) (domain.EntryInput, error) {
	if !gjson.ValidBytes(body) {
		return domain.EntryInput{}, fmt.Errorf("request body is not valid JSON")
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return domain.EntryInput{}, fmt.Errorf("request body must be a JSON object")
	}

	input := domain.EntryInput{
		Journal:     domain.ReferenceFromJSON(normalize.First(root, normalize.JournalKeys()...)),
		Description: root.Get("description").String(),
	}

	lines := root.Get("lines")
	switch {
	case !lines.Exists() || lines.Type == gjson.Null:
		return input, nil
	case !lines.IsArray():
		return domain.EntryInput{}, fmt.Errorf("lines must be an array")
	}

	for i, l := range lines.Array() {
		if !l.IsObject() {
			return domain.EntryInput{}, fmt.Errorf("line %d must be an object", i+1)
		}
		input.Lines = append(input.Lines, domain.LineInput{
			Account:     domain.ReferenceFromJSON(normalize.First(l, normalize.AccountKeys()...)),
			Description: l.Get("description").String(),
			Debit:       domain.AmountFromJSON(l.Get("debit")),
			Credit:      domain.AmountFromJSON(l.Get("credit")),
		})
	}
	return input, nil
}

// ListEntriesResponse is returned when a journal is selected.
type ListEntriesResponse struct {
	JournalID string                `json:"journalId"`
	Entries   []domain.JournalEntry `json:"entries"`
}

// ValidateEntryResponse is returned by the dry-run endpoint.
type ValidateEntryResponse struct {
	Valid bool                   `json:"valid"`
	Entry *domain.CanonicalEntry `json:"entry,omitempty"`
}
