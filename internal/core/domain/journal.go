package domain

import (
	"regexp"
	"strings"
	"time"
)

// JournalType categorises a journal.
type JournalType string

const (
	GeneralJournal  JournalType = "GENERAL"
	SalesJournal    JournalType = "SALES"
	PurchaseJournal JournalType = "PURCHASE"
	CashJournal     JournalType = "CASH"
	BankJournal     JournalType = "BANK"
)

// Journal is a named ledger into which entries are grouped.
type Journal struct {
	JournalID   string      `json:"id"`
	Name        string      `json:"name"`
	Code        string      `json:"code"` // Unique, enforced by the store
	JournalType JournalType `json:"journalType"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// NewJournal carries the fields required to create a journal.
type NewJournal struct {
	Name        string      `json:"name" validate:"required"`
	Code        string      `json:"code" validate:"required"`
	JournalType JournalType `json:"journalType" validate:"required"`
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (n NewJournal) Trimmed() NewJournal {
	return NewJournal{
		Name:        strings.TrimSpace(n.Name),
		Code:        strings.TrimSpace(n.Code),
		JournalType: JournalType(strings.TrimSpace(string(n.JournalType))),
	}
}

// JournalFilter narrows a journal listing. Empty fields are ignored.
type JournalFilter struct {
	JournalType JournalType
	Code        string
}

// Matches reports whether j satisfies every non-empty field of the filter.
func (f JournalFilter) Matches(j Journal) bool {
	if f.JournalType != "" && !strings.EqualFold(string(f.JournalType), string(j.JournalType)) {
		return false
	}
	if f.Code != "" && f.Code != j.Code {
		return false
	}
	return true
}

// journalIDPattern is the store's identifier format: 24 hexadecimal characters.
var journalIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// IsJournalID reports whether s has the store's journal identifier format.
func IsJournalID(s string) bool {
	return journalIDPattern.MatchString(s)
}
