package mapping

import (
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		Name:        d.Name,
		Code:        d.Code,
		JournalType: string(d.JournalType),
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		Name:        m.Name,
		Code:        m.Code,
		JournalType: domain.JournalType(m.JournalType),
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine.
// The account display fields are kept when the join found the account.
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	line := domain.JournalLine{
		LineID:      m.LineID,
		AccountID:   m.AccountID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
	}
	if m.AccountCode != "" || m.AccountName != "" {
		line.Account = &domain.DisplayRef{ID: m.AccountID, Code: m.AccountCode, Name: m.AccountName}
	}
	return line
}

// ToDomainJournalEntry converts a model JournalEntry and its lines to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry, lines []models.JournalLine) domain.JournalEntry {
	entry := domain.JournalEntry{
		EntryID:     m.EntryID,
		JournalID:   m.JournalID,
		Description: m.Description,
		Lines:       make([]domain.JournalLine, 0, len(lines)),
		TotalDebit:  m.TotalDebit,
		TotalCredit: m.TotalCredit,
		CreatedAt:   m.CreatedAt,
	}
	if m.JournalCode != "" || m.JournalName != "" {
		entry.Journal = &domain.DisplayRef{ID: m.JournalID, Code: m.JournalCode, Name: m.JournalName}
	}
	for _, l := range lines {
		entry.Lines = append(entry.Lines, ToDomainJournalLine(l))
	}
	return entry
}

// ToModelJournalLines converts canonical lines into rows for entryID, numbering them from 1.
func ToModelJournalLines(entryID string, lines []domain.CanonicalLine, newID func() string) []models.JournalLine {
	rows := make([]models.JournalLine, len(lines))
	for i, l := range lines {
		rows[i] = models.JournalLine{
			LineID:      newID(),
			EntryID:     entryID,
			LineNo:      i + 1,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return rows
}
