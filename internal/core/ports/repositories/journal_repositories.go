package repositories

import (
	"context"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
)

// JournalReader defines read operations for journal data
type JournalReader interface {
	// ListJournals retrieves the journals matching filter.
	ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, error)
}

// JournalWriter defines write operations for journal data
type JournalWriter interface {
	// CreateJournal persists a new journal. A code collision is reported as *apperrors.DuplicateCodeError.
	CreateJournal(ctx context.Context, journal domain.NewJournal) (*domain.Journal, error)

	// DeleteJournal removes a journal. A missing journal is reported as *apperrors.NotFoundError.
	DeleteJournal(ctx context.Context, journalID string) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
