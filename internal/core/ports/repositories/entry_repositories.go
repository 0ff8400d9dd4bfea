package repositories

import (
	"context"
	"net/url"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
)

// EntryWriter defines write operations for journal entries.
type EntryWriter interface {
	// CreateEntry submits a validated entry and returns the record the store confirmed.
	CreateEntry(ctx context.Context, entry domain.CanonicalEntry) (*domain.JournalEntry, error)

	// DeleteEntry removes an entry by id. A missing entry is reported as *apperrors.NotFoundError.
	DeleteEntry(ctx context.Context, entryID string) error
}

// EntryLister retrieves the entries of one journal. An empty result is not an error.
type EntryLister interface {
	ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error)
}

// RawFetcher issues a GET against the store and returns the undecoded body.
// Errors are already classified (see apperrors).
type RawFetcher interface {
	FetchRaw(ctx context.Context, path string, query url.Values) ([]byte, error)
}

// EntryRepositoryFacade combines the entry write and list operations.
type EntryRepositoryFacade interface {
	EntryWriter
	EntryLister
}
