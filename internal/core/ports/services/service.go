package services

import (
	"context"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
)

// AccountResolver turns a loosely typed account reference into a canonical account id.
type AccountResolver interface {
	Resolve(ref domain.Reference) (string, bool)
}

// LedgerSessionSvc is the ledger core as seen by one dashboard session.
type LedgerSessionSvc interface {
	// RefreshAccounts re-runs the account listing and replaces the directory.
	RefreshAccounts(ctx context.Context) ([]domain.Account, error)

	// ResolveAccount resolves ref against the loaded directory.
	ResolveAccount(ctx context.Context, ref domain.Reference) (string, error)

	ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, error)
	CreateJournal(ctx context.Context, journal domain.NewJournal) (*domain.Journal, error)
	DeleteJournal(ctx context.Context, journalID string) error

	// SelectJournal makes journalID the active selection and loads its entries.
	// A selection made later supersedes one still in flight.
	SelectJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error)

	ValidateEntry(ctx context.Context, input domain.EntryInput) (*domain.CanonicalEntry, error)
	CreateEntry(ctx context.Context, input domain.EntryInput) (*domain.JournalEntry, error)
	DeleteEntry(ctx context.Context, entryID string) error

	// Snapshot returns a copy of the session's view cache.
	Snapshot() domain.LedgerView
}

// SessionProvider hands out the ledger session bound to a session id.
type SessionProvider interface {
	Session(sessionID string) LedgerSessionSvc
}
