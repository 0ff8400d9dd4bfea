package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the postgres repositories. Entries are listed
// straight from the entries table; no fallback chain is needed.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)

	return &portsrepo.RepositoryProvider{
		AccountRepo: newPgxAccountRepository(dbPool),
		JournalRepo: newPgxJournalRepository(dbPool),
		EntryRepo:   entryRepo,
		EntryLister: entryRepo,
	}
}
