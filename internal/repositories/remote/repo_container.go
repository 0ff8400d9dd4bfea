package remote

import (
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/core/services"
)

// NewRepositoryProvider wires the remote repositories. Entries of a journal are
// listed through the fallback chain of services.EntryFetchResolver.
func NewRepositoryProvider(client *Client, resolverOpts ...services.ResolverOption) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		AccountRepo: NewAccountRepository(client),
		JournalRepo: NewJournalRepository(client),
		EntryRepo:   NewEntryRepository(client),
		EntryLister: services.NewEntryFetchResolver(client, resolverOpts...),
	}
}
