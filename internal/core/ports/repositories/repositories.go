package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// Both store backends (remote service and postgres) build one of these.
type RepositoryProvider struct {
	AccountRepo AccountReader
	JournalRepo JournalRepositoryFacade
	EntryRepo   EntryWriter
	EntryLister EntryLister
}
