package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
)

// ErrFetchSuperseded is returned by SelectJournal when a newer selection was made
// while the fetch was in flight. The cache keeps the newer selection's data.
var ErrFetchSuperseded = fmt.Errorf("entry fetch superseded by a newer journal selection: %w", apperrors.ErrSuperseded)

// LedgerSession wires the ledger core for one dashboard session: user actions go
// through validation, then the store, then the view cache.
type LedgerSession struct {
	BaseService
	cache     *LedgerCache
	directory *AccountDirectory
	registry  *JournalRegistry
	validator *EntryValidator
	entries   portsrepo.EntryWriter
	lister    portsrepo.EntryLister

	mu           sync.Mutex
	fetchSeq     uint64
	fetchJournal string
	cancelFetch  context.CancelFunc
}

// NewLedgerSession creates a session with an empty cache over the given stores.
func NewLedgerSession(repos *portsrepo.RepositoryProvider) *LedgerSession {
	cache := NewLedgerCache()
	directory := NewAccountDirectory(repos.AccountRepo, cache)
	return &LedgerSession{
		cache:     cache,
		directory: directory,
		registry:  NewJournalRegistry(repos.JournalRepo, cache),
		validator: NewEntryValidator(directory),
		entries:   repos.EntryRepo,
		lister:    repos.EntryLister,
	}
}

var _ portssvc.LedgerSessionSvc = (*LedgerSession)(nil)

// Directory exposes the session's account directory.
func (s *LedgerSession) Directory() *AccountDirectory { return s.directory }

func (s *LedgerSession) RefreshAccounts(ctx context.Context) ([]domain.Account, error) {
	return s.directory.Refresh(ctx, domain.AccountFilter{})
}

func (s *LedgerSession) ResolveAccount(ctx context.Context, ref domain.Reference) (string, error) {
	if err := s.ensureAccounts(ctx); err != nil {
		return "", err
	}
	id, ok := s.directory.Resolve(ref)
	if !ok {
		return "", &apperrors.MalformedReferenceError{Kind: "account", Value: ref.Raw()}
	}
	return id, nil
}

func (s *LedgerSession) ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, error) {
	return s.registry.List(ctx, filter)
}

func (s *LedgerSession) CreateJournal(ctx context.Context, journal domain.NewJournal) (*domain.Journal, error) {
	return s.registry.Create(ctx, journal)
}

// DeleteJournal deletes a journal; deleting the active journal also drops any
// fetch still in flight for it.
func (s *LedgerSession) DeleteJournal(ctx context.Context, journalID string) error {
	if err := s.registry.Delete(ctx, journalID); err != nil {
		return err
	}
	s.mu.Lock()
	if s.cancelFetch != nil && s.fetchJournal == strings.TrimSpace(journalID) {
		s.cancelFetch()
		s.cancelFetch = nil
		s.fetchSeq++
	}
	s.mu.Unlock()
	return nil
}

// SelectJournal cancels the previous selection's fetch, loads journalID's entries
// and stores them in the cache, unless a newer selection arrived meanwhile.
func (s *LedgerSession) SelectJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	journalID = strings.TrimSpace(journalID)

	s.mu.Lock()
	if s.cancelFetch != nil {
		s.cancelFetch()
	}
	s.fetchSeq++
	seq := s.fetchSeq
	fetchCtx, cancel := context.WithCancel(ctx)
	s.cancelFetch = cancel
	s.fetchJournal = journalID
	s.mu.Unlock()
	defer cancel()

	entries, err := s.lister.ListEntriesByJournal(fetchCtx, journalID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.fetchSeq {
		s.LogDebug(ctx, "Discarding superseded entry fetch", slog.String("journal_id", journalID))
		return nil, ErrFetchSuperseded
	}
	s.cancelFetch = nil
	if err != nil {
		return nil, err
	}
	s.cache.SetEntries(journalID, entries)
	return entries, nil
}

// ValidateEntry runs the validation engine without creating anything.
func (s *LedgerSession) ValidateEntry(ctx context.Context, input domain.EntryInput) (*domain.CanonicalEntry, error) {
	if err := s.ensureAccounts(ctx); err != nil {
		return nil, err
	}
	return s.validator.ValidateAndPrepare(input)
}

// CreateEntry validates input and, only when it is clean, submits the canonical
// entry. The store's confirmed record is put at the front of the entry view.
func (s *LedgerSession) CreateEntry(ctx context.Context, input domain.EntryInput) (*domain.JournalEntry, error) {
	canonical, err := s.ValidateEntry(ctx, input)
	if err != nil {
		return nil, err
	}

	created, err := s.entries.CreateEntry(ctx, *canonical)
	if err != nil {
		s.LogError(ctx, err, "Failed to create journal entry", slog.String("journal_id", canonical.JournalID))
		return nil, fmt.Errorf("failed to create journal entry: %w", err)
	}
	if created.JournalID == "" {
		created.JournalID = canonical.JournalID
	}
	s.cache.PrependEntry(*created)
	s.LogInfo(ctx, "Journal entry created successfully", slog.String("entry_id", created.EntryID), slog.String("journal_id", created.JournalID))
	return created, nil
}

func (s *LedgerSession) DeleteEntry(ctx context.Context, entryID string) error {
	entryID = strings.TrimSpace(entryID)
	if entryID == "" {
		return &apperrors.MalformedReferenceError{Kind: "entry", Value: entryID}
	}
	if err := s.entries.DeleteEntry(ctx, entryID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		}
		return err
	}
	s.cache.RemoveEntry(entryID)
	s.LogInfo(ctx, "Journal entry deleted successfully", slog.String("entry_id", entryID))
	return nil
}

func (s *LedgerSession) Snapshot() domain.LedgerView {
	return s.cache.Snapshot()
}

// ensureAccounts loads the directory once when nothing has been loaded yet.
func (s *LedgerSession) ensureAccounts(ctx context.Context) error {
	if len(s.directory.Accounts()) > 0 {
		return nil
	}
	_, err := s.RefreshAccounts(ctx)
	return err
}
