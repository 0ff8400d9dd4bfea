package services_test

import (
	"context"
	"net/url"
	"sync"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountReader = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) ListJournals(ctx context.Context, filter domain.JournalFilter) ([]domain.Journal, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) CreateJournal(ctx context.Context, journal domain.NewJournal) (*domain.Journal, error) {
	args := m.Called(ctx, journal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	args := m.Called(ctx, journalID)
	return args.Error(0)
}

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

var _ portsrepo.EntryRepositoryFacade = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) CreateEntry(ctx context.Context, entry domain.CanonicalEntry) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	args := m.Called(ctx, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// fakeFetcher answers FetchRaw from a table keyed by path plus encoded query
// and records every call in order.
type fakeFetcher struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
}

type fakeResponse struct {
	body string
	err  error
}

var _ portsrepo.RawFetcher = (*fakeFetcher)(nil)

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{responses: make(map[string]fakeResponse)}
}

func fetchKey(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func (f *fakeFetcher) on(key, body string, err error) *fakeFetcher {
	f.responses[key] = fakeResponse{body: body, err: err}
	return f
}

func (f *fakeFetcher) FetchRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	key := fetchKey(path, query)
	f.mu.Lock()
	f.calls = append(f.calls, key)
	resp, ok := f.responses[key]
	f.mu.Unlock()
	if !ok {
		return []byte(`[]`), nil
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return []byte(resp.body), nil
}

func (f *fakeFetcher) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Fixtures shared by the service tests.
const (
	journalA = "64b7f0c2a1b2c3d4e5f60718"
	journalB = "64b7f0c2a1b2c3d4e5f60719"
)

func fixtureAccounts() []domain.Account {
	return []domain.Account{
		{AccountID: "acc-cash", Code: "1000", Name: "Cash", AccountType: domain.Asset},
		{AccountID: "acc-sales", Code: "4000", Name: "Sales", AccountType: domain.Revenue},
		{AccountID: "acc-rent", Code: "6100", Name: "Rent", AccountType: domain.Expense},
	}
}
