package services_test

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/ledger_desk/internal/apperrors"
	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LedgerSessionTestSuite struct {
	suite.Suite
	accounts *MockAccountRepository
	journals *MockJournalRepository
	entries  *MockEntryRepository
	session  *services.LedgerSession
	ctx      context.Context
}

func (s *LedgerSessionTestSuite) SetupTest() {
	s.accounts = new(MockAccountRepository)
	s.journals = new(MockJournalRepository)
	s.entries = new(MockEntryRepository)
	s.session = services.NewLedgerSession(&portsrepo.RepositoryProvider{
		AccountRepo: s.accounts,
		JournalRepo: s.journals,
		EntryRepo:   s.entries,
		EntryLister: s.entries,
	})
	s.ctx = context.Background()
}

func TestLedgerSessionTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerSessionTestSuite))
}

func balancedInput() domain.EntryInput {
	return domain.EntryInput{
		Journal:     domain.RefFromString(journalA),
		Description: "Cash sale",
		Lines: []domain.LineInput{
			{Account: domain.RefFromString("1000"), Description: "cash", Debit: domain.ParseAmount("40")},
			{Account: domain.RefFromString("Sales"), Description: "sale", Credit: domain.ParseAmount("40")},
		},
	}
}

func (s *LedgerSessionTestSuite) TestCreateEntry_SubmitsCanonicalAndPrepends() {
	s.entries.On("ListEntriesByJournal", mock.Anything, journalA).
		Return([]domain.JournalEntry{{EntryID: "old", JournalID: journalA}}, nil).Once()
	_, err := s.session.SelectJournal(s.ctx, journalA)
	s.Require().NoError(err)

	s.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(fixtureAccounts(), nil).Once()
	s.entries.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e domain.CanonicalEntry) bool {
		return e.JournalID == journalA &&
			len(e.Lines) == 2 &&
			e.Lines[0].AccountID == "acc-cash" &&
			e.Lines[1].AccountID == "acc-sales" &&
			e.TotalDebit.Equal(decimal.NewFromInt(40))
	})).Return(&domain.JournalEntry{EntryID: "new", JournalID: journalA}, nil).Once()

	created, err := s.session.CreateEntry(s.ctx, balancedInput())
	s.Require().NoError(err)
	s.Equal("new", created.EntryID)
	s.Equal([]string{"new", "old"}, entryIDs(s.session.Snapshot().Entries))

	s.accounts.AssertExpectations(s.T())
	s.entries.AssertExpectations(s.T())
}

func (s *LedgerSessionTestSuite) TestCreateEntry_UnbalancedNeverReachesStore() {
	s.accounts.On("ListAccounts", mock.Anything, domain.AccountFilter{}).Return(fixtureAccounts(), nil).Once()
	input := balancedInput()
	input.Lines[1].Credit = domain.ParseAmount("39.99")

	_, err := s.session.CreateEntry(s.ctx, input)

	var verrs apperrors.ValidationErrors
	s.Require().ErrorAs(err, &verrs)
	s.True(verrs.HasCode(apperrors.CodeUnbalanced))
	s.entries.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (s *LedgerSessionTestSuite) TestCreateEntry_StoreFailureLeavesCacheUntouched() {
	s.entries.On("ListEntriesByJournal", mock.Anything, journalA).Return([]domain.JournalEntry{}, nil).Once()
	_, err := s.session.SelectJournal(s.ctx, journalA)
	s.Require().NoError(err)

	s.accounts.On("ListAccounts", mock.Anything, mock.Anything).Return(fixtureAccounts(), nil).Once()
	s.entries.On("CreateEntry", mock.Anything, mock.Anything).
		Return(nil, &apperrors.TransientFetchError{Op: "create entry", Status: 503}).Once()

	_, err = s.session.CreateEntry(s.ctx, balancedInput())
	s.ErrorIs(err, apperrors.ErrTransient)
	s.Empty(s.session.Snapshot().Entries)
}

func (s *LedgerSessionTestSuite) TestCreateEntry_AccountListFailure() {
	s.accounts.On("ListAccounts", mock.Anything, mock.Anything).Return(nil, errors.New("down")).Once()

	_, err := s.session.CreateEntry(s.ctx, balancedInput())
	s.Error(err)
	s.entries.AssertNotCalled(s.T(), "CreateEntry", mock.Anything, mock.Anything)
}

func (s *LedgerSessionTestSuite) TestValidateEntry_LoadsAccountsOnce() {
	s.accounts.On("ListAccounts", mock.Anything, mock.Anything).Return(fixtureAccounts(), nil).Once()

	_, err := s.session.ValidateEntry(s.ctx, balancedInput())
	s.Require().NoError(err)
	_, err = s.session.ValidateEntry(s.ctx, balancedInput())
	s.Require().NoError(err)

	s.accounts.AssertNumberOfCalls(s.T(), "ListAccounts", 1)
}

func (s *LedgerSessionTestSuite) TestResolveAccount() {
	s.accounts.On("ListAccounts", mock.Anything, mock.Anything).Return(fixtureAccounts(), nil).Once()

	id, err := s.session.ResolveAccount(s.ctx, domain.RefFromString("Rent (6100)"))
	s.Require().NoError(err)
	s.Equal("acc-rent", id)

	_, err = s.session.ResolveAccount(s.ctx, domain.RefFromString("9999"))
	s.ErrorIs(err, apperrors.ErrMalformedReference)
}

func (s *LedgerSessionTestSuite) TestDeleteEntry() {
	s.entries.On("ListEntriesByJournal", mock.Anything, journalA).
		Return([]domain.JournalEntry{{EntryID: "e1", JournalID: journalA}, {EntryID: "e2", JournalID: journalA}}, nil).Once()
	_, err := s.session.SelectJournal(s.ctx, journalA)
	s.Require().NoError(err)

	s.entries.On("DeleteEntry", mock.Anything, "e1").Return(nil).Once()
	s.entries.On("DeleteEntry", mock.Anything, "gone").Return(&apperrors.NotFoundError{Resource: "entry", ID: "gone"}).Once()

	s.Require().NoError(s.session.DeleteEntry(s.ctx, " e1 "))
	s.Equal([]string{"e2"}, entryIDs(s.session.Snapshot().Entries))

	s.ErrorIs(s.session.DeleteEntry(s.ctx, "gone"), apperrors.ErrNotFound)
	s.ErrorIs(s.session.DeleteEntry(s.ctx, "  "), apperrors.ErrMalformedReference)
	s.Len(s.session.Snapshot().Entries, 1)
}

func (s *LedgerSessionTestSuite) TestSelectJournal_ErrorKeepsPreviousView() {
	s.entries.On("ListEntriesByJournal", mock.Anything, journalA).
		Return([]domain.JournalEntry{{EntryID: "e1", JournalID: journalA}}, nil).Once()
	s.entries.On("ListEntriesByJournal", mock.Anything, journalB).
		Return(nil, &apperrors.TransientFetchError{Op: "list", Status: 500}).Once()

	_, err := s.session.SelectJournal(s.ctx, journalA)
	s.Require().NoError(err)
	_, err = s.session.SelectJournal(s.ctx, journalB)
	s.ErrorIs(err, apperrors.ErrTransient)

	snap := s.session.Snapshot()
	s.Equal(journalA, snap.ActiveJournalID)
	s.Equal([]string{"e1"}, entryIDs(snap.Entries))
}

// blockingLister holds the fetch for journalA until released, so a second
// selection can overtake it.
type blockingLister struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingLister) ListEntriesByJournal(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	if journalID == journalA {
		close(b.started)
		<-b.release
		return []domain.JournalEntry{{EntryID: "stale", JournalID: journalA}}, nil
	}
	return []domain.JournalEntry{{EntryID: "fresh", JournalID: journalB}}, nil
}

func TestSelectJournal_SupersededFetchDoesNotWriteCache(t *testing.T) {
	lister := &blockingLister{started: make(chan struct{}), release: make(chan struct{})}
	session := services.NewLedgerSession(&portsrepo.RepositoryProvider{
		AccountRepo: new(MockAccountRepository),
		JournalRepo: new(MockJournalRepository),
		EntryRepo:   new(MockEntryRepository),
		EntryLister: lister,
	})
	ctx := context.Background()

	var (
		wg       sync.WaitGroup
		firstErr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, firstErr = session.SelectJournal(ctx, journalA)
	}()

	select {
	case <-lister.started:
	case <-time.After(2 * time.Second):
		t.Fatal("first fetch never started")
	}

	entries, err := session.SelectJournal(ctx, journalB)
	require.NoError(t, err)
	assert.Equal(t, "fresh", entries[0].EntryID)

	close(lister.release)
	wg.Wait()

	assert.ErrorIs(t, firstErr, services.ErrFetchSuperseded)
	assert.ErrorIs(t, firstErr, apperrors.ErrSuperseded)
	snap := session.Snapshot()
	assert.Equal(t, journalB, snap.ActiveJournalID)
	assert.Equal(t, []string{"fresh"}, entryIDs(snap.Entries))
}

func TestSelectJournal_FetchCancelledByNewerSelection(t *testing.T) {
	fetcher := &cancelAwareFetcher{started: make(chan struct{}, 1)}
	session := services.NewLedgerSession(&portsrepo.RepositoryProvider{
		AccountRepo: new(MockAccountRepository),
		JournalRepo: new(MockJournalRepository),
		EntryRepo:   new(MockEntryRepository),
		EntryLister: services.NewEntryFetchResolver(fetcher),
	})

	done := make(chan error, 1)
	go func() {
		_, err := session.SelectJournal(context.Background(), journalA)
		done <- err
	}()
	<-fetcher.started

	fetcher.stopBlocking()
	_, err := session.SelectJournal(context.Background(), journalB)
	require.NoError(t, err)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, services.ErrFetchSuperseded)
	case <-time.After(2 * time.Second):
		t.Fatal("first selection was not cancelled")
	}
}

// cancelAwareFetcher blocks the first call until its context is cancelled and
// answers every later call with an empty listing.
type cancelAwareFetcher struct {
	started chan struct{}
	mu      sync.Mutex
	noBlock bool
}

func (f *cancelAwareFetcher) stopBlocking() {
	f.mu.Lock()
	f.noBlock = true
	f.mu.Unlock()
}

func (f *cancelAwareFetcher) FetchRaw(ctx context.Context, path string, query url.Values) ([]byte, error) {
	f.mu.Lock()
	block := !f.noBlock
	f.mu.Unlock()
	if !block {
		return []byte(`[]`), nil
	}
	select {
	case f.started <- struct{}{}:
	default:
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (s *LedgerSessionTestSuite) TestDeleteJournal_ActiveJournalClearsView() {
	s.entries.On("ListEntriesByJournal", mock.Anything, journalA).
		Return([]domain.JournalEntry{{EntryID: "e1", JournalID: journalA}}, nil).Once()
	_, err := s.session.SelectJournal(s.ctx, journalA)
	s.Require().NoError(err)

	s.journals.On("DeleteJournal", mock.Anything, journalA).Return(nil).Once()
	s.Require().NoError(s.session.DeleteJournal(s.ctx, journalA))

	snap := s.session.Snapshot()
	s.Empty(snap.ActiveJournalID)
	s.Empty(snap.Entries)
}
