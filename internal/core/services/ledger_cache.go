package services

import (
	"sync"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
)

// LedgerCache is the session-local projection of accounts, journals and the
// entries of the active journal. It is not a source of truth: mutations are
// applied only after the store confirmed them, and nothing is revalidated in
// the background. Concurrent sessions are not reconciled.
type LedgerCache struct {
	mu              sync.RWMutex
	accounts        []domain.Account
	journals        []domain.Journal
	activeJournalID string
	entries         []domain.JournalEntry
}

// NewLedgerCache creates an empty cache.
func NewLedgerCache() *LedgerCache {
	return &LedgerCache{}
}

func (c *LedgerCache) SetAccounts(accounts []domain.Account) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accounts = append([]domain.Account(nil), accounts...)
}

func (c *LedgerCache) Accounts() []domain.Account {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Account(nil), c.accounts...)
}

func (c *LedgerCache) SetJournals(journals []domain.Journal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.journals = append([]domain.Journal(nil), journals...)
}

func (c *LedgerCache) Journals() []domain.Journal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Journal(nil), c.journals...)
}

// PrependJournal puts a store-confirmed journal at the front of the list.
func (c *LedgerCache) PrependJournal(j domain.Journal) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.journals = append([]domain.Journal{j}, removeJournal(c.journals, j.JournalID)...)
}

// RemoveJournal drops a journal by id. Deleting the active journal clears the entry view.
func (c *LedgerCache) RemoveJournal(journalID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	before := len(c.journals)
	c.journals = removeJournal(c.journals, journalID)
	if c.activeJournalID == journalID {
		c.activeJournalID = ""
		c.entries = nil
	}
	return len(c.journals) != before
}

func removeJournal(journals []domain.Journal, id string) []domain.Journal {
	out := make([]domain.Journal, 0, len(journals))
	for _, j := range journals {
		if j.JournalID != id {
			out = append(out, j)
		}
	}
	return out
}

// SetEntries replaces the entry view with the entries of journalID and makes it active.
func (c *LedgerCache) SetEntries(journalID string, entries []domain.JournalEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeJournalID = journalID
	c.entries = append([]domain.JournalEntry(nil), entries...)
}

func (c *LedgerCache) ActiveJournalID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.activeJournalID
}

func (c *LedgerCache) Entries() []domain.JournalEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.JournalEntry(nil), c.entries...)
}

// PrependEntry puts a store-confirmed entry at the front of the view when it
// belongs to the active journal. It reports whether the view changed.
func (c *LedgerCache) PrependEntry(e domain.JournalEntry) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.activeJournalID == "" || e.JournalID != c.activeJournalID {
		return false
	}
	c.entries = append([]domain.JournalEntry{e}, c.entries...)
	return true
}

// RemoveEntry drops an entry by id.
func (c *LedgerCache) RemoveEntry(entryID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, e := range c.entries {
		if e.EntryID == entryID {
			c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot copies the whole cache.
func (c *LedgerCache) Snapshot() domain.LedgerView {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.LedgerView{
		Accounts:        append([]domain.Account{}, c.accounts...),
		Journals:        append([]domain.Journal{}, c.journals...),
		ActiveJournalID: c.activeJournalID,
		Entries:         append([]domain.JournalEntry{}, c.entries...),
	}
}
