package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_desk/internal/core/ports/services"
)

// AccountDirectory resolves account references against the accounts held in the
// view cache. The list itself comes from the account store and is replaced
// wholesale on Refresh.
type AccountDirectory struct {
	BaseService
	store portsrepo.AccountReader
	cache *LedgerCache
}

// NewAccountDirectory creates a directory over store whose list lives in cache.
func NewAccountDirectory(store portsrepo.AccountReader, cache *LedgerCache) *AccountDirectory {
	return &AccountDirectory{store: store, cache: cache}
}

var _ portssvc.AccountResolver = (*AccountDirectory)(nil)

// Refresh re-runs the account listing and replaces the loaded list.
func (d *AccountDirectory) Refresh(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	accounts, err := d.store.ListAccounts(ctx, filter)
	if err != nil {
		d.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	d.cache.SetAccounts(accounts)
	d.LogDebug(ctx, "Account directory refreshed", slog.Int("account_count", len(accounts)))
	return accounts, nil
}

// Load replaces the loaded list without a store call.
func (d *AccountDirectory) Load(accounts []domain.Account) {
	d.cache.SetAccounts(accounts)
}

// Accounts returns the loaded list.
func (d *AccountDirectory) Accounts() []domain.Account {
	return d.cache.Accounts()
}

// Resolve implements portssvc.AccountResolver over the loaded list.
func (d *AccountDirectory) Resolve(ref domain.Reference) (string, bool) {
	return ResolveAccount(d.cache.Accounts(), ref)
}

// ResolveAccount returns the canonical id of the account ref points at.
//
// A bare value is compared, in order, with every account's id, code, name and
// "name (code)" label. An embedded object is compared by its id field, then its
// code, then its name, then its name against the label. Each step scans the whole
// list before the next one starts, so an id match always wins over a code match.
// A miss is reported with false; it never means "create a new account".
func ResolveAccount(accounts []domain.Account, ref domain.Reference) (string, bool) {
	type candidate struct {
		value string
		field func(domain.Account) string
	}
	id := func(a domain.Account) string { return a.AccountID }
	code := func(a domain.Account) string { return a.Code }
	name := func(a domain.Account) string { return a.Name }
	label := func(a domain.Account) string { return a.Label() }

	var candidates []candidate
	switch ref.Kind {
	case domain.RefValue:
		candidates = []candidate{{ref.Value, id}, {ref.Value, code}, {ref.Value, name}, {ref.Value, label}}
	case domain.RefObject:
		candidates = []candidate{{ref.ID, id}, {ref.Code, code}, {ref.Name, name}, {ref.Name, label}}
	default:
		return "", false
	}

	for _, c := range candidates {
		if c.value == "" {
			continue
		}
		for _, a := range accounts {
			if c.field(a) == c.value {
				return a.AccountID, true
			}
		}
	}
	return "", false
}
