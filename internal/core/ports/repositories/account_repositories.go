package repositories

import (
	"context"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
)

// AccountReader defines read operations against the account store.
// Account creation and updates belong to the account-management flow, not the ledger core.
type AccountReader interface {
	// ListAccounts retrieves the accounts matching filter.
	ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error)
}
