package remote

import (
	"context"
	"net/http"
	"net/url"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	"github.com/SscSPs/ledger_desk/internal/core/normalize"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/utils/envelope"
)

// AccountRepository reads the chart of accounts from the remote service.
type AccountRepository struct {
	client *Client
}

// NewAccountRepository creates an account repository over client.
func NewAccountRepository(client *Client) *AccountRepository {
	return &AccountRepository{client: client}
}

var _ portsrepo.AccountReader = (*AccountRepository)(nil)

// ListAccounts implements portsrepo.AccountReader. Both a bare array and a
// {data: [...]} envelope are accepted.
func (r *AccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query := url.Values{}
	if filter.AccountType != "" {
		query.Set("type", string(filter.AccountType))
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	body, err := r.client.do(ctx, http.MethodGet, "/accounts", query, nil, "list accounts")
	if err != nil {
		return nil, err
	}

	records := envelope.Records(body, normalize.LooksLikeAccount)
	accounts := make([]domain.Account, 0, len(records))
	for _, rec := range records {
		if a := normalize.Account(rec); a.AccountID != "" {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}
