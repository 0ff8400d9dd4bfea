package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/ledger_desk/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_desk/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_desk/internal/models"
	"github.com/SscSPs/ledger_desk/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{pool: pool}
}

// Ensure PgxAccountRepository implements portsrepo.AccountReader
var _ portsrepo.AccountReader = (*PgxAccountRepository)(nil)

// ListAccounts returns the accounts matching filter ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter domain.AccountFilter) ([]domain.Account, error) {
	query := `
		SELECT account_id, code, name, account_type
		FROM accounts
		WHERE ($1 = '' OR account_type = $1)
		  AND ($2 = '' OR code ILIKE '%' || $2 || '%' OR name ILIKE '%' || $2 || '%')
		ORDER BY code;
	`
	rows, err := r.pool.Query(ctx, query, string(filter.AccountType), filter.Search)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, fmt.Errorf("failed to scan accounts: %w", err)
	}
	return mapping.ToDomainAccounts(accounts), nil
}
