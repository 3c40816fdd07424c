package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	"github.com/gjovanov/tickytack/internal/models"
	"github.com/gjovanov/tickytack/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `account_id, org_id, code, name, account_type, parent_account_id, is_active, balance,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.OrgID,
		&m.Code,
		&m.Name,
		&m.AccountType,
		&m.ParentAccountID,
		&m.IsActive,
		&m.Balance,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.OrgID,
		m.Code,
		m.Name,
		m.AccountType,
		m.ParentAccountID,
		m.IsActive,
		m.Balance,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account code %s already exists in organization", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account of an organization by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 AND org_id = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID, orgID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByCode retrieves an account of an organization by its chart code.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, orgID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE org_id = $1 AND code = $2;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, orgID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account code " + code)
		}
		return nil, fmt.Errorf("failed to find account by code %s: %w", code, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves the accounts of an organization among accountIDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	found := make(map[string]domain.Account, len(accountIDs))
	if len(accountIDs) == 0 {
		return found, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE org_id = $1 AND account_id = ANY($2);`
	accounts, err := r.queryAccounts(ctx, query, orgID, accountIDs)
	if err != nil {
		return nil, err
	}
	for _, acc := range accounts {
		found[acc.AccountID] = acc
	}
	return found, nil
}

// ListAccountsByOrg lists active accounts of an organization ordered by code.
func (r *PgxAccountRepository) ListAccountsByOrg(ctx context.Context, orgID string) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE org_id = $1 AND is_active ORDER BY code;`
	return r.queryAccounts(ctx, query, orgID)
}

// ListAccountsByType lists accounts of an organization with the given type ordered by code.
func (r *PgxAccountRepository) ListAccountsByType(ctx context.Context, orgID string, accountType domain.AccountType) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE org_id = $1 AND account_type = $2 ORDER BY code;`
	return r.queryAccounts(ctx, query, orgID, string(accountType))
}

func (r *PgxAccountRepository) queryAccounts(ctx context.Context, query string, args ...any) ([]domain.Account, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := make([]domain.Account, 0)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}
