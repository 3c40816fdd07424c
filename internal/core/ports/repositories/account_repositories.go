package repositories

import (
	"context"

	"github.com/gjovanov/tickytack/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves an account of orgID by its identifier.
	FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account of orgID by its chart-of-accounts code.
	FindAccountByCode(ctx context.Context, orgID, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves the accounts of orgID among accountIDs. Missing IDs are absent from the map.
	FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByOrg retrieves the active accounts of orgID ordered by code.
	ListAccountsByOrg(ctx context.Context, orgID string) ([]domain.Account, error)

	// ListAccountsByType retrieves the accounts of orgID with the given type, ordered by code.
	ListAccountsByType(ctx context.Context, orgID string, accountType domain.AccountType) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. A duplicate (code, orgID) yields apperrors.ErrDuplicate.
	SaveAccount(ctx context.Context, account domain.Account) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
