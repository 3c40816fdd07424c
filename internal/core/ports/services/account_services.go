package services

import (
	"context"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/gjovanov/tickytack/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
