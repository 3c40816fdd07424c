package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountService manages the chart of accounts that ledger entries post against.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if orgID == "" || code == "" || name == "" {
		return nil, fmt.Errorf("%w: organization, code and name are required", apperrors.ErrValidation)
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: unknown account type %q", apperrors.ErrValidation, req.AccountType)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parentID = *req.ParentAccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, orgID, parentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.ErrAccountNotFound.WithDetail("parent " + parentID)
			}
			s.LogError(ctx, err, "Failed to load parent account", slog.String("parent_id", parentID))
			return nil, err
		}
	}

	now := s.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OrgID:       orgID,
		Code:        code,
		Name:        name,
		AccountType: req.AccountType,
		ParentID:    parentID,
		IsActive:    true,
		Balance:     decimal.Zero,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, err, "Account code already in use", slog.String("org_id", orgID), slog.String("code", code))
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save account", slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created",
		slog.String("account_id", account.AccountID),
		slog.String("org_id", orgID),
		slog.String("code", code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, orgID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound.WithDetail(accountID)
		}
		s.LogError(ctx, err, "Failed to load account", slog.String("account_id", accountID))
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByOrg(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("org_id", orgID))
		return nil, err
	}
	return accounts, nil
}
