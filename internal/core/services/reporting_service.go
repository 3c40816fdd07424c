package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.JournalEntryReader
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(accountRepo portsrepo.AccountReader, entryRepo portsrepo.JournalEntryReader, options ...ServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance reports stored balances unless both dates are given, in which case
// the posted entries dated inside the range are replayed instead.
func (s *reportingService) TrialBalance(ctx context.Context, orgID string, startDate, endDate *time.Time) ([]domain.TrialBalanceRow, error) {
	accounts, err := s.accountRepo.ListAccountsByOrg(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for trial balance", slog.String("org_id", orgID))
		return nil, err
	}

	if startDate == nil || endDate == nil {
		rows := accounting.BuildTrialBalance(accounts, nil)
		s.LogDebug(ctx, "Trial balance built from stored balances",
			slog.String("org_id", orgID),
			slog.Int("rows", len(rows)))
		return rows, nil
	}

	if startDate.After(*endDate) {
		return []domain.TrialBalanceRow{}, nil
	}

	entries, err := s.entryRepo.ListEntriesByDateRange(ctx, orgID, *startDate, *endDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries for trial balance", slog.String("org_id", orgID))
		return nil, err
	}

	nets, err := accounting.ReplayNetBalances(entries, indexAccounts(accounts))
	if err != nil {
		s.LogError(ctx, err, "Failed to replay entries for trial balance", slog.String("org_id", orgID))
		return nil, fmt.Errorf("replaying entries: %w", err)
	}

	rows := accounting.BuildTrialBalance(accounts, nets)
	s.LogDebug(ctx, "Trial balance built from posted entries",
		slog.String("org_id", orgID),
		slog.Int("entries", len(entries)),
		slog.Int("rows", len(rows)))
	return rows, nil
}

// ProfitAndLoss summarizes revenue and expense movements of posted entries in [startDate, endDate].
func (s *reportingService) ProfitAndLoss(ctx context.Context, orgID string, startDate, endDate time.Time) (*domain.ProfitAndLossReport, error) {
	if startDate.After(endDate) {
		return &domain.ProfitAndLossReport{
			Revenue:       []domain.AccountAmount{},
			Expenses:      []domain.AccountAmount{},
			TotalRevenue:  decimal.Zero,
			TotalExpenses: decimal.Zero,
			NetIncome:     decimal.Zero,
		}, nil
	}

	accounts, err := s.accountRepo.ListAccountsByOrg(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for profit and loss", slog.String("org_id", orgID))
		return nil, err
	}

	entries, err := s.entryRepo.ListEntriesByDateRange(ctx, orgID, startDate, endDate)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries for profit and loss", slog.String("org_id", orgID))
		return nil, err
	}

	report := accounting.BuildProfitAndLoss(entries, indexAccounts(accounts))
	s.LogDebug(ctx, "Profit and loss built",
		slog.String("org_id", orgID),
		slog.Int("entries", len(entries)),
		slog.String("net_income", report.NetIncome.String()))
	return report, nil
}

func indexAccounts(accounts []domain.Account) map[string]domain.Account {
	byID := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		byID[acc.AccountID] = acc
	}
	return byID
}
