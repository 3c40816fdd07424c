package services

import (
	"context"
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance lists every active account with a non-zero net position. Without a date range
	// the stored balances are used; with both dates the posted entries in range are replayed.
	TrialBalance(ctx context.Context, orgID string, startDate, endDate *time.Time) ([]domain.TrialBalanceRow, error)

	// ProfitAndLoss summarizes revenue and expense movements of posted entries in [startDate, endDate].
	ProfitAndLoss(ctx context.Context, orgID string, startDate, endDate time.Time) (*domain.ProfitAndLossReport, error)
}
