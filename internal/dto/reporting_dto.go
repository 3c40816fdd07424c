package dto

import (
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/shopspring/decimal"
)

const reportDateLayout = "2006-01-02"

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountID   string          `json:"accountID"`
	Code        string          `json:"code"`
	AccountName string          `json:"accountName"`
	AccountType string          `json:"accountType"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalanceResponse represents the trial balance report response.
// StartDate and EndDate are absent for an as-of report built from stored balances.
type TrialBalanceResponse struct {
	StartDate string                    `json:"startDate,omitempty"`
	EndDate   string                    `json:"endDate,omitempty"`
	Rows      []TrialBalanceRowResponse `json:"rows"`
	Totals    struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
}

// AccountAmountResponse represents an account with its amount in a financial report
type AccountAmountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
}

// ProfitAndLossResponse represents the profit and loss report response
type ProfitAndLossResponse struct {
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Revenue   []AccountAmountResponse `json:"revenue"`
	Expenses  []AccountAmountResponse `json:"expenses"`
	Summary   struct {
		TotalRevenue  decimal.Decimal `json:"totalRevenue"`
		TotalExpenses decimal.Decimal `json:"totalExpenses"`
		NetIncome     decimal.Decimal `json:"netIncome"`
	} `json:"summary"`
}

// ToTrialBalanceResponse converts domain trial balance rows to a DTO response
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow, start, end *time.Time) TrialBalanceResponse {
	response := TrialBalanceResponse{
		Rows: make([]TrialBalanceRowResponse, len(rows)),
	}
	if start != nil && end != nil {
		response.StartDate = start.Format(reportDateLayout)
		response.EndDate = end.Format(reportDateLayout)
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero

	for i, row := range rows {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountID:   row.AccountID,
			Code:        row.Code,
			AccountName: row.Name,
			AccountType: string(row.AccountType),
			Debit:       row.Debit,
			Credit:      row.Credit,
		}
		totalDebit = totalDebit.Add(row.Debit)
		totalCredit = totalCredit.Add(row.Credit)
	}

	response.Totals.Debit = totalDebit
	response.Totals.Credit = totalCredit

	return response
}

func toAccountAmountResponses(rows []domain.AccountAmount) []AccountAmountResponse {
	out := make([]AccountAmountResponse, len(rows))
	for i, row := range rows {
		out[i] = AccountAmountResponse{
			AccountID: row.AccountID,
			Name:      row.Name,
			Amount:    row.Amount,
		}
	}
	return out
}

// ToProfitAndLossResponse converts a domain P&L report to a DTO response
func ToProfitAndLossResponse(report *domain.ProfitAndLossReport, start, end time.Time) ProfitAndLossResponse {
	response := ProfitAndLossResponse{
		StartDate: start.Format(reportDateLayout),
		EndDate:   end.Format(reportDateLayout),
		Revenue:   toAccountAmountResponses(report.Revenue),
		Expenses:  toAccountAmountResponses(report.Expenses),
	}

	response.Summary.TotalRevenue = report.TotalRevenue
	response.Summary.TotalExpenses = report.TotalExpenses
	response.Summary.NetIncome = report.NetIncome

	return response
}
