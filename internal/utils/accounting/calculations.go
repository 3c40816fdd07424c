package accounting

import (
	"fmt"
	"sort"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CalculateBalanceChanges sums the signed effect of every line per account.
// Every referenced account must be present in accounts, otherwise ErrAccountNotFound is returned.
func CalculateBalanceChanges(lines []domain.JournalEntryLine, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	changes := make(map[string]decimal.Decimal, len(accounts))
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, apperrors.ErrAccountNotFound.WithDetail(line.AccountID)
		}
		change, err := acc.AccountType.BalanceChange(line.Debit, line.Credit)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc.AccountID, err)
		}
		changes[line.AccountID] = changes[line.AccountID].Add(change)
	}
	return changes, nil
}

// Negate returns a copy of changes with every amount sign-flipped.
func Negate(changes map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(changes))
	for id, delta := range changes {
		out[id] = delta.Neg()
	}
	return out
}

// SortedAccountIDs returns the keys of changes in ascending order.
// Applying increments in this order keeps concurrent transactions from deadlocking on row locks.
func SortedAccountIDs(changes map[string]decimal.Decimal) []string {
	ids := make([]string, 0, len(changes))
	for id := range changes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SplitNetBalance places a signed net balance in the debit or credit column.
// A positive net sits on the account's normal side, a negative one on the opposite side.
func SplitNetBalance(net decimal.Decimal, accountType domain.AccountType) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	onNormalSide := net.IsPositive()
	if accountType.IsDebitNormal() == onNormalSide {
		debit = net.Abs()
	} else {
		credit = net.Abs()
	}
	return debit, credit
}

// ReplayNetBalances recomputes each account's net movement from posted entries only.
// Lines referencing accounts outside accounts are ignored.
func ReplayNetBalances(entries []domain.JournalEntry, accounts map[string]domain.Account) (map[string]decimal.Decimal, error) {
	nets := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		if entry.Status != domain.Posted {
			continue
		}
		for _, line := range entry.Lines {
			acc, ok := accounts[line.AccountID]
			if !ok {
				continue
			}
			change, err := acc.AccountType.BalanceChange(line.Debit, line.Credit)
			if err != nil {
				return nil, fmt.Errorf("entry %s account %s: %w", entry.EntryID, acc.AccountID, err)
			}
			nets[line.AccountID] = nets[line.AccountID].Add(change)
		}
	}
	return nets, nil
}

// BuildTrialBalance produces one row per account with a non-zero net, in the order of accounts.
// When nets is nil the stored running balance of each account is used.
func BuildTrialBalance(accounts []domain.Account, nets map[string]decimal.Decimal) []domain.TrialBalanceRow {
	rows := make([]domain.TrialBalanceRow, 0, len(accounts))
	for _, acc := range accounts {
		net := acc.Balance
		if nets != nil {
			net = nets[acc.AccountID]
		}
		if net.IsZero() {
			continue
		}
		debit, credit := SplitNetBalance(net, acc.AccountType)
		rows = append(rows, domain.TrialBalanceRow{
			AccountID:   acc.AccountID,
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Debit:       debit,
			Credit:      credit,
		})
	}
	return rows
}

// TrialBalanceTotals sums the debit and credit columns.
func TrialBalanceTotals(rows []domain.TrialBalanceRow) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, row := range rows {
		debit = debit.Add(row.Debit)
		credit = credit.Add(row.Credit)
	}
	return debit, credit
}

// BuildProfitAndLoss accumulates revenue (credit - debit) and expense (debit - credit) movements
// of posted entries. Rows appear in order of first touch; untouched accounts are absent.
func BuildProfitAndLoss(entries []domain.JournalEntry, accounts map[string]domain.Account) *domain.ProfitAndLossReport {
	amounts := make(map[string]decimal.Decimal)
	var order []string

	for _, entry := range entries {
		if entry.Status != domain.Posted {
			continue
		}
		for _, line := range entry.Lines {
			acc, ok := accounts[line.AccountID]
			if !ok {
				continue
			}
			var amount decimal.Decimal
			switch acc.AccountType {
			case domain.Revenue:
				amount = line.Credit.Sub(line.Debit)
			case domain.Expense:
				amount = line.Debit.Sub(line.Credit)
			default:
				continue
			}
			if _, seen := amounts[line.AccountID]; !seen {
				order = append(order, line.AccountID)
			}
			amounts[line.AccountID] = amounts[line.AccountID].Add(amount)
		}
	}

	report := &domain.ProfitAndLossReport{
		Revenue:       []domain.AccountAmount{},
		Expenses:      []domain.AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, id := range order {
		acc := accounts[id]
		row := domain.AccountAmount{AccountID: id, Name: acc.Name, Amount: amounts[id]}
		if acc.AccountType == domain.Revenue {
			report.Revenue = append(report.Revenue, row)
			report.TotalRevenue = report.TotalRevenue.Add(row.Amount)
		} else {
			report.Expenses = append(report.Expenses, row)
			report.TotalExpenses = report.TotalExpenses.Add(row.Amount)
		}
	}
	report.NetIncome = report.TotalRevenue.Sub(report.TotalExpenses)
	return report
}
