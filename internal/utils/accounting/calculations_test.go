package accounting

import (
	"errors"
	"testing"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testAccounts() map[string]domain.Account {
	return map[string]domain.Account{
		"cash":    {AccountID: "cash", Code: "1000", Name: "Cash", AccountType: domain.Asset},
		"payable": {AccountID: "payable", Code: "2000", Name: "Payables", AccountType: domain.Liability},
		"sales":   {AccountID: "sales", Code: "4000", Name: "Sales", AccountType: domain.Revenue},
		"rent":    {AccountID: "rent", Code: "5000", Name: "Rent", AccountType: domain.Expense},
	}
}

func TestCalculateBalanceChanges(t *testing.T) {
	lines := []domain.JournalEntryLine{
		{AccountID: "cash", Debit: dec("100"), Credit: decimal.Zero},
		{AccountID: "sales", Debit: decimal.Zero, Credit: dec("60")},
		{AccountID: "sales", Debit: decimal.Zero, Credit: dec("40")},
	}

	changes, err := CalculateBalanceChanges(lines, testAccounts())
	require.NoError(t, err)
	assert.Len(t, changes, 2)
	assert.True(t, dec("100").Equal(changes["cash"]))
	assert.True(t, dec("100").Equal(changes["sales"]))

	reversed := Negate(changes)
	assert.True(t, dec("-100").Equal(reversed["cash"]))
	assert.True(t, dec("-100").Equal(reversed["sales"]))
}

func TestCalculateBalanceChanges_MissingAccount(t *testing.T) {
	lines := []domain.JournalEntryLine{{AccountID: "ghost", Debit: dec("1"), Credit: decimal.Zero}}

	_, err := CalculateBalanceChanges(lines, testAccounts())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrAccountNotFound))
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestSortedAccountIDs(t *testing.T) {
	ids := SortedAccountIDs(map[string]decimal.Decimal{"c": dec("1"), "a": dec("2"), "b": dec("3")})
	assert.Equal(t, []string{"a", "b", "c"}, ids)
}

func TestSplitNetBalance(t *testing.T) {
	tests := []struct {
		name        string
		net         string
		accountType domain.AccountType
		debit       string
		credit      string
	}{
		{"debit-normal positive", "100", domain.Asset, "100", "0"},
		{"debit-normal negative", "-25", domain.Expense, "0", "25"},
		{"credit-normal positive", "100", domain.Revenue, "0", "100"},
		{"credit-normal negative", "-40", domain.Liability, "40", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			debit, credit := SplitNetBalance(dec(tt.net), tt.accountType)
			assert.True(t, dec(tt.debit).Equal(debit), "debit: got %s", debit)
			assert.True(t, dec(tt.credit).Equal(credit), "credit: got %s", credit)
		})
	}
}

func TestBuildTrialBalance_StoredBalances(t *testing.T) {
	accounts := testAccounts()
	ordered := []domain.Account{accounts["cash"], accounts["payable"], accounts["sales"], accounts["rent"]}
	ordered[0].Balance = dec("70")
	ordered[1].Balance = decimal.Zero
	ordered[2].Balance = dec("100")
	ordered[3].Balance = dec("30")

	rows := BuildTrialBalance(ordered, nil)
	require.Len(t, rows, 3)
	assert.Equal(t, "1000", rows[0].Code)
	assert.Equal(t, "4000", rows[1].Code)
	assert.Equal(t, "5000", rows[2].Code)

	debit, credit := TrialBalanceTotals(rows)
	assert.True(t, debit.Equal(credit), "debit %s credit %s", debit, credit)
	assert.True(t, dec("100").Equal(debit))
}

func TestReplayNetBalances_IgnoresNonPostedAndUnknownAccounts(t *testing.T) {
	entries := []domain.JournalEntry{
		{EntryID: "e1", Status: domain.Posted, Lines: []domain.JournalEntryLine{
			{AccountID: "cash", Debit: dec("100"), Credit: decimal.Zero},
			{AccountID: "sales", Debit: decimal.Zero, Credit: dec("100")},
		}},
		{EntryID: "e2", Status: domain.Voided, Lines: []domain.JournalEntryLine{
			{AccountID: "cash", Debit: dec("500"), Credit: decimal.Zero},
			{AccountID: "sales", Debit: decimal.Zero, Credit: dec("500")},
		}},
		{EntryID: "e3", Status: domain.Draft, Lines: []domain.JournalEntryLine{
			{AccountID: "cash", Debit: dec("7"), Credit: decimal.Zero},
		}},
		{EntryID: "e4", Status: domain.Posted, Lines: []domain.JournalEntryLine{
			{AccountID: "rent", Debit: dec("30"), Credit: decimal.Zero},
			{AccountID: "inactive", Debit: decimal.Zero, Credit: dec("30")},
		}},
	}

	nets, err := ReplayNetBalances(entries, testAccounts())
	require.NoError(t, err)
	assert.True(t, dec("100").Equal(nets["cash"]))
	assert.True(t, dec("100").Equal(nets["sales"]))
	assert.True(t, dec("30").Equal(nets["rent"]))
	_, hasInactive := nets["inactive"]
	assert.False(t, hasInactive)
}

func TestBuildProfitAndLoss(t *testing.T) {
	entries := []domain.JournalEntry{
		{Status: domain.Posted, Lines: []domain.JournalEntryLine{
			{AccountID: "rent", Debit: dec("30"), Credit: decimal.Zero},
			{AccountID: "cash", Debit: decimal.Zero, Credit: dec("30")},
		}},
		{Status: domain.Posted, Lines: []domain.JournalEntryLine{
			{AccountID: "cash", Debit: dec("100"), Credit: decimal.Zero},
			{AccountID: "sales", Debit: decimal.Zero, Credit: dec("100")},
		}},
		{Status: domain.Voided, Lines: []domain.JournalEntryLine{
			{AccountID: "cash", Debit: dec("999"), Credit: decimal.Zero},
			{AccountID: "sales", Debit: decimal.Zero, Credit: dec("999")},
		}},
	}

	report := BuildProfitAndLoss(entries, testAccounts())
	require.Len(t, report.Revenue, 1)
	require.Len(t, report.Expenses, 1)
	assert.Equal(t, "Sales", report.Revenue[0].Name)
	assert.True(t, dec("100").Equal(report.TotalRevenue))
	assert.True(t, dec("30").Equal(report.TotalExpenses))
	assert.True(t, dec("70").Equal(report.NetIncome))
}

func TestBuildProfitAndLoss_NoEntries(t *testing.T) {
	report := BuildProfitAndLoss(nil, testAccounts())
	assert.Empty(t, report.Revenue)
	assert.Empty(t, report.Expenses)
	assert.True(t, report.NetIncome.IsZero())
}
