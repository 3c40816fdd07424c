package domain_test

import (
	"testing"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountType_BalanceChange(t *testing.T) {
	hundred := decimal.NewFromInt(100)
	tests := []struct {
		name        string
		accountType domain.AccountType
		debit       decimal.Decimal
		credit      decimal.Decimal
		want        decimal.Decimal
	}{
		{name: "debit to asset increases", accountType: domain.Asset, debit: hundred, credit: decimal.Zero, want: hundred},
		{name: "credit to asset decreases", accountType: domain.Asset, debit: decimal.Zero, credit: hundred, want: hundred.Neg()},
		{name: "debit to expense increases", accountType: domain.Expense, debit: hundred, credit: decimal.Zero, want: hundred},
		{name: "debit to revenue decreases", accountType: domain.Revenue, debit: hundred, credit: decimal.Zero, want: hundred.Neg()},
		{name: "credit to revenue increases", accountType: domain.Revenue, debit: decimal.Zero, credit: hundred, want: hundred},
		{name: "credit to liability increases", accountType: domain.Liability, debit: decimal.Zero, credit: hundred, want: hundred},
		{name: "mixed line on equity", accountType: domain.Equity, debit: decimal.NewFromInt(30), credit: hundred, want: decimal.NewFromInt(70)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.accountType.BalanceChange(tt.debit, tt.credit)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestAccountType_BalanceChangeUnknownType(t *testing.T) {
	_, err := domain.AccountType("income").BalanceChange(decimal.NewFromInt(1), decimal.Zero)
	assert.Error(t, err)
	assert.False(t, domain.AccountType("income").IsValid())
}

func TestAccountType_IsDebitNormal(t *testing.T) {
	assert.True(t, domain.Asset.IsDebitNormal())
	assert.True(t, domain.Expense.IsDebitNormal())
	assert.False(t, domain.Liability.IsDebitNormal())
	assert.False(t, domain.Equity.IsDebitNormal())
	assert.False(t, domain.Revenue.IsDebitNormal())
}
