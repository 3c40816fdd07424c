package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// normalSigns maps an account type to the multiplier applied to (debit - credit).
// Debit-normal types (asset, expense) grow with debits; the rest grow with credits.
var normalSigns = map[AccountType]int64{
	Asset:     1,
	Expense:   1,
	Liability: -1,
	Equity:    -1,
	Revenue:   -1,
}

// IsDebitNormal reports whether the account type increases with debits.
func (t AccountType) IsDebitNormal() bool {
	return normalSigns[t] == 1
}

// BalanceChange returns the signed effect of a debit/credit pair on an account of type t.
func (t AccountType) BalanceChange(debit, credit decimal.Decimal) (decimal.Decimal, error) {
	sign, ok := normalSigns[t]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", t)
	}
	return debit.Sub(credit).Mul(decimal.NewFromInt(sign)), nil
}
