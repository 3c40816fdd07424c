package models

import (
	"github.com/shopspring/decimal"
)

// AccountType is the stored form of an account's accounting type.
type AccountType string

// Account is a row of the accounts table.
type Account struct {
	AccountID       string          `db:"account_id"`
	OrgID           string          `db:"org_id"`
	Code            string          `db:"code"`
	Name            string          `db:"name"`
	AccountType     AccountType     `db:"account_type"`
	ParentAccountID *string         `db:"parent_account_id"` // Nullable
	IsActive        bool            `db:"is_active"`
	Balance         decimal.Decimal `db:"balance"`
	AuditFields
}
