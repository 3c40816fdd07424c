package domain

import (
	"github.com/shopspring/decimal"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Revenue   AccountType = "revenue"
	Expense   AccountType = "expense"
)

// IsValid reports whether t is one of the five known account types.
func (t AccountType) IsValid() bool {
	_, ok := normalSigns[t]
	return ok
}

// Account is a chart-of-accounts record scoped to one organization.
// Balance is mutated only by posting and voiding journal entries.
type Account struct {
	AccountID   string          `json:"accountID"`
	OrgID       string          `json:"orgID"`
	Code        string          `json:"code"` // unique per org
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"` // fixed at creation
	ParentID    string          `json:"parentID"`    // optional, informational
	IsActive    bool            `json:"isActive"`
	Balance     decimal.Decimal `json:"balance"`
	AuditFields
}
