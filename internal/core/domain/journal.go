package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus indicates the lifecycle state of a journal entry.
//
//	draft --post--> posted --void--> voided
type EntryStatus string

const (
	Draft  EntryStatus = "draft"
	Posted EntryStatus = "posted"
	Voided EntryStatus = "voided"
)

// BalanceTolerance is the largest accepted difference between total debits and total credits.
var BalanceTolerance = decimal.New(1, -2)

// JournalEntryLine is a single debit/credit against one account. It has no identity of its own.
type JournalEntryLine struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntry is a dated set of lines that moves value between accounts of one organization.
type JournalEntry struct {
	EntryID     string             `json:"entryID"`
	OrgID       string             `json:"orgID"`
	EntryNumber string             `json:"entryNumber"` // JE-####, unique per org
	Date        time.Time          `json:"date"`
	Description string             `json:"description"`
	Reference   string             `json:"reference,omitempty"`
	Status      EntryStatus        `json:"status"`
	Lines       []JournalEntryLine `json:"lines"`
	PostedAt    *time.Time         `json:"postedAt,omitempty"`
	VoidedAt    *time.Time         `json:"voidedAt,omitempty"`
	AuditFields
}

// Totals returns the sum of the debit and credit columns.
func (e *JournalEntry) Totals() (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, line := range e.Lines {
		debits = debits.Add(line.Debit)
		credits = credits.Add(line.Credit)
	}
	return debits, credits
}

// IsBalanced reports whether debits and credits agree within BalanceTolerance.
func (e *JournalEntry) IsBalanced() bool {
	debits, credits := e.Totals()
	return debits.Sub(credits).Abs().LessThanOrEqual(BalanceTolerance)
}

// AccountIDs returns the distinct account IDs referenced by the entry's lines, in line order.
func (e *JournalEntry) AccountIDs() []string {
	seen := make(map[string]struct{}, len(e.Lines))
	ids := make([]string, 0, len(e.Lines))
	for _, line := range e.Lines {
		if _, ok := seen[line.AccountID]; ok {
			continue
		}
		seen[line.AccountID] = struct{}{}
		ids = append(ids, line.AccountID)
	}
	return ids
}
