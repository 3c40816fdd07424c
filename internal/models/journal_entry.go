package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryStatus is the stored lifecycle state of a journal entry.
type EntryStatus string

// JournalEntry is a row of the journal_entries table. Lines live in journal_entry_lines.
type JournalEntry struct {
	EntryID     string      `db:"entry_id"`
	OrgID       string      `db:"org_id"`
	EntryNumber string      `db:"entry_number"`
	EntryDate   time.Time   `db:"entry_date"`
	Description string      `db:"description"`
	Reference   *string     `db:"reference"` // Nullable
	Status      EntryStatus `db:"status"`
	PostedAt    *time.Time  `db:"posted_at"`
	VoidedAt    *time.Time  `db:"voided_at"`
	AuditFields
}

// JournalEntryLine is a row of the journal_entry_lines table, ordered within its entry by LineNo.
type JournalEntryLine struct {
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Description *string         `db:"description"` // Nullable
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
}
