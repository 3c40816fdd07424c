package dto

import (
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalEntryLineRequest is one debit/credit line of a new entry.
type CreateJournalEntryLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit" binding:"nonnegative_decimal"`
	Credit      decimal.Decimal `json:"credit" binding:"nonnegative_decimal"`
}

// CreateJournalEntryRequest defines the data needed to create a draft entry.
// Balance is not checked here; it is enforced when the entry is posted.
type CreateJournalEntryRequest struct {
	Date        time.Time                       `json:"date" binding:"required"`
	Description string                          `json:"description" binding:"required"`
	Reference   string                          `json:"reference"`
	Lines       []CreateJournalEntryLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// JournalEntryLineResponse defines the data returned for an entry line.
type JournalEntryLineResponse struct {
	AccountID   string          `json:"accountID"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID      string                     `json:"entryID"`
	OrgID        string                     `json:"orgID"`
	EntryNumber  string                     `json:"entryNumber"`
	Date         time.Time                  `json:"date"`
	Description  string                     `json:"description"`
	Reference    string                     `json:"reference,omitempty"`
	Status       domain.EntryStatus         `json:"status"`
	Lines        []JournalEntryLineResponse `json:"lines"`
	TotalDebits  decimal.Decimal            `json:"totalDebits"`
	TotalCredits decimal.Decimal            `json:"totalCredits"`
	PostedAt     *time.Time                 `json:"postedAt,omitempty"`
	VoidedAt     *time.Time                 `json:"voidedAt,omitempty"`
	CreatedAt    time.Time                  `json:"createdAt"`
	CreatedBy    string                     `json:"createdBy"`
}

// ListJournalEntriesResponse wraps a list of journal entries.
type ListJournalEntriesResponse struct {
	Entries []JournalEntryResponse `json:"entries"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to JournalEntryResponse DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debits, credits := e.Totals()
	lines := make([]JournalEntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = JournalEntryLineResponse{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}
	return JournalEntryResponse{
		EntryID:      e.EntryID,
		OrgID:        e.OrgID,
		EntryNumber:  e.EntryNumber,
		Date:         e.Date,
		Description:  e.Description,
		Reference:    e.Reference,
		Status:       e.Status,
		Lines:        lines,
		TotalDebits:  debits,
		TotalCredits: credits,
		PostedAt:     e.PostedAt,
		VoidedAt:     e.VoidedAt,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
}

// ToListJournalEntriesResponse converts a slice of domain.JournalEntry to ListJournalEntriesResponse.
func ToListJournalEntriesResponse(entries []domain.JournalEntry) ListJournalEntriesResponse {
	resp := ListJournalEntriesResponse{Entries: make([]JournalEntryResponse, len(entries))}
	for i := range entries {
		resp.Entries[i] = ToJournalEntryResponse(&entries[i])
	}
	return resp
}
