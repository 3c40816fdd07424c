package services

import (
	"context"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/gjovanov/tickytack/internal/dto"
)

// JournalEntryReaderSvc defines read operations for journal entries
type JournalEntryReaderSvc interface {
	// GetEntryByID retrieves an entry of orgID with its lines.
	GetEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByStatus retrieves the entries of orgID in a given status.
	ListEntriesByStatus(ctx context.Context, orgID string, status domain.EntryStatus) ([]domain.JournalEntry, error)

	// ListEntriesByAccount retrieves the entries of orgID touching accountID.
	ListEntriesByAccount(ctx context.Context, orgID string, accountID string) ([]domain.JournalEntry, error)
}

// JournalEntryWriterSvc defines draft creation
type JournalEntryWriterSvc interface {
	// CreateDraftEntry stores a new draft entry and assigns its entry number.
	CreateDraftEntry(ctx context.Context, orgID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error)
}

// LedgerPostingSvc defines the state transitions that move account balances
type LedgerPostingSvc interface {
	// PostEntry validates a draft entry, applies it to account balances and marks it posted.
	PostEntry(ctx context.Context, orgID string, entryID string, userID string) (*domain.JournalEntry, error)

	// VoidEntry reverses a posted entry's effect on account balances and marks it voided.
	VoidEntry(ctx context.Context, orgID string, entryID string, userID string) (*domain.JournalEntry, error)
}

// LedgerSvcFacade combines all journal-entry service interfaces
type LedgerSvcFacade interface {
	JournalEntryReaderSvc
	JournalEntryWriterSvc
	LedgerPostingSvc
}
