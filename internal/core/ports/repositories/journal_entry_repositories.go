package repositories

import (
	"context"
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
)

// JournalEntryReader defines read operations for journal entries and their lines
type JournalEntryReader interface {
	// FindEntryByID retrieves an entry with its lines. Returns apperrors.ErrNotFound when missing.
	FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error)

	// ListEntriesByDateRange retrieves entries of orgID dated within [start, end], oldest first.
	ListEntriesByDateRange(ctx context.Context, orgID string, start, end time.Time) ([]domain.JournalEntry, error)

	// ListEntriesByStatus retrieves entries of orgID in the given status, newest first.
	ListEntriesByStatus(ctx context.Context, orgID string, status domain.EntryStatus) ([]domain.JournalEntry, error)

	// ListEntriesByAccount retrieves entries of orgID with at least one line on accountID, newest first.
	ListEntriesByAccount(ctx context.Context, orgID, accountID string) ([]domain.JournalEntry, error)
}

// JournalEntryWriter defines write operations for journal entries
type JournalEntryWriter interface {
	// SaveEntry persists a new entry and its lines. The entry number is allocated
	// atomically as the next JE-#### of the entry's organization and written back into entry.
	SaveEntry(ctx context.Context, entry *domain.JournalEntry) error
}

// JournalEntryRepositoryFacade combines all journal-entry repository interfaces
type JournalEntryRepositoryFacade interface {
	JournalEntryReader
	JournalEntryWriter
}
