package repositories

import (
	"context"
	"time"

	"github.com/gjovanov/tickytack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerTx is the set of mutations posting and voiding perform inside one storage transaction.
type LedgerTx interface {
	// TransitionEntryStatus moves an entry from one status to another if, and only if,
	// its current status equals from. It reports whether the transition happened.
	// The matching timestamp (postedAt or voidedAt) is set to at.
	TransitionEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, at time.Time) (bool, error)

	// IncrementAccountBalance atomically adds delta to the stored balance of an account in orgID.
	// It returns apperrors.ErrNotFound when no such account exists.
	IncrementAccountBalance(ctx context.Context, orgID, accountID string, delta decimal.Decimal, userID string, at time.Time) error
}

// LedgerTransactor runs fn inside a single storage transaction. When fn returns an error
// nothing fn did is persisted; otherwise every mutation is committed together.
type LedgerTransactor interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}
