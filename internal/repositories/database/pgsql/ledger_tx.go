package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxLedgerTransactor runs posting and voiding mutations inside one database transaction.
type PgxLedgerTransactor struct {
	BaseRepository
}

func newPgxLedgerTransactor(pool *pgxpool.Pool) *PgxLedgerTransactor {
	return &PgxLedgerTransactor{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerTransactor = (*PgxLedgerTransactor)(nil)

// RunInTx commits only when fn succeeds; any error rolls back every statement fn issued.
func (r *PgxLedgerTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if err := fn(ctx, &pgxLedgerTx{tx: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

type pgxLedgerTx struct {
	tx pgx.Tx
}

// TransitionEntryStatus is a conditional UPDATE; under READ COMMITTED a concurrent
// writer blocks on the row lock and then sees zero affected rows.
func (t *pgxLedgerTx) TransitionEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, at time.Time) (bool, error) {
	column, err := statusTimestampColumn(to)
	if err != nil {
		return false, err
	}
	query := fmt.Sprintf(`
		UPDATE journal_entries
		SET status = $1, %s = $2, last_updated_at = $2
		WHERE entry_id = $3 AND status = $4;
	`, column)
	tag, err := t.tx.Exec(ctx, query, string(to), at, entryID, string(from))
	if err != nil {
		return false, fmt.Errorf("failed to move journal entry %s from %s to %s: %w", entryID, from, to, err)
	}
	return tag.RowsAffected() == 1, nil
}

// IncrementAccountBalance adds delta in SQL so concurrent postings never lose an update.
func (t *pgxLedgerTx) IncrementAccountBalance(ctx context.Context, orgID, accountID string, delta decimal.Decimal, userID string, at time.Time) error {
	tag, err := t.tx.Exec(ctx, `
		UPDATE accounts
		SET balance = balance + $1, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $4 AND org_id = $5;
	`, delta, at, userID, accountID, orgID)
	if err != nil {
		return fmt.Errorf("failed to update balance of account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	return nil
}
