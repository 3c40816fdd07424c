package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	"github.com/gjovanov/tickytack/internal/models"
	"github.com/gjovanov/tickytack/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `entry_id, org_id, entry_number, entry_date, description, reference, status,
	posted_at, voided_at, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalEntryRepository struct {
	BaseRepository
}

// newPgxJournalEntryRepository creates a new repository for journal entries and their lines.
func newPgxJournalEntryRepository(pool *pgxpool.Pool) *PgxJournalEntryRepository {
	return &PgxJournalEntryRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalEntryRepository implements portsrepo.JournalEntryRepositoryFacade
var _ portsrepo.JournalEntryRepositoryFacade = (*PgxJournalEntryRepository)(nil)

// SaveEntry allocates the organization's next entry number and inserts the entry with its lines
// in one transaction. The sequence row lock serialises concurrent creators of the same organization.
func (r *PgxJournalEntryRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	var seq int64
	err = tx.QueryRow(ctx, `
		INSERT INTO org_entry_sequences (org_id, last_value) VALUES ($1, 1)
		ON CONFLICT (org_id) DO UPDATE SET last_value = org_entry_sequences.last_value + 1
		RETURNING last_value;
	`, entry.OrgID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("failed to allocate entry number for organization %s: %w", entry.OrgID, err)
	}

	numbered := *entry
	numbered.EntryNumber = domain.FormatEntryNumber(seq)
	header, lines := mapping.ToModelJournalEntry(numbered)

	_, err = tx.Exec(ctx, `
		INSERT INTO journal_entries (`+entryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`,
		header.EntryID,
		header.OrgID,
		header.EntryNumber,
		header.EntryDate,
		header.Description,
		header.Reference,
		header.Status,
		header.PostedAt,
		header.VoidedAt,
		header.CreatedAt,
		header.CreatedBy,
		header.LastUpdatedAt,
		header.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, header.EntryID)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", header.EntryID, err)
	}

	batch := &pgx.Batch{}
	for _, l := range lines {
		batch.Queue(`
			INSERT INTO journal_entry_lines (entry_id, line_no, account_id, description, debit, credit)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, l.EntryID, l.LineNo, l.AccountID, l.Description, l.Debit, l.Credit)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines of journal entry %s: %w", header.EntryID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return err
	}
	entry.EntryNumber = numbered.EntryNumber
	return nil
}

// FindEntryByID retrieves an entry with its lines.
func (r *PgxJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	entries, err := r.queryEntries(ctx, `SELECT `+entryColumns+` FROM journal_entries WHERE entry_id = $1;`, entryID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID)
	}
	return &entries[0], nil
}

// ListEntriesByDateRange retrieves entries dated within [start, end], oldest first.
func (r *PgxJournalEntryRepository) ListEntriesByDateRange(ctx context.Context, orgID string, start, end time.Time) ([]domain.JournalEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+` FROM journal_entries
		WHERE org_id = $1 AND entry_date >= $2 AND entry_date <= $3
		ORDER BY entry_date, entry_number;
	`, orgID, start, end)
}

// ListEntriesByStatus retrieves entries in the given status, newest first.
func (r *PgxJournalEntryRepository) ListEntriesByStatus(ctx context.Context, orgID string, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+` FROM journal_entries
		WHERE org_id = $1 AND status = $2
		ORDER BY entry_date DESC, entry_number DESC;
	`, orgID, string(status))
}

// ListEntriesByAccount retrieves entries with at least one line on accountID, newest first.
func (r *PgxJournalEntryRepository) ListEntriesByAccount(ctx context.Context, orgID, accountID string) ([]domain.JournalEntry, error) {
	return r.queryEntries(ctx, `
		SELECT `+entryColumns+` FROM journal_entries e
		WHERE e.org_id = $1
		  AND EXISTS (SELECT 1 FROM journal_entry_lines l WHERE l.entry_id = e.entry_id AND l.account_id = $2)
		ORDER BY e.entry_date DESC, e.entry_number DESC;
	`, orgID, accountID)
}

// queryEntries runs an entry header query and attaches lines with a second query.
func (r *PgxJournalEntryRepository) queryEntries(ctx context.Context, query string, args ...any) ([]domain.JournalEntry, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	headers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntry, error) {
		var m models.JournalEntry
		err := row.Scan(
			&m.EntryID,
			&m.OrgID,
			&m.EntryNumber,
			&m.EntryDate,
			&m.Description,
			&m.Reference,
			&m.Status,
			&m.PostedAt,
			&m.VoidedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		return m, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}
	if len(headers) == 0 {
		return []domain.JournalEntry{}, nil
	}

	ids := make([]string, len(headers))
	for i, h := range headers {
		ids[i] = h.EntryID
	}
	linesByEntry, err := r.findLines(ctx, ids)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.JournalEntry, len(headers))
	for i, h := range headers {
		entries[i] = mapping.ToDomainJournalEntry(h, linesByEntry[h.EntryID])
	}
	return entries, nil
}

func (r *PgxJournalEntryRepository) findLines(ctx context.Context, entryIDs []string) (map[string][]models.JournalEntryLine, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT entry_id, line_no, account_id, description, debit, credit
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entry lines: %w", err)
	}
	lines, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntryLine, error) {
		var l models.JournalEntryLine
		err := row.Scan(&l.EntryID, &l.LineNo, &l.AccountID, &l.Description, &l.Debit, &l.Credit)
		return l, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entry lines: %w", err)
	}
	return groupLines(lines), nil
}

// groupLines buckets line rows by entry, keeping their relative order.
func groupLines(lines []models.JournalEntryLine) map[string][]models.JournalEntryLine {
	grouped := make(map[string][]models.JournalEntryLine)
	for _, l := range lines {
		grouped[l.EntryID] = append(grouped[l.EntryID], l)
	}
	return grouped
}

var errUnknownTargetStatus = errors.New("no timestamp column for target status")

// statusTimestampColumn names the column stamped when an entry enters status.
func statusTimestampColumn(status domain.EntryStatus) (string, error) {
	switch status {
	case domain.Posted:
		return "posted_at", nil
	case domain.Voided:
		return "voided_at", nil
	}
	return "", fmt.Errorf("%w: %s", errUnknownTargetStatus, status)
}
