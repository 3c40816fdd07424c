// Package memory is an in-process ledger store. Write transactions are serialised
// and staged until commit, giving the same all-or-nothing behaviour as the
// Postgres adapter without a database.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// Store holds accounts, entries and per-organization entry sequences.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]domain.Account
	entries   map[string]domain.JournalEntry
	sequences map[string]int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]domain.Account),
		entries:   make(map[string]domain.JournalEntry),
		sequences: make(map[string]int64),
	}
}

var (
	_ portsrepo.AccountRepositoryFacade      = (*Store)(nil)
	_ portsrepo.JournalEntryRepositoryFacade = (*Store)(nil)
	_ portsrepo.LedgerTransactor             = (*Store)(nil)
)

// RepositoryProvider exposes the store through every repository port.
func (s *Store) RepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:      s,
		JournalEntryRepo: s,
		Transactor:       s,
	}
}

// --- accounts ---

func (s *Store) SaveAccount(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	for _, existing := range s.accounts {
		if existing.OrgID == account.OrgID && existing.Code == account.Code {
			return fmt.Errorf("%w: account code %s already used in organization", apperrors.ErrDuplicate, account.Code)
		}
	}
	s.accounts[account.AccountID] = account
	return nil
}

func (s *Store) FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[accountID]
	if !ok || acc.OrgID != orgID {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &acc, nil
}

func (s *Store) FindAccountByCode(ctx context.Context, orgID, code string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.OrgID == orgID && acc.Code == code {
			return &acc, nil
		}
	}
	return nil, apperrors.NewNotFoundError("account code " + code)
}

func (s *Store) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := s.accounts[id]; ok && acc.OrgID == orgID {
			found[id] = acc
		}
	}
	return found, nil
}

func (s *Store) ListAccountsByOrg(ctx context.Context, orgID string) ([]domain.Account, error) {
	return s.listAccounts(ctx, func(acc domain.Account) bool {
		return acc.OrgID == orgID && acc.IsActive
	})
}

func (s *Store) ListAccountsByType(ctx context.Context, orgID string, accountType domain.AccountType) ([]domain.Account, error) {
	return s.listAccounts(ctx, func(acc domain.Account) bool {
		return acc.OrgID == orgID && acc.AccountType == accountType
	})
}

func (s *Store) listAccounts(ctx context.Context, keep func(domain.Account) bool) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Account, 0)
	for _, acc := range s.accounts {
		if keep(acc) {
			out = append(out, acc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

// SetAccountActive toggles an account's reporting visibility.
func (s *Store) SetAccountActive(ctx context.Context, orgID, accountID string, active bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok || acc.OrgID != orgID {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	acc.IsActive = active
	s.accounts[accountID] = acc
	return nil
}

// --- journal entries ---

func (s *Store) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[entry.EntryID]; exists {
		return fmt.Errorf("%w: journal entry %s already exists", apperrors.ErrDuplicate, entry.EntryID)
	}
	s.sequences[entry.OrgID]++
	entry.EntryNumber = domain.FormatEntryNumber(s.sequences[entry.OrgID])
	s.entries[entry.EntryID] = cloneEntry(*entry)
	return nil
}

func (s *Store) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[entryID]
	if !ok {
		return nil, apperrors.NewNotFoundError("journal entry " + entryID)
	}
	cloned := cloneEntry(entry)
	return &cloned, nil
}

func (s *Store) ListEntriesByDateRange(ctx context.Context, orgID string, start, end time.Time) ([]domain.JournalEntry, error) {
	entries, err := s.listEntries(ctx, func(e domain.JournalEntry) bool {
		return e.OrgID == orgID && !e.Date.Before(start) && !e.Date.After(end)
	})
	if err != nil {
		return nil, err
	}
	sortEntries(entries, true)
	return entries, nil
}

func (s *Store) ListEntriesByStatus(ctx context.Context, orgID string, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	entries, err := s.listEntries(ctx, func(e domain.JournalEntry) bool {
		return e.OrgID == orgID && e.Status == status
	})
	if err != nil {
		return nil, err
	}
	sortEntries(entries, false)
	return entries, nil
}

func (s *Store) ListEntriesByAccount(ctx context.Context, orgID, accountID string) ([]domain.JournalEntry, error) {
	entries, err := s.listEntries(ctx, func(e domain.JournalEntry) bool {
		if e.OrgID != orgID {
			return false
		}
		for _, line := range e.Lines {
			if line.AccountID == accountID {
				return true
			}
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	sortEntries(entries, false)
	return entries, nil
}

func (s *Store) listEntries(ctx context.Context, keep func(domain.JournalEntry) bool) ([]domain.JournalEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.JournalEntry, 0)
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, cloneEntry(e))
		}
	}
	return out, nil
}

// sortEntries orders by date, breaking ties by entry number.
func sortEntries(entries []domain.JournalEntry, ascending bool) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !ascending {
			a, b = b, a
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.EntryNumber < b.EntryNumber
	})
}

func cloneEntry(e domain.JournalEntry) domain.JournalEntry {
	e.Lines = append([]domain.JournalEntryLine(nil), e.Lines...)
	if e.PostedAt != nil {
		t := *e.PostedAt
		e.PostedAt = &t
	}
	if e.VoidedAt != nil {
		t := *e.VoidedAt
		e.VoidedAt = &t
	}
	return e
}

// --- transactions ---

// RunInTx holds the write lock for the whole of fn and applies staged changes only if fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{
		store:    s,
		statuses: make(map[string]stagedStatus),
		deltas:   make(map[string]stagedDelta),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

type stagedStatus struct {
	status domain.EntryStatus
	at     time.Time
}

type stagedDelta struct {
	amount decimal.Decimal
	userID string
	at     time.Time
}

// memTx reads through to the store; the caller already holds the write lock.
type memTx struct {
	store    *Store
	statuses map[string]stagedStatus
	deltas   map[string]stagedDelta
}

func (t *memTx) TransitionEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	entry, ok := t.store.entries[entryID]
	if !ok {
		return false, nil
	}
	current := entry.Status
	if staged, ok := t.statuses[entryID]; ok {
		current = staged.status
	}
	if current != from {
		return false, nil
	}
	t.statuses[entryID] = stagedStatus{status: to, at: at}
	return true, nil
}

func (t *memTx) IncrementAccountBalance(ctx context.Context, orgID, accountID string, delta decimal.Decimal, userID string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	acc, ok := t.store.accounts[accountID]
	if !ok || acc.OrgID != orgID {
		return apperrors.NewNotFoundError("account " + accountID)
	}
	staged := t.deltas[accountID]
	t.deltas[accountID] = stagedDelta{amount: staged.amount.Add(delta), userID: userID, at: at}
	return nil
}

func (t *memTx) commit() {
	for id, st := range t.statuses {
		entry := t.store.entries[id]
		entry.Status = st.status
		entry.LastUpdatedAt = st.at
		at := st.at
		switch st.status {
		case domain.Posted:
			entry.PostedAt = &at
		case domain.Voided:
			entry.VoidedAt = &at
		}
		t.store.entries[id] = entry
	}
	for id, d := range t.deltas {
		acc := t.store.accounts[id]
		acc.Balance = acc.Balance.Add(d.amount)
		acc.LastUpdatedAt = d.at
		acc.LastUpdatedBy = d.userID
		t.store.accounts[id] = acc
	}
}
