package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2024, time.January, d, 0, 0, 0, 0, time.UTC)
}

func seedAccount(t *testing.T, s *Store, id, org, code string, typ domain.AccountType) {
	t.Helper()
	require.NoError(t, s.SaveAccount(context.Background(), domain.Account{
		AccountID: id, OrgID: org, Code: code, Name: code, AccountType: typ, IsActive: true, Balance: decimal.Zero,
	}))
}

func seedEntry(t *testing.T, s *Store, id, org string, date time.Time, status domain.EntryStatus, accounts ...string) *domain.JournalEntry {
	t.Helper()
	e := &domain.JournalEntry{EntryID: id, OrgID: org, Date: date, Description: id, Status: status}
	for _, acc := range accounts {
		e.Lines = append(e.Lines, domain.JournalEntryLine{AccountID: acc, Debit: decimal.NewFromInt(1), Credit: decimal.Zero})
	}
	require.NoError(t, s.SaveEntry(context.Background(), e))
	return e
}

func TestSaveAccount_DuplicateCodeInOrg(t *testing.T) {
	s := NewStore()
	seedAccount(t, s, "a1", "org-1", "1000", domain.Asset)

	err := s.SaveAccount(context.Background(), domain.Account{AccountID: "a2", OrgID: "org-1", Code: "1000"})
	assert.ErrorIs(t, err, apperrors.ErrDuplicate)

	// Same code in another organization is fine.
	assert.NoError(t, s.SaveAccount(context.Background(), domain.Account{AccountID: "a3", OrgID: "org-2", Code: "1000"}))
}

func TestAccountLookupsAreOrgScoped(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "a1", "org-1", "1000", domain.Asset)
	seedAccount(t, s, "b1", "org-2", "1000", domain.Asset)

	_, err := s.FindAccountByID(ctx, "org-2", "a1")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	found, err := s.FindAccountsByIDs(ctx, "org-1", []string{"a1", "b1", "zz"})
	require.NoError(t, err)
	assert.Len(t, found, 1)
	assert.Contains(t, found, "a1")

	acc, err := s.FindAccountByCode(ctx, "org-2", "1000")
	require.NoError(t, err)
	assert.Equal(t, "b1", acc.AccountID)
}

func TestListAccountsByOrg_ActiveOnlySortedByCode(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "rev", "org-1", "4000", domain.Revenue)
	seedAccount(t, s, "cash", "org-1", "1000", domain.Asset)
	seedAccount(t, s, "old", "org-1", "1500", domain.Asset)
	require.NoError(t, s.SetAccountActive(ctx, "org-1", "old", false))

	accounts, err := s.ListAccountsByOrg(ctx, "org-1")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, "1000", accounts[0].Code)
	assert.Equal(t, "4000", accounts[1].Code)

	assets, err := s.ListAccountsByType(ctx, "org-1", domain.Asset)
	require.NoError(t, err)
	assert.Len(t, assets, 2)
}

func TestSaveEntry_NumbersPerOrganization(t *testing.T) {
	s := NewStore()
	first := seedEntry(t, s, "e1", "org-1", day(1), domain.Draft)
	second := seedEntry(t, s, "e2", "org-1", day(2), domain.Draft)
	other := seedEntry(t, s, "e3", "org-2", day(2), domain.Draft)

	assert.Equal(t, "JE-0001", first.EntryNumber)
	assert.Equal(t, "JE-0002", second.EntryNumber)
	assert.Equal(t, "JE-0001", other.EntryNumber)
}

func TestFindEntryByID_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedEntry(t, s, "e1", "org-1", day(1), domain.Draft, "a1")

	got, err := s.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	got.Lines[0].AccountID = "mutated"

	again, err := s.FindEntryByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "a1", again.Lines[0].AccountID)

	_, err = s.FindEntryByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestEntryListings(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedEntry(t, s, "e1", "org-1", day(1), domain.Posted, "cash")
	seedEntry(t, s, "e2", "org-1", day(15), domain.Draft, "cash", "rent")
	seedEntry(t, s, "e3", "org-1", day(31), domain.Posted, "rent")
	seedEntry(t, s, "x1", "org-2", day(15), domain.Posted, "cash")

	inRange, err := s.ListEntriesByDateRange(ctx, "org-1", day(1), day(15))
	require.NoError(t, err)
	require.Len(t, inRange, 2)
	assert.Equal(t, "e1", inRange[0].EntryID)
	assert.Equal(t, "e2", inRange[1].EntryID)

	posted, err := s.ListEntriesByStatus(ctx, "org-1", domain.Posted)
	require.NoError(t, err)
	require.Len(t, posted, 2)
	assert.Equal(t, "e3", posted[0].EntryID)

	touchingCash, err := s.ListEntriesByAccount(ctx, "org-1", "cash")
	require.NoError(t, err)
	require.Len(t, touchingCash, 2)
	assert.Equal(t, "e2", touchingCash[0].EntryID)
	assert.Equal(t, "e1", touchingCash[1].EntryID)
}

func TestRunInTx_CommitsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedAccount(t, s, "cash", "org-1", "1000", domain.Asset)
	seedAccount(t, s, "sales", "org-1", "4000", domain.Revenue)
	seedEntry(t, s, "e1", "org-1", day(1), domain.Draft, "cash")
	at := day(2)

	err := s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		moved, err := tx.TransitionEntryStatus(ctx, "e1", domain.Draft, domain.Posted, at)
		require.NoError(t, err)
		require.True(t, moved)
		require.NoError(t, tx.IncrementAccountBalance(ctx, "org-1", "cash", decimal.NewFromInt(10), "u", at))
		return tx.IncrementAccountBalance(ctx, "org-1", "ghost", decimal.NewFromInt(10), "u", at)
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))

	entry, _ := s.FindEntryByID(ctx, "e1")
	assert.Equal(t, domain.Draft, entry.Status)
	cash, _ := s.FindAccountByID(ctx, "org-1", "cash")
	assert.True(t, cash.Balance.IsZero())

	err = s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		if _, err := tx.TransitionEntryStatus(ctx, "e1", domain.Draft, domain.Posted, at); err != nil {
			return err
		}
		if err := tx.IncrementAccountBalance(ctx, "org-1", "cash", decimal.NewFromInt(10), "u", at); err != nil {
			return err
		}
		return tx.IncrementAccountBalance(ctx, "org-1", "sales", decimal.NewFromInt(10), "u", at)
	})
	require.NoError(t, err)

	entry, _ = s.FindEntryByID(ctx, "e1")
	assert.Equal(t, domain.Posted, entry.Status)
	require.NotNil(t, entry.PostedAt)
	assert.True(t, entry.PostedAt.Equal(at))
	cash, _ = s.FindAccountByID(ctx, "org-1", "cash")
	assert.True(t, decimal.NewFromInt(10).Equal(cash.Balance))
}

func TestTransitionEntryStatus_CompareAndSet(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	seedEntry(t, s, "e1", "org-1", day(1), domain.Posted)

	err := s.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		moved, err := tx.TransitionEntryStatus(ctx, "e1", domain.Draft, domain.Posted, day(2))
		assert.NoError(t, err)
		assert.False(t, moved)

		moved, err = tx.TransitionEntryStatus(ctx, "missing", domain.Draft, domain.Posted, day(2))
		assert.NoError(t, err)
		assert.False(t, moved)
		return nil
	})
	require.NoError(t, err)
}

func TestRunInTx_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewStore().RunInTx(ctx, func(context.Context, portsrepo.LedgerTx) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
