package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/dto"
	"github.com/gjovanov/tickytack/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// errStatusChanged signals that the compare-and-set on an entry's status lost to a concurrent writer.
var errStatusChanged = errors.New("journal entry status changed concurrently")

// ledgerService owns the entry lifecycle: draft creation, posting and voiding.
type ledgerService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	entryRepo   portsrepo.JournalEntryRepositoryFacade
	transactor  portsrepo.LedgerTransactor
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(
	accountRepo portsrepo.AccountReader,
	entryRepo portsrepo.JournalEntryRepositoryFacade,
	transactor portsrepo.LedgerTransactor,
	options ...ServiceOption,
) portssvc.LedgerSvcFacade {
	svc := &ledgerService{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		transactor:  transactor,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// CreateDraftEntry validates the request shape and stores a draft. Balance is checked on post.
func (s *ledgerService) CreateDraftEntry(ctx context.Context, orgID string, req dto.CreateJournalEntryRequest, creatorUserID string) (*domain.JournalEntry, error) {
	if orgID == "" {
		return nil, fmt.Errorf("%w: organization is required", apperrors.ErrValidation)
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, fmt.Errorf("%w: journal entry description is required", apperrors.ErrValidation)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: journal entry date is required", apperrors.ErrValidation)
	}
	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: journal entry must have at least one line", apperrors.ErrValidation)
	}

	lines := make([]domain.JournalEntryLine, len(req.Lines))
	for i, l := range req.Lines {
		if l.AccountID == "" {
			return nil, fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return nil, fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		lines[i] = domain.JournalEntryLine{
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
		}
	}

	now := s.Now()
	entry := &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		OrgID:       orgID,
		Date:        accountingDate(req.Date),
		Description: description,
		Reference:   req.Reference,
		Status:      domain.Draft,
		Lines:       lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, orgID, entry.AccountIDs())
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve entry accounts", slog.String("org_id", orgID))
		return nil, err
	}
	for _, id := range entry.AccountIDs() {
		if _, ok := accounts[id]; !ok {
			return nil, apperrors.ErrAccountNotFound.WithDetail(id)
		}
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save journal entry", slog.String("org_id", orgID))
		return nil, err
	}

	s.LogInfo(ctx, "Draft journal entry created",
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.String("org_id", orgID))
	return entry, nil
}

func (s *ledgerService) GetEntryByID(ctx context.Context, orgID string, entryID string) (*domain.JournalEntry, error) {
	return s.loadEntry(ctx, orgID, entryID)
}

func (s *ledgerService) ListEntriesByStatus(ctx context.Context, orgID string, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	switch status {
	case domain.Draft, domain.Posted, domain.Voided:
	default:
		return nil, fmt.Errorf("%w: unknown entry status %q", apperrors.ErrValidation, status)
	}
	entries, err := s.entryRepo.ListEntriesByStatus(ctx, orgID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries by status", slog.String("org_id", orgID), slog.String("status", string(status)))
		return nil, err
	}
	return entries, nil
}

func (s *ledgerService) ListEntriesByAccount(ctx context.Context, orgID string, accountID string) ([]domain.JournalEntry, error) {
	if _, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrAccountNotFound.WithDetail(accountID)
		}
		return nil, err
	}
	entries, err := s.entryRepo.ListEntriesByAccount(ctx, orgID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries by account", slog.String("org_id", orgID), slog.String("account_id", accountID))
		return nil, err
	}
	return entries, nil
}

// PostEntry applies a balanced draft to its accounts and marks it posted, in one transaction.
func (s *ledgerService) PostEntry(ctx context.Context, orgID string, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}
	if err := postConflict(entry.Status); err != nil {
		s.LogWarn(ctx, err, "Rejected post", slog.String("entry_id", entryID))
		return nil, err
	}
	if !entry.IsBalanced() {
		debits, credits := entry.Totals()
		err := apperrors.ErrUnbalanced.WithDetail(fmt.Sprintf("debits %s, credits %s", debits, credits))
		s.LogWarn(ctx, err, "Rejected post", slog.String("entry_id", entryID))
		return nil, err
	}

	changes, err := s.balanceChanges(ctx, entry)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.transition(ctx, entry, domain.Draft, domain.Posted, changes, userID, now); err != nil {
		if errors.Is(err, errStatusChanged) {
			return nil, s.resolveLostRace(ctx, orgID, entryID, postConflict)
		}
		return nil, err
	}

	entry.Status = domain.Posted
	entry.PostedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry posted",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("accounts", len(changes)))
	return entry, nil
}

// VoidEntry reverses a posted entry's balance effect and marks it voided, in one transaction.
func (s *ledgerService) VoidEntry(ctx context.Context, orgID string, entryID string, userID string) (*domain.JournalEntry, error) {
	entry, err := s.loadEntry(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}
	if err := voidConflict(entry.Status); err != nil {
		s.LogWarn(ctx, err, "Rejected void", slog.String("entry_id", entryID))
		return nil, err
	}

	changes, err := s.balanceChanges(ctx, entry)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.transition(ctx, entry, domain.Posted, domain.Voided, accounting.Negate(changes), userID, now); err != nil {
		if errors.Is(err, errStatusChanged) {
			return nil, s.resolveLostRace(ctx, orgID, entryID, voidConflict)
		}
		return nil, err
	}

	entry.Status = domain.Voided
	entry.VoidedAt = &now
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID
	s.LogInfo(ctx, "Journal entry voided",
		slog.String("entry_id", entryID),
		slog.String("entry_number", entry.EntryNumber),
		slog.Int("accounts", len(changes)))
	return entry, nil
}

// transition claims the status change first so a concurrent loser never touches balances,
// then applies every account delta. Any failure rolls the whole transaction back.
func (s *ledgerService) transition(
	ctx context.Context,
	entry *domain.JournalEntry,
	from, to domain.EntryStatus,
	changes map[string]decimal.Decimal,
	userID string,
	at time.Time,
) error {
	err := s.transactor.RunInTx(ctx, func(ctx context.Context, tx portsrepo.LedgerTx) error {
		moved, err := tx.TransitionEntryStatus(ctx, entry.EntryID, from, to, at)
		if err != nil {
			return err
		}
		if !moved {
			return errStatusChanged
		}
		for _, accountID := range accounting.SortedAccountIDs(changes) {
			err := tx.IncrementAccountBalance(ctx, entry.OrgID, accountID, changes[accountID], userID, at)
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.ErrAccountNotFound.WithDetail(accountID)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStatusChanged) && !errors.Is(err, apperrors.ErrAccountNotFound) {
		s.LogError(ctx, err, "Ledger transaction failed",
			slog.String("entry_id", entry.EntryID),
			slog.String("from", string(from)),
			slog.String("to", string(to)))
	}
	return err
}

// resolveLostRace re-reads an entry whose compare-and-set failed and reports the state that won.
func (s *ledgerService) resolveLostRace(ctx context.Context, orgID, entryID string, conflict func(domain.EntryStatus) error) error {
	current, err := s.loadEntry(ctx, orgID, entryID)
	if err != nil {
		return err
	}
	if err := conflict(current.Status); err != nil {
		s.LogWarn(ctx, err, "Lost concurrent status transition", slog.String("entry_id", entryID))
		return err
	}
	// No transition leads back to draft or posted, so this means storage was rewritten underneath us.
	return fmt.Errorf("%w: journal entry %s changed during transition", apperrors.ErrInternal, entryID)
}

func (s *ledgerService) balanceChanges(ctx context.Context, entry *domain.JournalEntry) (map[string]decimal.Decimal, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, entry.OrgID, entry.AccountIDs())
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve entry accounts", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	changes, err := accounting.CalculateBalanceChanges(entry.Lines, accounts)
	if err != nil {
		s.LogWarn(ctx, err, "Entry references unknown account", slog.String("entry_id", entry.EntryID))
		return nil, err
	}
	return changes, nil
}

// loadEntry fetches an entry and hides entries of other organizations.
func (s *ledgerService) loadEntry(ctx context.Context, orgID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrEntryNotFound.WithDetail(entryID)
		}
		s.LogError(ctx, err, "Failed to load journal entry", slog.String("entry_id", entryID))
		return nil, err
	}
	if entry.OrgID != orgID {
		return nil, apperrors.ErrEntryNotFound.WithDetail(entryID)
	}
	return entry, nil
}

func postConflict(status domain.EntryStatus) error {
	switch status {
	case domain.Posted:
		return apperrors.ErrAlreadyPosted
	case domain.Voided:
		return apperrors.ErrInvalidTransition
	}
	return nil
}

func voidConflict(status domain.EntryStatus) error {
	switch status {
	case domain.Draft:
		return apperrors.ErrCannotVoidDraft
	case domain.Voided:
		return apperrors.ErrAlreadyVoided
	}
	return nil
}

// accountingDate drops the time of day so inclusive date-range reports match whole days.
func accountingDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
