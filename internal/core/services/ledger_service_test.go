package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gjovanov/tickytack/internal/apperrors"
	"github.com/gjovanov/tickytack/internal/core/domain"
	portsrepo "github.com/gjovanov/tickytack/internal/core/ports/repositories"
	portssvc "github.com/gjovanov/tickytack/internal/core/ports/services"
	"github.com/gjovanov/tickytack/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, orgID, code string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByOrg(ctx context.Context, orgID string) ([]domain.Account, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByType(ctx context.Context, orgID string, accountType domain.AccountType) ([]domain.Account, error) {
	args := m.Called(ctx, orgID, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock JournalEntryRepository ---
type MockJournalEntryRepository struct {
	mock.Mock
}

var _ portsrepo.JournalEntryRepositoryFacade = (*MockJournalEntryRepository)(nil)

func (m *MockJournalEntryRepository) SaveEntry(ctx context.Context, entry *domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByDateRange(ctx context.Context, orgID string, start, end time.Time) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByStatus(ctx context.Context, orgID string, status domain.EntryStatus) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) ListEntriesByAccount(ctx context.Context, orgID, accountID string) ([]domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalEntry), args.Error(1)
}

// --- Mock LedgerTx / Transactor ---
type MockLedgerTx struct {
	mock.Mock
}

var _ portsrepo.LedgerTx = (*MockLedgerTx)(nil)

func (m *MockLedgerTx) TransitionEntryStatus(ctx context.Context, entryID string, from, to domain.EntryStatus, at time.Time) (bool, error) {
	args := m.Called(ctx, entryID, from, to, at)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerTx) IncrementAccountBalance(ctx context.Context, orgID, accountID string, delta decimal.Decimal, userID string, at time.Time) error {
	args := m.Called(ctx, orgID, accountID, delta, userID, at)
	return args.Error(0)
}

// MockTransactor runs fn against its MockLedgerTx and records whether the transaction committed.
type MockTransactor struct {
	Tx        *MockLedgerTx
	BeginErr  error
	Committed bool
}

func (m *MockTransactor) RunInTx(ctx context.Context, fn func(ctx context.Context, tx portsrepo.LedgerTx) error) error {
	if m.BeginErr != nil {
		return m.BeginErr
	}
	if err := fn(ctx, m.Tx); err != nil {
		return err
	}
	m.Committed = true
	return nil
}

// decEq matches a decimal argument by value rather than by representation.
func decEq(expected string) interface{} {
	want := decimal.RequireFromString(expected)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockEntryRepo   *MockJournalEntryRepository
	mockTx          *MockLedgerTx
	transactor      *MockTransactor
	service         portssvc.LedgerSvcFacade
	orgID           string
	userID          string
	cash            domain.Account
	sales           domain.Account
	entry           *domain.JournalEntry
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockEntryRepo = new(MockJournalEntryRepository)
	suite.mockTx = new(MockLedgerTx)
	suite.transactor = &MockTransactor{Tx: suite.mockTx}
	suite.service = services.NewLedgerService(suite.mockAccountRepo, suite.mockEntryRepo, suite.transactor,
		services.WithClock(func() time.Time { return fixedNow }))

	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
	// Fixed ids so the sorted application order is known.
	suite.cash = domain.Account{AccountID: "a-cash", OrgID: suite.orgID, Code: "1000", Name: "Cash", AccountType: domain.Asset, IsActive: true}
	suite.sales = domain.Account{AccountID: "b-sales", OrgID: suite.orgID, Code: "4000", Name: "Sales", AccountType: domain.Revenue, IsActive: true}
	suite.entry = &domain.JournalEntry{
		EntryID:     uuid.NewString(),
		OrgID:       suite.orgID,
		EntryNumber: "JE-0001",
		Date:        jan(10),
		Description: "cash sale",
		Status:      domain.Draft,
		Lines: []domain.JournalEntryLine{
			{AccountID: suite.sales.AccountID, Debit: decimal.Zero, Credit: decimal.NewFromInt(100)},
			{AccountID: suite.cash.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.Zero},
		},
	}
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (suite *LedgerServiceTestSuite) withStatus(status domain.EntryStatus) *domain.JournalEntry {
	e := *suite.entry
	e.Status = status
	return &e
}

func (suite *LedgerServiceTestSuite) expectAccounts() {
	suite.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, suite.orgID, []string{suite.sales.AccountID, suite.cash.AccountID}).
		Return(map[string]domain.Account{suite.cash.AccountID: suite.cash, suite.sales.AccountID: suite.sales}, nil).Once()
}

func (suite *LedgerServiceTestSuite) TestPostEntry_AppliesIncrementsInAccountOrder() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Draft), nil).Once()
	suite.expectAccounts()

	mock.InOrder(
		suite.mockTx.On("TransitionEntryStatus", ctx, suite.entry.EntryID, domain.Draft, domain.Posted, fixedNow).Return(true, nil).Once(),
		suite.mockTx.On("IncrementAccountBalance", ctx, suite.orgID, "a-cash", decEq("100"), suite.userID, fixedNow).Return(nil).Once(),
		suite.mockTx.On("IncrementAccountBalance", ctx, suite.orgID, "b-sales", decEq("100"), suite.userID, fixedNow).Return(nil).Once(),
	)

	posted, err := suite.service.PostEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.PostedAt)
	suite.True(posted.PostedAt.Equal(fixedNow))
	suite.Equal(suite.userID, posted.LastUpdatedBy)
	suite.True(suite.transactor.Committed)
	suite.mockTx.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_LostRaceToPost() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Draft), nil).Once()
	suite.expectAccounts()
	suite.mockTx.On("TransitionEntryStatus", ctx, suite.entry.EntryID, domain.Draft, domain.Posted, fixedNow).Return(false, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Posted), nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAlreadyPosted)
	suite.False(suite.transactor.Committed)
	suite.mockTx.AssertNotCalled(suite.T(), "IncrementAccountBalance", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_LostRaceToVoid() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Draft), nil).Once()
	suite.expectAccounts()
	suite.mockTx.On("TransitionEntryStatus", ctx, suite.entry.EntryID, domain.Draft, domain.Posted, fixedNow).Return(false, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Voided), nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrInvalidTransition)
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_LostRace() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Posted), nil).Once()
	suite.expectAccounts()
	suite.mockTx.On("TransitionEntryStatus", ctx, suite.entry.EntryID, domain.Posted, domain.Voided, fixedNow).Return(false, nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Voided), nil).Once()

	_, err := suite.service.VoidEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAlreadyVoided)
}

func (suite *LedgerServiceTestSuite) TestVoidEntry_NegatesIncrements() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Posted), nil).Once()
	suite.expectAccounts()
	suite.mockTx.On("TransitionEntryStatus", ctx, suite.entry.EntryID, domain.Posted, domain.Voided, fixedNow).Return(true, nil).Once()
	suite.mockTx.On("IncrementAccountBalance", ctx, suite.orgID, "a-cash", decEq("-100"), suite.userID, fixedNow).Return(nil).Once()
	suite.mockTx.On("IncrementAccountBalance", ctx, suite.orgID, "b-sales", decEq("-100"), suite.userID, fixedNow).Return(nil).Once()

	voided, err := suite.service.VoidEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Voided, voided.Status)
	suite.Require().NotNil(voided.VoidedAt)
	suite.mockTx.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestPostEntry_InfrastructureErrorPropagates() {
	ctx := context.Background()
	dbErr := errors.New("connection reset")
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Draft), nil).Once()
	suite.expectAccounts()
	suite.mockTx.On("TransitionEntryStatus", ctx, suite.entry.EntryID, domain.Draft, domain.Posted, fixedNow).Return(true, nil).Once()
	suite.mockTx.On("IncrementAccountBalance", ctx, suite.orgID, "a-cash", mock.Anything, suite.userID, fixedNow).Return(dbErr).Once()

	_, err := suite.service.PostEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.ErrorIs(err, dbErr)
	suite.False(suite.transactor.Committed)
	suite.mockTx.AssertNotCalled(suite.T(), "IncrementAccountBalance", mock.Anything, suite.orgID, "b-sales", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_BeginFailure() {
	ctx := context.Background()
	suite.transactor.BeginErr = errors.New("pool exhausted")
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Draft), nil).Once()
	suite.expectAccounts()

	_, err := suite.service.PostEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.ErrorIs(err, suite.transactor.BeginErr)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_AccountMissingBeforeTransaction() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(suite.withStatus(domain.Draft), nil).Once()
	suite.mockAccountRepo.On("FindAccountsByIDs", ctx, suite.orgID, mock.Anything).
		Return(map[string]domain.Account{suite.cash.AccountID: suite.cash}, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.mockTx.AssertNotCalled(suite.T(), "TransitionEntryStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_RepositoryNotFound() {
	ctx := context.Background()
	suite.mockEntryRepo.On("FindEntryByID", ctx, "missing").Return(nil, apperrors.NewNotFoundError("journal entry missing")).Once()

	_, err := suite.service.PostEntry(ctx, suite.orgID, "missing", suite.userID)

	suite.ErrorIs(err, apperrors.ErrEntryNotFound)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *LedgerServiceTestSuite) TestPostEntry_RepositoryFailureIsNotMasked() {
	ctx := context.Background()
	dbErr := errors.New("timeout")
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.entry.EntryID).Return(nil, dbErr).Once()

	_, err := suite.service.PostEntry(ctx, suite.orgID, suite.entry.EntryID, suite.userID)

	suite.ErrorIs(err, dbErr)
	suite.NotErrorIs(err, apperrors.ErrNotFound)
}
