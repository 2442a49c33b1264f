package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/playware/game_lounge_app/internal/apperrors"
	"github.com/playware/game_lounge_app/internal/core/domain"
	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/core/services"
	"github.com/playware/game_lounge_app/internal/dto"
)

// MockLedgerRepository is a mock type for the LedgerRepositoryFacade interface
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) AppendEntry(ctx context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntries(ctx context.Context) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) CurrentBalance(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// fakeLedgerRepository reproduces the balance-chain behaviour of the real
// repository in memory: each append stamps the new running balance.
type fakeLedgerRepository struct {
	entries []domain.LedgerEntry
	balance decimal.Decimal
}

func (f *fakeLedgerRepository) AppendEntry(_ context.Context, entry domain.LedgerEntry) (*domain.LedgerEntry, error) {
	if entry.Direction == domain.Credit {
		f.balance = f.balance.Add(entry.Amount)
	} else {
		f.balance = f.balance.Sub(entry.Amount)
	}
	entry.RunningBalance = f.balance
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeLedgerRepository) ListEntries(context.Context) ([]domain.LedgerEntry, error) {
	return f.entries, nil
}

func (f *fakeLedgerRepository) CurrentBalance(context.Context) (decimal.Decimal, error) {
	return f.balance, nil
}

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	now      time.Time
	service  portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.now = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	suite.service = services.NewLedgerService(suite.mockRepo, services.WithLedgerClock(func() time.Time {
		return suite.now
	}))
}

// --- AddEntry ---

func (suite *LedgerServiceTestSuite) TestAddEntry_Success() {
	ctx := context.Background()
	req := dto.CreateLedgerEntryRequest{
		Amount:      decimal.NewFromInt(500),
		Description: "Opening float",
		Direction:   "CREDIT",
	}

	suite.mockRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.Direction == domain.Credit &&
			e.Amount.Equal(decimal.NewFromInt(500)) &&
			e.Description == "Opening float" &&
			e.EntryDate.Equal(suite.now) &&
			e.GameSessionID == "" &&
			e.EntryID != ""
	})).Return(&domain.LedgerEntry{EntryID: "e1", RunningBalance: decimal.NewFromInt(500)}, nil).Once()

	stored, err := suite.service.AddEntry(ctx, req)

	suite.Require().NoError(err)
	suite.True(stored.RunningBalance.Equal(decimal.NewFromInt(500)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddEntry_ExplicitEntryDate() {
	ctx := context.Background()
	wantDate := time.Date(2025, 5, 28, 0, 0, 0, 0, time.UTC)

	suite.mockRepo.On("AppendEntry", ctx, mock.MatchedBy(func(e domain.LedgerEntry) bool {
		return e.EntryDate.Equal(wantDate)
	})).Return(&domain.LedgerEntry{EntryID: "e1"}, nil).Once()

	_, err := suite.service.AddEntry(ctx, dto.CreateLedgerEntryRequest{
		Amount:      decimal.NewFromInt(120),
		Description: "Snacks restock",
		Direction:   "DEBIT",
		EntryDate:   "2025-05-28",
	})

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestAddEntry_Validation() {
	tests := []struct {
		name string
		req  dto.CreateLedgerEntryRequest
	}{
		{"zero amount", dto.CreateLedgerEntryRequest{Amount: decimal.Zero, Description: "x", Direction: "CREDIT"}},
		{"negative amount", dto.CreateLedgerEntryRequest{Amount: decimal.NewFromInt(-5), Description: "x", Direction: "CREDIT"}},
		{"blank description", dto.CreateLedgerEntryRequest{Amount: decimal.NewFromInt(5), Description: "   ", Direction: "CREDIT"}},
		{"bad direction", dto.CreateLedgerEntryRequest{Amount: decimal.NewFromInt(5), Description: "x", Direction: "TRANSFER"}},
		{"bad entry date", dto.CreateLedgerEntryRequest{Amount: decimal.NewFromInt(5), Description: "x", Direction: "CREDIT", EntryDate: "28-05-2025"}},
	}

	for _, tt := range tests {
		_, err := suite.service.AddEntry(context.Background(), tt.req)
		suite.Require().ErrorIs(err, apperrors.ErrValidation, tt.name)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "AppendEntry")
}

// --- Balance chain ---

func (suite *LedgerServiceTestSuite) TestBalanceChain_CreditThenDebit() {
	ctx := context.Background()
	fake := &fakeLedgerRepository{balance: decimal.Zero}
	svc := services.NewLedgerService(fake)

	first, err := svc.AddEntry(ctx, dto.CreateLedgerEntryRequest{
		Amount:      decimal.NewFromInt(500),
		Description: "Opening float",
		Direction:   "CREDIT",
	})
	suite.Require().NoError(err)
	suite.True(first.RunningBalance.Equal(decimal.NewFromInt(500)), "balance after credit %s", first.RunningBalance)

	second, err := svc.AddEntry(ctx, dto.CreateLedgerEntryRequest{
		Amount:      decimal.NewFromInt(120),
		Description: "Snacks restock",
		Direction:   "DEBIT",
	})
	suite.Require().NoError(err)
	suite.True(second.RunningBalance.Equal(decimal.NewFromInt(380)), "balance after debit %s", second.RunningBalance)

	balance, err := svc.CurrentBalance(ctx)
	suite.Require().NoError(err)
	suite.True(balance.Equal(decimal.NewFromInt(380)))
}

func (suite *LedgerServiceTestSuite) TestBalanceChain_CanGoNegative() {
	ctx := context.Background()
	fake := &fakeLedgerRepository{balance: decimal.Zero}
	svc := services.NewLedgerService(fake)

	entry, err := svc.AddEntry(ctx, dto.CreateLedgerEntryRequest{
		Amount:      decimal.NewFromInt(75),
		Description: "Till shortage payout",
		Direction:   "DEBIT",
	})

	suite.Require().NoError(err)
	suite.True(entry.RunningBalance.Equal(decimal.NewFromInt(-75)))
}

// --- CurrentBalance ---

func (suite *LedgerServiceTestSuite) TestCurrentBalance_EmptyLedger() {
	ctx := context.Background()
	suite.mockRepo.On("CurrentBalance", ctx).Return(decimal.Zero, nil).Once()

	balance, err := suite.service.CurrentBalance(ctx)

	suite.Require().NoError(err)
	suite.True(balance.IsZero())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
