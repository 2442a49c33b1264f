package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	portssvc "github.com/playware/game_lounge_app/internal/core/ports/services"
	"github.com/playware/game_lounge_app/internal/core/services"
)

// MockReportingRepository is a mock type for the ReportingRepository interface
type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) CountSessionsCreatedBetween(ctx context.Context, from, to time.Time) (int, error) {
	args := m.Called(ctx, from, to)
	return args.Int(0), args.Error(1)
}

func (m *MockReportingRepository) CountActiveSessions(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockReportingRepository) SumCompletedIncomeBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// --- Test Suite Setup ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReporting *MockReportingRepository
	mockLedger    *MockLedgerRepository
	now           time.Time
	service       portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReporting = new(MockReportingRepository)
	suite.mockLedger = new(MockLedgerRepository)
	// Late evening on purpose: the day window must still start at local midnight.
	suite.now = time.Date(2025, 6, 1, 23, 45, 0, 0, time.UTC)
	suite.service = services.NewReportingService(suite.mockReporting, suite.mockLedger, services.WithReportingClock(func() time.Time {
		return suite.now
	}))
}

func (suite *ReportingServiceTestSuite) TestDashboardStats() {
	ctx := context.Background()
	dayStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dayEnd := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	suite.mockReporting.On("CountSessionsCreatedBetween", ctx, dayStart, dayEnd).Return(7, nil).Once()
	suite.mockReporting.On("CountActiveSessions", ctx).Return(2, nil).Once()
	suite.mockReporting.On("SumCompletedIncomeBetween", ctx, dayStart, dayEnd).Return(decimal.NewFromInt(1850), nil).Once()
	suite.mockLedger.On("CurrentBalance", ctx).Return(decimal.NewFromInt(2230), nil).Once()

	stats, err := suite.service.DashboardStats(ctx)

	suite.Require().NoError(err)
	suite.Equal(7, stats.TodaySessions)
	suite.Equal(2, stats.ActiveSessions)
	suite.True(stats.TodaysIncome.Equal(decimal.NewFromInt(1850)))
	suite.True(stats.CashBalance.Equal(decimal.NewFromInt(2230)))
	suite.mockReporting.AssertExpectations(suite.T())
	suite.mockLedger.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestDashboardStats_QuietDay() {
	ctx := context.Background()

	suite.mockReporting.On("CountSessionsCreatedBetween", ctx, mock.Anything, mock.Anything).Return(0, nil).Once()
	suite.mockReporting.On("CountActiveSessions", ctx).Return(0, nil).Once()
	suite.mockReporting.On("SumCompletedIncomeBetween", ctx, mock.Anything, mock.Anything).Return(decimal.Zero, nil).Once()
	suite.mockLedger.On("CurrentBalance", ctx).Return(decimal.Zero, nil).Once()

	stats, err := suite.service.DashboardStats(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, stats.TodaySessions)
	suite.True(stats.TodaysIncome.IsZero())
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
