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

// MockSessionRepository is a mock type for the SessionRepositoryFacade interface
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) SaveSession(ctx context.Context, session domain.GameSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionRepository) CompleteSession(ctx context.Context, session domain.GameSession, cashEntry *domain.LedgerEntry) error {
	args := m.Called(ctx, session, cashEntry)
	return args.Error(0)
}

func (m *MockSessionRepository) FindSessionByID(ctx context.Context, sessionID string) (*domain.GameSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GameSession), args.Error(1)
}

func (m *MockSessionRepository) ListActiveSessions(ctx context.Context) ([]domain.GameSession, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameSession), args.Error(1)
}

func (m *MockSessionRepository) ListCompletedSessions(ctx context.Context, from, to *time.Time) ([]domain.GameSession, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameSession), args.Error(1)
}

func (m *MockSessionRepository) ListSessionsEndedBetween(ctx context.Context, from, to time.Time) ([]domain.GameSession, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GameSession), args.Error(1)
}

// --- Test Suite Setup ---

type SessionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSessionRepository
	now      time.Time
	service  portssvc.SessionSvcFacade
}

func (suite *SessionServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSessionRepository)
	suite.now = time.Date(2025, 6, 1, 18, 0, 0, 0, time.UTC)
	suite.service = services.NewSessionService(suite.mockRepo, services.WithSessionClock(func() time.Time {
		return suite.now
	}))
}

func (suite *SessionServiceTestSuite) activeSession(controllerCount int, stationType domain.StationType, startedAgo time.Duration) *domain.GameSession {
	start := suite.now.Add(-startedAgo)
	return &domain.GameSession{
		SessionID:       "11111111-1111-1111-1111-111111111111",
		CustomerName:    "Ravi",
		ControllerCount: controllerCount,
		StationType:     stationType,
		StartTime:       start,
		CalculatedPrice: decimal.Zero,
		TotalPrice:      decimal.Zero,
		CashReceived:    decimal.Zero,
		OnlineReceived:  decimal.Zero,
		Status:          domain.SessionActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     start,
			LastUpdatedAt: start,
		},
	}
}

// --- StartSession ---

func (suite *SessionServiceTestSuite) TestStartSession_Success() {
	ctx := context.Background()
	req := dto.StartSessionRequest{
		CustomerName:    "Ravi",
		StationType:     "screen1",
		ControllerCount: 2,
	}

	suite.mockRepo.On("SaveSession", ctx, mock.AnythingOfType("domain.GameSession")).Return(nil).Once()

	session, err := suite.service.StartSession(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(session)
	suite.NotEmpty(session.SessionID)
	suite.Equal(domain.SessionActive, session.Status)
	suite.Equal(suite.now, session.StartTime)
	suite.Nil(session.EndTime)
	suite.Nil(session.DurationMinutes)
	suite.False(session.IsMismatch)
	suite.True(session.CalculatedPrice.IsZero())
	suite.True(session.TotalPrice.IsZero())
	suite.True(session.CashReceived.IsZero())
	suite.True(session.OnlineReceived.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestStartSession_EmptyCustomerName() {
	_, err := suite.service.StartSession(context.Background(), dto.StartSessionRequest{
		CustomerName:    "   ",
		StationType:     "screen1",
		ControllerCount: 2,
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSession")
}

func (suite *SessionServiceTestSuite) TestStartSession_UnknownStationType() {
	_, err := suite.service.StartSession(context.Background(), dto.StartSessionRequest{
		CustomerName:    "Ravi",
		StationType:     "screen9",
		ControllerCount: 2,
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SessionServiceTestSuite) TestStartSession_ControllerCountOutOfRange() {
	for _, count := range []int{0, 5} {
		_, err := suite.service.StartSession(context.Background(), dto.StartSessionRequest{
			CustomerName:    "Ravi",
			StationType:     "screen1",
			ControllerCount: count,
		})
		suite.Require().ErrorIs(err, apperrors.ErrValidation, "controllerCount=%d", count)
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSession")
}

func (suite *SessionServiceTestSuite) TestStartSession_PoolIgnoresControllerCount() {
	ctx := context.Background()
	suite.mockRepo.On("SaveSession", ctx, mock.MatchedBy(func(s domain.GameSession) bool {
		return s.StationType == domain.StationPool && s.ControllerCount == 0
	})).Return(nil).Once()

	session, err := suite.service.StartSession(ctx, dto.StartSessionRequest{
		CustomerName:    "Ravi",
		StationType:     "pool",
		ControllerCount: 3,
	})

	suite.Require().NoError(err)
	suite.Equal(0, session.ControllerCount)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- CloseSession ---

func (suite *SessionServiceTestSuite) TestCloseSession_ExactPayment() {
	// 50 minutes on a two-controller screen: 41-75 bucket -> 1.0h -> 250.
	ctx := context.Background()
	active := suite.activeSession(2, domain.StationScreen1, 50*time.Minute)

	suite.mockRepo.On("FindSessionByID", ctx, active.SessionID).Return(active, nil).Once()
	suite.mockRepo.On("CompleteSession", ctx, mock.AnythingOfType("domain.GameSession"), mock.AnythingOfType("*domain.LedgerEntry")).Return(nil).Once()

	closed, err := suite.service.CloseSession(ctx, active.SessionID, dto.CloseSessionRequest{
		CashReceived:   decimal.NewFromInt(250),
		OnlineReceived: decimal.Zero,
	})

	suite.Require().NoError(err)
	suite.Equal(domain.SessionCompleted, closed.Status)
	suite.Require().NotNil(closed.EndTime)
	suite.Equal(suite.now, *closed.EndTime)
	suite.Require().NotNil(closed.DurationMinutes)
	suite.Equal(50, *closed.DurationMinutes)
	suite.True(closed.CalculatedPrice.Equal(decimal.NewFromInt(250)), "calculated price %s", closed.CalculatedPrice)
	suite.True(closed.TotalPrice.Equal(decimal.NewFromInt(250)))
	suite.False(closed.IsMismatch)
	suite.Empty(closed.MismatchReason)

	// Cash was received, so a CREDIT ledger entry rides the same transaction.
	entry := suite.mockRepo.Calls[1].Arguments.Get(2).(*domain.LedgerEntry)
	suite.Require().NotNil(entry)
	suite.Equal(domain.Credit, entry.Direction)
	suite.True(entry.Amount.Equal(decimal.NewFromInt(250)))
	suite.Equal(active.SessionID, entry.GameSessionID)
	suite.Equal("Game session cash payment", entry.Description)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_OnlineOnlySkipsLedgerEntry() {
	ctx := context.Background()
	active := suite.activeSession(2, domain.StationScreen2, 50*time.Minute)

	suite.mockRepo.On("FindSessionByID", ctx, active.SessionID).Return(active, nil).Once()
	suite.mockRepo.On("CompleteSession", ctx, mock.AnythingOfType("domain.GameSession"), (*domain.LedgerEntry)(nil)).Return(nil).Once()

	closed, err := suite.service.CloseSession(ctx, active.SessionID, dto.CloseSessionRequest{
		CashReceived:   decimal.Zero,
		OnlineReceived: decimal.NewFromInt(250),
	})

	suite.Require().NoError(err)
	suite.False(closed.IsMismatch)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_WithinToleranceIsNotMismatch() {
	ctx := context.Background()
	active := suite.activeSession(2, domain.StationScreen1, 50*time.Minute)

	suite.mockRepo.On("FindSessionByID", ctx, active.SessionID).Return(active, nil).Once()
	suite.mockRepo.On("CompleteSession", ctx, mock.AnythingOfType("domain.GameSession"), mock.Anything).Return(nil).Once()

	closed, err := suite.service.CloseSession(ctx, active.SessionID, dto.CloseSessionRequest{
		CashReceived: decimal.RequireFromString("250.01"),
	})

	suite.Require().NoError(err)
	suite.False(closed.IsMismatch)
}

func (suite *SessionServiceTestSuite) TestCloseSession_MismatchRequiresReason() {
	ctx := context.Background()
	active := suite.activeSession(2, domain.StationScreen1, 50*time.Minute)

	suite.mockRepo.On("FindSessionByID", ctx, active.SessionID).Return(active, nil).Once()

	_, err := suite.service.CloseSession(ctx, active.SessionID, dto.CloseSessionRequest{
		CashReceived: decimal.RequireFromString("250.02"),
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "CompleteSession")
}

func (suite *SessionServiceTestSuite) TestCloseSession_MismatchWithReason() {
	ctx := context.Background()
	active := suite.activeSession(2, domain.StationScreen1, 50*time.Minute)

	suite.mockRepo.On("FindSessionByID", ctx, active.SessionID).Return(active, nil).Once()
	suite.mockRepo.On("CompleteSession", ctx, mock.AnythingOfType("domain.GameSession"), mock.Anything).Return(nil).Once()

	closed, err := suite.service.CloseSession(ctx, active.SessionID, dto.CloseSessionRequest{
		CashReceived:   decimal.NewFromInt(200),
		MismatchReason: "customer had no change",
	})

	suite.Require().NoError(err)
	suite.True(closed.IsMismatch)
	suite.Equal("customer had no change", closed.MismatchReason)
}

func (suite *SessionServiceTestSuite) TestCloseSession_ShortStayIsFree() {
	// 15 minutes is under the 20-minute grace cutoff: nothing due, and with
	// nothing collected there is no mismatch and no ledger entry.
	ctx := context.Background()
	active := suite.activeSession(1, domain.StationScreen3, 15*time.Minute)

	suite.mockRepo.On("FindSessionByID", ctx, active.SessionID).Return(active, nil).Once()
	suite.mockRepo.On("CompleteSession", ctx, mock.AnythingOfType("domain.GameSession"), (*domain.LedgerEntry)(nil)).Return(nil).Once()

	closed, err := suite.service.CloseSession(ctx, active.SessionID, dto.CloseSessionRequest{})

	suite.Require().NoError(err)
	suite.True(closed.CalculatedPrice.IsZero())
	suite.False(closed.IsMismatch)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SessionServiceTestSuite) TestCloseSession_UnknownSession() {
	ctx := context.Background()
	suite.mockRepo.On("FindSessionByID", ctx, "missing").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CloseSession(ctx, "missing", dto.CloseSessionRequest{})

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SessionServiceTestSuite) TestCloseSession_AlreadyCompleted() {
	ctx := context.Background()
	completed := suite.activeSession(2, domain.StationScreen1, 50*time.Minute)
	completed.Status = domain.SessionCompleted

	suite.mockRepo.On("FindSessionByID", ctx, completed.SessionID).Return(completed, nil).Once()

	_, err := suite.service.CloseSession(ctx, completed.SessionID, dto.CloseSessionRequest{
		CashReceived: decimal.NewFromInt(250),
	})

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "CompleteSession")
}

func (suite *SessionServiceTestSuite) TestCloseSession_NegativeAmounts() {
	_, err := suite.service.CloseSession(context.Background(), "any", dto.CloseSessionRequest{
		CashReceived: decimal.NewFromInt(-1),
	})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "FindSessionByID")
}

// --- Queries ---

func (suite *SessionServiceTestSuite) TestListRecentCompletedSessions_UsesTrailing24HourWindow() {
	ctx := context.Background()
	suite.mockRepo.On("ListSessionsEndedBetween", ctx, suite.now.Add(-24*time.Hour), suite.now).
		Return([]domain.GameSession{}, nil).Once()

	_, err := suite.service.ListRecentCompletedSessions(ctx)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}
