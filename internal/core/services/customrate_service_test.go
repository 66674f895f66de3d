package services_test

import (
	"context"
	"testing"

	"github.com/goldify/goldify_backend/internal/apperrors"
	"github.com/goldify/goldify_backend/internal/core/domain"
	portssvc "github.com/goldify/goldify_backend/internal/core/ports/services"
	"github.com/goldify/goldify_backend/internal/core/services"
	"github.com/goldify/goldify_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CustomRateRepository ---
type MockCustomRateRepository struct {
	mock.Mock
}

func (m *MockCustomRateRepository) FindByUser(ctx context.Context, userID string) (*domain.CustomRate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomRate), args.Error(1)
}

// UpsertRate echoes the written rate back as the stored row unless the
// expectation supplies an explicit stored value.
func (m *MockCustomRateRepository) UpsertRate(ctx context.Context, rate domain.CustomRate) (*domain.CustomRate, error) {
	args := m.Called(ctx, rate)
	if err := args.Error(1); err != nil {
		return nil, err
	}
	if stored, ok := args.Get(0).(*domain.CustomRate); ok && stored != nil {
		return stored, nil
	}
	return &rate, nil
}

// --- Test Suite ---
type CustomRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCustomRateRepository
	service  portssvc.CustomRateSvcFacade
}

func (suite *CustomRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCustomRateRepository)
	suite.service = services.NewCustomRateService(suite.mockRepo)
}

func (suite *CustomRateServiceTestSuite) TestGetRate_UnsetReturnsSentinel() {
	ctx := context.Background()
	userID := uuid.NewString()

	suite.mockRepo.On("FindByUser", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.GetRate(ctx, userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("Pakistan", rate.Country)
	suite.Equal("PKR", rate.CurrencyCode)
	suite.Equal("Rs", rate.Symbol)
	suite.False(rate.IsConfigured())
	suite.Nil(rate.LastUpdated)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomRateServiceTestSuite) TestSetRate_FirstWrite() {
	ctx := context.Background()
	userID := uuid.NewString()
	req := dto.SetCustomRateRequest{RatePerTola: decimal.RequireFromString("116640")}

	suite.mockRepo.On("FindByUser", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.CustomRate) bool {
		return r.UserID == userID &&
			r.RatePerTola.Equal(decimal.RequireFromString("116640")) &&
			r.RatePerGram.Equal(decimal.RequireFromString("10000")) &&
			r.RatePerOunce.Equal(decimal.RequireFromString("311035")) &&
			r.UpdateCount == 1
	})).Return(nil, nil).Once()

	rate, err := suite.service.SetRate(ctx, userID, req)

	suite.Require().NoError(err)
	suite.Equal("Pakistan", rate.Country)
	suite.Equal("PKR", rate.CurrencyCode)
	suite.Equal("10000.00", rate.RatePerGram.StringFixed(2))
	suite.Equal(int64(1), rate.UpdateCount)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomRateServiceTestSuite) TestSetRate_UpdateIncrementsCount() {
	ctx := context.Background()
	userID := uuid.NewString()
	existing := &domain.CustomRate{
		RateID:       uuid.NewString(),
		UserID:       userID,
		Country:      "United Arab Emirates",
		CurrencyCode: "AED",
		Symbol:       "د.إ",
		UpdateCount:  3,
	}

	suite.mockRepo.On("FindByUser", ctx, userID).Return(existing, nil).Once()
	suite.mockRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.CustomRate) bool {
		return r.UpdateCount == 4 && r.CurrencyCode == "AED"
	})).Return(nil, nil).Once()

	rate, err := suite.service.SetRate(ctx, userID, dto.SetCustomRateRequest{
		RatePerTola: decimal.RequireFromString("2500"),
	})

	suite.Require().NoError(err)
	suite.Equal(int64(4), rate.UpdateCount)
	// Market fields not supplied in the request stay as previously set.
	suite.Equal("United Arab Emirates", rate.Country)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomRateServiceTestSuite) TestSetRate_ReturnsStoredCount() {
	ctx := context.Background()
	userID := uuid.NewString()
	tola := decimal.RequireFromString("116640")

	// Two owners racing their first write both read "not found" and compute
	// UpdateCount 1, but the conflict path in storage lands on 2 for the
	// loser. The service must report what was stored, not what it computed.
	suite.mockRepo.On("FindByUser", ctx, userID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.CustomRate) bool {
		return r.UserID == userID && r.UpdateCount == 1
	})).Return(&domain.CustomRate{
		RateID:       uuid.NewString(),
		UserID:       userID,
		Country:      "Pakistan",
		CurrencyCode: "PKR",
		Symbol:       "Rs",
		RatePerTola:  tola,
		RatePerGram:  decimal.RequireFromString("10000"),
		RatePerOunce: decimal.RequireFromString("311035"),
		UpdateCount:  2,
	}, nil).Once()

	rate, err := suite.service.SetRate(ctx, userID, dto.SetCustomRateRequest{RatePerTola: tola})

	suite.Require().NoError(err)
	suite.Equal(int64(2), rate.UpdateCount)
	suite.Equal("116640.00", rate.RatePerTola.StringFixed(2))

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CustomRateServiceTestSuite) TestSetRate_NegativeRejected() {
	ctx := context.Background()

	_, err := suite.service.SetRate(ctx, uuid.NewString(), dto.SetCustomRateRequest{
		RatePerTola: decimal.RequireFromString("-1"),
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertRate")
}

func TestCustomRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CustomRateServiceTestSuite))
}
