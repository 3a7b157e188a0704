package services_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/saurabk077/currency-exchange/internal/adapters/providers"
	"github.com/saurabk077/currency-exchange/internal/apperrors"
	"github.com/saurabk077/currency-exchange/internal/core/domain"
	portssvc "github.com/saurabk077/currency-exchange/internal/core/ports/services"
	"github.com/saurabk077/currency-exchange/internal/core/services"
	"github.com/saurabk077/currency-exchange/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRate(ctx context.Context, sourceCode, targetCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, sourceCode, targetCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindRatesInRange(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error) {
	args := m.Called(ctx, sourceCode, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.SeriesRates), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

// --- Mock CurrencyReader service ---
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ProviderRepository ---
type MockProviderRepository struct {
	mock.Mock
}

func (m *MockProviderRepository) ListActiveProviders(ctx context.Context) ([]domain.Provider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

func (m *MockProviderRepository) ListProviders(ctx context.Context) ([]domain.Provider, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Provider), args.Error(1)
}

// --- Mock RateProvider adapter ---
type MockRateProvider struct {
	mock.Mock
	name string
}

func (m *MockRateProvider) Name() string {
	return m.name
}

func (m *MockRateProvider) GetExchangeRate(ctx context.Context, sourceCode string, targetCodes []string, date time.Time) (domain.PointRates, error) {
	args := m.Called(ctx, sourceCode, targetCodes, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.PointRates), args.Error(1)
}

func (m *MockRateProvider) GetTimeSeries(ctx context.Context, sourceCode string, start, end time.Time) (domain.SeriesRates, error) {
	args := m.Called(ctx, sourceCode, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.SeriesRates), args.Error(1)
}

// --- Test Suite ---
type RateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockCurrencySvc  *MockCurrencyReader
	mockProviderRepo *MockProviderRepository
	mockBeacon       *MockRateProvider
	mockHost         *MockRateProvider
	metrics          *metrics.Metrics
	service          portssvc.RateSvcFacade
}

func (suite *RateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyReader)
	suite.mockProviderRepo = new(MockProviderRepository)
	suite.mockBeacon = &MockRateProvider{name: "CurrencyBeacon"}
	suite.mockHost = &MockRateProvider{name: "ExchangeRateHost"}
	suite.metrics = metrics.NewMetrics(prometheus.NewRegistry())

	resolver := providers.NewRegistry(suite.mockBeacon, suite.mockHost)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	suite.service = services.NewRateService(
		suite.mockRateRepo,
		suite.mockCurrencySvc,
		suite.mockProviderRepo,
		resolver,
		suite.metrics,
		logger,
	)
}

func (suite *RateServiceTestSuite) knownCurrency(code string) {
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, code).
		Return(&domain.Currency{CurrencyCode: code}, nil)
}

func (suite *RateServiceTestSuite) activeProviders(providerList ...domain.Provider) {
	suite.mockProviderRepo.On("ListActiveProviders", mock.Anything).Return(providerList, nil)
}

var testDate = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// --- GetRate ---

func (suite *RateServiceTestSuite) TestGetRate_CacheHit() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	stored := &domain.ExchangeRate{
		SourceCurrencyCode: "USD",
		TargetCurrencyCode: "EUR",
		ValuationDate:      testDate,
		RateValue:          decimal.RequireFromString("0.91"),
	}
	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", testDate).Return(stored, nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", testDate)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.RateValue.Equal(decimal.RequireFromString("0.91")))
	suite.mockProviderRepo.AssertNotCalled(suite.T(), "ListActiveProviders", mock.Anything)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.CacheHitsTotal))
	suite.Equal(float64(0), testutil.ToFloat64(suite.metrics.CacheMissesTotal))
}

func (suite *RateServiceTestSuite) TestGetRate_FallbackStoresAndReturns() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "ZZZ").
		Return(nil, apperrors.ErrNotFound)

	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", testDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true})

	fetched := domain.PointRates{
		"EUR": decimal.RequireFromString("0.91"),
		"ZZZ": decimal.RequireFromString("1.5"),
	}
	suite.mockBeacon.On("GetExchangeRate", ctx, "USD", []string{"EUR"}, testDate).
		Return(fetched, nil).Once()

	// Only the recognized currency gets stored.
	suite.mockRateRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.TargetCurrencyCode == "EUR" && r.RateValue.Equal(decimal.RequireFromString("0.91"))
	})).Return(nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", testDate)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal("USD", rate.SourceCurrencyCode)
	suite.Equal("EUR", rate.TargetCurrencyCode)
	suite.True(rate.RateValue.Equal(decimal.RequireFromString("0.91")))
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "UpsertRate", 1)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.RatesStoredTotal))
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.RatesSkippedTotal))
}

func (suite *RateServiceTestSuite) TestGetRate_FallsThroughToNextProvider() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", testDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(
		domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true},
		domain.Provider{Name: "ExchangeRateHost", Priority: 2, Active: true},
	)

	// First provider fails outright, second one delivers.
	suite.mockBeacon.On("GetExchangeRate", ctx, "USD", []string{"EUR"}, testDate).
		Return(nil, fmt.Errorf("decoding response: unexpected EOF")).Once()
	suite.mockHost.On("GetExchangeRate", ctx, "USD", []string{"EUR"}, testDate).
		Return(domain.PointRates{"EUR": decimal.RequireFromString("0.92")}, nil).Once()

	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Return(nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", testDate)

	suite.Require().NoError(err)
	suite.True(rate.RateValue.Equal(decimal.RequireFromString("0.92")))
	suite.mockBeacon.AssertExpectations(suite.T())
	suite.mockHost.AssertExpectations(suite.T())
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.ProviderFailuresTotal.WithLabelValues("CurrencyBeacon")))
}

func (suite *RateServiceTestSuite) TestGetRate_StopsAtFirstSuccessfulProvider() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", testDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(
		domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true},
		domain.Provider{Name: "ExchangeRateHost", Priority: 2, Active: true},
	)

	suite.mockBeacon.On("GetExchangeRate", ctx, "USD", []string{"EUR"}, testDate).
		Return(domain.PointRates{"EUR": decimal.RequireFromString("0.91")}, nil).Once()
	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Return(nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", testDate)

	suite.Require().NoError(err)
	suite.True(rate.RateValue.Equal(decimal.RequireFromString("0.91")))
	// The lower-priority provider must never be reached once one succeeds.
	suite.mockHost.AssertNotCalled(suite.T(), "GetExchangeRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBeacon.AssertNumberOfCalls(suite.T(), "GetExchangeRate", 1)
	suite.Equal(float64(1), testutil.ToFloat64(suite.metrics.ProviderRequestsTotal.WithLabelValues("CurrencyBeacon")))
	suite.Equal(float64(0), testutil.ToFloat64(suite.metrics.ProviderRequestsTotal.WithLabelValues("ExchangeRateHost")))
}

func (suite *RateServiceTestSuite) TestGetRate_SkipsProviderWithoutAdapter() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", testDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(
		domain.Provider{Name: "LegacyFeed", Priority: 1, Active: true},
		domain.Provider{Name: "ExchangeRateHost", Priority: 2, Active: true},
	)

	suite.mockHost.On("GetExchangeRate", ctx, "USD", []string{"EUR"}, testDate).
		Return(domain.PointRates{"EUR": decimal.RequireFromString("0.93")}, nil).Once()
	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Return(nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", testDate)

	suite.Require().NoError(err)
	suite.True(rate.RateValue.Equal(decimal.RequireFromString("0.93")))
}

func (suite *RateServiceTestSuite) TestGetRate_NoDataWhenAllProvidersEmpty() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", testDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(
		domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true},
		domain.Provider{Name: "ExchangeRateHost", Priority: 2, Active: true},
	)

	suite.mockBeacon.On("GetExchangeRate", ctx, "USD", []string{"EUR"}, testDate).
		Return(domain.PointRates{}, nil).Once()
	suite.mockHost.On("GetExchangeRate", ctx, "USD", []string{"EUR"}, testDate).
		Return(domain.PointRates{}, nil).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", testDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNoData)
	suite.Nil(rate)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetRate_UnknownCurrency() {
	ctx := context.Background()
	suite.mockCurrencySvc.On("GetCurrencyByCode", mock.Anything, "XXX").
		Return(nil, apperrors.ErrNotFound)

	rate, err := suite.service.GetRate(ctx, "XXX", "EUR", testDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnknownCurrency)
	suite.Nil(rate)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetRate_InvalidCode() {
	ctx := context.Background()

	rate, err := suite.service.GetRate(ctx, "X", "EUR", testDate)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rate)
}

func (suite *RateServiceTestSuite) TestGetRate_ProviderListFailureIsNotFound() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", testDate).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProviderRepo.On("ListActiveProviders", mock.Anything).
		Return(nil, fmt.Errorf("connection refused")).Once()

	rate, err := suite.service.GetRate(ctx, "USD", "EUR", testDate)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrNoData)
}

// --- GetTimeSeries ---

func (suite *RateServiceTestSuite) TestGetTimeSeries_CacheHit() {
	ctx := context.Background()
	start := testDate
	end := testDate.AddDate(0, 0, 2)
	suite.knownCurrency("USD")

	stored := domain.SeriesRates{
		"2025-01-15": {"EUR": decimal.RequireFromString("0.91")},
		"2025-01-16": {"EUR": decimal.RequireFromString("0.92")},
	}
	suite.mockRateRepo.On("FindRatesInRange", ctx, "USD", start, end).Return(stored, nil).Once()

	series, err := suite.service.GetTimeSeries(ctx, "USD", start, end)

	suite.Require().NoError(err)
	suite.Require().NotNil(series)
	suite.Len(series.Rates, 2)
	suite.mockProviderRepo.AssertNotCalled(suite.T(), "ListActiveProviders", mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetTimeSeries_FallbackFiltersUnknownCodes() {
	ctx := context.Background()
	start := testDate
	end := testDate.AddDate(0, 0, 1)
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	suite.mockRateRepo.On("FindRatesInRange", ctx, "USD", start, end).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true})

	raw := domain.SeriesRates{
		"2025-01-15": {
			"EUR": decimal.RequireFromString("0.91"),
			"ZZZ": decimal.RequireFromString("1.5"),
		},
		// This date only carries an unrecognized code and must be dropped.
		"2025-01-16": {
			"ZZZ": decimal.RequireFromString("1.6"),
		},
	}
	suite.mockBeacon.On("GetTimeSeries", ctx, "USD", start, end).Return(raw, nil).Once()

	suite.mockCurrencySvc.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{CurrencyCode: "USD"},
		{CurrencyCode: "EUR"},
	}, nil).Once()

	suite.mockRateRepo.On("UpsertRate", ctx, mock.MatchedBy(func(r domain.ExchangeRate) bool {
		return r.TargetCurrencyCode == "EUR"
	})).Return(nil).Once()

	series, err := suite.service.GetTimeSeries(ctx, "USD", start, end)

	suite.Require().NoError(err)
	suite.Require().NotNil(series)
	suite.Len(series.Rates, 1)
	suite.Contains(series.Rates, "2025-01-15")
	suite.Len(series.Rates["2025-01-15"], 1)
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "UpsertRate", 1)
}

func (suite *RateServiceTestSuite) TestGetTimeSeries_StopsAtFirstSuccessfulProvider() {
	ctx := context.Background()
	start := testDate
	end := testDate.AddDate(0, 0, 1)
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	suite.mockRateRepo.On("FindRatesInRange", ctx, "USD", start, end).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(
		domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true},
		domain.Provider{Name: "ExchangeRateHost", Priority: 2, Active: true},
	)

	raw := domain.SeriesRates{"2025-01-15": {"EUR": decimal.RequireFromString("0.91")}}
	suite.mockBeacon.On("GetTimeSeries", ctx, "USD", start, end).Return(raw, nil).Once()

	suite.mockCurrencySvc.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{CurrencyCode: "USD"},
		{CurrencyCode: "EUR"},
	}, nil).Once()
	suite.mockRateRepo.On("UpsertRate", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Return(nil).Once()

	series, err := suite.service.GetTimeSeries(ctx, "USD", start, end)

	suite.Require().NoError(err)
	suite.Len(series.Rates, 1)
	suite.mockHost.AssertNotCalled(suite.T(), "GetTimeSeries", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockBeacon.AssertNumberOfCalls(suite.T(), "GetTimeSeries", 1)
}

func (suite *RateServiceTestSuite) TestGetTimeSeries_EmptyWhenProvidersFail() {
	ctx := context.Background()
	start := testDate
	end := testDate.AddDate(0, 0, 1)
	suite.knownCurrency("USD")

	suite.mockRateRepo.On("FindRatesInRange", ctx, "USD", start, end).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(
		domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true},
		domain.Provider{Name: "ExchangeRateHost", Priority: 2, Active: true},
	)

	suite.mockBeacon.On("GetTimeSeries", ctx, "USD", start, end).
		Return(domain.SeriesRates{}, nil).Once()
	suite.mockHost.On("GetTimeSeries", ctx, "USD", start, end).
		Return(domain.SeriesRates{}, nil).Once()

	series, err := suite.service.GetTimeSeries(ctx, "USD", start, end)

	suite.Require().NoError(err)
	suite.Require().NotNil(series)
	suite.NotNil(series.Rates)
	suite.Empty(series.Rates)
}

func (suite *RateServiceTestSuite) TestGetTimeSeries_DiscardsBatchForUnknownSource() {
	ctx := context.Background()
	start := testDate
	end := testDate.AddDate(0, 0, 1)
	suite.knownCurrency("XAU")

	suite.mockRateRepo.On("FindRatesInRange", ctx, "XAU", start, end).
		Return(nil, apperrors.ErrNotFound).Once()
	suite.activeProviders(domain.Provider{Name: "CurrencyBeacon", Priority: 1, Active: true})

	raw := domain.SeriesRates{"2025-01-15": {"EUR": decimal.RequireFromString("0.91")}}
	suite.mockBeacon.On("GetTimeSeries", ctx, "XAU", start, end).Return(raw, nil).Once()

	// Reference list does not include the source currency itself.
	suite.mockCurrencySvc.On("ListCurrencies", mock.Anything).Return([]domain.Currency{
		{CurrencyCode: "USD"},
		{CurrencyCode: "EUR"},
	}, nil).Once()

	series, err := suite.service.GetTimeSeries(ctx, "XAU", start, end)

	suite.Require().NoError(err)
	suite.Empty(series.Rates)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpsertRate", mock.Anything, mock.Anything)
}

func (suite *RateServiceTestSuite) TestGetTimeSeries_InvalidRange() {
	ctx := context.Background()

	series, err := suite.service.GetTimeSeries(ctx, "USD", testDate, testDate.AddDate(0, 0, -1))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(series)
}

// --- Convert ---

func (suite *RateServiceTestSuite) TestConvert_UsesTodaysRate() {
	ctx := context.Background()
	suite.knownCurrency("USD")
	suite.knownCurrency("EUR")

	stored := &domain.ExchangeRate{
		SourceCurrencyCode: "USD",
		TargetCurrencyCode: "EUR",
		RateValue:          decimal.RequireFromString("0.9"),
	}
	suite.mockRateRepo.On("FindRate", ctx, "USD", "EUR", mock.AnythingOfType("time.Time")).
		Return(stored, nil).Once()

	conv, err := suite.service.Convert(ctx, "USD", "EUR", decimal.RequireFromString("100"))

	suite.Require().NoError(err)
	suite.Require().NotNil(conv)
	suite.True(conv.ConvertedAmount.Equal(decimal.RequireFromString("90")))
	suite.True(conv.Amount.Equal(decimal.RequireFromString("100")))
}

func (suite *RateServiceTestSuite) TestConvert_RejectsNonPositiveAmount() {
	ctx := context.Background()

	conv, err := suite.service.Convert(ctx, "USD", "EUR", decimal.Zero)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(conv)
}

func TestRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RateServiceTestSuite))
}
