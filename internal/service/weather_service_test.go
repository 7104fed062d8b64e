package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/mocks"
	"ulascansenturk/weather-widget/internal/ratelimit"
	"ulascansenturk/weather-widget/internal/service"
	"ulascansenturk/weather-widget/internal/weather"
)

type WeatherServiceTestSuite struct {
	suite.Suite
	conf           *config.Config
	mockLimiter    *mocks.MockRateLimiter
	mockCache      *mocks.MockCache
	mockAggregator *mocks.MockWeatherRequestAggregator
	mockRepo       *mocks.MockRepository
	service        service.WeatherService
	ctx            context.Context
}

func (s *WeatherServiceTestSuite) SetupTest() {
	s.conf = &config.Config{
		WeatherAPIKey: "test_api_key",
		DefaultLocation: weather.NamedLocation{
			Coordinate: mustCoord(40.7128, -74.006),
			Name:       "New York",
		},
	}
	s.mockLimiter = mocks.NewMockRateLimiter(s.T())
	s.mockCache = mocks.NewMockCache(s.T())
	s.mockAggregator = mocks.NewMockWeatherRequestAggregator(s.T())
	s.mockRepo = mocks.NewMockRepository(s.T())
	s.service = service.NewWeatherService(s.conf, s.mockLimiter, s.mockCache, s.mockAggregator, s.mockRepo)
	s.ctx = context.Background()
}

func resultChannel(result service.Result) <-chan service.Result {
	ch := make(chan service.Result, 1)
	ch <- result
	close(ch)
	return ch
}

func (s *WeatherServiceTestSuite) allow(scope string) {
	s.mockLimiter.On("Check", scope).Return(ratelimit.Decision{Allowed: true}).Once()
}

func (s *WeatherServiceTestSuite) TestGetWeatherFromCache() {
	requested := mustCoord(40.7128, -74.006)
	cached := sampleSnapshot("New York", 21.4, mustCoord(40.7101, -74.0092))

	s.allow("10.0.0.1")
	s.mockCache.On("Get", requested).Return(&cached, true, nil).Once()

	result, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "10.0.0.1", Lat: "40.7128", Lon: "-74.0060"})

	s.NoError(err)
	s.Equal("New York", result.Location)
	s.Equal(requested, result.Coordinates, "response echoes the requested coordinates")
	s.mockAggregator.AssertNotCalled(s.T(), "AddRequest", mock.Anything, mock.Anything)
}

func (s *WeatherServiceTestSuite) TestGetWeatherFetchesOnMiss() {
	requested := mustCoord(48.8566, 2.3522)
	fetched := sampleSnapshot("Paris", 17.2, requested)

	s.allow("10.0.0.1")
	s.mockCache.On("Get", requested).Return(nil, false, nil).Once()
	s.mockAggregator.On("AddRequest", mock.Anything, requested).
		Return(resultChannel(service.Result{Snapshot: fetched}), nil).Once()

	result, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "10.0.0.1", Lat: "48.8566", Lon: "2.3522"})

	s.NoError(err)
	s.Equal(fetched, result)
}

func (s *WeatherServiceTestSuite) TestGetWeatherCacheErrorFallsBackToFetch() {
	requested := mustCoord(51.5072, -0.1276)

	s.allow("scope")
	s.mockCache.On("Get", requested).Return(nil, false, errors.New("corrupt entry")).Once()
	s.mockAggregator.On("AddRequest", mock.Anything, requested).
		Return(resultChannel(service.Result{Snapshot: sampleSnapshot("London", 11, requested)}), nil).Once()

	result, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "scope", Lat: "51.5072", Lon: "-0.1276"})

	s.NoError(err)
	s.Equal("London", result.Location)
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithoutAPIKey() {
	s.conf.WeatherAPIKey = ""

	result, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "scope", Lat: "40.7128", Lon: "-74.0060"})

	var cfgErr *weather.ConfigurationError
	s.ErrorAs(err, &cfgErr)
	s.Equal("WEATHER_API_KEY", cfgErr.Setting)
	s.Equal(weather.Snapshot{}, result)
	s.mockLimiter.AssertNotCalled(s.T(), "Check", mock.Anything)
	s.mockAggregator.AssertNotCalled(s.T(), "AddRequest", mock.Anything, mock.Anything)
}

func (s *WeatherServiceTestSuite) TestGetWeatherInvalidCoordinatesConsumeNothing() {
	_, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "scope", Lat: "200", Lon: "-74.0060"})

	var validationErr *weather.ValidationError
	s.Require().ErrorAs(err, &validationErr)
	s.Contains(validationErr.Fields, "lat")
	s.NotContains(validationErr.Fields, "lon")
	s.mockLimiter.AssertNotCalled(s.T(), "Check", mock.Anything)
	s.mockCache.AssertNotCalled(s.T(), "Get", mock.Anything)
	s.mockAggregator.AssertNotCalled(s.T(), "AddRequest", mock.Anything, mock.Anything)
}

func (s *WeatherServiceTestSuite) TestGetWeatherRateLimited() {
	s.mockLimiter.On("Check", "10.0.0.9").Return(ratelimit.Decision{Allowed: false, RetryAfter: 12 * time.Second}).Once()

	_, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "10.0.0.9", Lat: "1", Lon: "1"})

	s.ErrorIs(err, weather.ErrRateLimitExceeded)
	var rateErr *weather.RateLimitError
	s.Require().ErrorAs(err, &rateErr)
	s.Equal(12*time.Second, rateErr.RetryAfter)
	s.mockCache.AssertNotCalled(s.T(), "Get", mock.Anything)
}

func (s *WeatherServiceTestSuite) TestGetWeatherUpstreamError() {
	requested := mustCoord(35.6762, 139.6503)
	authErr := &weather.UpstreamError{Kind: weather.UpstreamAuthError, StatusCode: 401, Attempts: 1}

	s.allow("scope")
	s.mockCache.On("Get", requested).Return(nil, false, nil).Once()
	s.mockAggregator.On("AddRequest", mock.Anything, requested).
		Return(resultChannel(service.Result{Err: authErr}), nil).Once()

	result, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "scope", Lat: "35.6762", Lon: "139.6503"})

	s.ErrorIs(err, weather.ErrUpstreamAuth)
	s.Equal(weather.Snapshot{}, result)
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithAggregatorError() {
	requested := mustCoord(1, 1)

	s.allow("scope")
	s.mockCache.On("Get", requested).Return(nil, false, nil).Once()
	s.mockAggregator.On("AddRequest", mock.Anything, requested).
		Return((<-chan service.Result)(nil), weather.ErrServiceShuttingDown).Once()

	_, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "scope", Lat: "1", Lon: "1"})

	s.ErrorIs(err, weather.ErrServiceShuttingDown)
}

func (s *WeatherServiceTestSuite) TestGetWeatherClosedChannel() {
	requested := mustCoord(1, 1)
	closed := make(chan service.Result)
	close(closed)

	s.allow("scope")
	s.mockCache.On("Get", requested).Return(nil, false, nil).Once()
	s.mockAggregator.On("AddRequest", mock.Anything, requested).
		Return((<-chan service.Result)(closed), nil).Once()

	_, err := s.service.GetWeather(s.ctx, service.WeatherRequest{Scope: "scope", Lat: "1", Lon: "1"})

	s.ErrorIs(err, weather.ErrServiceShuttingDown)
}

func (s *WeatherServiceTestSuite) TestGetWeatherWithContextTimeout() {
	requested := mustCoord(-33.8688, 151.2093)

	ctx, cancel := context.WithTimeout(s.ctx, 50*time.Millisecond)
	defer cancel()

	s.allow("scope")
	s.mockCache.On("Get", requested).Return(nil, false, nil).Once()
	s.mockAggregator.On("AddRequest", mock.Anything, requested).
		Return((<-chan service.Result)(make(chan service.Result)), nil).Once()

	result, err := s.service.GetWeather(ctx, service.WeatherRequest{Scope: "scope", Lat: "-33.8688", Lon: "151.2093"})

	s.ErrorIs(err, context.DeadlineExceeded)
	s.Equal(weather.Snapshot{}, result)
}

func (s *WeatherServiceTestSuite) TestGetDefaultWeatherUsesConfiguredName() {
	home := s.conf.DefaultLocation.Coordinate
	fetched := sampleSnapshot("Manhattan", 20, home)

	s.allow("scope")
	s.mockCache.On("Get", home).Return(nil, false, nil).Once()
	s.mockAggregator.On("AddRequest", mock.Anything, home).
		Return(resultChannel(service.Result{Snapshot: fetched}), nil).Once()

	result, err := s.service.GetDefaultWeather(s.ctx, "scope")

	s.NoError(err)
	s.Equal("New York", result.Location)
	s.Equal(home, result.Coordinates)
}

func (s *WeatherServiceTestSuite) TestRefreshBypassesLimiterAndCache() {
	home := s.conf.DefaultLocation.Coordinate
	fetched := sampleSnapshot("New York", 19, home)

	s.mockAggregator.On("AddRequest", mock.Anything, home).
		Return(resultChannel(service.Result{Snapshot: fetched}), nil).Once()

	result, err := s.service.Refresh(s.ctx, home)

	s.NoError(err)
	s.Equal(fetched, result)
	s.mockLimiter.AssertNotCalled(s.T(), "Check", mock.Anything)
	s.mockCache.AssertNotCalled(s.T(), "Get", mock.Anything)
}

func (s *WeatherServiceTestSuite) TestInvalidate() {
	target := mustCoord(52.52, 13.404)
	s.mockCache.On("Invalidate", target).Return(nil).Once()

	coord, err := s.service.Invalidate("52.52", "13.404")

	s.NoError(err)
	s.Equal(target, coord)

	_, err = s.service.Invalidate("north", "13.404")
	var validationErr *weather.ValidationError
	s.ErrorAs(err, &validationErr)
}

func (s *WeatherServiceTestSuite) TestRecentQueries() {
	rows := []weatherquery.WeatherQuery{{ID: 2, CacheKey: "40.71:-74.01", RequestCount: 4}}
	s.mockRepo.On("ListRecentWeatherQueries", 20).Return(rows, nil).Once()

	result, err := s.service.RecentQueries(20)

	s.NoError(err)
	s.Equal(rows, result)
}

func (s *WeatherServiceTestSuite) TestRecentQueriesWithoutQueryLog() {
	svc := service.NewWeatherService(s.conf, s.mockLimiter, s.mockCache, s.mockAggregator, nil)

	_, err := svc.RecentQueries(20)

	s.ErrorIs(err, service.ErrQueryLogDisabled)
}

func TestWeatherServiceSuite(t *testing.T) {
	suite.Run(t, new(WeatherServiceTestSuite))
}
