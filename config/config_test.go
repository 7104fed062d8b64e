package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/weather"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	s.T().Setenv("WEATHER_API_KEY", "")

	conf, err := config.LoadConfig()
	s.Require().NoError(err)

	s.Equal("weather-widget", conf.ServiceName)
	s.Equal("https://api.openweathermap.org/data/2.5/weather", conf.WeatherAPIBaseURL)
	s.Equal(40.7128, conf.DefaultLocation.Latitude)
	s.Equal(-74.0060, conf.DefaultLocation.Longitude)
	s.Equal("New York", conf.DefaultLocation.Name)
	s.Equal(900*time.Second, conf.CacheTTL)
	s.Equal(2, conf.CacheKeyPrecision)
	s.Equal(3, conf.RetryAttempts)
	s.Equal(10*time.Second, conf.RequestTimeout)
	s.True(conf.RateLimit.Enabled)
	s.Equal(60, conf.RateLimit.MaxPerMinute)
	s.Equal(1000, conf.RateLimit.MaxPerHour)
	s.Equal(time.Duration(0), conf.CoalesceWindow)
	s.False(conf.TrustProxyHeaders)
	s.False(conf.DatabaseConfigured())
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("WEATHER_API_KEY", "secret")
	s.T().Setenv("WEATHER_API_BASE_URL", "http://localhost:9999/weather")
	s.T().Setenv("WEATHER_DEFAULT_LAT", "51.5072")
	s.T().Setenv("WEATHER_DEFAULT_LON", "-0.1276")
	s.T().Setenv("WEATHER_DEFAULT_NAME", "London")
	s.T().Setenv("WEATHER_CACHE_TTL", "60")
	s.T().Setenv("WEATHER_RETRY_ATTEMPTS", "5")
	s.T().Setenv("WEATHER_REQUEST_TIMEOUT", "2")
	s.T().Setenv("WEATHER_RATE_LIMIT_ENABLED", "false")
	s.T().Setenv("WEATHER_RATE_LIMIT_PER_MINUTE", "5")
	s.T().Setenv("WEATHER_RATE_LIMIT_PER_HOUR", "50")
	s.T().Setenv("WEATHER_COALESCE_WINDOW", "250ms")
	s.T().Setenv("DATABASE_DRIVER", "sqlite")
	s.T().Setenv("DATABASE_PATH", "weather.db")
	s.T().Setenv("TRUST_PROXY_HEADERS", "true")

	conf, err := config.LoadConfig()
	s.Require().NoError(err)

	s.Equal("secret", conf.WeatherAPIKey)
	s.Equal("http://localhost:9999/weather", conf.WeatherAPIBaseURL)
	s.Equal(51.5072, conf.DefaultLocation.Latitude)
	s.Equal(-0.1276, conf.DefaultLocation.Longitude)
	s.Equal("London", conf.DefaultLocation.Name)
	s.Equal(time.Minute, conf.CacheTTL)
	s.Equal(5, conf.RetryAttempts)
	s.Equal(2*time.Second, conf.RequestTimeout)
	s.False(conf.RateLimit.Enabled)
	s.Equal(5, conf.RateLimit.MaxPerMinute)
	s.Equal(50, conf.RateLimit.MaxPerHour)
	s.Equal(250*time.Millisecond, conf.CoalesceWindow)
	s.True(conf.TrustProxyHeaders)
	s.True(conf.WeatherConfigured())
	s.True(conf.DatabaseConfigured())
	s.NoError(conf.Validate())
}

func (s *ConfigTestSuite) TestMissingAPIKeyIsConfigurationError() {
	s.T().Setenv("WEATHER_API_KEY", "")

	conf, err := config.LoadConfig()
	s.Require().NoError(err)

	s.False(conf.WeatherConfigured())

	var cfgErr *weather.ConfigurationError
	s.True(errors.As(conf.Validate(), &cfgErr))
	s.Equal("WEATHER_API_KEY", cfgErr.Setting)
}

func (s *ConfigTestSuite) TestInvalidDefaultLocation() {
	s.T().Setenv("WEATHER_DEFAULT_LAT", "123")

	_, err := config.LoadConfig()

	s.Error(err)
	s.Contains(err.Error(), "invalid default location")
}

func (s *ConfigTestSuite) TestNegativeRetryAttempts() {
	s.T().Setenv("WEATHER_RETRY_ATTEMPTS", "-1")

	_, err := config.LoadConfig()

	s.Error(err)
	s.Contains(err.Error(), "WEATHER_RETRY_ATTEMPTS")
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
