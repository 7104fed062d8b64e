package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"ulascansenturk/weather-widget/internal/weather"
)

type RateLimitConfig struct {
	Enabled      bool
	MaxPerMinute int
	MaxPerHour   int
}

type Config struct {
	ServiceName   string
	ServerAddress string

	DBDriver   string
	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string
	DBPath     string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	WeatherAPIKey     string
	WeatherAPIBaseURL string
	DefaultLocation   weather.NamedLocation
	CacheTTL          time.Duration
	CacheKeyPrecision int
	CacheMaxEntries   int
	RetryAttempts     int
	RetryBackoff      time.Duration
	RequestTimeout    time.Duration
	RateLimit         RateLimitConfig

	MaxBatchSize   int
	CoalesceWindow time.Duration

	WarmupInterval    time.Duration
	QueryLogRetention time.Duration

	AdminJWTSecret string

	// TrustProxyHeaders takes the client IP from X-Forwarded-For / X-Real-IP. Only safe
	// behind a proxy that overwrites them.
	TrustProxyHeaders bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-widget")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("HTTP_TIMEOUT", 60)

	v.SetDefault("WEATHER_API_BASE_URL", "https://api.openweathermap.org/data/2.5/weather")
	v.SetDefault("WEATHER_DEFAULT_LAT", 40.7128)
	v.SetDefault("WEATHER_DEFAULT_LON", -74.0060)
	v.SetDefault("WEATHER_DEFAULT_NAME", "New York")
	v.SetDefault("WEATHER_CACHE_TTL", 900)
	v.SetDefault("WEATHER_CACHE_KEY_PRECISION", 2)
	v.SetDefault("WEATHER_CACHE_MAX_ENTRIES", 0)
	v.SetDefault("WEATHER_RETRY_ATTEMPTS", 3)
	v.SetDefault("WEATHER_RETRY_BACKOFF", 200*time.Millisecond)
	v.SetDefault("WEATHER_REQUEST_TIMEOUT", 10)
	v.SetDefault("WEATHER_RATE_LIMIT_ENABLED", true)
	v.SetDefault("WEATHER_RATE_LIMIT_PER_MINUTE", 60)
	v.SetDefault("WEATHER_RATE_LIMIT_PER_HOUR", 1000)
	v.SetDefault("WEATHER_MAX_BATCH_SIZE", 10)
	v.SetDefault("WEATHER_COALESCE_WINDOW", time.Duration(0))
	v.SetDefault("WEATHER_WARMUP_INTERVAL", time.Duration(0))
	v.SetDefault("QUERY_LOG_RETENTION", 30*24*time.Hour)
	v.SetDefault("TRUST_PROXY_HEADERS", false)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	defaultCoord, err := weather.NewCoordinate(v.GetFloat64("WEATHER_DEFAULT_LAT"), v.GetFloat64("WEATHER_DEFAULT_LON"))
	if err != nil {
		return nil, fmt.Errorf("invalid default location: %w", err)
	}

	config := &Config{
		ServiceName:       v.GetString("SERVICE_NAME"),
		ServerAddress:     v.GetString("SERVER_ADDRESS"),
		DBDriver:          v.GetString("DATABASE_DRIVER"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBHost:            v.GetString("DATABASE_HOST"),
		DBPath:            v.GetString("DATABASE_PATH"),
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPTimeout:       v.GetInt32("HTTP_TIMEOUT"),
		WeatherAPIKey:     v.GetString("WEATHER_API_KEY"),
		WeatherAPIBaseURL: v.GetString("WEATHER_API_BASE_URL"),
		DefaultLocation: weather.NamedLocation{
			Coordinate: defaultCoord,
			Name:       v.GetString("WEATHER_DEFAULT_NAME"),
		},
		CacheTTL:          time.Duration(v.GetInt("WEATHER_CACHE_TTL")) * time.Second,
		CacheKeyPrecision: v.GetInt("WEATHER_CACHE_KEY_PRECISION"),
		CacheMaxEntries:   v.GetInt("WEATHER_CACHE_MAX_ENTRIES"),
		RetryAttempts:     v.GetInt("WEATHER_RETRY_ATTEMPTS"),
		RetryBackoff:      v.GetDuration("WEATHER_RETRY_BACKOFF"),
		RequestTimeout:    time.Duration(v.GetInt("WEATHER_REQUEST_TIMEOUT")) * time.Second,
		RateLimit: RateLimitConfig{
			Enabled:      v.GetBool("WEATHER_RATE_LIMIT_ENABLED"),
			MaxPerMinute: v.GetInt("WEATHER_RATE_LIMIT_PER_MINUTE"),
			MaxPerHour:   v.GetInt("WEATHER_RATE_LIMIT_PER_HOUR"),
		},
		MaxBatchSize:      v.GetInt("WEATHER_MAX_BATCH_SIZE"),
		CoalesceWindow:    v.GetDuration("WEATHER_COALESCE_WINDOW"),
		WarmupInterval:    v.GetDuration("WEATHER_WARMUP_INTERVAL"),
		QueryLogRetention: v.GetDuration("QUERY_LOG_RETENTION"),
		AdminJWTSecret:    v.GetString("ADMIN_JWT_SECRET"),
		TrustProxyHeaders: v.GetBool("TRUST_PROXY_HEADERS"),
	}

	if config.RetryAttempts < 0 {
		return nil, fmt.Errorf("WEATHER_RETRY_ATTEMPTS must not be negative, got %d", config.RetryAttempts)
	}
	if config.CacheKeyPrecision < 0 || config.CacheKeyPrecision > 6 {
		return nil, fmt.Errorf("WEATHER_CACHE_KEY_PRECISION must be between 0 and 6, got %d", config.CacheKeyPrecision)
	}

	return config, nil
}

func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

// WeatherConfigured reports whether weather requests may be served at all.
func (c *Config) WeatherConfigured() bool {
	return c.WeatherAPIKey != ""
}

// Validate returns the process-level configuration error that blocks weather requests.
func (c *Config) Validate() error {
	if !c.WeatherConfigured() {
		return &weather.ConfigurationError{Setting: "WEATHER_API_KEY", Reason: "is not set"}
	}
	return nil
}

// DatabaseConfigured reports whether the query log has somewhere to write.
func (c *Config) DatabaseConfigured() bool {
	if c.DBDriver == "sqlite" {
		return c.DBPath != ""
	}
	return c.DBHost != ""
}
