package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"ulascansenturk/weather-widget/internal/weather"
)

const breakerTripFetches = 5

type WeatherFetcher interface {
	Fetch(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error)
}

// BackoffConfig controls exponential backoff between attempts.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

type FetcherConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	Backoff        BackoffConfig
	// Now stamps FetchedAt; defaults to time.Now.
	Now func() time.Time
}

type openWeatherFetcher struct {
	apiKey  string
	baseURL string
	timeout time.Duration
	backoff BackoffConfig
	client  *resty.Client
	circuit *gobreaker.CircuitBreaker
	now     func() time.Time
}

// NewOpenWeatherFetcher builds a fetcher for the OpenWeatherMap current weather API.
// Every attempt gets its own RequestTimeout.
func NewOpenWeatherFetcher(cfg FetcherConfig) WeatherFetcher {
	if cfg.Backoff.InitialInterval <= 0 {
		cfg.Backoff.InitialInterval = 200 * time.Millisecond
	}
	if cfg.Backoff.MaxInterval <= 0 {
		cfg.Backoff.MaxInterval = 5 * time.Second
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	client := resty.New().
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{})

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		// counts whole fetches, so a fetch always gets its full retry budget
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerTripFetches
		},
		// only provider health counts against the breaker
		IsSuccessful: func(err error) bool {
			if err == nil || errors.Is(err, context.Canceled) {
				return true
			}
			var upErr *weather.UpstreamError
			if errors.As(err, &upErr) {
				return !upErr.Transient()
			}
			return false
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("weather provider circuit breaker changed state")
		},
	})

	return &openWeatherFetcher{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		timeout: cfg.RequestTimeout,
		backoff: cfg.Backoff,
		client:  client,
		circuit: cb,
		now:     cfg.Now,
	}
}

type openWeatherResponse struct {
	Name string `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

type openWeatherErrorBody struct {
	Message string `json:"message"`
}

// Fetch runs Pending -> (Retrying)* -> Succeeded|Failed. Only transient failures are
// retried, at most MaxRetries times. The circuit breaker records one outcome per Fetch;
// while it is open Fetch fails without reaching the provider.
func (s *openWeatherFetcher) Fetch(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return weather.Snapshot{}, err
	}

	result, err := s.circuit.Execute(func() (interface{}, error) {
		return s.fetchWithRetry(ctx, coord)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return weather.Snapshot{}, &weather.UpstreamError{Kind: weather.UpstreamUnavailable, Err: err}
		}
		return weather.Snapshot{}, err
	}

	return result.(weather.Snapshot), nil
}

func (s *openWeatherFetcher) fetchWithRetry(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error) {
	attempt := 0

	for {
		attempt++
		snapshot, err := s.attempt(ctx, coord)
		if err == nil {
			return snapshot, nil
		}

		var upErr *weather.UpstreamError
		if !errors.As(err, &upErr) {
			return weather.Snapshot{}, err
		}
		upErr.Attempts = attempt

		if !upErr.Transient() {
			return weather.Snapshot{}, upErr
		}

		if attempt > s.backoff.MaxRetries {
			if upErr.Kind == weather.UpstreamUnavailable {
				return weather.Snapshot{}, upErr
			}
			return weather.Snapshot{}, &weather.UpstreamError{
				Kind:       weather.UpstreamUnavailable,
				StatusCode: upErr.StatusCode,
				Attempts:   attempt,
				Err:        upErr,
			}
		}

		delay := s.backoffDelay(attempt)
		log.Warn().Err(upErr).Int("attempt", attempt).Dur("backoff", delay).
			Str("coordinates", coord.Key(4)).Msg("retrying weather provider request")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return weather.Snapshot{}, ctx.Err()
		case <-timer.C:
		}
	}
}

func (s *openWeatherFetcher) backoffDelay(attempt int) time.Duration {
	delay := s.backoff.InitialInterval << (attempt - 1)
	if delay <= 0 || delay > s.backoff.MaxInterval {
		delay = s.backoff.MaxInterval
	}
	return delay
}

func (s *openWeatherFetcher) attempt(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error) {
	attemptCtx, cancel := ctx, context.CancelFunc(func() {})
	if s.timeout > 0 {
		attemptCtx, cancel = context.WithTimeout(ctx, s.timeout)
	}
	defer cancel()

	snapshot, err := s.request(attemptCtx, coord)
	if err != nil && ctx.Err() != nil {
		// the caller went away; do not report that as a provider failure
		return weather.Snapshot{}, ctx.Err()
	}
	return snapshot, err
}

func (s *openWeatherFetcher) request(ctx context.Context, coord weather.Coordinate) (weather.Snapshot, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"lat":   strconv.FormatFloat(coord.Latitude, 'f', -1, 64),
			"lon":   strconv.FormatFloat(coord.Longitude, 'f', -1, 64),
			"appid": s.apiKey,
			"units": "metric",
		}).
		Get(s.baseURL)
	if err != nil {
		if isTimeout(err) {
			return weather.Snapshot{}, &weather.UpstreamError{Kind: weather.UpstreamTimeout, Err: err}
		}
		return weather.Snapshot{}, &weather.UpstreamError{Kind: weather.UpstreamUnavailable, Err: err}
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return s.parse(resp.Body(), coord)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return weather.Snapshot{}, &weather.UpstreamError{Kind: weather.UpstreamAuthError, StatusCode: status, Err: providerMessage(resp.Body())}
	case status == http.StatusTooManyRequests:
		return weather.Snapshot{}, &weather.UpstreamError{
			Kind:       weather.UpstreamRateLimited,
			StatusCode: status,
			RetryAfter: parseRetryAfter(resp.Header().Get("Retry-After")),
			Err:        providerMessage(resp.Body()),
		}
	case status >= 500:
		return weather.Snapshot{}, &weather.UpstreamError{Kind: weather.UpstreamUnavailable, StatusCode: status, Err: providerMessage(resp.Body())}
	default:
		return weather.Snapshot{}, &weather.UpstreamError{Kind: weather.UpstreamRejected, StatusCode: status, Err: providerMessage(resp.Body())}
	}
}

func (s *openWeatherFetcher) parse(body []byte, coord weather.Coordinate) (weather.Snapshot, error) {
	var payload openWeatherResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return weather.Snapshot{}, &weather.UpstreamError{Kind: weather.MalformedResponse, Err: fmt.Errorf("decode payload: %w", err)}
	}

	var missing []string
	if payload.Main == nil || payload.Main.Temp == nil {
		missing = append(missing, "main.temp")
	}
	if payload.Main == nil || payload.Main.Humidity == nil {
		missing = append(missing, "main.humidity")
	}
	if len(payload.Weather) == 0 || payload.Weather[0].Main == "" {
		missing = append(missing, "weather[0].main")
	}
	if payload.Wind == nil || payload.Wind.Speed == nil {
		missing = append(missing, "wind.speed")
	}
	if len(missing) > 0 {
		return weather.Snapshot{}, &weather.UpstreamError{
			Kind: weather.MalformedResponse,
			Err:  fmt.Errorf("missing fields: %s", strings.Join(missing, ", ")),
		}
	}

	location := payload.Name
	if location == "" {
		location = fmt.Sprintf("%.4f, %.4f", coord.Latitude, coord.Longitude)
	}

	condition := payload.Weather[0]

	return weather.Snapshot{
		Location:        location,
		TemperatureC:    *payload.Main.Temp,
		Condition:       condition.Main,
		Description:     cases.Title(language.English).String(condition.Description),
		IconCode:        condition.Icon,
		HumidityPercent: int(math.Round(*payload.Main.Humidity)),
		WindSpeedMps:    *payload.Wind.Speed,
		Coordinates:     coord,
		FetchedAt:       s.now().UTC(),
	}, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func providerMessage(body []byte) error {
	var parsed openWeatherErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return errors.New(parsed.Message)
	}
	return nil
}

func parseRetryAfter(v string) time.Duration {
	if seconds, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return 0
}

type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Warnf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}

func (restyLogger) Debugf(format string, v ...interface{}) {
	log.Debug().Str("component", "resty").Msgf(format, v...)
}
