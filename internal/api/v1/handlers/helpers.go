package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/internal/weather"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func setRetryAfter(w http.ResponseWriter, d time.Duration) {
	if d <= 0 {
		return
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(d.Seconds()))))
}

// respondWithServiceError maps the weather error taxonomy onto HTTP statuses.
func respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *weather.ValidationError
		configErr     *weather.ConfigurationError
		rateErr       *weather.RateLimitError
		upstreamErr   *weather.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "invalid coordinates",
			Details: validationErr.Fields,
		})
	case errors.As(err, &configErr):
		hlog.FromRequest(r).Error().Err(err).Msg("weather request blocked by configuration")
		respondWithError(w, http.StatusServiceUnavailable, "weather service is not configured")
	case errors.As(err, &rateErr):
		setRetryAfter(w, rateErr.RetryAfter)
		respondWithError(w, http.StatusTooManyRequests, "rate limit exceeded")
	case errors.As(err, &upstreamErr):
		hlog.FromRequest(r).Error().Err(err).Str("kind", string(upstreamErr.Kind)).Msg("failed to get weather data")
		respondWithUpstreamError(w, upstreamErr)
	case errors.Is(err, context.DeadlineExceeded):
		hlog.FromRequest(r).Warn().Err(err).Msg("weather request timed out")
		respondWithError(w, http.StatusGatewayTimeout, "weather request timed out")
	case errors.Is(err, context.Canceled), errors.Is(err, weather.ErrServiceShuttingDown):
		respondWithError(w, http.StatusServiceUnavailable, "weather service unavailable")
	default:
		hlog.FromRequest(r).Error().Err(err).Msg("unexpected weather error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func respondWithUpstreamError(w http.ResponseWriter, err *weather.UpstreamError) {
	switch err.Kind {
	case weather.UpstreamRateLimited:
		setRetryAfter(w, err.RetryAfter)
		respondWithError(w, http.StatusTooManyRequests, "weather provider rate limit reached")
	case weather.UpstreamAuthError, weather.UpstreamRejected:
		respondWithError(w, http.StatusBadGateway, "weather provider rejected the request")
	default:
		respondWithError(w, http.StatusServiceUnavailable, "weather provider unavailable")
	}
}
