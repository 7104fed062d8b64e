package handlers

import (
	"context"
	"net"
	"net/http"
	"time"

	"ulascansenturk/weather-widget/internal/service"
)

type WeatherHandler struct {
	weatherService service.WeatherService
	timeout        time.Duration
}

const defaultTimeout = 30 * time.Second

func NewWeatherHandler(weatherService service.WeatherService, timeout time.Duration) *WeatherHandler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &WeatherHandler{
		weatherService: weatherService,
		timeout:        timeout,
	}
}

func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	query := r.URL.Query()
	snapshot, err := h.weatherService.GetWeather(ctx, service.WeatherRequest{
		Scope: clientScope(r),
		Lat:   query.Get("lat"),
		Lon:   query.Get("lon"),
	})
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newWeatherResponse(snapshot))
}

func (h *WeatherHandler) GetDefaultWeather(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	snapshot, err := h.weatherService.GetDefaultWeather(ctx, clientScope(r))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, newWeatherResponse(snapshot))
}

func (h *WeatherHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, HealthResponse{
		Status:            "ok",
		WeatherConfigured: h.weatherService.Configured(),
	})
}

// clientScope is the rate limit scope of a request: the peer IP, or the forwarded client
// IP when the router trusts proxy headers.
func clientScope(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
