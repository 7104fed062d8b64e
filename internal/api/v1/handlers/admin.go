package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/hlog"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/service"
)

type AdminHandler struct {
	weatherService service.WeatherService
}

func NewAdminHandler(weatherService service.WeatherService) *AdminHandler {
	return &AdminHandler{weatherService: weatherService}
}

func (h *AdminHandler) InvalidateCache(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	coord, err := h.weatherService.Invalidate(query.Get("lat"), query.Get("lon"))
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	hlog.FromRequest(r).Info().Str("cache_key", coord.Key(4)).Msg("weather cache entry invalidated")
	respondWithJSON(w, http.StatusOK, InvalidateResponse{Invalidated: coord})
}

func (h *AdminHandler) ListQueries(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondWithJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "invalid query parameters",
				Details: map[string]string{"limit": "must be a positive integer"},
			})
			return
		}
		limit = parsed
	}

	queries, err := h.weatherService.RecentQueries(limit)
	if err != nil {
		if errors.Is(err, service.ErrQueryLogDisabled) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		hlog.FromRequest(r).Error().Err(err).Msg("failed to list weather queries")
		respondWithError(w, http.StatusInternalServerError, "failed to list weather queries")
		return
	}

	if queries == nil {
		queries = []weatherquery.WeatherQuery{}
	}
	respondWithJSON(w, http.StatusOK, QueriesResponse{Queries: queries})
}
