package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"ulascansenturk/weather-widget/internal/middleware"
)

type RouterConfig struct {
	Logger         zerolog.Logger
	AdminJWTSecret string
	// TrustProxyHeaders resolves the client IP from X-Forwarded-For / X-Real-IP.
	TrustProxyHeaders bool
}

// NewRouter mounts the public weather API, the health check and the JWT protected admin API.
func NewRouter(weatherHandler *WeatherHandler, adminHandler *AdminHandler, conf RouterConfig) http.Handler {
	r := chi.NewRouter()

	if conf.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.AccessLog(conf.Logger))
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get("/healthz", weatherHandler.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/weather", weatherHandler.GetWeather)
		r.Get("/weather/default", weatherHandler.GetDefaultWeather)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminJWTAuth(conf.AdminJWTSecret))
			r.Delete("/cache", adminHandler.InvalidateCache)
			r.Get("/queries", adminHandler.ListQueries)
		})
	})

	return r
}
