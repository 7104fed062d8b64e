package handlers

import (
	"time"

	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/weather"
)

type WeatherResponse struct {
	Location    string             `json:"location"`
	Temperature float64            `json:"temperature"`
	Condition   string             `json:"condition"`
	Description string             `json:"description"`
	Icon        string             `json:"icon"`
	Humidity    int                `json:"humidity"`
	WindSpeed   float64            `json:"windSpeed"`
	Coordinates weather.Coordinate `json:"coordinates"`
	LastUpdated time.Time          `json:"lastUpdated"`
}

func newWeatherResponse(snapshot weather.Snapshot) WeatherResponse {
	return WeatherResponse{
		Location:    snapshot.Location,
		Temperature: snapshot.TemperatureC,
		Condition:   snapshot.Condition,
		Description: snapshot.Description,
		Icon:        snapshot.IconCode,
		Humidity:    snapshot.HumidityPercent,
		WindSpeed:   snapshot.WindSpeedMps,
		Coordinates: snapshot.Coordinates,
		LastUpdated: snapshot.FetchedAt,
	}
}

type HealthResponse struct {
	Status            string `json:"status"`
	WeatherConfigured bool   `json:"weatherConfigured"`
}

type InvalidateResponse struct {
	Invalidated weather.Coordinate `json:"invalidated"`
}

type QueriesResponse struct {
	Queries []weatherquery.WeatherQuery `json:"queries"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
