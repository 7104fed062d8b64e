package weather

import (
	"math"
	"strconv"
	"time"
)

// Coordinate is a validated latitude/longitude pair. Build one with NewCoordinate or
// ParseCoordinate so out-of-range values never reach a provider.
type Coordinate struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Key rounds the coordinate to precision decimal degrees so that nearby requests share
// a cache entry.
func (c Coordinate) Key(precision int) string {
	return formatRounded(c.Latitude, precision) + ":" + formatRounded(c.Longitude, precision)
}

func formatRounded(v float64, precision int) string {
	pow := math.Pow(10, float64(precision))
	r := math.Round(v*pow) / pow
	if r == 0 {
		// collapse -0 so that -0.001 and 0.001 share a key
		r = 0
	}
	return strconv.FormatFloat(r, 'f', precision, 64)
}

// NamedLocation is a coordinate with a display name, used for the configured default.
type NamedLocation struct {
	Coordinate
	Name string
}

// Snapshot is a single point-in-time reading for a coordinate. It is passed by value and
// never mutated after the provider builds it.
type Snapshot struct {
	Location        string     `json:"location"`
	TemperatureC    float64    `json:"temperatureCelsius"`
	Condition       string     `json:"condition"`
	Description     string     `json:"description"`
	IconCode        string     `json:"iconCode"`
	HumidityPercent int        `json:"humidityPercent"`
	WindSpeedMps    float64    `json:"windSpeedMps"`
	Coordinates     Coordinate `json:"coordinates"`
	FetchedAt       time.Time  `json:"fetchedAt"`
}

// At returns a copy of the snapshot reporting the requested coordinate. Cached snapshots
// are shared by every coordinate with the same key, so responses echo the caller's input.
func (s Snapshot) At(c Coordinate) Snapshot {
	s.Coordinates = c
	return s
}
