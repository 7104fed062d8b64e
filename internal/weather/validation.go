package weather

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type coordinateInput struct {
	Latitude  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"lon" validate:"gte=-180,lte=180"`
}

var rangeMessages = map[string]string{
	"lat": "must be between -90 and 90",
	"lon": "must be between -180 and 180",
}

// NewCoordinate validates numeric latitude and longitude.
func NewCoordinate(lat, lon float64) (Coordinate, error) {
	fields := make(map[string]string)
	checkFinite(fields, "lat", lat)
	checkFinite(fields, "lon", lon)

	if err := validate.Struct(coordinateInput{Latitude: lat, Longitude: lon}); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return Coordinate{}, fmt.Errorf("validate coordinates: %w", err)
		}
		for _, fe := range verrs {
			if _, seen := fields[fe.Field()]; !seen {
				fields[fe.Field()] = rangeMessages[fe.Field()]
			}
		}
	}

	if len(fields) > 0 {
		return Coordinate{}, &ValidationError{Fields: fields}
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// ParseCoordinate validates raw query values. Every failing field is reported, not just
// the first one.
func ParseCoordinate(rawLat, rawLon string) (Coordinate, error) {
	fields := make(map[string]string)
	lat, latOK := parseNumber(fields, "lat", rawLat)
	lon, lonOK := parseNumber(fields, "lon", rawLon)

	if !latOK || !lonOK {
		// unparsed fields are zero here, so only the parsed one can add a range error
		if _, err := NewCoordinate(lat, lon); err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				for k, msg := range verr.Fields {
					if _, seen := fields[k]; !seen {
						fields[k] = msg
					}
				}
			}
		}
		return Coordinate{}, &ValidationError{Fields: fields}
	}

	return NewCoordinate(lat, lon)
}

func parseNumber(fields map[string]string, name, raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		fields[name] = "is required"
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fields[name] = "must be numeric"
		return 0, false
	}
	return v, true
}

func checkFinite(fields map[string]string, name string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		fields[name] = "must be a finite number"
	}
}
