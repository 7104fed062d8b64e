package weatherquery

import (
	"time"
)

// WeatherQuery records one upstream fetch and how many client requests it served.
type WeatherQuery struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CacheKey     string    `json:"cache_key" gorm:"size:64;index:idx_cache_key;index:idx_cache_key_created_at"`
	Latitude     float64   `json:"latitude" gorm:"column:latitude"`
	Longitude    float64   `json:"longitude" gorm:"column:longitude"`
	Location     string    `json:"location" gorm:"size:255"`
	Temperature  float64   `json:"temperature" gorm:"column:temperature"`
	Condition    string    `json:"condition" gorm:"size:64"`
	RequestCount int       `json:"request_count" gorm:"column:request_count"`
	CreatedAt    time.Time `json:"created_at" gorm:"index:idx_created_at;index:idx_cache_key_created_at"`
}

func (WeatherQuery) TableName() string {
	return "weather_queries"
}
