package weatherquery

import (
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	LogWeatherQuery(query *WeatherQuery) error
	GetRecentWeatherQuery(cacheKey string) (*WeatherQuery, error)
	ListRecentWeatherQueries(limit int) ([]WeatherQuery, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type WeatherSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &WeatherSQLRepository{db: db}
}

func (r *WeatherSQLRepository) LogWeatherQuery(query *WeatherQuery) error {
	if query.CreatedAt.IsZero() {
		query.CreatedAt = time.Now()
	}

	return r.db.Create(query).Error
}

func (r *WeatherSQLRepository) GetRecentWeatherQuery(cacheKey string) (*WeatherQuery, error) {
	var query WeatherQuery
	err := r.db.Where("cache_key = ?", cacheKey).Order("created_at DESC").First(&query).Error
	if err != nil {
		return nil, err
	}
	return &query, nil
}

func (r *WeatherSQLRepository) ListRecentWeatherQueries(limit int) ([]WeatherQuery, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}

	var queries []WeatherQuery
	err := r.db.Order("created_at DESC").Limit(limit).Find(&queries).Error
	if err != nil {
		return nil, err
	}
	return queries, nil
}

func (r *WeatherSQLRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&WeatherQuery{})
	return result.RowsAffected, result.Error
}
