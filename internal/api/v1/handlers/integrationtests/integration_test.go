package integration_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgTestContainers "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/app"
	"ulascansenturk/weather-widget/internal/db"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
	"ulascansenturk/weather-widget/internal/weather"
)

var (
	postgresContainer *pgTestContainers.PostgresContainer
	sharedDB          *gorm.DB
)

const (
	dbName     = "test_api_database"
	dbUser     = "test_user"
	dbPassword = "test_password"
)

func init() {
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func SetupPostgres(t *testing.T) (*gorm.DB, func()) {
	if sharedDB != nil {
		require.NoError(t, sharedDB.Migrator().DropTable(&weatherquery.WeatherQuery{}))
		require.NoError(t, sharedDB.AutoMigrate(&weatherquery.WeatherQuery{}))
		return sharedDB, func() {}
	}

	log.Info().Msg("Setting up new PostgreSQL container")

	ctx := context.Background()

	var err error
	postgresContainer, err = pgTestContainers.Run(ctx,
		"postgres:13.3",
		pgTestContainers.WithDatabase(dbName),
		pgTestContainers.WithUsername(dbUser),
		pgTestContainers.WithPassword(dbPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err)

	host, err := postgresContainer.Host(ctx)
	require.NoError(t, err)

	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	sharedDB, err = db.Open(&config.Config{
		DBDriver:   db.DriverPostgres,
		DBHost:     host,
		DBPort:     port.Port(),
		DBUser:     dbUser,
		DBPassword: dbPassword,
		DBName:     dbName,
	})
	require.NoError(t, err)
	log.Info().Msgf("Connected to database: %s on %s:%s", dbName, host, port.Port())

	return sharedDB, func() {
		if postgresContainer != nil {
			log.Info().Msg("Terminating PostgreSQL container")
			if err := postgresContainer.Terminate(context.Background()); err != nil {
				log.Error().Err(err).Msg("Failed to terminate PostgreSQL container")
			}
		}
	}
}

type testSetup struct {
	app      *app.App
	upstream *httptest.Server
	hits     *atomic.Int32
	db       *gorm.DB
}

func setupTest(t *testing.T, coalesceWindow time.Duration) *testSetup {
	gormDB, _ := SetupPostgres(t)

	hits := &atomic.Int32{}
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"name":    "Istanbul",
			"main":    map[string]interface{}{"temp": 25.5, "humidity": 58},
			"weather": []map[string]interface{}{{"main": "Clear", "description": "clear sky", "icon": "01d"}},
			"wind":    map[string]interface{}{"speed": 3.2},
		})
	}))

	conf := &config.Config{
		HTTPTimeout:       10,
		WeatherAPIKey:     "test_api_key",
		WeatherAPIBaseURL: upstream.URL,
		DefaultLocation: weather.NamedLocation{
			Coordinate: weather.Coordinate{Latitude: 41.0082, Longitude: 28.9784},
			Name:       "Istanbul",
		},
		CacheTTL:          30 * time.Minute,
		CacheKeyPrecision: 2,
		RetryAttempts:     1,
		RetryBackoff:      10 * time.Millisecond,
		RequestTimeout:    2 * time.Second,
		MaxBatchSize:      10,
		CoalesceWindow:    coalesceWindow,
	}

	return &testSetup{
		app:      app.New(conf, zerolog.Nop(), weatherquery.NewRepository(gormDB)),
		upstream: upstream,
		hits:     hits,
		db:       gormDB,
	}
}

func (ts *testSetup) close() {
	ts.app.Shutdown()
	ts.upstream.Close()
}

func (ts *testSetup) get(target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	ts.app.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func latestQuery(t *testing.T, gormDB *gorm.DB, cacheKey string) weatherquery.WeatherQuery {
	var query weatherquery.WeatherQuery
	require.Eventually(t, func() bool {
		return gormDB.Where("cache_key = ?", cacheKey).Order("created_at DESC").First(&query).Error == nil
	}, 2*time.Second, 50*time.Millisecond)
	return query
}

func TestWeatherWidget(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container backed integration test in short mode")
	}

	_, cleanup := SetupPostgres(t)
	defer cleanup()

	t.Run("SingleRequestIsLogged", func(t *testing.T) {
		ts := setupTest(t, 0)
		defer ts.close()

		w := ts.get("/api/v1/weather?lat=41.0082&lon=28.9784")
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Istanbul", body["location"])
		assert.Equal(t, 25.5, body["temperature"])

		query := latestQuery(t, ts.db, "41.01:28.98")
		assert.Equal(t, "Istanbul", query.Location)
		assert.Equal(t, 25.5, query.Temperature)
		assert.Equal(t, "Clear", query.Condition)
		assert.Equal(t, 1, query.RequestCount)
	})

	t.Run("CoalescedRequestsShareOneFetch", func(t *testing.T) {
		ts := setupTest(t, 300*time.Millisecond)
		defer ts.close()

		var wg sync.WaitGroup
		wg.Add(4)
		for i := 0; i < 4; i++ {
			go func() {
				defer wg.Done()
				w := ts.get("/api/v1/weather?lat=51.5072&lon=-0.1276")
				assert.Equal(t, http.StatusOK, w.Code)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), ts.hits.Load())
		assert.Equal(t, 4, latestQuery(t, ts.db, "51.51:-0.13").RequestCount)
	})

	t.Run("MaxBatchSizeDispatchesImmediately", func(t *testing.T) {
		ts := setupTest(t, 10*time.Second)
		defer ts.close()

		start := time.Now()

		var wg sync.WaitGroup
		wg.Add(10)
		for i := 0; i < 10; i++ {
			go func() {
				defer wg.Done()
				w := ts.get("/api/v1/weather?lat=-33.8688&lon=151.2093")
				assert.Equal(t, http.StatusOK, w.Code)
			}()
		}
		wg.Wait()

		assert.Less(t, time.Since(start), 5*time.Second)
		assert.Equal(t, int32(1), ts.hits.Load())
		assert.Equal(t, 10, latestQuery(t, ts.db, "-33.87:151.21").RequestCount)
	})

	t.Run("CachedResponseIsNotLoggedAgain", func(t *testing.T) {
		ts := setupTest(t, 0)
		defer ts.close()

		require.Equal(t, http.StatusOK, ts.get("/api/v1/weather?lat=52.52&lon=13.404").Code)
		latestQuery(t, ts.db, "52.52:13.40")

		require.Equal(t, http.StatusOK, ts.get("/api/v1/weather?lat=52.5201&lon=13.4041").Code)

		var count int64
		require.NoError(t, ts.db.Model(&weatherquery.WeatherQuery{}).Where("cache_key = ?", "52.52:13.40").Count(&count).Error)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, int32(1), ts.hits.Load())
	})

	t.Run("PruneRemovesExpiredRows", func(t *testing.T) {
		ts := setupTest(t, 0)
		defer ts.close()

		repo := weatherquery.NewRepository(ts.db)
		require.NoError(t, repo.LogWeatherQuery(&weatherquery.WeatherQuery{
			CacheKey: "0.00:0.00", RequestCount: 1, CreatedAt: time.Now().Add(-60 * 24 * time.Hour),
		}))
		require.NoError(t, repo.LogWeatherQuery(&weatherquery.WeatherQuery{CacheKey: "0.00:0.00", RequestCount: 2}))

		deleted, err := repo.DeleteOlderThan(time.Now().Add(-30 * 24 * time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		queries, err := repo.ListRecentWeatherQueries(10)
		require.NoError(t, err)
		require.Len(t, queries, 1)
		assert.Equal(t, 2, queries[0].RequestCount)
	})
}
