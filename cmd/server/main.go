package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/app"
	"ulascansenturk/weather-widget/internal/db"
	"ulascansenturk/weather-widget/internal/db/weatherquery"
)

func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil || conf.LogLevel == "" {
		logLevel = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()
	log.Logger = logger

	if err := conf.Validate(); err != nil {
		logger.Warn().Err(err).Msg("weather requests will be rejected until configuration is fixed")
	}

	ctx, mainCtxStop := context.WithCancel(context.Background())

	var weatherRepo weatherquery.Repository
	if conf.DatabaseConfigured() {
		gormDB, dbErr := db.Open(conf)
		if dbErr != nil {
			logger.Fatal().Err(dbErr).Str("driver", conf.DBDriver).Msg("failed to initialize database")
		}
		weatherRepo = weatherquery.NewRepository(gormDB)
	} else {
		logger.Info().Msg("no database configured, query log disabled")
	}

	widget := app.New(conf, logger, weatherRepo)
	if err := widget.Scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("failed to start scheduler")
	}

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           widget.Handler,
		ReadHeaderTimeout: conf.HTTPTimeoutDuration(),
	}

	handleSignals(ctx, mainCtxStop, func(shutdownCtx context.Context) {
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
		widget.Shutdown()
	})

	logger.Info().Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil && !errors.Is(serverErr, http.ErrServerClosed) {
		logger.Fatal().Err(serverErr).Msg("server stopped")
	}
	<-ctx.Done()
	logger.Info().Msg("server stopped")
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func(context.Context)) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback(shutdownCtx)

		cancel()
		cancelCtx()
	}()
}
