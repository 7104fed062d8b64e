package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-widget/config"
	"ulascansenturk/weather-widget/internal/middleware"
)

// admintoken prints a bearer token for the /api/v1/admin endpoints, signed with ADMIN_JWT_SECRET.
func main() {
	subject := flag.String("subject", "ops", "token subject")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	token, expiresAt, err := middleware.GenerateAdminToken(conf.AdminJWTSecret, *subject, *ttl)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign admin token")
	}

	log.Info().Str("subject", *subject).Time("expires_at", expiresAt).Msg("admin token issued")
	fmt.Println(token)
}
