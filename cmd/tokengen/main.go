// Command tokengen mints bearer tokens for the chat gateway and operators.
//
//	JWT_SECRET=... tokengen -user 7 -handle alice -ttl 720h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GlebRadaev/digishop/pkg/auth"
)

type config struct {
	Secret string `env:"JWT_SECRET"`
}

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	userID := flag.Int64("user", 0, "chat user id")
	handle := flag.String("handle", "", "chat handle")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to parse env")
	}
	if cfg.Secret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}
	if *userID <= 0 {
		log.Fatal().Int64("user", *userID).Msg("user id must be positive")
	}

	token, err := auth.NewJWTService(cfg.Secret).GenerateJWT(*userID, *handle, time.Now().Add(*ttl))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign token")
	}
	fmt.Println(token)
}
