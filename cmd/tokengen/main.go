package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gokatarajesh/trivia-api/internal/auth/jwt"
	"github.com/gokatarajesh/trivia-api/internal/config"
)

// tokengen mints an editor token for POST /questions and DELETE /questions/{id}.
func main() {
	subject := flag.String("subject", "editor", "Subject recorded in the token")
	flag.Parse()

	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Warn().Err(err).Msg("could not load .env file")
		}
	}

	sec, err := config.LoadSecurity()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load security config")
	}
	if sec.EditorTokenSecret == "" {
		log.Fatal().Msg("EDITOR_TOKEN_SECRET must be set to mint editor tokens")
	}

	tokens := jwt.NewManager(jwt.TokenConfig{
		Secret: []byte(sec.EditorTokenSecret),
		TTL:    sec.EditorTokenTTL,
	})
	token, err := tokens.GenerateEditorToken(*subject)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign editor token")
	}

	log.Info().Str("subject", *subject).Dur("ttl", sec.EditorTokenTTL).Msg("editor token issued")
	fmt.Println(token)
}
