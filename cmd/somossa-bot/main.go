package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ahm0xc/somossa-bot/internal/config"
	"github.com/ahm0xc/somossa-bot/internal/discord"
	"github.com/ahm0xc/somossa-bot/internal/server"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Optional .env for local development; deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	client, err := discord.New(cfg.DiscordBotToken, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("create discord client")
	}
	if err := client.Open(); err != nil {
		logger.Fatal().Err(err).Msg("open discord gateway")
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, client, logger)
	logger.Info().Int("port", cfg.Port).Msg("relay listening")
	if err := srv.Start(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
