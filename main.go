package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/go-engine/assets"
	"github.com/robalobadob/wordle/apps/go-engine/internal/config"
	"github.com/robalobadob/wordle/apps/go-engine/internal/db"
	"github.com/robalobadob/wordle/apps/go-engine/internal/httpserver"
	"github.com/robalobadob/wordle/apps/go-engine/internal/store"
	"github.com/robalobadob/wordle/apps/go-engine/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	if err := words.Init(cfg.WordsAnswersFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer conn.Close()
	if err := db.Migrate(conn, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	mem := store.NewMemoryStore()
	stopJanitor, err := store.StartJanitor(mem, cfg.JanitorSchedule, cfg.SessionTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("start session janitor")
	}
	if stopJanitor != nil {
		defer stopJanitor()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	srv := httpserver.New(cfg, mem, conn)
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Error().Err(err).Msg("server exited")
	}
}
