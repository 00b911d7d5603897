package main

import (
	"flag"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"github.com/srgjo27/hotel_reservation/internal/platform/config"
	"github.com/srgjo27/hotel_reservation/internal/platform/database"
	"github.com/srgjo27/hotel_reservation/internal/platform/logger"
	"github.com/srgjo27/hotel_reservation/migrations"
)

func main() {
	cmd := flag.String("cmd", "up", "migration command: up|down|status|version")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("hotel-migrate", "info", "json")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New("hotel-migrate", cfg.App.LogLevel, cfg.App.LogFormat)

	db, err := database.NewPostgresDB(cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	switch *cmd {
	case "up":
		err = goose.Up(db, ".")
	case "down":
		err = goose.Down(db, ".")
	case "status":
		err = goose.Status(db, ".")
	case "version":
		err = goose.Version(db, ".")
	default:
		log.Fatal().Str("cmd", *cmd).Msg("unknown migration command")
	}

	if err != nil {
		log.Fatal().Err(err).Str("cmd", *cmd).Msg("migration failed")
	}

	log.Info().Str("cmd", *cmd).Msg("migration complete")
}
