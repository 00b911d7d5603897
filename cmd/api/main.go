package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/srgjo27/hotel_reservation/internal/adapter/handler"
	"github.com/srgjo27/hotel_reservation/internal/adapter/repository/memory"
	storepg "github.com/srgjo27/hotel_reservation/internal/adapter/repository/postgres"
	"github.com/srgjo27/hotel_reservation/internal/core/ports"
	"github.com/srgjo27/hotel_reservation/internal/core/services"
	"github.com/srgjo27/hotel_reservation/internal/platform/config"
	"github.com/srgjo27/hotel_reservation/internal/platform/database"
	"github.com/srgjo27/hotel_reservation/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("hotel-api", "info", "json")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New("hotel-api", cfg.App.LogLevel, cfg.App.LogFormat)

	var catalog ports.RoomCatalog
	var store ports.ReservationStore

	switch cfg.App.Store {
	case config.StoreMemory:
		log.Info().Msg("using in-memory reservation store")
		catalog = memory.NewRoomCatalog(memory.SeedRooms()...)
		store = memory.NewReservationStore()
	default:
		db, err := database.NewPostgresDB(cfg.DB, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database after retries")
		}
		defer db.Close()

		catalog = storepg.NewRoomCatalog(db)
		store = storepg.NewReservationStore(db)
	}

	var cache *redis.Client
	if cfg.Redis.Addr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if err := cache.Ping(context.Background()).Err(); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Info().Msg("redis not configured, availability caching disabled")
	}

	bookingService := services.NewBookingService(catalog, store, cache, log)
	bookingHandler := handler.NewBookingHandler(bookingService, log)

	mux := http.NewServeMux()
	bookingHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.App.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server startup failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")
}
