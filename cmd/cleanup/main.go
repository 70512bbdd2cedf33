package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/wordstash/api/internal/config"
	"github.com/wordstash/api/internal/dictionary"
	"github.com/wordstash/api/internal/settings"
	"github.com/wordstash/api/internal/store"
)

// One-shot cache cleanup, for cron or manual runs against a live store.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	settingsService := settings.NewService(ctx, st)
	cleaner := dictionary.NewCleaner(st, settingsService)

	removed, err := cleaner.Run(ctx)
	if err != nil {
		log.Fatalf("Cleanup pass failed: %v", err)
	}

	log.Printf("Cleanup pass removed %d entries", removed)
}

func openStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "postgres":
		return store.NewPostgresStore(cfg.DatabaseURL)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return store.NewRedisStore(cfg.RedisURL)
	}
}
