package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/wordstash/api/internal/config"
	"github.com/wordstash/api/internal/model"
	"github.com/wordstash/api/internal/settings"
	"github.com/wordstash/api/internal/store"
)

type Issue struct {
	Key     string `json:"key"`
	Type    string `json:"type"`
	Details string `json:"details"`
}

type Report struct {
	TotalKeys   int                      `json:"totalKeys"`
	CacheKeys   int                      `json:"cacheKeys"`
	ByProvider  map[model.ProviderID]int `json:"byProvider"`
	Expired     int                      `json:"expired"`
	Issues      []Issue                  `json:"issues"`
	GeneratedAt time.Time                `json:"generatedAt"`
}

// Scans every cache record and reports per-provider counts, expired entries
// and records the service cannot decode.
func main() {
	outputFile := flag.String("output", "audit_results.json", "Output file for results")
	batchSize := flag.Int("batch", 100, "Batch size for store reads")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	settingsService := settings.NewService(ctx, st)
	maxAge := settingsService.Get().CacheDuration.Duration()

	keys, err := st.Keys(ctx)
	if err != nil {
		log.Fatalf("Failed to list keys: %v", err)
	}

	report := Report{
		TotalKeys:   len(keys),
		ByProvider:  make(map[model.ProviderID]int),
		Issues:      []Issue{},
		GeneratedAt: time.Now(),
	}

	var cacheKeys []string
	for _, key := range keys {
		if key == settings.StoreKey {
			continue
		}
		if !model.KnownCacheKey(key) {
			report.Issues = append(report.Issues, Issue{Key: key, Type: "unknown_key", Details: "key does not match any provider"})
			continue
		}
		cacheKeys = append(cacheKeys, key)
	}
	report.CacheKeys = len(cacheKeys)

	now := time.Now()
	for start := 0; start < len(cacheKeys); start += *batchSize {
		end := start + *batchSize
		if end > len(cacheKeys) {
			end = len(cacheKeys)
		}
		batch := cacheKeys[start:end]

		values, err := st.GetMany(ctx, batch)
		if err != nil {
			log.Fatalf("Failed to read batch: %v", err)
		}

		for i, raw := range values {
			if raw == nil {
				report.Issues = append(report.Issues, Issue{Key: batch[i], Type: "missing", Details: "key listed but value gone"})
				continue
			}

			var entry model.CacheEntry
			if err := json.Unmarshal(raw, &entry); err != nil {
				report.Issues = append(report.Issues, Issue{Key: batch[i], Type: "corrupt", Details: err.Error()})
				continue
			}

			providerID, _, _ := model.SplitCacheKey(batch[i])
			report.ByProvider[providerID]++

			if entry.Data.OriginAPI != providerID {
				report.Issues = append(report.Issues, Issue{
					Key:     batch[i],
					Type:    "provider_mismatch",
					Details: fmt.Sprintf("key says %s, entry says %s", providerID, entry.Data.OriginAPI),
				})
			}

			if entry.Expired(maxAge, now) {
				report.Expired++
			}
		}
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode report: %v", err)
	}
	if err := os.WriteFile(*outputFile, data, 0644); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}

	fmt.Printf("Audited %d cache keys: %d expired, %d issues\n", report.CacheKeys, report.Expired, len(report.Issues))
	fmt.Printf("Report written to %s\n", *outputFile)
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
