package main

import (
	"bufio"
	"context"
	"flag"
	"log"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"

	"github.com/wordstash/api/internal/config"
	"github.com/wordstash/api/internal/dictionary"
	"github.com/wordstash/api/internal/netcheck"
	"github.com/wordstash/api/internal/provider"
	"github.com/wordstash/api/internal/provider/datamuse"
	"github.com/wordstash/api/internal/provider/dictapi"
	"github.com/wordstash/api/internal/provider/freedict"
	"github.com/wordstash/api/internal/provider/urban"
	"github.com/wordstash/api/internal/settings"
	"github.com/wordstash/api/internal/store"
)

// Warms the cache from a word list by running each word through the normal
// lookup path. Cache writes are fire-and-forget, so the tool drains briefly
// before exiting.
func main() {
	filePath := flag.String("file", "data/words.txt", "Path to word list file")
	workers := flag.Int("workers", 5, "Number of parallel workers")
	delayMs := flag.Int("delay", 500, "Delay between lookups per worker in milliseconds")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	st, err := openStore(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	ctx := context.Background()
	settingsService := settings.NewService(ctx, st)
	checker := netcheck.NewChecker(cfg.ProbeURL)

	adapters := []provider.Adapter{datamuse.New(), dictapi.New(), freedict.New(), urban.New()}
	service := dictionary.NewService(st, settingsService, checker, adapters)

	words, err := loadWordList(*filePath)
	if err != nil {
		log.Fatalf("Failed to load word list: %v", err)
	}

	log.Printf("Warming cache with %d words using %d workers", len(words), *workers)

	delay := time.Duration(*delayMs) * time.Millisecond
	wordChan := make(chan string, *workers*2)

	var found, missed int64
	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for word := range wordChan {
				result := service.FetchResult(ctx, dictionary.LookupRequest{Word: word})
				if result != nil {
					n := atomic.AddInt64(&found, 1)
					if n%100 == 0 {
						log.Printf("Progress: %d found, %d missed", n, atomic.LoadInt64(&missed))
					}
				} else {
					atomic.AddInt64(&missed, 1)
				}
				time.Sleep(delay)
			}
		}()
	}

	for _, word := range words {
		wordChan <- word
	}
	close(wordChan)
	wg.Wait()

	// Give detached cache writes a moment to land.
	time.Sleep(2 * time.Second)

	log.Printf("Warm complete. Found: %d, missed: %d", found, missed)
}

func loadWordList(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}

	return words, scanner.Err()
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
