package dictionary

import (
	"context"
	"encoding/json"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wordstash/api/internal/middleware"
	"github.com/wordstash/api/internal/model"
	"github.com/wordstash/api/internal/provider"
	"github.com/wordstash/api/internal/settings"
	"github.com/wordstash/api/internal/store"
)

// ConnectivityChecker answers whether the network is reachable right now.
type ConnectivityChecker interface {
	IsConnected() bool
}

// LookupRequest is one dictionary query. Provider, when set, pins the lookup
// to that upstream with no fallback. MaxResults defaults to 10.
type LookupRequest struct {
	Word       string
	MaxResults int
	Provider   model.ProviderID
}

// Service is the single lookup entry point. It owns the cache-read and
// cache-write decisions; adapters stay pure.
type Service struct {
	store    store.Store
	settings *settings.Service
	checker  ConnectivityChecker
	adapters map[model.ProviderID]provider.Adapter
	order    []model.ProviderID

	// writeTimeout bounds the detached cache-write goroutine.
	writeTimeout time.Duration
}

func NewService(st store.Store, cfg *settings.Service, checker ConnectivityChecker, adapters []provider.Adapter) *Service {
	byID := make(map[model.ProviderID]provider.Adapter, len(adapters))
	for _, a := range adapters {
		byID[a.ID()] = a
	}

	// Keep the fixed priority order, restricted to registered adapters.
	order := make([]model.ProviderID, 0, len(byID))
	for _, id := range model.ProviderFallbackOrder {
		if _, ok := byID[id]; ok {
			order = append(order, id)
		}
	}

	return &Service{
		store:        st,
		settings:     cfg,
		checker:      checker,
		adapters:     byID,
		order:        order,
		writeTimeout: 5 * time.Second,
	}
}

// FetchResult resolves one word. With an explicit provider it takes the
// single-provider path; otherwise providers are tried sequentially in
// priority order and the first hit wins. Nil means "not found anywhere",
// which is a legitimate answer, not an error.
func (s *Service) FetchResult(ctx context.Context, req LookupRequest) *model.WordResult {
	word := strings.TrimSpace(req.Word)
	if word == "" {
		return nil
	}

	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = provider.DefaultMaxResults
	}

	if req.Provider != "" {
		return s.fetchFromProvider(ctx, req.Provider, word, maxResults)
	}

	for _, id := range s.order {
		if result := s.fetchFromProvider(ctx, id, word, maxResults); result != nil {
			return result
		}
	}
	return nil
}

func (s *Service) fetchFromProvider(ctx context.Context, id model.ProviderID, word string, maxResults int) *model.WordResult {
	adapter, ok := s.adapters[id]
	if !ok {
		return nil
	}

	key := model.CacheKey(id, word)

	if cached := s.readCache(ctx, key); cached != nil {
		middleware.RecordLookup(string(id), true)
		return cached
	}

	start := time.Now()
	result := adapter.Query(ctx, word, maxResults)
	middleware.RecordLookup(string(id), false)
	middleware.RecordProviderQuery(string(id), result != nil, time.Since(start))

	if result != nil {
		entry := model.CacheEntry{CachedOn: time.Now(), Data: *result}
		// Fire-and-forget by contract: the caller never waits on the write
		// and a lost entry self-heals on the next lookup.
		go s.persist(key, entry)
	}

	return result
}

// readCache returns a usable cached result, or nil. A stale entry is still
// usable while the device is offline; read and decode failures count as
// misses.
func (s *Service) readCache(ctx context.Context, key string) *model.WordResult {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		return nil
	}

	var entry model.CacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		log.Printf("[Dictionary] Corrupt cache entry %s: %v", key, err)
		return nil
	}

	cfg := s.settings.Get()
	if entry.Expired(cfg.CacheDuration.Duration(), time.Now()) && s.checker.IsConnected() {
		return nil
	}
	return &entry.Data
}

func (s *Service) persist(key string, entry model.CacheEntry) {
	raw, err := json.Marshal(entry)
	if err != nil {
		log.Printf("[Dictionary] Encode cache entry %s: %v", key, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.writeTimeout)
	defer cancel()

	if err := s.store.Set(ctx, key, raw); err != nil {
		log.Printf("[Dictionary] Cache write %s failed: %v", key, err)
	}
}

// Suggestions fans out to every selected provider that supports autocomplete,
// in parallel. A failing provider contributes nothing; the merged result is
// lowercased and de-duplicated. Suggestions are never cached.
func (s *Service) Suggestions(ctx context.Context, word string) []string {
	word = strings.TrimSpace(word)
	if word == "" {
		return []string{}
	}

	cfg := s.settings.Get()

	var (
		mu  sync.Mutex
		all []string
	)

	var g errgroup.Group
	for _, id := range s.order {
		if !cfg.HasDictionary(id) {
			continue
		}
		suggester, ok := s.adapters[id].(provider.Suggester)
		if !ok {
			continue
		}

		id := id
		g.Go(func() error {
			words, err := suggester.Suggest(ctx, word, provider.DefaultMaxResults)
			if err != nil {
				log.Printf("[Dictionary] Suggestions from %s failed: %v", id, err)
				return nil
			}

			mu.Lock()
			all = append(all, words...)
			mu.Unlock()
			return nil
		})
	}
	g.Wait()

	lowered := make([]string, len(all))
	for i, w := range all {
		lowered[i] = strings.ToLower(w)
	}
	return model.Dedupe(lowered)
}
