package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/wordstash/api/internal/model"
	"github.com/wordstash/api/internal/store"
)

// StoreKey is the reserved store key settings live under. It deliberately
// cannot collide with cache keys, which always start with a provider id.
const StoreKey = "settings"

// Millis carries a duration as whole milliseconds on the wire, matching the
// stored settings shape.
type Millis time.Duration

func (m Millis) Duration() time.Duration { return time.Duration(m) }

func (m Millis) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(m).Milliseconds())
}

func (m *Millis) UnmarshalJSON(data []byte) error {
	var ms int64
	if err := json.Unmarshal(data, &ms); err != nil {
		return err
	}
	*m = Millis(time.Duration(ms) * time.Millisecond)
	return nil
}

// Cleanup parameterizes the expired-entry eviction pass.
type Cleanup struct {
	// Interval between cleanup passes.
	Interval Millis `json:"interval"`
	// BatchSize bounds how many cache entries one pass holds in memory at a
	// time.
	BatchSize int `json:"batchSize"`
}

// Settings are the values the excluded settings UI tunes. Dictionaries gates
// which providers suggestion queries fan out to.
type Settings struct {
	Dictionaries  []model.ProviderID `json:"dictionaries"`
	CacheDuration Millis             `json:"cacheDuration"`
	CacheSize     int                `json:"cacheSize"`
	Cleanup       Cleanup            `json:"cleanup"`
	SavedOn       time.Time          `json:"savedOn"`
}

// Default returns the out-of-the-box settings: one hour cache lifetime, a
// thousand entries before cleanup engages, a pass every thirty seconds in
// batches of twenty-five, Datamuse as the only suggestion source.
func Default() Settings {
	return Settings{
		Dictionaries:  []model.ProviderID{model.ProviderDatamuse},
		CacheDuration: Millis(time.Hour),
		CacheSize:     1000,
		Cleanup: Cleanup{
			Interval:  Millis(30 * time.Second),
			BatchSize: 25,
		},
	}
}

// HasDictionary reports whether provider is among the selected dictionaries.
func (s Settings) HasDictionary(provider model.ProviderID) bool {
	for _, d := range s.Dictionaries {
		if d == provider {
			return true
		}
	}
	return false
}

// Validate rejects values the core cannot run with.
func (s Settings) Validate() error {
	if s.CacheDuration <= 0 {
		return errors.New("cacheDuration must be positive")
	}
	if s.CacheSize < 0 {
		return errors.New("cacheSize must not be negative")
	}
	if s.Cleanup.Interval <= 0 {
		return errors.New("cleanup.interval must be positive")
	}
	if s.Cleanup.BatchSize <= 0 {
		return errors.New("cleanup.batchSize must be positive")
	}
	for _, d := range s.Dictionaries {
		if !model.KnownProvider(d) {
			return fmt.Errorf("unknown dictionary %q", d)
		}
	}
	return nil
}

// Service loads settings from the store and hands out copies to the
// aggregator and the cleanup pass.
type Service struct {
	store store.Store

	mu      sync.RWMutex
	current Settings
}

// NewService reads persisted settings, falling back to defaults when the key
// is missing or unreadable.
func NewService(ctx context.Context, st store.Store) *Service {
	svc := &Service{store: st, current: Default()}

	raw, err := st.Get(ctx, StoreKey)
	if errors.Is(err, store.ErrNotFound) {
		return svc
	}
	if err != nil {
		log.Printf("[Settings] Read failed, using defaults: %v", err)
		return svc
	}

	var loaded Settings
	if err := json.Unmarshal(raw, &loaded); err != nil {
		log.Printf("[Settings] Corrupt settings record, using defaults: %v", err)
		return svc
	}
	if err := loaded.Validate(); err != nil {
		log.Printf("[Settings] Invalid persisted settings, using defaults: %v", err)
		return svc
	}

	svc.current = loaded
	return svc
}

// Get returns a copy of the current settings.
func (s *Service) Get() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := s.current
	out.Dictionaries = append([]model.ProviderID(nil), s.current.Dictionaries...)
	return out
}

// Update validates, persists and installs new settings. SavedOn is stamped
// here.
func (s *Service) Update(ctx context.Context, next Settings) (Settings, error) {
	if err := next.Validate(); err != nil {
		return Settings{}, err
	}

	next.SavedOn = time.Now()

	raw, err := json.Marshal(next)
	if err != nil {
		return Settings{}, err
	}
	if err := s.store.Set(ctx, StoreKey, raw); err != nil {
		return Settings{}, fmt.Errorf("persist settings: %w", err)
	}

	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	return next, nil
}
