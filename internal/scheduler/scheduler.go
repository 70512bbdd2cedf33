package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// CleanupFunc runs one cache cleanup pass and reports how many entries it
// removed.
type CleanupFunc func(ctx context.Context) (int, error)

// CleanupScheduler runs the cache cleaner on a fixed interval. The interval
// can be changed at runtime when the cache settings are updated.
type CleanupScheduler struct {
	cleanup   CleanupFunc
	interval  time.Duration
	running   bool
	lastRun   time.Time
	lastCount int
	totalRuns int
	mu        sync.Mutex
	stopChan  chan struct{}
	resetChan chan time.Duration
}

func NewCleanupScheduler(cleanup CleanupFunc, interval time.Duration) *CleanupScheduler {
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return &CleanupScheduler{
		cleanup:   cleanup,
		interval:  interval,
		stopChan:  make(chan struct{}),
		resetChan: make(chan time.Duration, 1),
	}
}

func (s *CleanupScheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	interval := s.interval
	s.mu.Unlock()

	log.Printf("[Scheduler] Starting with interval %v", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("[Scheduler] Context cancelled, stopping")
			return
		case <-s.stopChan:
			log.Println("[Scheduler] Stop signal received")
			return
		case next := <-s.resetChan:
			ticker.Reset(next)
			log.Printf("[Scheduler] Interval changed to %v", next)
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		close(s.stopChan)
		s.running = false
		log.Println("[Scheduler] Stopped")
	}
}

// Reset changes the tick interval of a running scheduler.
func (s *CleanupScheduler) Reset(interval time.Duration) {
	if interval <= 0 {
		return
	}

	s.mu.Lock()
	s.interval = interval
	s.mu.Unlock()

	select {
	case s.resetChan <- interval:
	default:
		// A pending reset already carries a newer interval than the
		// ticker has; replace it.
		select {
		case <-s.resetChan:
		default:
		}
		s.resetChan <- interval
	}
}

func (s *CleanupScheduler) runOnce(ctx context.Context) {
	removed, err := s.cleanup(ctx)
	if err != nil {
		log.Printf("[Scheduler] Cleanup pass failed: %v", err)
		return
	}

	s.mu.Lock()
	s.lastRun = time.Now()
	s.lastCount = removed
	s.totalRuns++
	s.mu.Unlock()
}

// GetStatus returns current scheduler status
func (s *CleanupScheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":   s.running,
		"interval":  s.interval.String(),
		"totalRuns": s.totalRuns,
		"lastCount": s.lastCount,
	}
	if !s.lastRun.IsZero() {
		status["lastRun"] = s.lastRun.UTC().Format(time.RFC3339)
	}
	return status
}
