package netcheck

import (
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultProbeURL returns 204 with no body and is reachable from virtually
// anywhere, which makes it a cheap connectivity beacon.
const DefaultProbeURL = "https://www.gstatic.com/generate_204"

const probeName = "isConnected"

// Checker answers a best-effort "is the network reachable" question. Any
// probe failure is read as offline. Concurrent callers share one in-flight
// probe and results are memoized for a short window so lookup bursts do not
// hammer the beacon.
type Checker struct {
	probeURL   string
	httpClient *http.Client
	group      singleflight.Group
	memoFor    time.Duration

	mu        sync.Mutex
	lastAt    time.Time
	lastValue bool
}

func NewChecker(probeURL string) *Checker {
	if probeURL == "" {
		probeURL = DefaultProbeURL
	}
	return &Checker{
		probeURL:   probeURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		memoFor:    3 * time.Second,
	}
}

// IsConnected reports whether the probe endpoint answered recently.
func (c *Checker) IsConnected() bool {
	c.mu.Lock()
	if time.Since(c.lastAt) < c.memoFor {
		val := c.lastValue
		c.mu.Unlock()
		return val
	}
	c.mu.Unlock()

	val, _, _ := c.group.Do(probeName, func() (interface{}, error) {
		online := c.probe()

		c.mu.Lock()
		c.lastAt = time.Now()
		c.lastValue = online
		c.mu.Unlock()

		return online, nil
	})

	return val.(bool)
}

func (c *Checker) probe() bool {
	resp, err := c.httpClient.Post(c.probeURL, "", nil)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return true
}
