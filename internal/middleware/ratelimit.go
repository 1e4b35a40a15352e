// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// ratelimit.go caps how fast a single client can create posts. The JSON
// create endpoint and the HTML form share one limiter instance, so a
// client cannot dodge the cap by switching surfaces.
package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// sweepInterval is how often idle client windows are evicted.
const sweepInterval = 5 * time.Minute

// clientWindow holds the recent request times for one client.
type clientWindow struct {
	mu   sync.Mutex
	hits []time.Time
}

// RateLimiter enforces a per-client sliding window: at most limit
// requests within the trailing window duration.
type RateLimiter struct {
	mu      sync.RWMutex
	windows map[string]*clientWindow
	limit   int
	window  time.Duration
	stop    chan struct{}
}

// NewRateLimiter creates a limiter allowing limit requests per window
// and starts a background sweeper for idle clients.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*clientWindow),
		limit:   limit,
		window:  window,
		stop:    make(chan struct{}),
	}

	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rl.sweep()
			case <-rl.stop:
				return
			}
		}
	}()

	return rl
}

// Stop terminates the background sweeper.
func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// allow records a request for key and reports whether it is within the
// limit. Expired hits are dropped before counting.
func (rl *RateLimiter) allow(key string) bool {
	rl.mu.RLock()
	cw, ok := rl.windows[key]
	rl.mu.RUnlock()

	if !ok {
		rl.mu.Lock()
		// Another request may have created the window in the meantime.
		cw, ok = rl.windows[key]
		if !ok {
			cw = &clientWindow{}
			rl.windows[key] = cw
		}
		rl.mu.Unlock()
	}

	now := time.Now()
	cutoff := now.Add(-rl.window)

	cw.mu.Lock()
	defer cw.mu.Unlock()

	live := cw.hits[:0]
	for _, hit := range cw.hits {
		if hit.After(cutoff) {
			live = append(live, hit)
		}
	}
	cw.hits = live

	if len(cw.hits) >= rl.limit {
		return false
	}

	cw.hits = append(cw.hits, now)
	return true
}

// sweep drops client windows whose hits have all expired.
func (rl *RateLimiter) sweep() {
	cutoff := time.Now().Add(-rl.window)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, cw := range rl.windows {
		cw.mu.Lock()
		live := false
		for _, hit := range cw.hits {
			if hit.After(cutoff) {
				live = true
				break
			}
		}
		cw.mu.Unlock()

		if !live {
			delete(rl.windows, key)
		}
	}
}

// Middleware rejects requests over the limit with 429. Clients are
// keyed by IP.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.allow(clientIP(r)) {
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP resolves the client address, preferring the proxy headers
// set in front of the server over the socket address.
func clientIP(r *http.Request) string {
	// X-Forwarded-For may carry a chain; the leftmost entry is the
	// original client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.IndexByte(xff, ','); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
