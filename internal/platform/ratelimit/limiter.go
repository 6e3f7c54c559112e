package ratelimit

import (
	"sync"
	"time"
)

type window struct {
	count     int
	startedAt time.Time
}

// FixedWindow is a per-key fixed-window counter: up to max hits per window,
// with the counter reset once a key's window has fully elapsed. Best-effort
// and local to the process, which is all a single kiosk needs.
type FixedWindow struct {
	mu      sync.Mutex
	max     int
	size    time.Duration
	entries map[string]*window
	now     func() time.Time
}

func NewFixedWindow(max int, size time.Duration) *FixedWindow {
	if max < 1 {
		max = 1
	}
	if size <= 0 {
		size = time.Minute
	}

	return &FixedWindow{
		max:     max,
		size:    size,
		entries: make(map[string]*window),
		now:     time.Now,
	}
}

// Allow records one hit for key and reports whether it fits the window.
func (l *FixedWindow) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	w, ok := l.entries[key]
	if !ok || now.Sub(w.startedAt) > l.size {
		l.entries[key] = &window{count: 1, startedAt: now}
		return true
	}

	if w.count >= l.max {
		return false
	}
	w.count++
	return true
}

// Sweep drops keys whose window has lapsed. Call it periodically so idle
// clients do not accumulate.
func (l *FixedWindow) Sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	for key, w := range l.entries {
		if now.Sub(w.startedAt) > l.size {
			delete(l.entries, key)
		}
	}
}

// StartSweeper runs Sweep on the given interval until stop is closed.
func (l *FixedWindow) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = time.Minute
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.Sweep()
			case <-stop:
				return
			}
		}
	}()
}
