// Package cache provides the per-owner TTL store for remote platform access
// tokens. It is a cache, not a store of record: a process restart loses every
// entry and re-authentication repopulates it.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	token    string
	deadline time.Time
}

// Credentials maps owner id to an access token with a per-entry TTL. Entries
// expire lazily on read, so a Get past the deadline is indistinguishable from
// the entry never having been set. Each owner's entry is independent; the
// single mutex only covers map access, never a remote call. The zero value is
// not usable, use New.
type Credentials struct {
	mu      sync.Mutex
	entries map[string]entry
	done    chan struct{}
}

// New returns an empty credential cache.
func New() *Credentials {
	return &Credentials{entries: make(map[string]entry)}
}

// NewWithJanitor returns a cache that additionally evicts expired entries
// every interval, bounding memory for owners that never come back. Call Stop
// to end the janitor goroutine.
func NewWithJanitor(interval time.Duration) *Credentials {
	c := New()
	c.done = make(chan struct{})
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-c.done:
				return
			case <-t.C:
				c.evictExpired()
			}
		}
	}()
	return c
}

// Stop ends the janitor goroutine, if any. Safe to call once.
func (c *Credentials) Stop() {
	if c.done != nil {
		close(c.done)
	}
}

// Set stores the token for ownerID, replacing any previous entry. A zero or
// negative ttl removes the entry.
func (c *Credentials) Set(ownerID, token string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ttl <= 0 {
		delete(c.entries, ownerID)
		return
	}
	c.entries[ownerID] = entry{token: token, deadline: time.Now().Add(ttl)}
}

// Get returns the live token for ownerID. The second return is false when no
// entry exists or the entry has expired.
func (c *Credentials) Get(ownerID string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ownerID]
	if !ok {
		return "", false
	}
	if time.Now().After(e.deadline) {
		delete(c.entries, ownerID)
		return "", false
	}
	return e.token, true
}

// Has reports whether a live token exists for ownerID.
func (c *Credentials) Has(ownerID string) bool {
	_, ok := c.Get(ownerID)
	return ok
}

// Remove deletes the entry for ownerID and reports whether a live entry was
// present.
func (c *Credentials) Remove(ownerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ownerID]
	delete(c.entries, ownerID)
	return ok && time.Now().Before(e.deadline)
}

// TTL returns the remaining lifetime of the owner's token. The second return
// is false when no live entry exists.
func (c *Credentials) TTL(ownerID string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[ownerID]
	if !ok {
		return 0, false
	}
	d := time.Until(e.deadline)
	if d <= 0 {
		delete(c.entries, ownerID)
		return 0, false
	}
	return d, true
}

func (c *Credentials) evictExpired() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if now.After(e.deadline) {
			delete(c.entries, k)
		}
	}
}
