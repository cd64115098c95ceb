//go:build !wasm

package authform

import (
	"sync"
	"time"
)

type lookupResult int

const (
	cacheMiss lookupResult = iota
	cacheHit
	cacheExpired
)

// sessionCache mirrors the live rows of user_sessions. An entry never
// outlives its ExpiresAt: lookups evict it, and sweep drops the rest.
type sessionCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]Session
}

func newSessionCache(ttlSeconds int) *sessionCache {
	return &sessionCache{
		ttl:   time.Duration(ttlSeconds) * time.Second,
		items: make(map[string]Session),
	}
}

// sweepInterval is a quarter of the session TTL, at least one minute.
func (c *sessionCache) sweepInterval() time.Duration {
	if every := c.ttl / 4; every > time.Minute {
		return every
	}
	return time.Minute
}

func (c *sessionCache) load(exec Executor, now int64) error {
	rows, err := exec.Query("SELECT id, user_id, expires_at, ip, user_agent, created_at FROM user_sessions WHERE expires_at > ?", now)
	if err != nil {
		return err
	}
	defer rows.Close()

	c.mu.Lock()
	defer c.mu.Unlock()

	for rows.Next() {
		var s Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.ExpiresAt, &s.IP, &s.UserAgent, &s.CreatedAt); err != nil {
			return err
		}
		c.items[s.ID] = s
	}
	return rows.Err()
}

// put ignores sessions that are already expired at now.
func (c *sessionCache) put(s Session, now int64) {
	if s.ExpiresAt < now {
		return
	}
	c.mu.Lock()
	c.items[s.ID] = s
	c.mu.Unlock()
}

func (c *sessionCache) lookup(id string, now int64) (Session, lookupResult) {
	c.mu.RLock()
	s, ok := c.items[id]
	c.mu.RUnlock()
	switch {
	case !ok:
		return Session{}, cacheMiss
	case s.ExpiresAt < now:
		c.drop(id)
		return Session{}, cacheExpired
	}
	return s, cacheHit
}

func (c *sessionCache) drop(id string) {
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
}

// sweep drops every entry that expired before now and reports how many.
func (c *sessionCache) sweep(now int64) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, s := range c.items {
		if s.ExpiresAt < now {
			delete(c.items, id)
			n++
		}
	}
	return n
}

func (c *sessionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
