package rolemap

import (
	"context"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRole is assigned when an external role has no mapping.
	DefaultRole = "Carer"

	cacheTTL = 5 * time.Minute
)

// fallbackTable is used when the backing fetch fails: availability over
// freshness.
var fallbackTable = map[string]string{
	"Recruiter":          "Manager",
	"Branch Manager":     "Manager",
	"Care Coordinator":   "Coordinator",
	"Support Worker":     "Carer",
	"Care Assistant":     "Carer",
	"Registered Nurse":   "Nurse",
	"Compliance Officer": "Admin",
}

// Cache is a read-mostly shared table of role mappings with a five-minute
// expiry. Callers pass the current time explicitly so refresh behaviour
// is deterministic under test. Concurrent refreshes collapse into one
// fetch; a worst-case race past expiry costs one redundant fetch, never
// correctness.
type Cache struct {
	repo    Repository
	breaker *gobreaker.CircuitBreaker
	sf      *singleflight.Group
	logger  *zap.Logger

	mu        sync.RWMutex
	table     map[string]string
	expiresAt time.Time
}

func NewCache(repo Repository, logger ...*zap.Logger) *Cache {
	l := zap.L().Named("rolemap.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rolemap.cache")
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "rolemap-fetch",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})

	return &Cache{
		repo:    repo,
		breaker: breaker,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

// Resolve maps an external role to the internal one, refreshing the table
// when expired. Unmapped roles fall through to DefaultRole.
func (c *Cache) Resolve(ctx context.Context, externalRole string, now time.Time) string {
	table := c.Mappings(ctx, now)
	if internal, ok := table[externalRole]; ok {
		return internal
	}
	return DefaultRole
}

// Mappings returns the current table, refreshing it if the TTL has
// passed. A failed refresh falls back to the hardcoded table and does not
// populate the cache, so the next call retries the fetch.
func (c *Cache) Mappings(ctx context.Context, now time.Time) map[string]string {
	c.mu.RLock()
	if c.table != nil && now.Before(c.expiresAt) {
		table := c.table
		c.mu.RUnlock()
		return table
	}
	c.mu.RUnlock()

	fetched, err, _ := c.sf.Do("refresh", func() (interface{}, error) {
		return c.breaker.Execute(func() (interface{}, error) {
			mappings, err := c.repo.FindAll(ctx)
			if err != nil {
				return nil, err
			}

			table := make(map[string]string, len(mappings))
			for _, m := range mappings {
				table[m.ExternalRole] = m.InternalRole
			}
			return table, nil
		})
	})
	if err != nil {
		c.logger.Warn("role mapping refresh failed, using fallback table", zap.Error(err))
		return fallbackTable
	}

	table := fetched.(map[string]string)

	c.mu.Lock()
	c.table = table
	c.expiresAt = now.Add(cacheTTL)
	c.mu.Unlock()

	c.logger.Debug("role mapping table refreshed", zap.Int("entries", len(table)))
	return table
}
