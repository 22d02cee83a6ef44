package smr

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// snapshotLoadTimeout bounds a shared load, which outlives the request that started it.
const snapshotLoadTimeout = 2 * time.Minute

// cachedSnapshot is a loaded snapshot with its build time.
type cachedSnapshot struct {
	snapshot *Snapshot
	built    time.Time
}

// SnapshotCache keeps recently loaded snapshots keyed by source label, so
// repeated reconciliations against the same MR baseline skip the download.
type SnapshotCache struct {
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.RWMutex
	entries map[string]cachedSnapshot
	sf      singleflight.Group
}

// NewSnapshotCache creates a cache. A zero TTL disables caching.
func NewSnapshotCache(ttl time.Duration, logger *zap.Logger) *SnapshotCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCache{
		ttl:     ttl,
		logger:  logger,
		entries: make(map[string]cachedSnapshot),
	}
}

// isExpired returns true if the entry is older than the TTL.
func (c *SnapshotCache) isExpired(e cachedSnapshot) bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(e.built) > c.ttl
}

// Get returns the snapshot for src, loading it on a miss or after expiry.
// Concurrent misses for the same source share one load.
func (c *SnapshotCache) Get(ctx context.Context, src Source) (*Snapshot, error) {
	key := src.Label()

	// Fast path: fresh entry
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()

	if exists && !c.isExpired(entry) {
		return entry.snapshot, nil
	}

	// Slow path: load using singleflight to prevent stampedes. The load runs
	// detached from ctx so one cancelled caller does not fail the others.
	ch := c.sf.DoChan(key, func() (interface{}, error) {
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()

		if exists && !c.isExpired(entry) {
			return entry.snapshot, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), snapshotLoadTimeout)
		defer cancel()

		snap, err := LoadSnapshot(loadCtx, src, c.logger)
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.entries[key] = cachedSnapshot{snapshot: snap, built: time.Now()}
			c.mu.Unlock()
		}

		return snap, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Snapshot), nil
	}
}

// Invalidate drops the entry for a source label.
func (c *SnapshotCache) Invalidate(label string) {
	c.mu.Lock()
	delete(c.entries, label)
	c.mu.Unlock()
}
