// internal/app/store/groups/registry.go
package groupstore

import (
	"context"
	"sync"
	"time"

	"github.com/dalemusser/classhub/internal/app/store/kv"
	"go.uber.org/zap"
)

type registryEntry struct {
	store    *Store
	lastUsed time.Time
}

// Registry hands out one Store per user id, loading each lazily on first use.
type Registry struct {
	kv            kv.Store
	log           *zap.Logger
	migrateLegacy bool
	now           func() time.Time

	mu     sync.Mutex
	stores map[string]*registryEntry
}

// NewRegistry returns a Registry over backend. When migrateLegacy is set, each
// user's first load runs MigrateLegacy beforehand.
func NewRegistry(backend kv.Store, migrateLegacy bool, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		kv:            backend,
		log:           logger,
		migrateLegacy: migrateLegacy,
		now:           time.Now,
		stores:        make(map[string]*registryEntry),
	}
}

// For returns the Store for userID, loading it if this process has not yet.
func (r *Registry) For(ctx context.Context, userID string) *Store {
	r.mu.Lock()
	if e, ok := r.stores[userID]; ok {
		e.lastUsed = r.now()
		r.mu.Unlock()
		return e.store
	}
	r.mu.Unlock()

	// Loaded outside the lock; a racing loader is reconciled below.
	if r.migrateLegacy {
		if _, err := MigrateLegacy(ctx, r.kv, userID, r.log); err != nil {
			r.log.Warn("legacy group migration failed",
				zap.String("user_id", userID), zap.Error(err))
		}
	}
	s := Load(ctx, r.kv, userID, r.log)

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.stores[userID]; ok {
		// another request loaded it first
		e.lastUsed = r.now()
		return e.store
	}
	r.stores[userID] = &registryEntry{store: s, lastUsed: r.now()}
	return s
}

// EvictIdle drops Stores not used within ttl and returns how many it dropped.
// Dropped Stores reload from the backend on next use.
func (r *Registry) EvictIdle(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.stores {
		if e.lastUsed.Before(cutoff) {
			delete(r.stores, id)
			n++
		}
	}
	return n
}

// Len returns the number of loaded Stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}
