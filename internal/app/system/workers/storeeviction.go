// internal/app/system/workers/storeeviction.go
package workers

import (
	"sync"
	"time"

	groupstore "github.com/dalemusser/classhub/internal/app/store/groups"
	"go.uber.org/zap"
)

// Pruner drops expired bookkeeping and reports how much it dropped.
type Pruner interface {
	Prune() int
}

// StoreEviction is a background worker that drops idle group stores from the
// registry and prunes expired rate-limit windows.
type StoreEviction struct {
	registry *groupstore.Registry
	pruners  []Pruner
	log      *zap.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewStoreEviction creates a new eviction worker.
//
// Parameters:
//   - registry: the per-user store registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idleTTL: how long a store may go unused before it is dropped (e.g., 30 minutes)
//   - pruners: extra state to prune on each sweep
func NewStoreEviction(registry *groupstore.Registry, logger *zap.Logger, interval, idleTTL time.Duration, pruners ...Pruner) *StoreEviction {
	return &StoreEviction{
		registry: registry,
		pruners:  pruners,
		log:      logger,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background sweep loop.
func (w *StoreEviction) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("store eviction worker started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle_ttl", w.idleTTL))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *StoreEviction) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("store eviction worker stopped")
}

func (w *StoreEviction) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one eviction pass. It returns the number of stores dropped.
func (w *StoreEviction) Sweep() int {
	evicted := w.registry.EvictIdle(w.idleTTL)
	if evicted > 0 {
		w.log.Info("evicted idle group stores",
			zap.Int("count", evicted),
			zap.Int("remaining", w.registry.Len()))
	}

	pruned := 0
	for _, p := range w.pruners {
		pruned += p.Prune()
	}
	if pruned > 0 {
		w.log.Debug("pruned expired rate-limit windows", zap.Int("count", pruned))
	}
	return evicted
}
