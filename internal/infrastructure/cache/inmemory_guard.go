package cache

import (
	"context"
	"sync"
	"time"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
)

// InMemoryGuard implements shared.Guard inside one process. Claims are not
// visible to other instances.
type InMemoryGuard struct {
	mu        sync.Mutex
	claims    map[string]time.Time
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryGuard creates a guard and starts a loop that drops expired
// claims every sweep interval.
func NewInMemoryGuard(sweep time.Duration) *InMemoryGuard {
	if sweep <= 0 {
		sweep = 5 * time.Minute
	}
	g := &InMemoryGuard{
		claims:   make(map[string]time.Time),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	g.wg.Add(1)
	go g.sweepLoop(sweep)

	return g
}

// Acquire claims key unless an unexpired claim exists.
func (g *InMemoryGuard) Acquire(_ context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if expiresAt, ok := g.claims[key]; ok && now.Before(expiresAt) {
		return false, nil
	}
	g.claims[key] = now.Add(ttl)
	return true, nil
}

// Held reports whether key has an unexpired claim.
func (g *InMemoryGuard) Held(_ context.Context, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	expiresAt, ok := g.claims[key]
	return ok && g.now().Before(expiresAt), nil
}

// Release drops the claim on key.
func (g *InMemoryGuard) Release(_ context.Context, key string) error {
	g.mu.Lock()
	delete(g.claims, key)
	g.mu.Unlock()
	return nil
}

// Close stops the sweep loop. Safe to call multiple times.
func (g *InMemoryGuard) Close() error {
	g.closeOnce.Do(func() {
		close(g.stopChan)
		g.wg.Wait()
	})
	return nil
}

func (g *InMemoryGuard) sweepLoop(interval time.Duration) {
	defer g.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-g.stopChan:
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

func (g *InMemoryGuard) sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for key, expiresAt := range g.claims {
		if !now.Before(expiresAt) {
			delete(g.claims, key)
		}
	}
}

// Size returns the number of tracked claims, expired or not.
func (g *InMemoryGuard) Size() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.claims)
}

var _ shared.Guard = (*InMemoryGuard)(nil)
