// internal/limiter/limiter.go
package limiter

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Store decides whether the client identified by key may proceed. A
// shared implementation (Redis) makes the decision consistent across
// instances; the in-memory one is for single-node and dev use.
type Store interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// MemoryStore is a per-process token-bucket limiter keyed by client id.
type MemoryStore struct {
	visitors map[string]*visitor
	mtx      sync.Mutex
	rate     rate.Limit
	burst    int
}

func NewMemoryStore(r rate.Limit, b int) *MemoryStore {
	ms := &MemoryStore{
		visitors: make(map[string]*visitor),
		rate:     r,
		burst:    b,
	}

	// Clean up old visitors every minute
	go ms.cleanupVisitors()

	return ms
}

func (ms *MemoryStore) cleanupVisitors() {
	for {
		time.Sleep(time.Minute)
		ms.mtx.Lock()
		for key, v := range ms.visitors {
			if time.Since(v.lastSeen) > 3*time.Minute {
				delete(ms.visitors, key)
			}
		}
		ms.mtx.Unlock()
	}
}

func (ms *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	ms.mtx.Lock()
	defer ms.mtx.Unlock()

	v, exists := ms.visitors[key]
	if !exists {
		v = &visitor{limiter: rate.NewLimiter(ms.rate, ms.burst)}
		ms.visitors[key] = v
	}
	v.lastSeen = time.Now()

	return v.limiter.Allow(), nil
}
