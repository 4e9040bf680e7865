// internal/limiter/limiter_test.go
package limiter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func TestMemoryStoreAllowsWithinBurst(t *testing.T) {
	store := NewMemoryStore(rate.Every(0), 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, err := store.Allow(ctx, "client-a")
		assert.NoError(t, err)
		assert.True(t, allowed)
	}
}

func TestMemoryStoreDeniesPastBurst(t *testing.T) {
	// A zero refill rate means the bucket never recovers, so the
	// fourth call must be denied.
	store := NewMemoryStore(0, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		allowed, _ := store.Allow(ctx, "client-a")
		assert.True(t, allowed)
	}

	allowed, err := store.Allow(ctx, "client-a")
	assert.NoError(t, err)
	assert.False(t, allowed)
}

func TestMemoryStoreKeysAreIndependent(t *testing.T) {
	store := NewMemoryStore(0, 1)
	ctx := context.Background()

	allowed, _ := store.Allow(ctx, "client-a")
	assert.True(t, allowed)

	allowed, _ = store.Allow(ctx, "client-a")
	assert.False(t, allowed)

	// A different client gets its own bucket.
	allowed, _ = store.Allow(ctx, "client-b")
	assert.True(t, allowed)
}
