package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryGuard_Acquire(t *testing.T) {
	guard := NewInMemoryGuard(time.Hour)
	defer guard.Close()

	ctx := context.Background()

	t.Run("first claim succeeds", func(t *testing.T) {
		ok, err := guard.Acquire(ctx, "setup-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("second claim is refused while held", func(t *testing.T) {
		ok, err := guard.Acquire(ctx, "setup-2", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		ok, err = guard.Acquire(ctx, "setup-2", time.Hour)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("expired claim can be taken again", func(t *testing.T) {
		ok, err := guard.Acquire(ctx, "setup-3", 10*time.Millisecond)
		require.NoError(t, err)
		require.True(t, ok)

		time.Sleep(20 * time.Millisecond)

		ok, err = guard.Acquire(ctx, "setup-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("release frees the key", func(t *testing.T) {
		ok, err := guard.Acquire(ctx, "setup-4", time.Hour)
		require.NoError(t, err)
		require.True(t, ok)

		require.NoError(t, guard.Release(ctx, "setup-4"))

		ok, err = guard.Acquire(ctx, "setup-4", time.Hour)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestInMemoryGuard_Held(t *testing.T) {
	guard := NewInMemoryGuard(time.Hour)
	defer guard.Close()

	now := time.Now()
	guard.now = func() time.Time { return now }
	ctx := context.Background()

	held, err := guard.Held(ctx, "setup:done")
	require.NoError(t, err)
	assert.False(t, held)

	_, err = guard.Acquire(ctx, "setup:done", time.Minute)
	require.NoError(t, err)
	held, err = guard.Held(ctx, "setup:done")
	require.NoError(t, err)
	assert.True(t, held)

	guard.now = func() time.Time { return now.Add(2 * time.Minute) }
	held, err = guard.Held(ctx, "setup:done")
	require.NoError(t, err)
	assert.False(t, held, "expired claims are not held")
}

func TestInMemoryGuard_ConcurrentAcquire(t *testing.T) {
	guard := NewInMemoryGuard(time.Hour)
	defer guard.Close()

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := guard.Acquire(context.Background(), "setup", time.Hour)
			if err == nil && ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryGuard_Sweep(t *testing.T) {
	guard := NewInMemoryGuard(time.Hour)
	defer guard.Close()

	now := time.Now()
	guard.now = func() time.Time { return now }

	ctx := context.Background()
	_, _ = guard.Acquire(ctx, "short", time.Minute)
	_, _ = guard.Acquire(ctx, "long", time.Hour)
	require.Equal(t, 2, guard.Size())

	guard.now = func() time.Time { return now.Add(2 * time.Minute) }
	guard.sweep()

	assert.Equal(t, 1, guard.Size())
}

func TestInMemoryGuard_CloseIsIdempotent(t *testing.T) {
	guard := NewInMemoryGuard(0)
	assert.NoError(t, guard.Close())
	assert.NoError(t, guard.Close())
}
