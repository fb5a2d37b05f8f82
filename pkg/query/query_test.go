package query

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchCachesWhileFresh(t *testing.T) {
	c := NewCache()
	now := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	var calls int32
	fn := func(context.Context) ([]string, error) {
		atomic.AddInt32(&calls, 1)
		return []string{"go"}, nil
	}
	opts := Options{StaleTime: 10 * time.Minute}
	ctx := context.Background()

	res := Fetch(ctx, c, "tags", opts, fn)
	require.True(t, res.IsSuccess())
	assert.Equal(t, []string{"go"}, res.Data)

	now = now.Add(9 * time.Minute)
	Fetch(ctx, c, "tags", opts, fn)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	now = now.Add(2 * time.Minute)
	Fetch(ctx, c, "tags", opts, fn)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestFetchDeduplicatesInFlight(t *testing.T) {
	c := NewCache()
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int32
	fn := func(context.Context) (int, error) {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
		}
		<-release
		return 7, nil
	}

	var wg sync.WaitGroup
	results := make([]Result[int], 5)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = Fetch(context.Background(), c, "k", Options{StaleTime: time.Minute}, fn)
		}(i)
	}

	<-started
	assert.True(t, Peek[int](c, "k").IsLoading())
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	for _, res := range results {
		assert.Equal(t, 7, res.Data)
		assert.True(t, res.IsSuccess())
	}
	assert.True(t, Peek[int](c, "k").IsSuccess())
}

func TestFetchErrorNotCached(t *testing.T) {
	c := NewCache()
	boom := errors.New("boom")
	ctx := context.Background()
	opts := Options{StaleTime: time.Hour}

	res := Fetch(ctx, c, "k", opts, func(context.Context) (string, error) { return "", boom })
	assert.True(t, res.IsError())
	assert.ErrorIs(t, res.Err, boom)
	assert.ErrorIs(t, Peek[string](c, "k").Err, boom)

	res = Fetch(ctx, c, "k", opts, func(context.Context) (string, error) { return "ok", nil })
	assert.True(t, res.IsSuccess())
	assert.Equal(t, "ok", res.Data)

	// a failed refetch keeps the last good value
	res = Fetch(ctx, c, "k", Options{}, func(context.Context) (string, error) { return "", boom })
	assert.True(t, res.IsError())
	assert.Equal(t, "ok", res.Data)
}

func TestPeek(t *testing.T) {
	c := NewCache()
	assert.Equal(t, StatusLoading, Peek[string](c, "missing").Status)

	Fetch(context.Background(), c, "k", Options{}, func(context.Context) (int, error) { return 1, nil })
	res := Peek[string](c, "k")
	assert.True(t, res.IsError())
	assert.ErrorIs(t, res.Err, ErrTypeMismatch)
}

func TestSweepAndInvalidate(t *testing.T) {
	c := NewCache()
	ctx := context.Background()
	Fetch(ctx, c, "fresh", Options{StaleTime: time.Hour}, func(context.Context) (int, error) { return 1, nil })
	Fetch(ctx, c, "stale", Options{}, func(context.Context) (int, error) { return 2, nil })

	assert.Equal(t, 1, c.Sweep())
	assert.Equal(t, 1, c.Len())

	c.Invalidate("fresh")
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, "loading", Peek[int](c, "fresh").Status.String())
}
