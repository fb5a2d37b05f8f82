package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"golang.org/x/sync/singleflight"
)

type Status int

const (
	StatusLoading Status = iota
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return "loading"
	}
}

// Result is one observation of a query. Data holds the last good value,
// also while loading again or after a failed refetch.
type Result[T any] struct {
	Status    Status
	Data      T
	Err       error
	UpdatedAt time.Time
}

func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }
func (r Result[T]) IsSuccess() bool { return r.Status == StatusSuccess }
func (r Result[T]) IsError() bool   { return r.Status == StatusError }

type Options struct {
	// StaleTime is how long a settled value is served without refetching.
	// Zero always refetches.
	StaleTime time.Duration
}

var ErrTypeMismatch = errors.New("cached value has a different type")

type entry struct {
	data      any
	hasData   bool
	err       error
	updatedAt time.Time
	staleTime time.Duration
}

// Cache keeps settled query values by key and shares in-flight fetches.
type Cache struct {
	entries  cmap.ConcurrentMap[string, entry]
	inflight cmap.ConcurrentMap[string, struct{}]
	group    singleflight.Group
	now      func() time.Time
}

func NewCache() *Cache {
	return &Cache{
		entries:  cmap.New[entry](),
		inflight: cmap.New[struct{}](),
		now:      time.Now,
	}
}

func (c *Cache) fresh(e entry) bool {
	return e.hasData && e.err == nil && c.now().Sub(e.updatedAt) < e.staleTime
}

// Fetch serves key from the cache while fresh. Otherwise fn runs once for
// all concurrent callers of the same key. Failures are reported in the
// result and are not treated as fresh.
func Fetch[T any](ctx context.Context, c *Cache, key string, opts Options, fn func(ctx context.Context) (T, error)) Result[T] {
	if e, ok := c.entries.Get(key); ok && c.fresh(e) {
		return toResult[T](e)
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		c.inflight.Set(key, struct{}{})
		defer c.inflight.Remove(key)

		data, err := fn(ctx)
		c.entries.Upsert(key, entry{}, func(exist bool, old, _ entry) entry {
			if err != nil {
				old.err = err
				old.staleTime = opts.StaleTime
				return old
			}
			return entry{
				data:      data,
				hasData:   true,
				updatedAt: c.now(),
				staleTime: opts.StaleTime,
			}
		})
		if err != nil {
			return nil, err
		}
		return data, nil
	})

	if err != nil {
		res := Result[T]{Status: StatusError, Err: err}
		if e, ok := c.entries.Get(key); ok && e.hasData {
			if data, ok := e.data.(T); ok {
				res.Data = data
				res.UpdatedAt = e.updatedAt
			}
		}
		return res
	}
	data, ok := v.(T)
	if !ok {
		return Result[T]{Status: StatusError, Err: fmt.Errorf("query %s: %w", key, ErrTypeMismatch)}
	}
	e, _ := c.entries.Get(key)
	return Result[T]{Status: StatusSuccess, Data: data, UpdatedAt: e.updatedAt}
}

// Peek reports the current state of key without fetching.
func Peek[T any](c *Cache, key string) Result[T] {
	e, ok := c.entries.Get(key)
	if c.inflight.Has(key) || !ok {
		res := Result[T]{Status: StatusLoading}
		if ok && e.hasData {
			res.Data, _ = e.data.(T)
			res.UpdatedAt = e.updatedAt
		}
		return res
	}
	return toResult[T](e)
}

func toResult[T any](e entry) Result[T] {
	res := Result[T]{UpdatedAt: e.updatedAt}
	if e.hasData {
		data, ok := e.data.(T)
		if !ok {
			return Result[T]{Status: StatusError, Err: ErrTypeMismatch}
		}
		res.Data = data
	}
	if e.err != nil {
		res.Status = StatusError
		res.Err = e.err
		return res
	}
	if !e.hasData {
		res.Status = StatusLoading
		return res
	}
	res.Status = StatusSuccess
	return res
}

func (c *Cache) Invalidate(key string) {
	c.entries.Remove(key)
}

// Sweep drops every entry that is no longer fresh and returns how many were
// removed.
func (c *Cache) Sweep() int {
	var stale []string
	c.entries.IterCb(func(key string, e entry) {
		if !c.fresh(e) {
			stale = append(stale, key)
		}
	})
	for _, key := range stale {
		c.entries.Remove(key)
	}
	return len(stale)
}

func (c *Cache) Len() int {
	return c.entries.Count()
}
