package core

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type LimitConfig struct {
	Limit int
	Every time.Duration
}

type LimitOption func(l *LimitConfig)

func WithLimit(limit int) LimitOption {
	return func(l *LimitConfig) {
		l.Limit = limit
	}
}

func WithRange(r time.Duration) LimitOption {
	return func(l *LimitConfig) {
		l.Every = r
	}
}

type Limiter interface {
	Allow() bool
}

type limiterRegistry struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func newLimiterRegistry() *limiterRegistry {
	return &limiterRegistry{limiters: make(map[string]*rate.Limiter)}
}

// UseLimiter returns the limiter for key, creating it on first use. Limit is
// the number of events allowed per Every (default one minute), with a burst
// of twice that.
func (s *Core) UseLimiter(key string, opts ...LimitOption) Limiter {
	cfg := &LimitConfig{
		Limit: s.cfg.Mock.RateLimit,
		Every: time.Minute,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 60
	}

	s.limiter.mu.Lock()
	defer s.limiter.mu.Unlock()

	l, exist := s.limiter.limiters[key]
	if !exist {
		l = rate.NewLimiter(rate.Every(cfg.Every/time.Duration(cfg.Limit)), cfg.Limit*2)
		s.limiter.limiters[key] = l
	}
	return l
}
