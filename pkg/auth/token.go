package auth

import (
	"context"
	"log/slog"
	"sync"
)

// TokenProvider resolves the value sent in the Authorization header.
// An empty string means "no credential" and is still sent.
type TokenProvider interface {
	Token(ctx context.Context) string
}

// TokenStore is a persisted credential source.
type TokenStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *MemoryStore) Clear() {
	s.Set("")
}

func (s *MemoryStore) Token(context.Context) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Persisted adapts a TokenStore to a TokenProvider. Load errors are logged
// and reported as an empty token.
func Persisted(store TokenStore) TokenProvider {
	return persisted{store: store}
}

type persisted struct {
	store TokenStore
}

func (p persisted) Token(ctx context.Context) string {
	token, err := p.store.Load(ctx)
	if err != nil {
		slog.Warn("failed to load persisted token", slog.String("error", err.Error()))
		return ""
	}
	return token
}

type chain []TokenProvider

// Chain returns the first non-empty token of providers, or "".
func Chain(providers ...TokenProvider) TokenProvider {
	return chain(providers)
}

func (c chain) Token(ctx context.Context) string {
	for _, p := range c {
		if p == nil {
			continue
		}
		if token := p.Token(ctx); token != "" {
			return token
		}
	}
	return ""
}

type Static string

func (s Static) Token(context.Context) string {
	return string(s)
}
