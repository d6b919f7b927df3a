package session

import (
	"context"
	"fmt"
	"time"

	"github.com/shantum/COH-ERP2-sub002/pkg/config"
	"github.com/shantum/COH-ERP2-sub002/pkg/redis"
)

// Checker is the surface auth middleware needs: does this token id still
// name a live session.
type Checker interface {
	HasSession(ctx context.Context, jti string) (bool, error)
}

// Manager persists one redis entry per issued access token so logout can
// revoke tokens before they expire.
type Manager struct {
	store *redis.Client
	ttl   time.Duration
}

func NewManager(store *redis.Client, cfg config.JWTConfig) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("redis client required")
	}
	ttl := cfg.TokenTTL()
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt expiration must be positive")
	}
	return &Manager{store: store, ttl: ttl}, nil
}

// Create records a session for the token id.
func (m *Manager) Create(ctx context.Context, jti, userID string) error {
	if jti == "" {
		return fmt.Errorf("session id required")
	}
	return m.store.Set(ctx, m.store.SessionKey(jti), userID, m.ttl)
}

// HasSession reports whether the token id is still live.
func (m *Manager) HasSession(ctx context.Context, jti string) (bool, error) {
	if jti == "" {
		return false, nil
	}
	val, err := m.store.Get(ctx, m.store.SessionKey(jti))
	if err != nil {
		return false, err
	}
	return val != "", nil
}

// Revoke drops the session, invalidating the token immediately.
func (m *Manager) Revoke(ctx context.Context, jti string) error {
	if jti == "" {
		return nil
	}
	return m.store.Del(ctx, m.store.SessionKey(jti))
}
