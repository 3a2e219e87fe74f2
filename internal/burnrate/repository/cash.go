// Package repository stores the per-owner cash balance used for runway.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// CashStore keeps one cash-on-hand figure per owner. ok is false when the
// owner never set a balance.
type CashStore interface {
	Get(ctx context.Context, owner string) (cash float64, ok bool, err error)
	Set(ctx context.Context, owner string, cash float64) error
}

type MemoryCash struct {
	mu   sync.RWMutex
	cash map[string]float64
}

func NewMemoryCash() *MemoryCash {
	return &MemoryCash{cash: make(map[string]float64)}
}

func (m *MemoryCash) Get(ctx context.Context, owner string) (float64, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.cash[owner]
	return v, ok, nil
}

func (m *MemoryCash) Set(ctx context.Context, owner string, cash float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cash[owner] = cash
	return nil
}

// RedisCash stores balances under "cash:<owner>" without expiry.
type RedisCash struct {
	client *redis.Client
	prefix string
}

func NewRedisCash(client *redis.Client) *RedisCash {
	return &RedisCash{client: client, prefix: "cash:"}
}

func (r *RedisCash) Get(ctx context.Context, owner string) (float64, bool, error) {
	v, err := r.client.Get(ctx, r.prefix+owner).Float64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get cash: %w", err)
	}
	return v, true, nil
}

func (r *RedisCash) Set(ctx context.Context, owner string, cash float64) error {
	if err := r.client.Set(ctx, r.prefix+owner, cash, 0).Err(); err != nil {
		return fmt.Errorf("redis set cash: %w", err)
	}
	return nil
}
