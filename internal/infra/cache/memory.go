package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// BackendMemory names the in-process cache.
const BackendMemory = "memory"

// Memory is an in-process LRU whose entries expire after a fixed TTL.
type Memory struct {
	lru *expirable.LRU[string, Entry]
}

// NewMemory creates a Memory holding at most size entries. A size of zero or
// less means no size limit.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size < 0 {
		size = 0
	}
	return &Memory{lru: expirable.NewLRU[string, Entry](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) (Entry, bool, error) {
	e, ok := m.lru.Get(key)
	return e, ok, nil
}

func (m *Memory) Set(_ context.Context, key string, e Entry) error {
	m.lru.Add(key, e)
	return nil
}

func (m *Memory) Backend() string { return BackendMemory }

// Len returns the number of live entries.
func (m *Memory) Len() int { return m.lru.Len() }
