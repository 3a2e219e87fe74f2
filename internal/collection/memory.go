package collection

import (
	"context"
	"fmt"
	"sync"
)

type partition[T Record] struct {
	items []T
	index map[string]int
}

// Memory is an in-process Store. Records are copied in and out so callers
// never share state with the store.
type Memory[T Record] struct {
	mu    sync.RWMutex
	parts map[string]*partition[T]
}

func NewMemory[T Record]() *Memory[T] {
	return &Memory[T]{parts: make(map[string]*partition[T])}
}

func (m *Memory[T]) part(owner string, create bool) *partition[T] {
	p, ok := m.parts[owner]
	if !ok && create {
		p = &partition[T]{index: make(map[string]int)}
		m.parts[owner] = p
	}
	return p
}

func (m *Memory[T]) Insert(ctx context.Context, owner string, rec T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.part(owner, true)
	id := rec.RecordID()
	if _, dup := p.index[id]; dup {
		return fmt.Errorf("duplicate record id %q", id)
	}
	p.index[id] = len(p.items)
	p.items = append(p.items, rec)
	return nil
}

func (m *Memory[T]) List(ctx context.Context, owner string) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p := m.part(owner, false)
	if p == nil {
		return []T{}, nil
	}
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out, nil
}

func (m *Memory[T]) Get(ctx context.Context, owner, id string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var zero T
	p := m.part(owner, false)
	if p == nil {
		return zero, ErrNotFound
	}
	i, ok := p.index[id]
	if !ok {
		return zero, ErrNotFound
	}
	return p.items[i], nil
}

func (m *Memory[T]) Replace(ctx context.Context, owner string, rec T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.part(owner, false)
	if p == nil {
		return ErrNotFound
	}
	i, ok := p.index[rec.RecordID()]
	if !ok {
		return ErrNotFound
	}
	p.items[i] = rec
	return nil
}

func (m *Memory[T]) Delete(ctx context.Context, owner, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.part(owner, false)
	if p == nil {
		return ErrNotFound
	}
	i, ok := p.index[id]
	if !ok {
		return ErrNotFound
	}
	p.items = append(p.items[:i], p.items[i+1:]...)
	delete(p.index, id)
	for j := i; j < len(p.items); j++ {
		p.index[p.items[j].RecordID()] = j
	}
	return nil
}
