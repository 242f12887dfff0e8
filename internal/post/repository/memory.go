package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/folio/folio/server/internal/post"
)

// MemoryRepo is a simple in-memory repository used by unit tests and when no
// MongoDB URI is configured.
type MemoryRepo struct {
	mu    sync.RWMutex
	store map[string]*post.Post
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{store: make(map[string]*post.Post)}
}

func (m *MemoryRepo) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	m.store[p.ID] = &cp
	return p, nil
}

func (m *MemoryRepo) Get(ctx context.Context, id string) (*post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.store[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, ErrNotFound
}

func (m *MemoryRepo) List(ctx context.Context) ([]*post.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*post.Post, 0, len(m.store))
	for _, p := range m.store {
		cp := *p
		out = append(out, &cp)
	}
	// newest first; break creation-time ties by id so ordering stays stable
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepo) Update(ctx context.Context, id string, f post.Fields) (*post.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	p.Title = f.Title
	p.Content = f.Content
	p.Image = f.Image
	p.Category = f.Category
	p.Tags = f.Tags
	p.UpdatedAt = time.Now().UTC()
	cp := *p
	return &cp, nil
}

func (m *MemoryRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return ErrNotFound
	}
	delete(m.store, id)
	return nil
}
