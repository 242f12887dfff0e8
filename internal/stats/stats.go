package stats

import (
	"context"
	"sync"
)

// Stats is the aggregate visit/profile-view snapshot served to the admin UI.
type Stats struct {
	Visits       int64            `json:"visits"`
	ProfileViews int64            `json:"profileViews"`
	Platforms    map[string]int64 `json:"platforms"`
}

// Recorder is the injectable analytics sink. Implementations must be safe for
// concurrent use.
type Recorder interface {
	RecordVisit(ctx context.Context) error
	RecordProfileView(ctx context.Context, platform string) error
	Snapshot(ctx context.Context) (*Stats, error)
}

// MemoryRecorder counts in process memory; used by tests and Redis-less runs.
type MemoryRecorder struct {
	mu        sync.Mutex
	visits    int64
	views     int64
	platforms map[string]int64
}

func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{platforms: make(map[string]int64)}
}

func (m *MemoryRecorder) RecordVisit(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.visits++
	return nil
}

func (m *MemoryRecorder) RecordProfileView(ctx context.Context, platform string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views++
	if platform != "" {
		m.platforms[platform]++
	}
	return nil
}

func (m *MemoryRecorder) Snapshot(ctx context.Context) (*Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	platforms := make(map[string]int64, len(m.platforms))
	for k, v := range m.platforms {
		platforms[k] = v
	}
	return &Stats{Visits: m.visits, ProfileViews: m.views, Platforms: platforms}, nil
}
