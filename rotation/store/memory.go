// Package store provides SnapshotStore implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/MizanFlowDEV/mizanflow/rotation"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	schedules map[string]*rotation.Schedule
}

func NewMemory() *Memory {
	return &Memory{schedules: make(map[string]*rotation.Schedule)}
}

func (m *Memory) Save(_ context.Context, s *rotation.Schedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schedules[s.ID] = s.Clone()
	return nil
}

func (m *Memory) Load(_ context.Context, id string) (*rotation.Schedule, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schedules[id]
	if !ok {
		return nil, rotation.ErrScheduleNotFound
	}
	return s.Clone(), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.schedules, id)
	return nil
}

func (m *Memory) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.schedules))
	for id := range m.schedules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
