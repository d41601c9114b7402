package vas

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/talentfuze/portal/internal/shared"
)

// Repository defines persistence operations for virtual assistants.
type Repository interface {
	List(ctx context.Context) ([]VirtualAssistant, error)
	Get(ctx context.Context, id int64) (VirtualAssistant, error)
	Create(ctx context.Context, va VirtualAssistant) (VirtualAssistant, error)
	Update(ctx context.Context, va VirtualAssistant) (VirtualAssistant, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryRepository keeps VAs in process memory for demo mode and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[int64]VirtualAssistant
}

// NewMemoryRepository constructs a repository seeded with the given rows.
func NewMemoryRepository(rows []VirtualAssistant) *MemoryRepository {
	repo := &MemoryRepository{rows: make(map[int64]VirtualAssistant, len(rows))}
	for _, v := range rows {
		repo.rows[v.ID] = v
	}
	return repo
}

// List returns all VAs ordered by id.
func (m *MemoryRepository) List(ctx context.Context) ([]VirtualAssistant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]VirtualAssistant, 0, len(m.rows))
	for _, v := range m.rows {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get fetches a VA by id.
func (m *MemoryRepository) Get(ctx context.Context, id int64) (VirtualAssistant, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.rows[id]
	if !ok {
		return VirtualAssistant{}, shared.ErrNotFound
	}
	return v, nil
}

// Create inserts a VA, assigning the next integer id.
func (m *MemoryRepository) Create(ctx context.Context, va VirtualAssistant) (VirtualAssistant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for id := range m.rows {
		if id > max {
			max = id
		}
	}
	va.ID = max + 1
	now := time.Now().UTC()
	va.CreatedAt = now
	va.UpdatedAt = now
	m.rows[va.ID] = va
	return va, nil
}

// Update replaces the stored VA.
func (m *MemoryRepository) Update(ctx context.Context, va VirtualAssistant) (VirtualAssistant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[va.ID]
	if !ok {
		return VirtualAssistant{}, shared.ErrNotFound
	}
	va.CreatedAt = existing.CreatedAt
	va.UpdatedAt = time.Now().UTC()
	m.rows[va.ID] = va
	return va, nil
}

// Delete removes a VA by id.
func (m *MemoryRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
