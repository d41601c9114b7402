package checkins

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/talentfuze/portal/internal/shared"
)

// Repository defines persistence operations for check-ins.
type Repository interface {
	List(ctx context.Context) ([]CheckIn, error)
	Get(ctx context.Context, id int64) (CheckIn, error)
	Create(ctx context.Context, c CheckIn) (CheckIn, error)
	Update(ctx context.Context, c CheckIn) (CheckIn, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryRepository keeps check-ins in process memory for demo mode and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[int64]CheckIn
}

// NewMemoryRepository constructs a repository seeded with the given rows.
func NewMemoryRepository(rows []CheckIn) *MemoryRepository {
	repo := &MemoryRepository{rows: make(map[int64]CheckIn, len(rows))}
	for _, c := range rows {
		repo.rows[c.ID] = c
	}
	return repo
}

// List returns all check-ins ordered by id.
func (m *MemoryRepository) List(ctx context.Context) ([]CheckIn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]CheckIn, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get fetches a check-in by id.
func (m *MemoryRepository) Get(ctx context.Context, id int64) (CheckIn, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.rows[id]
	if !ok {
		return CheckIn{}, shared.ErrNotFound
	}
	return c, nil
}

// Create inserts a check-in, assigning the next integer id.
func (m *MemoryRepository) Create(ctx context.Context, c CheckIn) (CheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for id := range m.rows {
		if id > max {
			max = id
		}
	}
	c.ID = max + 1
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	m.rows[c.ID] = c
	return c, nil
}

// Update replaces the stored check-in.
func (m *MemoryRepository) Update(ctx context.Context, c CheckIn) (CheckIn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[c.ID]
	if !ok {
		return CheckIn{}, shared.ErrNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now().UTC()
	m.rows[c.ID] = c
	return c, nil
}

// Delete removes a check-in by id.
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
