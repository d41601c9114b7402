package agencies

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/talentfuze/portal/internal/shared"
)

// Repository defines persistence operations for agencies.
type Repository interface {
	List(ctx context.Context) ([]Agency, error)
	Get(ctx context.Context, id int64) (Agency, error)
	Create(ctx context.Context, agency Agency) (Agency, error)
	Update(ctx context.Context, agency Agency) (Agency, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryRepository keeps agencies in process memory for demo mode and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[int64]Agency
}

// NewMemoryRepository constructs a repository seeded with the given rows.
func NewMemoryRepository(rows []Agency) *MemoryRepository {
	repo := &MemoryRepository{rows: make(map[int64]Agency, len(rows))}
	for _, a := range rows {
		repo.rows[a.ID] = a
	}
	return repo
}

// List returns all agencies ordered by id.
func (m *MemoryRepository) List(ctx context.Context) ([]Agency, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Agency, 0, len(m.rows))
	for _, a := range m.rows {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get fetches an agency by id.
func (m *MemoryRepository) Get(ctx context.Context, id int64) (Agency, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.rows[id]
	if !ok {
		return Agency{}, shared.ErrNotFound
	}
	return a, nil
}

// Create inserts an agency, assigning the next integer id.
func (m *MemoryRepository) Create(ctx context.Context, agency Agency) (Agency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for id := range m.rows {
		if id > max {
			max = id
		}
	}
	agency.ID = max + 1
	now := time.Now().UTC()
	agency.CreatedAt = now
	agency.UpdatedAt = now
	m.rows[agency.ID] = agency
	return agency, nil
}

// Update replaces the stored agency.
func (m *MemoryRepository) Update(ctx context.Context, agency Agency) (Agency, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[agency.ID]
	if !ok {
		return Agency{}, shared.ErrNotFound
	}
	agency.CreatedAt = existing.CreatedAt
	agency.UpdatedAt = time.Now().UTC()
	m.rows[agency.ID] = agency
	return agency, nil
}

// Delete removes an agency by id.
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
