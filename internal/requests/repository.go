package requests

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/talentfuze/portal/internal/shared"
)

// Repository defines persistence operations for VA requests.
type Repository interface {
	List(ctx context.Context) ([]VARequest, error)
	Get(ctx context.Context, id int64) (VARequest, error)
	Create(ctx context.Context, req VARequest) (VARequest, error)
	Update(ctx context.Context, req VARequest) (VARequest, error)
	Delete(ctx context.Context, id int64) error
}

// MemoryRepository keeps requests in process memory for demo mode and tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	rows map[int64]VARequest
}

// NewMemoryRepository constructs a repository seeded with the given rows.
func NewMemoryRepository(rows []VARequest) *MemoryRepository {
	repo := &MemoryRepository{rows: make(map[int64]VARequest, len(rows))}
	for _, req := range rows {
		repo.rows[req.ID] = req
	}
	return repo
}

// List returns all requests ordered by id.
func (m *MemoryRepository) List(ctx context.Context) ([]VARequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]VARequest, 0, len(m.rows))
	for _, req := range m.rows {
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get fetches a request by id.
func (m *MemoryRepository) Get(ctx context.Context, id int64) (VARequest, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	req, ok := m.rows[id]
	if !ok {
		return VARequest{}, shared.ErrNotFound
	}
	return req, nil
}

// Create inserts a request, assigning the next integer id.
func (m *MemoryRepository) Create(ctx context.Context, req VARequest) (VARequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for id := range m.rows {
		if id > max {
			max = id
		}
	}
	req.ID = max + 1
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now
	m.rows[req.ID] = req
	return req, nil
}

// Update replaces the stored request.
func (m *MemoryRepository) Update(ctx context.Context, req VARequest) (VARequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.rows[req.ID]
	if !ok {
		return VARequest{}, shared.ErrNotFound
	}
	req.CreatedAt = existing.CreatedAt
	req.UpdatedAt = time.Now().UTC()
	m.rows[req.ID] = req
	return req, nil
}

// Delete removes a request by id.
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
