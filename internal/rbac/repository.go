package rbac

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/shared"
)

// Repository defines persistence operations for roles and users.
type Repository interface {
	ListRoles(ctx context.Context) ([]Role, error)
	GetRole(ctx context.Context, id int64) (Role, error)
	GetRoleByName(ctx context.Context, name string) (Role, error)
	CreateRole(ctx context.Context, role Role) (Role, error)
	UpdateRole(ctx context.Context, role Role) (Role, error)
	DeleteRole(ctx context.Context, id int64) error
	TogglePermission(ctx context.Context, roleID int64, key authz.Permission) (Role, error)

	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	FindUserByEmail(ctx context.Context, email string) (User, error)
	ListUsersByRole(ctx context.Context, roleID int64) ([]User, error)
	CountUsersByRole(ctx context.Context, roleID int64) (int, error)
	UpdateUserRole(ctx context.Context, userID, roleID int64) (User, error)
}

// MemoryRepository keeps roles and users in process memory. It carries the
// reference semantics (ids assigned as max+1, toggle under one lock) and
// backs the demo mode and the test suite.
type MemoryRepository struct {
	mu    sync.RWMutex
	roles map[int64]Role
	users map[int64]User
}

// NewMemoryRepository constructs a repository seeded with the given state.
func NewMemoryRepository(roles []Role, users []User) *MemoryRepository {
	repo := &MemoryRepository{
		roles: make(map[int64]Role, len(roles)),
		users: make(map[int64]User, len(users)),
	}
	for _, r := range roles {
		repo.roles[r.ID] = cloneRole(r)
	}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

// ListRoles returns all roles ordered by id.
func (m *MemoryRepository) ListRoles(ctx context.Context) ([]Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	roles := make([]Role, 0, len(m.roles))
	for _, r := range m.roles {
		roles = append(roles, cloneRole(r))
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i].ID < roles[j].ID })
	return roles, nil
}

// GetRole fetches a role by id.
func (m *MemoryRepository) GetRole(ctx context.Context, id int64) (Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	role, ok := m.roles[id]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	return cloneRole(role), nil
}

// GetRoleByName fetches a role by exact name.
func (m *MemoryRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.roles {
		if r.Name == name {
			return cloneRole(r), nil
		}
	}
	return Role{}, shared.ErrNotFound
}

// CreateRole inserts a role, assigning the next integer id.
func (m *MemoryRepository) CreateRole(ctx context.Context, role Role) (Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max int64
	for id := range m.roles {
		if id > max {
			max = id
		}
	}
	role.ID = max + 1
	now := time.Now().UTC()
	role.CreatedAt = now
	role.UpdatedAt = now
	m.roles[role.ID] = cloneRole(role)
	return role, nil
}

// UpdateRole replaces the stored role with the merged value.
func (m *MemoryRepository) UpdateRole(ctx context.Context, role Role) (Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.roles[role.ID]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	role.CreatedAt = existing.CreatedAt
	role.UpdatedAt = time.Now().UTC()
	m.roles[role.ID] = cloneRole(role)
	return role, nil
}

// DeleteRole removes a role by id.
func (m *MemoryRepository) DeleteRole(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.roles[id]; !ok {
		return shared.ErrNotFound
	}
	delete(m.roles, id)
	return nil
}

// TogglePermission flips membership of key in the role's permission set
// inside one critical section, so a toggle is never observed half applied.
func (m *MemoryRepository) TogglePermission(ctx context.Context, roleID int64, key authz.Permission) (Role, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	role, ok := m.roles[roleID]
	if !ok {
		return Role{}, shared.ErrNotFound
	}
	next := make([]authz.Permission, 0, len(role.Permissions)+1)
	removed := false
	for _, held := range role.Permissions {
		if held == key {
			removed = true
			continue
		}
		next = append(next, held)
	}
	if !removed {
		next = append(next, key)
	}
	role.Permissions = next
	role.UpdatedAt = time.Now().UTC()
	m.roles[roleID] = cloneRole(role)
	return role, nil
}

// ListUsers returns all users ordered by id.
func (m *MemoryRepository) ListUsers(ctx context.Context) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	users := make([]User, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// GetUser fetches a user by id.
func (m *MemoryRepository) GetUser(ctx context.Context, id int64) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	return user, nil
}

// FindUserByEmail fetches a user by exact email match, case-insensitive.
func (m *MemoryRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return User{}, shared.ErrNotFound
}

// ListUsersByRole returns the users assigned to the role.
func (m *MemoryRepository) ListUsersByRole(ctx context.Context, roleID int64) ([]User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var users []User
	for _, u := range m.users {
		if u.RoleID == roleID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// CountUsersByRole counts users referencing the role.
func (m *MemoryRepository) CountUsersByRole(ctx context.Context, roleID int64) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	count := 0
	for _, u := range m.users {
		if u.RoleID == roleID {
			count++
		}
	}
	return count, nil
}

// UpdateUserRole reassigns the user to another role.
func (m *MemoryRepository) UpdateUserRole(ctx context.Context, userID, roleID int64) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[userID]
	if !ok {
		return User{}, shared.ErrNotFound
	}
	user.RoleID = roleID
	user.UpdatedAt = time.Now().UTC()
	m.users[userID] = user
	return user, nil
}

func cloneRole(r Role) Role {
	perms := make([]authz.Permission, len(r.Permissions))
	copy(perms, r.Permissions)
	r.Permissions = perms
	return r
}

var _ Repository = (*MemoryRepository)(nil)
