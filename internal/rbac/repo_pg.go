package rbac

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for roles and users.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const roleColumns = `id, name, description, type, permissions, created_at, updated_at`

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	var perms []string
	if err := row.Scan(&role.ID, &role.Name, &role.Description, &role.Type, &perms, &role.CreatedAt, &role.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, shared.ErrNotFound
		}
		return Role{}, err
	}
	role.Permissions = make([]authz.Permission, len(perms))
	for i, p := range perms {
		role.Permissions[i] = authz.Permission(p)
	}
	return role, nil
}

// ListRoles returns all roles ordered by id.
func (r *PGRepository) ListRoles(ctx context.Context) ([]Role, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

// GetRole fetches a role by id.
func (r *PGRepository) GetRole(ctx context.Context, id int64) (Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE id = $1`, id))
}

// GetRoleByName fetches a role by exact name.
func (r *PGRepository) GetRoleByName(ctx context.Context, name string) (Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `SELECT `+roleColumns+` FROM roles WHERE name = $1`, name))
}

// CreateRole inserts a new role.
func (r *PGRepository) CreateRole(ctx context.Context, role Role) (Role, error) {
	created, err := scanRole(r.pool.QueryRow(ctx,
		`INSERT INTO roles (name, description, type, permissions) VALUES ($1, $2, $3, $4) RETURNING `+roleColumns,
		role.Name, role.Description, role.Type, permissionStrings(role.Permissions)))
	if err != nil {
		return Role{}, mapRoleNameConflict(err)
	}
	return created, nil
}

// UpdateRole replaces the stored role fields.
func (r *PGRepository) UpdateRole(ctx context.Context, role Role) (Role, error) {
	updated, err := scanRole(r.pool.QueryRow(ctx,
		`UPDATE roles SET name = $2, description = $3, type = $4, permissions = $5, updated_at = NOW() WHERE id = $1 RETURNING `+roleColumns,
		role.ID, role.Name, role.Description, role.Type, permissionStrings(role.Permissions)))
	if err != nil {
		return Role{}, mapRoleNameConflict(err)
	}
	return updated, nil
}

// DeleteRole removes a role by id.
func (r *PGRepository) DeleteRole(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM roles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// TogglePermission flips membership of key in one statement so the update is
// atomic even with concurrent administrators.
func (r *PGRepository) TogglePermission(ctx context.Context, roleID int64, key authz.Permission) (Role, error) {
	return scanRole(r.pool.QueryRow(ctx, `
		UPDATE roles
		SET permissions = CASE
			WHEN $2 = ANY(permissions) THEN array_remove(permissions, $2)
			ELSE array_append(permissions, $2)
		END,
		updated_at = NOW()
		WHERE id = $1
		RETURNING `+roleColumns,
		roleID, string(key)))
}

const userColumns = `id, email, name, password_hash, role_id, COALESCE(agency_id, 0), COALESCE(virtual_assistant_id, 0), created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.PasswordHash, &user.RoleID, &user.AgencyID, &user.VirtualAssistantID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, shared.ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// ListUsers returns all users ordered by id.
func (r *PGRepository) ListUsers(ctx context.Context) ([]User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
}

// GetUser fetches a user by id.
func (r *PGRepository) GetUser(ctx context.Context, id int64) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// FindUserByEmail fetches a user by email.
func (r *PGRepository) FindUserByEmail(ctx context.Context, email string) (User, error) {
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email))
}

// ListUsersByRole returns users assigned to the role.
func (r *PGRepository) ListUsersByRole(ctx context.Context, roleID int64) ([]User, error) {
	return r.queryUsers(ctx, `SELECT `+userColumns+` FROM users WHERE role_id = $1 ORDER BY id`, roleID)
}

// CountUsersByRole counts users referencing the role.
func (r *PGRepository) CountUsersByRole(ctx context.Context, roleID int64) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE role_id = $1`, roleID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// UpdateUserRole reassigns the user to another role.
func (r *PGRepository) UpdateUserRole(ctx context.Context, userID, roleID int64) (User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`UPDATE users SET role_id = $2, updated_at = NOW() WHERE id = $1 RETURNING `+userColumns,
		userID, roleID))
}

func (r *PGRepository) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var users []User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func permissionStrings(perms []authz.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func mapRoleNameConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "roles_name_key" {
		return fmt.Errorf("%w: a role with this name already exists", shared.ErrValidation)
	}
	return err
}

var _ Repository = (*PGRepository)(nil)
