package vas

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentfuze/portal/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for virtual assistants.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const vaColumns = `id, name, email, agency_id, role_title, status, start_date, created_at, updated_at`

func scanVA(row pgx.Row) (VirtualAssistant, error) {
	var v VirtualAssistant
	if err := row.Scan(&v.ID, &v.Name, &v.Email, &v.AgencyID, &v.RoleTitle, &v.Status, &v.StartDate, &v.CreatedAt, &v.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VirtualAssistant{}, shared.ErrNotFound
		}
		return VirtualAssistant{}, err
	}
	return v, nil
}

// List returns all VAs ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]VirtualAssistant, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+vaColumns+` FROM virtual_assistants ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VirtualAssistant
	for rows.Next() {
		v, err := scanVA(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Get fetches a VA by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (VirtualAssistant, error) {
	return scanVA(r.pool.QueryRow(ctx, `SELECT `+vaColumns+` FROM virtual_assistants WHERE id = $1`, id))
}

// Create inserts a new VA.
func (r *PGRepository) Create(ctx context.Context, va VirtualAssistant) (VirtualAssistant, error) {
	return scanVA(r.pool.QueryRow(ctx,
		`INSERT INTO virtual_assistants (name, email, agency_id, role_title, status, start_date) VALUES ($1, $2, $3, $4, $5, $6) RETURNING `+vaColumns,
		va.Name, va.Email, va.AgencyID, va.RoleTitle, va.Status, va.StartDate))
}

// Update replaces the stored VA fields.
func (r *PGRepository) Update(ctx context.Context, va VirtualAssistant) (VirtualAssistant, error) {
	return scanVA(r.pool.QueryRow(ctx,
		`UPDATE virtual_assistants SET name = $2, email = $3, agency_id = $4, role_title = $5, status = $6, start_date = $7, updated_at = NOW() WHERE id = $1 RETURNING `+vaColumns,
		va.ID, va.Name, va.Email, va.AgencyID, va.RoleTitle, va.Status, va.StartDate))
}

// Delete removes a VA by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM virtual_assistants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
