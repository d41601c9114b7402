package requests

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentfuze/portal/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for VA requests.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const requestColumns = `id, agency_id, role_title, description, status, created_at, updated_at`

func scanRequest(row pgx.Row) (VARequest, error) {
	var req VARequest
	if err := row.Scan(&req.ID, &req.AgencyID, &req.RoleTitle, &req.Description, &req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return VARequest{}, shared.ErrNotFound
		}
		return VARequest{}, err
	}
	return req, nil
}

// List returns all requests ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]VARequest, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+requestColumns+` FROM va_requests ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []VARequest
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

// Get fetches a request by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (VARequest, error) {
	return scanRequest(r.pool.QueryRow(ctx, `SELECT `+requestColumns+` FROM va_requests WHERE id = $1`, id))
}

// Create inserts a new request.
func (r *PGRepository) Create(ctx context.Context, req VARequest) (VARequest, error) {
	return scanRequest(r.pool.QueryRow(ctx,
		`INSERT INTO va_requests (agency_id, role_title, description, status) VALUES ($1, $2, $3, $4) RETURNING `+requestColumns,
		req.AgencyID, req.RoleTitle, req.Description, req.Status))
}

// Update replaces the stored request fields.
func (r *PGRepository) Update(ctx context.Context, req VARequest) (VARequest, error) {
	return scanRequest(r.pool.QueryRow(ctx,
		`UPDATE va_requests SET agency_id = $2, role_title = $3, description = $4, status = $5, updated_at = NOW() WHERE id = $1 RETURNING `+requestColumns,
		req.ID, req.AgencyID, req.RoleTitle, req.Description, req.Status))
}

// Delete removes a request by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM va_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
