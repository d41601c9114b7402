package agencies

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentfuze/portal/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for agencies.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const agencyColumns = `id, name, contact_name, contact_email, status, created_at, updated_at`

func scanAgency(row pgx.Row) (Agency, error) {
	var a Agency
	if err := row.Scan(&a.ID, &a.Name, &a.ContactName, &a.ContactEmail, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Agency{}, shared.ErrNotFound
		}
		return Agency{}, err
	}
	return a, nil
}

// List returns all agencies ordered by id.
func (r *PGRepository) List(ctx context.Context) ([]Agency, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+agencyColumns+` FROM agencies ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Agency
	for rows.Next() {
		a, err := scanAgency(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get fetches an agency by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (Agency, error) {
	return scanAgency(r.pool.QueryRow(ctx, `SELECT `+agencyColumns+` FROM agencies WHERE id = $1`, id))
}

// Create inserts a new agency.
func (r *PGRepository) Create(ctx context.Context, agency Agency) (Agency, error) {
	return scanAgency(r.pool.QueryRow(ctx,
		`INSERT INTO agencies (name, contact_name, contact_email, status) VALUES ($1, $2, $3, $4) RETURNING `+agencyColumns,
		agency.Name, agency.ContactName, agency.ContactEmail, agency.Status))
}

// Update replaces the stored agency fields.
func (r *PGRepository) Update(ctx context.Context, agency Agency) (Agency, error) {
	return scanAgency(r.pool.QueryRow(ctx,
		`UPDATE agencies SET name = $2, contact_name = $3, contact_email = $4, status = $5, updated_at = NOW() WHERE id = $1 RETURNING `+agencyColumns,
		agency.ID, agency.Name, agency.ContactName, agency.ContactEmail, agency.Status))
}

// Delete removes an agency by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM agencies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
