package checkins

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/talentfuze/portal/internal/shared"
)

// PGRepository provides PostgreSQL backed persistence for check-ins.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewPGRepository constructs a repository.
func NewPGRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const checkInColumns = `id, agency_id, virtual_assistant_id, week_of, status, notes, created_at, updated_at`

func scanCheckIn(row pgx.Row) (CheckIn, error) {
	var c CheckIn
	if err := row.Scan(&c.ID, &c.AgencyID, &c.VirtualAssistantID, &c.WeekOf, &c.Status, &c.Notes, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return CheckIn{}, shared.ErrNotFound
		}
		return CheckIn{}, err
	}
	return c, nil
}

// List returns all check-ins newest week first.
func (r *PGRepository) List(ctx context.Context) ([]CheckIn, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+checkInColumns+` FROM check_ins ORDER BY week_of DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []CheckIn
	for rows.Next() {
		c, err := scanCheckIn(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Get fetches a check-in by id.
func (r *PGRepository) Get(ctx context.Context, id int64) (CheckIn, error) {
	return scanCheckIn(r.pool.QueryRow(ctx, `SELECT `+checkInColumns+` FROM check_ins WHERE id = $1`, id))
}

// Create inserts a new check-in.
func (r *PGRepository) Create(ctx context.Context, c CheckIn) (CheckIn, error) {
	return scanCheckIn(r.pool.QueryRow(ctx,
		`INSERT INTO check_ins (agency_id, virtual_assistant_id, week_of, status, notes) VALUES ($1, $2, $3, $4, $5) RETURNING `+checkInColumns,
		c.AgencyID, c.VirtualAssistantID, c.WeekOf, c.Status, c.Notes))
}

// Update replaces the stored check-in fields.
func (r *PGRepository) Update(ctx context.Context, c CheckIn) (CheckIn, error) {
	return scanCheckIn(r.pool.QueryRow(ctx,
		`UPDATE check_ins SET agency_id = $2, virtual_assistant_id = $3, week_of = $4, status = $5, notes = $6, updated_at = NOW() WHERE id = $1 RETURNING `+checkInColumns,
		c.ID, c.AgencyID, c.VirtualAssistantID, c.WeekOf, c.Status, c.Notes))
}

// Delete removes a check-in by id.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM check_ins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
