package postgres

import (
	"context"

	"go-nest-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	query := `INSERT INTO jobs (title, organization, geo_lat, geo_lng, required_skills, open_positions, total_positions, job_type, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		job.Title, job.Organization, job.GeoLat, job.GeoLng, pq.Array(job.RequiredSkills),
		job.OpenPositions, job.TotalPositions, job.JobType,
		job.CreatedAt, job.UpdatedAt,
	).Scan(&job.ID)
	return mapError(err)
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `SELECT id, title, organization, geo_lat, geo_lng, required_skills, open_positions, total_positions, job_type, created_at, updated_at
              FROM jobs WHERE id = $1`
	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Organization, &job.GeoLat, &job.GeoLng, pq.Array(&job.RequiredSkills),
		&job.OpenPositions, &job.TotalPositions, &job.JobType,
		&job.CreatedAt, &job.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	query := `SELECT id, title, organization, geo_lat, geo_lng, required_skills, open_positions, total_positions, job_type, created_at, updated_at
              FROM jobs ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var jobs []domain.Job
	for rows.Next() {
		var job domain.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Organization, &job.GeoLat, &job.GeoLng, pq.Array(&job.RequiredSkills),
			&job.OpenPositions, &job.TotalPositions, &job.JobType,
			&job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, 0, mapError(err)
		}
		jobs = append(jobs, job)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	return jobs, total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	query := `UPDATE jobs SET title = $1, organization = $2, geo_lat = $3, geo_lng = $4, required_skills = $5,
              open_positions = $6, total_positions = $7, job_type = $8, updated_at = $9 WHERE id = $10`
	cmd, err := r.db.Exec(ctx, query,
		job.Title, job.Organization, job.GeoLat, job.GeoLng, pq.Array(job.RequiredSkills),
		job.OpenPositions, job.TotalPositions, job.JobType, job.UpdatedAt, job.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ClaimOpening mirrors ReserveBed: one conditional UPDATE is the whole
// critical section.
func (r *jobRepo) ClaimOpening(ctx context.Context, id int64) error {
	query := `UPDATE jobs SET open_positions = open_positions - 1, updated_at = NOW()
              WHERE id = $1 AND open_positions > 0`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.ErrResourceUnavailable
	}
	return nil
}

func (r *jobRepo) ReleaseOpening(ctx context.Context, id int64) error {
	query := `UPDATE jobs SET open_positions = open_positions + 1, updated_at = NOW() WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *jobRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM jobs`).Scan(&total)
	return total, mapError(err)
}
