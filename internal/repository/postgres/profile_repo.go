package postgres

import (
	"context"
	"errors"

	"go-nest-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type profileRepo struct {
	db *pgxpool.Pool
}

func NewProfileRepository(db *pgxpool.Pool) domain.ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	query := `INSERT INTO profiles (name, age, gender, geo_lat, geo_lng, skills, needs, priority, consent, status, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		profile.Name, profile.Age, profile.Gender, profile.GeoLat, profile.GeoLng,
		pq.Array(profile.Skills), profile.Needs, profile.Priority, profile.Consent, profile.Status,
		profile.CreatedAt, profile.UpdatedAt,
	).Scan(&profile.ID)
	return mapError(err)
}

func (r *profileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	query := `SELECT id, name, age, gender, geo_lat, geo_lng, skills, needs, priority, consent, status, created_at, updated_at
              FROM profiles WHERE id = $1`
	var profile domain.Profile
	err := r.db.QueryRow(ctx, query, id).Scan(
		&profile.ID, &profile.Name, &profile.Age, &profile.Gender, &profile.GeoLat, &profile.GeoLng,
		pq.Array(&profile.Skills), &profile.Needs, &profile.Priority, &profile.Consent, &profile.Status,
		&profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &profile, nil
}

func (r *profileRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Profile, int64, error) {
	query := `SELECT id, name, age, gender, geo_lat, geo_lng, skills, needs, priority, consent, status, created_at, updated_at
              FROM profiles ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var profile domain.Profile
		if err := rows.Scan(&profile.ID, &profile.Name, &profile.Age, &profile.Gender, &profile.GeoLat, &profile.GeoLng,
			pq.Array(&profile.Skills), &profile.Needs, &profile.Priority, &profile.Consent, &profile.Status,
			&profile.CreatedAt, &profile.UpdatedAt); err != nil {
			return nil, 0, mapError(err)
		}
		profiles = append(profiles, profile)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	return profiles, total, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	query := `UPDATE profiles SET name = $1, age = $2, gender = $3, geo_lat = $4, geo_lng = $5, skills = $6,
              needs = $7, priority = $8, consent = $9, status = $10, updated_at = $11 WHERE id = $12`
	cmd, err := r.db.Exec(ctx, query,
		profile.Name, profile.Age, profile.Gender, profile.GeoLat, profile.GeoLng, pq.Array(profile.Skills),
		profile.Needs, profile.Priority, profile.Consent, profile.Status, profile.UpdatedAt, profile.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	cmd, err := r.db.Exec(ctx, `UPDATE profiles SET status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *profileRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM profiles`).Scan(&total)
	return total, mapError(err)
}

// mapError translates driver errors into domain errors so usecases never
// see pgx types. Timeouts and cancellations are retryable.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return domain.ErrNotFound
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return domain.ErrTransientStore
	default:
		return err
	}
}
