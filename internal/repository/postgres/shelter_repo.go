package postgres

import (
	"context"

	"go-nest-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type shelterRepo struct {
	db *pgxpool.Pool
}

func NewShelterRepository(db *pgxpool.Pool) domain.ShelterRepository {
	return &shelterRepo{db: db}
}

func (r *shelterRepo) Create(ctx context.Context, shelter *domain.Shelter) error {
	query := `INSERT INTO shelters (name, geo_lat, geo_lng, capacity, occupied, amenities, gender_policy, min_age, max_age, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		shelter.Name, shelter.GeoLat, shelter.GeoLng, shelter.Capacity, shelter.Occupied,
		pq.Array(shelter.Amenities), shelter.GenderPolicy, shelter.MinAge, shelter.MaxAge,
		shelter.CreatedAt, shelter.UpdatedAt,
	).Scan(&shelter.ID)
	return mapError(err)
}

func (r *shelterRepo) GetByID(ctx context.Context, id int64) (*domain.Shelter, error) {
	query := `SELECT id, name, geo_lat, geo_lng, capacity, occupied, amenities, gender_policy, min_age, max_age, created_at, updated_at
              FROM shelters WHERE id = $1`
	var shelter domain.Shelter
	err := r.db.QueryRow(ctx, query, id).Scan(
		&shelter.ID, &shelter.Name, &shelter.GeoLat, &shelter.GeoLng, &shelter.Capacity, &shelter.Occupied,
		pq.Array(&shelter.Amenities), &shelter.GenderPolicy, &shelter.MinAge, &shelter.MaxAge,
		&shelter.CreatedAt, &shelter.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &shelter, nil
}

func (r *shelterRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Shelter, int64, error) {
	query := `SELECT id, name, geo_lat, geo_lng, capacity, occupied, amenities, gender_policy, min_age, max_age, created_at, updated_at
              FROM shelters ORDER BY created_at DESC LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var shelters []domain.Shelter
	for rows.Next() {
		var shelter domain.Shelter
		if err := rows.Scan(&shelter.ID, &shelter.Name, &shelter.GeoLat, &shelter.GeoLng, &shelter.Capacity, &shelter.Occupied,
			pq.Array(&shelter.Amenities), &shelter.GenderPolicy, &shelter.MinAge, &shelter.MaxAge,
			&shelter.CreatedAt, &shelter.UpdatedAt); err != nil {
			return nil, 0, mapError(err)
		}
		shelters = append(shelters, shelter)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM shelters`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	return shelters, total, nil
}

func (r *shelterRepo) Update(ctx context.Context, shelter *domain.Shelter) error {
	query := `UPDATE shelters SET name = $1, geo_lat = $2, geo_lng = $3, capacity = $4, occupied = $5, amenities = $6,
              gender_policy = $7, min_age = $8, max_age = $9, updated_at = $10 WHERE id = $11`
	cmd, err := r.db.Exec(ctx, query,
		shelter.Name, shelter.GeoLat, shelter.GeoLng, shelter.Capacity, shelter.Occupied, pq.Array(shelter.Amenities),
		shelter.GenderPolicy, shelter.MinAge, shelter.MaxAge, shelter.UpdatedAt, shelter.ID,
	)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReserveBed relies on a single conditional UPDATE for atomicity: two
// concurrent reservations race on the same row, and the WHERE clause lets
// only as many through as there are beds.
func (r *shelterRepo) ReserveBed(ctx context.Context, id int64) error {
	query := `UPDATE shelters SET occupied = occupied + 1, updated_at = NOW()
              WHERE id = $1 AND occupied < capacity`
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

func (r *shelterRepo) ReleaseBed(ctx context.Context, id int64) error {
	query := `UPDATE shelters SET occupied = occupied - 1, updated_at = NOW()
              WHERE id = $1 AND occupied > 0`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		// Already at zero occupancy; nothing to release.
	}
	return nil
}

func (r *shelterRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM shelters`).Scan(&total)
	return total, mapError(err)
}
