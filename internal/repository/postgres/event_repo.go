package postgres

import (
	"context"

	"go-nest-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type eventRepo struct {
	db *pgxpool.Pool
}

func NewRecommendationEventRepository(db *pgxpool.Pool) domain.RecommendationEventRepository {
	return &eventRepo{db: db}
}

func (r *eventRepo) Record(ctx context.Context, event *domain.RecommendationEvent) error {
	query := `INSERT INTO recommendation_events (profile_id, resource_type, count, top_score, created_at)
              VALUES ($1, $2, $3, $4, $5) RETURNING id`
	err := r.db.QueryRow(ctx, query,
		event.ProfileID, event.ResourceType, event.Count, event.TopScore, event.CreatedAt,
	).Scan(&event.ID)
	return mapError(err)
}

func (r *eventRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM recommendation_events`).Scan(&total)
	return total, mapError(err)
}
