package postgres

import (
	"context"

	"go-nest-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type assignmentRepo struct {
	db *pgxpool.Pool
}

func NewAssignmentRepository(db *pgxpool.Pool) domain.AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) error {
	query := `INSERT INTO assignments (id, profile_id, resource_id, resource_type, assigned_score, status, assigned_by, assigned_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.Exec(ctx, query,
		assignment.ID, assignment.ProfileID, assignment.ResourceID, assignment.ResourceType,
		assignment.AssignedScore, assignment.Status, assignment.AssignedBy, assignment.AssignedAt,
	)
	return mapError(err)
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	query := `SELECT id, profile_id, resource_id, resource_type, assigned_score, status, assigned_by, assigned_at, ended_at, outcome_success, outcome_score
              FROM assignments WHERE id = $1`
	var assignment domain.Assignment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&assignment.ID, &assignment.ProfileID, &assignment.ResourceID, &assignment.ResourceType,
		&assignment.AssignedScore, &assignment.Status, &assignment.AssignedBy, &assignment.AssignedAt,
		&assignment.EndedAt, &assignment.OutcomeSuccess, &assignment.OutcomeScore,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return &assignment, nil
}

func (r *assignmentRepo) FetchByProfile(ctx context.Context, profileID int64) ([]domain.Assignment, error) {
	query := `SELECT id, profile_id, resource_id, resource_type, assigned_score, status, assigned_by, assigned_at, ended_at, outcome_success, outcome_score
              FROM assignments WHERE profile_id = $1 ORDER BY assigned_at DESC`

	rows, err := r.db.Query(ctx, query, profileID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var assignments []domain.Assignment
	for rows.Next() {
		var assignment domain.Assignment
		if err := rows.Scan(&assignment.ID, &assignment.ProfileID, &assignment.ResourceID, &assignment.ResourceType,
			&assignment.AssignedScore, &assignment.Status, &assignment.AssignedBy, &assignment.AssignedAt,
			&assignment.EndedAt, &assignment.OutcomeSuccess, &assignment.OutcomeScore); err != nil {
			return nil, mapError(err)
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

func (r *assignmentRepo) EndActiveForProfile(ctx context.Context, profileID int64, resourceType string) ([]string, error) {
	query := `UPDATE assignments SET status = 'ended', ended_at = NOW()
              WHERE profile_id = $1 AND resource_type = $2 AND status = 'active'
              RETURNING id`

	rows, err := r.db.Query(ctx, query, profileID, resourceType)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var ended []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, mapError(err)
		}
		ended = append(ended, id)
	}
	return ended, nil
}

func (r *assignmentRepo) End(ctx context.Context, id string) error {
	query := `UPDATE assignments SET status = 'ended', ended_at = NOW() WHERE id = $1`
	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) RecordOutcome(ctx context.Context, id string, success bool, score *float64) error {
	query := `UPDATE assignments SET outcome_success = $1, outcome_score = $2 WHERE id = $3`
	cmd, err := r.db.Exec(ctx, query, success, score, id)
	if err != nil {
		return mapError(err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *assignmentRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM assignments`).Scan(&total)
	return total, mapError(err)
}
