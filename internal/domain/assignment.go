package domain

import (
	"context"
	"time"
)

// Assignment statuses. NONE -> ACTIVE -> ENDED; records are never deleted.
const (
	AssignmentStatusActive = "active"
	AssignmentStatusEnded  = "ended"
)

// Assignment is the durable outcome of accepting a recommendation.
// AssignedScore is frozen at acceptance time for audit and never recomputed.
type Assignment struct {
	ID            string     `json:"id"`
	ProfileID     int64      `json:"profile_id"`
	ResourceID    int64      `json:"resource_id"`
	ResourceType  string     `json:"resource_type"`
	AssignedScore float64    `json:"assigned_score"`
	Status        string     `json:"status"`
	AssignedBy    string     `json:"assigned_by"`
	AssignedAt    time.Time  `json:"assigned_at"`
	EndedAt       *time.Time `json:"ended_at,omitempty"`
	// Placement outcome feedback, recorded after the fact by staff.
	OutcomeSuccess *bool    `json:"outcome_success,omitempty"`
	OutcomeScore   *float64 `json:"outcome_score,omitempty"`
}

type AssignmentRepository interface {
	Create(ctx context.Context, assignment *Assignment) error
	GetByID(ctx context.Context, id string) (*Assignment, error)
	FetchByProfile(ctx context.Context, profileID int64) ([]Assignment, error)
	// EndActiveForProfile closes any ACTIVE assignment of the given type for
	// the profile (supersede on reassignment). Returns the ids it ended.
	EndActiveForProfile(ctx context.Context, profileID int64, resourceType string) ([]string, error)
	End(ctx context.Context, id string) error
	RecordOutcome(ctx context.Context, id string, success bool, score *float64) error
	Count(ctx context.Context) (int64, error)
}

type AssignmentUsecase interface {
	Assign(ctx context.Context, profileID, resourceID int64, resourceType string, score float64) (*Assignment, error)
	End(ctx context.Context, id string) error
	RecordOutcome(ctx context.Context, id string, success bool, score *float64) error
	ListByProfile(ctx context.Context, profileID int64) ([]Assignment, error)
}
