package domain

import (
	"context"
	"time"
)

// Explanation is the per-factor score breakdown shown next to each match.
// Each factor is in [0,1], rounded to 4 decimals for display stability.
type Explanation struct {
	LocationScore     float64 `json:"location_score"`
	AvailabilityScore float64 `json:"availability_score"`
	SkillMatchScore   float64 `json:"skill_match_score"`
}

// Recommendation is ephemeral: computed fresh on every request, never the
// source of truth for anything. Score is the 0-100 integer shown in the UI;
// RawScore keeps the unrounded [0,1] value used for ranking and is frozen
// onto the assignment at acceptance time.
type Recommendation struct {
	ResourceID   int64       `json:"resource_id"`
	ResourceName string      `json:"resource_name"`
	ResourceType string      `json:"resource_type"`
	Score        int         `json:"score"`
	RawScore     float64     `json:"-"`
	Explanation  Explanation `json:"explanation"`
}

// RecommendationEvent is the audit trail of what was suggested to whom.
// Persisted best-effort; a failed insert never fails the recommendation.
type RecommendationEvent struct {
	ID           int64     `json:"id"`
	ProfileID    int64     `json:"profile_id"`
	ResourceType string    `json:"resource_type"`
	Count        int       `json:"count"`
	TopScore     int       `json:"top_score"`
	CreatedAt    time.Time `json:"created_at"`
}

type RecommendationEventRepository interface {
	Record(ctx context.Context, event *RecommendationEvent) error
	Count(ctx context.Context) (int64, error)
}

type RecommendationUsecase interface {
	RecommendShelters(ctx context.Context, profileID int64, k int) ([]Recommendation, error)
	RecommendJobs(ctx context.Context, profileID int64, k int) ([]Recommendation, error)
}
