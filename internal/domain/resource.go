package domain

import (
	"context"
	"time"
)

// Resource types. Shelters and jobs are a tagged union: they share the
// matching pipeline but carry their own availability semantics.
const (
	ResourceTypeShelter = "shelter"
	ResourceTypeJob     = "job"
)

// Shelter is a bed-pool resource. Invariant: 0 <= Occupied <= Capacity.
// Occupancy is mutated only through ReserveBed/ReleaseBed and explicit edits.
type Shelter struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name" validate:"required,valid_name,no_emoji"`
	GeoLat       *float64  `json:"geo_lat" validate:"omitempty,gte=-90,lte=90"`
	GeoLng       *float64  `json:"geo_lng" validate:"omitempty,gte=-180,lte=180"`
	Capacity     int       `json:"capacity" validate:"required,gt=0"`
	Occupied     int       `json:"occupied" validate:"gte=0"`
	Amenities    []string  `json:"amenities" validate:"omitempty,dive,skill_tag"`
	GenderPolicy *string   `json:"gender_policy"`
	MinAge       *int      `json:"min_age"`
	MaxAge       *int      `json:"max_age"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Job is an opening-pool resource. TotalPositions may be nil for open-ended
// postings; availability then scores 1.0.
type Job struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title" validate:"required,valid_name,no_emoji"`
	Organization   string    `json:"organization"`
	GeoLat         *float64  `json:"geo_lat" validate:"omitempty,gte=-90,lte=90"`
	GeoLng         *float64  `json:"geo_lng" validate:"omitempty,gte=-180,lte=180"`
	RequiredSkills []string  `json:"required_skills" validate:"omitempty,dive,skill_tag"`
	OpenPositions  int       `json:"open_positions" validate:"gte=0"`
	TotalPositions *int      `json:"total_positions"`
	JobType        *string   `json:"job_type"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type ShelterRepository interface {
	Create(ctx context.Context, shelter *Shelter) error
	GetByID(ctx context.Context, id int64) (*Shelter, error)
	Fetch(ctx context.Context, limit, offset int) ([]Shelter, int64, error)
	Update(ctx context.Context, shelter *Shelter) error
	// ReserveBed atomically increments occupancy if a bed remains.
	// Returns ErrResourceUnavailable when the shelter is full.
	ReserveBed(ctx context.Context, id int64) error
	// ReleaseBed atomically decrements occupancy. Never called implicitly
	// by assignment end; discharge-to-capacity is an explicit operation.
	ReleaseBed(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	Fetch(ctx context.Context, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	// ClaimOpening atomically decrements open positions if any remain.
	// Returns ErrResourceUnavailable when none are open.
	ClaimOpening(ctx context.Context, id int64) error
	ReleaseOpening(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type ResourceUsecase interface {
	CreateShelter(ctx context.Context, shelter *Shelter) error
	ListShelters(ctx context.Context, page, pageSize int) ([]Shelter, int64, error)
	CreateJob(ctx context.Context, job *Job) error
	ListJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
}
