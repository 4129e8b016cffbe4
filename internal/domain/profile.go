package domain

import (
	"context"
	"time"
)

// Priority tiers for aid-seeking profiles.
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

// Profile statuses. Profiles are never hard-deleted, only transitioned.
const (
	ProfileStatusActive = "active"
	ProfileStatusHoused = "housed"
	ProfileStatusClosed = "closed"
)

// Profile is an aid-seeking individual's record.
type Profile struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name" validate:"required,valid_name,no_emoji"`
	Age       int       `json:"age" validate:"gte=0,lte=120"`
	Gender    string    `json:"gender"`
	GeoLat    *float64  `json:"geo_lat" validate:"omitempty,gte=-90,lte=90"`
	GeoLng    *float64  `json:"geo_lng" validate:"omitempty,gte=-180,lte=180"`
	Skills    []string  `json:"skills" validate:"omitempty,dive,skill_tag"`
	Needs     string    `json:"needs"`
	Priority  string    `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	Consent   bool      `json:"consent"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *Profile) error
	GetByID(ctx context.Context, id int64) (*Profile, error)
	Fetch(ctx context.Context, limit, offset int) ([]Profile, int64, error)
	Update(ctx context.Context, profile *Profile) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	Count(ctx context.Context) (int64, error)
}

type ProfileUsecase interface {
	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, id int64) (*Profile, error)
	ListProfiles(ctx context.Context, page, pageSize int) ([]Profile, int64, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
}
