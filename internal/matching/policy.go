package matching

import (
	"fmt"
	"math"

	"go-nest-backend/internal/domain"
)

// DefaultReferenceKm is the distance at which LocationScore halves.
const DefaultReferenceKm = 10.0

// Weights combine the three factor scores into one overall score.
type Weights struct {
	Location     float64 `json:"location"`
	Availability float64 `json:"availability"`
	Skill        float64 `json:"skill"`
}

// Shelter placement prioritizes proximity and free beds; job placement
// prioritizes skill fit.
var (
	ShelterWeights = Weights{Location: 0.4, Availability: 0.4, Skill: 0.2}
	JobWeights     = Weights{Location: 0.3, Availability: 0.2, Skill: 0.5}
)

// Policy holds validated weights per resource type plus the distance decay
// reference. Build one at startup with NewPolicy; scoring never re-checks
// the weights.
type Policy struct {
	ReferenceKm float64
	weights     map[string]Weights
}

func NewPolicy(refKm float64) (*Policy, error) {
	if refKm <= 0 {
		refKm = DefaultReferenceKm
	}
	weights := map[string]Weights{
		domain.ResourceTypeShelter: ShelterWeights,
		domain.ResourceTypeJob:     JobWeights,
	}
	for resourceType, w := range weights {
		sum := w.Location + w.Availability + w.Skill
		if math.Abs(sum-1.0) > 1e-9 {
			return nil, fmt.Errorf("%s weights sum to %v, want 1.0", resourceType, sum)
		}
	}
	return &Policy{ReferenceKm: refKm, weights: weights}, nil
}

// Combine produces the overall match score and its explanation. The returned
// overall value is unrounded and used for ranking; the explanation factors
// are rounded to 4 decimals so displayed breakdowns stay stable.
func (p *Policy) Combine(resourceType string, location, availability, skill float64) (float64, domain.Explanation) {
	w := p.weights[resourceType]
	overall := w.Location*location + w.Availability*availability + w.Skill*skill
	return overall, domain.Explanation{
		LocationScore:     round4(location),
		AvailabilityScore: round4(availability),
		SkillMatchScore:   round4(skill),
	}
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
