// Package matching scores and ranks candidate resources against a profile.
// Everything in here is pure computation: no I/O, no shared mutable state,
// safe to call concurrently.
package matching

import (
	"sort"

	"go-nest-backend/internal/domain"
	"go-nest-backend/pkg/logger"
)

// DefaultTopK matches the number of match cards the dashboard renders.
const DefaultTopK = 3

type Engine struct {
	policy *Policy
}

func NewEngine(policy *Policy) *Engine {
	return &Engine{policy: policy}
}

type scored struct {
	rec        domain.Recommendation
	raw        float64
	distanceKm float64
}

// Recommend filters ineligible candidates, scores the rest, and returns the
// top k ranked matches. A single malformed candidate is logged and skipped;
// it never fails the batch. The result is never padded with ineligible
// candidates, so fewer than k entries may come back.
func (e *Engine) Recommend(profile *domain.Profile, candidates []Candidate, k int) []domain.Recommendation {
	if k <= 0 {
		k = DefaultTopK
	}

	profileLoc := coordinate(profile.GeoLat, profile.GeoLng)

	results := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		if !candidate.Eligible(profile) {
			continue
		}

		availability, err := candidate.Availability()
		if err != nil {
			logger.Log.Warn("skipping candidate with malformed record",
				"resource_type", candidate.ResourceType(),
				"resource_id", candidate.ResourceID(),
				"error", err)
			continue
		}

		location := LocationScore(profileLoc, candidate.Location(), e.policy.ReferenceKm)
		skill := SkillScore(profile.Skills, candidate.Requirements())

		overall, explanation := e.policy.Combine(candidate.ResourceType(), location, availability, skill)

		distance := 0.0
		if profileLoc != nil && candidate.Location() != nil {
			distance = DistanceKm(*profileLoc, *candidate.Location())
		}

		results = append(results, scored{
			rec: domain.Recommendation{
				ResourceID:   candidate.ResourceID(),
				ResourceName: candidate.ResourceName(),
				ResourceType: candidate.ResourceType(),
				Score:        int(overall*100 + 0.5),
				RawScore:     overall,
				Explanation:  explanation,
			},
			raw:        overall,
			distanceKm: distance,
		})
	}

	// Ranking is on the unrounded score so display rounding never flips an
	// order. Ties prefer the closer resource, then the lower id, keeping the
	// output deterministic across calls.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].raw != results[j].raw {
			return results[i].raw > results[j].raw
		}
		if results[i].distanceKm != results[j].distanceKm {
			return results[i].distanceKm < results[j].distanceKm
		}
		return results[i].rec.ResourceID < results[j].rec.ResourceID
	})

	if len(results) > k {
		results = results[:k]
	}

	recommendations := make([]domain.Recommendation, len(results))
	for i, r := range results {
		recommendations[i] = r.rec
	}
	return recommendations
}
