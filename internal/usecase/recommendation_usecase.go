package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-nest-backend/internal/domain"
	"go-nest-backend/internal/matching"
	"go-nest-backend/pkg/apperror"
	"go-nest-backend/pkg/logger"
)

// candidatePoolLimit bounds how many resources are scored per request. The
// pools here are city-scale, not web-scale; one page is the whole pool.
const candidatePoolLimit = 500

type recommendationUsecase struct {
	profileRepo domain.ProfileRepository
	shelterRepo domain.ShelterRepository
	jobRepo     domain.JobRepository
	eventRepo   domain.RecommendationEventRepository
	engine      *matching.Engine
	defaultTopK int
}

func NewRecommendationUsecase(
	profileRepo domain.ProfileRepository,
	shelterRepo domain.ShelterRepository,
	jobRepo domain.JobRepository,
	eventRepo domain.RecommendationEventRepository,
	engine *matching.Engine,
	defaultTopK int,
) domain.RecommendationUsecase {
	if defaultTopK <= 0 {
		defaultTopK = matching.DefaultTopK
	}
	return &recommendationUsecase{
		profileRepo: profileRepo,
		shelterRepo: shelterRepo,
		jobRepo:     jobRepo,
		eventRepo:   eventRepo,
		engine:      engine,
		defaultTopK: defaultTopK,
	}
}

func (u *recommendationUsecase) RecommendShelters(ctx context.Context, profileID int64, k int) ([]domain.Recommendation, error) {
	profile, err := u.loadEligibleProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	shelters, _, err := u.shelterRepo.Fetch(ctx, candidatePoolLimit, 0)
	if err != nil {
		return nil, storeError(err)
	}

	candidates := make([]matching.Candidate, len(shelters))
	for i := range shelters {
		candidates[i] = matching.ShelterCandidate{Shelter: &shelters[i]}
	}

	if k <= 0 {
		k = u.defaultTopK
	}
	recommendations := u.engine.Recommend(profile, candidates, k)
	u.recordEvent(ctx, profileID, domain.ResourceTypeShelter, recommendations)
	return recommendations, nil
}

func (u *recommendationUsecase) RecommendJobs(ctx context.Context, profileID int64, k int) ([]domain.Recommendation, error) {
	profile, err := u.loadEligibleProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}

	jobs, _, err := u.jobRepo.Fetch(ctx, candidatePoolLimit, 0)
	if err != nil {
		return nil, storeError(err)
	}

	candidates := make([]matching.Candidate, len(jobs))
	for i := range jobs {
		candidates[i] = matching.JobCandidate{Job: &jobs[i]}
	}

	if k <= 0 {
		k = u.defaultTopK
	}
	recommendations := u.engine.Recommend(profile, candidates, k)
	u.recordEvent(ctx, profileID, domain.ResourceTypeJob, recommendations)
	return recommendations, nil
}

// loadEligibleProfile enforces the two profile-level gates: the profile must
// exist and must have given consent. Both are terminal for the request.
func (u *recommendationUsecase) loadEligibleProfile(ctx context.Context, profileID int64) (*domain.Profile, error) {
	profile, err := u.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, storeError(err)
	}
	if !profile.Consent {
		return nil, apperror.New(http.StatusForbidden, "Profile has not consented to matching", domain.ErrConsentRequired)
	}
	return profile, nil
}

// recordEvent keeps an audit trail of what was suggested. Best-effort: a
// failed insert is logged and the recommendations still go out.
func (u *recommendationUsecase) recordEvent(ctx context.Context, profileID int64, resourceType string, recs []domain.Recommendation) {
	topScore := 0
	if len(recs) > 0 {
		topScore = recs[0].Score
	}
	event := &domain.RecommendationEvent{
		ProfileID:    profileID,
		ResourceType: resourceType,
		Count:        len(recs),
		TopScore:     topScore,
		CreatedAt:    time.Now(),
	}
	if err := u.eventRepo.Record(ctx, event); err != nil {
		logger.Log.Warn("failed to record recommendation event",
			"profile_id", profileID, "resource_type", resourceType, "error", err)
	}
}

// storeError maps repository failures onto the error taxonomy: timeouts are
// retryable, everything else is internal.
func storeError(err error) error {
	if errors.Is(err, domain.ErrTransientStore) {
		return apperror.ServiceUnavailable("Store temporarily unavailable, retry shortly", err)
	}
	return apperror.Internal(err)
}
