package usecase

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-nest-backend/internal/domain"
	"go-nest-backend/pkg/apperror"
	"go-nest-backend/pkg/logger"

	"github.com/google/uuid"
)

type assignmentUsecase struct {
	assignmentRepo domain.AssignmentRepository
	profileRepo    domain.ProfileRepository
	shelterRepo    domain.ShelterRepository
	jobRepo        domain.JobRepository
}

func NewAssignmentUsecase(
	assignmentRepo domain.AssignmentRepository,
	profileRepo domain.ProfileRepository,
	shelterRepo domain.ShelterRepository,
	jobRepo domain.JobRepository,
) domain.AssignmentUsecase {
	return &assignmentUsecase{
		assignmentRepo: assignmentRepo,
		profileRepo:    profileRepo,
		shelterRepo:    shelterRepo,
		jobRepo:        jobRepo,
	}
}

// Assign turns an accepted recommendation into a durable assignment.
//
// Capacity is claimed first through an atomic conditional update, which is
// also the commit-time re-validation: a recommendation computed minutes ago
// may point at a resource that has since filled up. Everything after the
// claim compensates by releasing it on failure, so a failed call leaves no
// partial state. Superseding closes any prior ACTIVE assignment of the same
// type, keeping at most one per (profile, type).
func (u *assignmentUsecase) Assign(ctx context.Context, profileID, resourceID int64, resourceType string, score float64) (*domain.Assignment, error) {
	actor, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || actor == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}

	if resourceType != domain.ResourceTypeShelter && resourceType != domain.ResourceTypeJob {
		return nil, apperror.BadRequest("resource_type must be shelter or job")
	}

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

	if err := u.claim(ctx, resourceID, resourceType); err != nil {
		switch {
		case errors.Is(err, domain.ErrResourceUnavailable):
			return nil, apperror.Conflict("Resource no longer available")
		case errors.Is(err, domain.ErrNotFound):
			return nil, apperror.NotFound("Resource not found")
		default:
			return nil, storeError(err)
		}
	}

	superseded, err := u.assignmentRepo.EndActiveForProfile(ctx, profileID, resourceType)
	if err != nil {
		u.release(ctx, resourceID, resourceType)
		return nil, storeError(err)
	}
	if len(superseded) > 0 {
		logger.Log.Info("superseded prior assignment",
			"profile_id", profileID, "resource_type", resourceType, "ended", superseded)
	}

	assignment := &domain.Assignment{
		ID:            uuid.NewString(),
		ProfileID:     profileID,
		ResourceID:    resourceID,
		ResourceType:  resourceType,
		AssignedScore: score,
		Status:        domain.AssignmentStatusActive,
		AssignedBy:    actor,
		AssignedAt:    time.Now(),
	}
	if err := u.assignmentRepo.Create(ctx, assignment); err != nil {
		u.release(ctx, resourceID, resourceType)
		return nil, storeError(err)
	}

	return assignment, nil
}

// End transitions the assignment to ended. It deliberately does NOT free
// the resource's capacity: discharge back to the bed/opening pool is a
// separate, explicit operation on the resource itself.
func (u *assignmentUsecase) End(ctx context.Context, id string) error {
	assignment, err := u.assignmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Assignment not found")
		}
		return storeError(err)
	}
	if assignment.Status == domain.AssignmentStatusEnded {
		return apperror.Conflict("Assignment already ended")
	}
	if err := u.assignmentRepo.End(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}

func (u *assignmentUsecase) RecordOutcome(ctx context.Context, id string, success bool, score *float64) error {
	if score != nil && (*score < 0 || *score > 1) {
		return apperror.BadRequest("outcome_score must be between 0 and 1")
	}
	if err := u.assignmentRepo.RecordOutcome(ctx, id, success, score); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Assignment not found")
		}
		return storeError(err)
	}
	return nil
}

func (u *assignmentUsecase) ListByProfile(ctx context.Context, profileID int64) ([]domain.Assignment, error) {
	assignments, err := u.assignmentRepo.FetchByProfile(ctx, profileID)
	if err != nil {
		return nil, storeError(err)
	}
	return assignments, nil
}

func (u *assignmentUsecase) claim(ctx context.Context, resourceID int64, resourceType string) error {
	if resourceType == domain.ResourceTypeShelter {
		return u.shelterRepo.ReserveBed(ctx, resourceID)
	}
	return u.jobRepo.ClaimOpening(ctx, resourceID)
}

func (u *assignmentUsecase) release(ctx context.Context, resourceID int64, resourceType string) {
	var err error
	if resourceType == domain.ResourceTypeShelter {
		err = u.shelterRepo.ReleaseBed(ctx, resourceID)
	} else {
		err = u.jobRepo.ReleaseOpening(ctx, resourceID)
	}
	if err != nil {
		logger.Log.Error("failed to release claimed capacity",
			"resource_type", resourceType, "resource_id", resourceID, "error", err)
	}
}
