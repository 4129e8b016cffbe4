package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-nest-backend/internal/domain"
	"go-nest-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type profileUsecase struct {
	repo     domain.ProfileRepository
	validate *validator.Validate
}

func NewProfileUsecase(repo domain.ProfileRepository, validate *validator.Validate) domain.ProfileUsecase {
	return &profileUsecase{repo: repo, validate: validate}
}

func (u *profileUsecase) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	if err := u.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}

	if profile.Priority == "" {
		profile.Priority = derivePriority(profile)
	}
	if profile.Status == "" {
		profile.Status = domain.ProfileStatusActive
	}
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = time.Now()

	return u.repo.Create(ctx, profile)
}

func (u *profileUsecase) GetProfile(ctx context.Context, id int64) (*domain.Profile, error) {
	profile, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Profile not found")
		}
		return nil, storeError(err)
	}
	return profile, nil
}

func (u *profileUsecase) ListProfiles(ctx context.Context, page, pageSize int) ([]domain.Profile, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	return u.repo.Fetch(ctx, pageSize, offset)
}

func (u *profileUsecase) UpdateProfile(ctx context.Context, profile *domain.Profile) error {
	if err := u.validate.Struct(profile); err != nil {
		return apperror.BadRequest(err.Error())
	}
	profile.UpdatedAt = time.Now()
	if err := u.repo.Update(ctx, profile); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Profile not found")
		}
		return storeError(err)
	}
	return nil
}

// derivePriority assigns a tier when intake staff leave it blank: minors and
// the elderly are high, critical health needs are critical, everyone else
// is medium.
func derivePriority(profile *domain.Profile) string {
	needs := strings.ToLower(profile.Needs)
	if strings.Contains(needs, "critical") {
		return domain.PriorityCritical
	}
	if profile.Age > 0 && (profile.Age < 18 || profile.Age > 65) {
		return domain.PriorityHigh
	}
	if strings.Contains(needs, "chronic") {
		return domain.PriorityHigh
	}
	return domain.PriorityMedium
}

type resourceUsecase struct {
	shelterRepo domain.ShelterRepository
	jobRepo     domain.JobRepository
	validate    *validator.Validate
}

func NewResourceUsecase(shelterRepo domain.ShelterRepository, jobRepo domain.JobRepository, validate *validator.Validate) domain.ResourceUsecase {
	return &resourceUsecase{shelterRepo: shelterRepo, jobRepo: jobRepo, validate: validate}
}

func (u *resourceUsecase) CreateShelter(ctx context.Context, shelter *domain.Shelter) error {
	if err := u.validate.Struct(shelter); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if shelter.Occupied > shelter.Capacity {
		return apperror.BadRequest("occupied cannot exceed capacity")
	}
	shelter.CreatedAt = time.Now()
	shelter.UpdatedAt = time.Now()
	return u.shelterRepo.Create(ctx, shelter)
}

func (u *resourceUsecase) ListShelters(ctx context.Context, page, pageSize int) ([]domain.Shelter, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	return u.shelterRepo.Fetch(ctx, pageSize, offset)
}

func (u *resourceUsecase) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := u.validate.Struct(job); err != nil {
		return apperror.BadRequest(err.Error())
	}
	if job.TotalPositions != nil && job.OpenPositions > *job.TotalPositions {
		return apperror.BadRequest("open_positions cannot exceed total_positions")
	}
	job.CreatedAt = time.Now()
	job.UpdatedAt = time.Now()
	return u.jobRepo.Create(ctx, job)
}

func (u *resourceUsecase) ListJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize

	return u.jobRepo.Fetch(ctx, pageSize, offset)
}
