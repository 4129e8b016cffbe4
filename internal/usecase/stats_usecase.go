package usecase

import (
	"context"

	"go-nest-backend/internal/domain"
	"go-nest-backend/internal/matching"
)

// Statistics summarizes the data the engine ranks over plus its fixed
// scoring configuration, for the admin dashboard.
type Statistics struct {
	TotalProfiles        int64                       `json:"total_profiles"`
	TotalShelters        int64                       `json:"total_shelters"`
	TotalJobs            int64                       `json:"total_jobs"`
	TotalAssignments     int64                       `json:"total_assignments"`
	TotalRecommendations int64                       `json:"total_recommendations"`
	ReferenceDistanceKm  float64                     `json:"reference_distance_km"`
	Weights              map[string]matching.Weights `json:"weights"`
}

type StatsUsecase interface {
	GetStatistics(ctx context.Context) (*Statistics, error)
}

type statsUsecase struct {
	profileRepo    domain.ProfileRepository
	shelterRepo    domain.ShelterRepository
	jobRepo        domain.JobRepository
	assignmentRepo domain.AssignmentRepository
	eventRepo      domain.RecommendationEventRepository
	referenceKm    float64
}

func NewStatsUsecase(
	profileRepo domain.ProfileRepository,
	shelterRepo domain.ShelterRepository,
	jobRepo domain.JobRepository,
	assignmentRepo domain.AssignmentRepository,
	eventRepo domain.RecommendationEventRepository,
	referenceKm float64,
) StatsUsecase {
	return &statsUsecase{
		profileRepo:    profileRepo,
		shelterRepo:    shelterRepo,
		jobRepo:        jobRepo,
		assignmentRepo: assignmentRepo,
		eventRepo:      eventRepo,
		referenceKm:    referenceKm,
	}
}

func (u *statsUsecase) GetStatistics(ctx context.Context) (*Statistics, error) {
	stats := &Statistics{
		ReferenceDistanceKm: u.referenceKm,
		Weights: map[string]matching.Weights{
			domain.ResourceTypeShelter: matching.ShelterWeights,
			domain.ResourceTypeJob:     matching.JobWeights,
		},
	}

	var err error
	if stats.TotalProfiles, err = u.profileRepo.Count(ctx); err != nil {
		return nil, storeError(err)
	}
	if stats.TotalShelters, err = u.shelterRepo.Count(ctx); err != nil {
		return nil, storeError(err)
	}
	if stats.TotalJobs, err = u.jobRepo.Count(ctx); err != nil {
		return nil, storeError(err)
	}
	if stats.TotalAssignments, err = u.assignmentRepo.Count(ctx); err != nil {
		return nil, storeError(err)
	}
	if stats.TotalRecommendations, err = u.eventRepo.Count(ctx); err != nil {
		return nil, storeError(err)
	}

	return stats, nil
}
