package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"go-nest-backend/internal/domain"
	"go-nest-backend/internal/repository/memory"
	"go-nest-backend/internal/usecase"
	"go-nest-backend/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests run against the in-memory store, where claims go through the
// same check-and-increment path the SQL layer expresses as a conditional
// UPDATE. Two staff members accepting recommendations for the last bed must
// never both succeed.

func seedRaceFixtures(t *testing.T) (domain.ProfileRepository, domain.ShelterRepository, domain.AssignmentRepository) {
	t.Helper()
	ctx := context.Background()

	profileRepo := memory.NewProfileRepository()
	for _, name := range []string{"Ravi", "Asha"} {
		require.NoError(t, profileRepo.Create(ctx, &domain.Profile{
			Name:    name,
			Consent: true,
			Status:  domain.ProfileStatusActive,
		}))
	}

	shelterRepo := memory.NewShelterRepository()
	require.NoError(t, shelterRepo.Create(ctx, &domain.Shelter{
		Name:     "Last Bed House",
		Capacity: 3,
		Occupied: 2,
	}))

	return profileRepo, shelterRepo, memory.NewAssignmentRepository()
}

func TestConcurrentAssignLastBed(t *testing.T) {
	profileRepo, shelterRepo, assignmentRepo := seedRaceFixtures(t)
	uc := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, shelterRepo, memory.NewJobRepository())

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ctx := context.WithValue(context.Background(), domain.KeyUserID, "staff-1")
			_, errs[i] = uc.Assign(ctx, int64(i+1), 1, domain.ResourceTypeShelter, 0.7)
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		if err == nil {
			won++
			continue
		}
		lost++
		var appErr *apperror.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, http.StatusConflict, appErr.Code)
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	shelter, err := shelterRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, shelter.Capacity, shelter.Occupied)
}

func TestEndThenReassignStillBlockedWhenFull(t *testing.T) {
	profileRepo, shelterRepo, assignmentRepo := seedRaceFixtures(t)
	uc := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, shelterRepo, memory.NewJobRepository())
	ctx := context.WithValue(context.Background(), domain.KeyUserID, "staff-1")

	assignment, err := uc.Assign(ctx, 1, 1, domain.ResourceTypeShelter, 0.7)
	require.NoError(t, err)
	require.NoError(t, uc.End(ctx, assignment.ID))

	// Ending does not free the bed, so the shelter stays full.
	_, err = uc.Assign(ctx, 2, 1, domain.ResourceTypeShelter, 0.7)
	assert.Error(t, err)

	shelter, err := shelterRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, shelter.Occupied)
}

func TestReassignSameTypeSupersedes(t *testing.T) {
	profileRepo, shelterRepo, assignmentRepo := seedRaceFixtures(t)
	ctx := context.WithValue(context.Background(), domain.KeyUserID, "staff-1")

	require.NoError(t, shelterRepo.Create(context.Background(), &domain.Shelter{
		Name:     "Second House",
		Capacity: 4,
		Occupied: 0,
	}))

	uc := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, shelterRepo, memory.NewJobRepository())

	first, err := uc.Assign(ctx, 1, 1, domain.ResourceTypeShelter, 0.7)
	require.NoError(t, err)
	second, err := uc.Assign(ctx, 1, 2, domain.ResourceTypeShelter, 0.8)
	require.NoError(t, err)

	history, err := uc.ListByProfile(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)

	byID := map[string]domain.Assignment{}
	for _, a := range history {
		byID[a.ID] = a
	}
	assert.Equal(t, domain.AssignmentStatusEnded, byID[first.ID].Status)
	assert.Equal(t, domain.AssignmentStatusActive, byID[second.ID].Status)
}
