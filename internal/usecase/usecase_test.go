package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-nest-backend/internal/domain"
	"go-nest-backend/internal/matching"
	"go-nest-backend/internal/usecase"
	"go-nest-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Repositories

type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func (m *MockProfileRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Profile, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Profile), args.Get(1).(int64), args.Error(2)
}

func (m *MockProfileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *MockProfileRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockShelterRepo struct {
	mock.Mock
}

func (m *MockShelterRepo) Create(ctx context.Context, shelter *domain.Shelter) error {
	return m.Called(ctx, shelter).Error(0)
}

func (m *MockShelterRepo) GetByID(ctx context.Context, id int64) (*domain.Shelter, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shelter), args.Error(1)
}

func (m *MockShelterRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Shelter, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Shelter), args.Get(1).(int64), args.Error(2)
}

func (m *MockShelterRepo) Update(ctx context.Context, shelter *domain.Shelter) error {
	return m.Called(ctx, shelter).Error(0)
}

func (m *MockShelterRepo) ReserveBed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShelterRepo) ReleaseBed(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockShelterRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}

func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}

func (m *MockJobRepo) ClaimOpening(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) ReleaseOpening(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockJobRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockAssignmentRepo struct {
	mock.Mock
}

func (m *MockAssignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) error {
	return m.Called(ctx, assignment).Error(0)
}

func (m *MockAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepo) FetchByProfile(ctx context.Context, profileID int64) ([]domain.Assignment, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Assignment), args.Error(1)
}

func (m *MockAssignmentRepo) EndActiveForProfile(ctx context.Context, profileID int64, resourceType string) ([]string, error) {
	args := m.Called(ctx, profileID, resourceType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockAssignmentRepo) End(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAssignmentRepo) RecordOutcome(ctx context.Context, id string, success bool, score *float64) error {
	return m.Called(ctx, id, success, score).Error(0)
}

func (m *MockAssignmentRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockEventRepo struct {
	mock.Mock
}

func (m *MockEventRepo) Record(ctx context.Context, event *domain.RecommendationEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func f64(v float64) *float64 { return &v }

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func newEngine(t *testing.T) *matching.Engine {
	t.Helper()
	policy, err := matching.NewPolicy(matching.DefaultReferenceKm)
	require.NoError(t, err)
	return matching.NewEngine(policy)
}

func consentingProfile() *domain.Profile {
	return &domain.Profile{
		ID:      1,
		Name:    "Ravi",
		Age:     35,
		Gender:  "male",
		GeoLat:  f64(12.97),
		GeoLng:  f64(77.59),
		Skills:  []string{"cooking"},
		Consent: true,
		Status:  domain.ProfileStatusActive,
	}
}

func staffCtx() context.Context {
	return context.WithValue(context.Background(), domain.KeyUserID, "staff-1")
}

func TestRecommendationGates(t *testing.T) {
	engine := newEngine(t)

	t.Run("unknown profile is not found", func(t *testing.T) {
		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetByID", mock.Anything, int64(42)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewRecommendationUsecase(profileRepo, new(MockShelterRepo), new(MockJobRepo), new(MockEventRepo), engine, 3)
		_, err := uc.RecommendShelters(context.Background(), 42, 3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Profile not found")
	})

	t.Run("profile without consent is rejected", func(t *testing.T) {
		profile := consentingProfile()
		profile.Consent = false

		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1)).Return(profile, nil)

		uc := usecase.NewRecommendationUsecase(profileRepo, new(MockShelterRepo), new(MockJobRepo), new(MockEventRepo), engine, 3)
		_, err := uc.RecommendJobs(context.Background(), 1, 3)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "consent")
	})
}

func TestRecommendShelters(t *testing.T) {
	engine := newEngine(t)

	profileRepo := new(MockProfileRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1)).Return(consentingProfile(), nil)

	shelters := []domain.Shelter{
		{ID: 1, Name: "Near But Full-ish", GeoLat: f64(12.97), GeoLng: f64(77.60), Capacity: 10, Occupied: 9},
		{ID: 2, Name: "Far But Empty", GeoLat: f64(12.90), GeoLng: f64(77.50), Capacity: 10, Occupied: 0},
		{ID: 3, Name: "Full", GeoLat: f64(12.97), GeoLng: f64(77.59), Capacity: 5, Occupied: 5},
	}
	shelterRepo := new(MockShelterRepo)
	shelterRepo.On("Fetch", mock.Anything, mock.Anything, 0).Return(shelters, int64(3), nil)

	eventRepo := new(MockEventRepo)
	eventRepo.On("Record", mock.Anything, mock.AnythingOfType("*domain.RecommendationEvent")).Return(nil)

	uc := usecase.NewRecommendationUsecase(profileRepo, shelterRepo, new(MockJobRepo), eventRepo, engine, 3)
	recs, err := uc.RecommendShelters(context.Background(), 1, 3)
	require.NoError(t, err)

	// The full shelter is filtered; availability outweighs the short walk.
	require.Len(t, recs, 2)
	assert.Equal(t, int64(2), recs[0].ResourceID)
	assert.Equal(t, int64(1), recs[1].ResourceID)
	eventRepo.AssertNumberOfCalls(t, "Record", 1)
}

func TestRecommendationSurvivesEventFailure(t *testing.T) {
	engine := newEngine(t)

	profileRepo := new(MockProfileRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1)).Return(consentingProfile(), nil)

	jobRepo := new(MockJobRepo)
	jobRepo.On("Fetch", mock.Anything, mock.Anything, 0).Return([]domain.Job{
		{ID: 1, Title: "Cook", OpenPositions: 1, RequiredSkills: []string{"cooking"}},
	}, int64(1), nil)

	eventRepo := new(MockEventRepo)
	eventRepo.On("Record", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := usecase.NewRecommendationUsecase(profileRepo, new(MockShelterRepo), jobRepo, eventRepo, engine, 3)
	recs, err := uc.RecommendJobs(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestAssignHappyPath(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1)).Return(consentingProfile(), nil)

	shelterRepo := new(MockShelterRepo)
	shelterRepo.On("ReserveBed", mock.Anything, int64(7)).Return(nil)

	assignmentRepo := new(MockAssignmentRepo)
	assignmentRepo.On("EndActiveForProfile", mock.Anything, int64(1), domain.ResourceTypeShelter).Return([]string{}, nil)
	assignmentRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Assignment")).Return(nil)

	uc := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, shelterRepo, new(MockJobRepo))
	assignment, err := uc.Assign(staffCtx(), 1, 7, domain.ResourceTypeShelter, 0.78)
	require.NoError(t, err)

	assert.NotEmpty(t, assignment.ID)
	assert.Equal(t, domain.AssignmentStatusActive, assignment.Status)
	assert.Equal(t, 0.78, assignment.AssignedScore)
	assert.Equal(t, "staff-1", assignment.AssignedBy)
	assert.WithinDuration(t, time.Now(), assignment.AssignedAt, time.Minute)
	shelterRepo.AssertCalled(t, "ReserveBed", mock.Anything, int64(7))
}

func TestAssignValidation(t *testing.T) {
	t.Run("requires authenticated actor", func(t *testing.T) {
		uc := usecase.NewAssignmentUsecase(new(MockAssignmentRepo), new(MockProfileRepo), new(MockShelterRepo), new(MockJobRepo))
		_, err := uc.Assign(context.Background(), 1, 7, domain.ResourceTypeShelter, 0.5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not authenticated")
	})

	t.Run("rejects unknown resource type", func(t *testing.T) {
		uc := usecase.NewAssignmentUsecase(new(MockAssignmentRepo), new(MockProfileRepo), new(MockShelterRepo), new(MockJobRepo))
		_, err := uc.Assign(staffCtx(), 1, 7, "training", 0.5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "resource_type")
	})

	t.Run("rejects profile without consent", func(t *testing.T) {
		profile := consentingProfile()
		profile.Consent = false
		profileRepo := new(MockProfileRepo)
		profileRepo.On("GetByID", mock.Anything, int64(1)).Return(profile, nil)

		uc := usecase.NewAssignmentUsecase(new(MockAssignmentRepo), profileRepo, new(MockShelterRepo), new(MockJobRepo))
		_, err := uc.Assign(staffCtx(), 1, 7, domain.ResourceTypeShelter, 0.5)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "consent")
	})
}

func TestAssignConflictWhenResourceFull(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1)).Return(consentingProfile(), nil)

	shelterRepo := new(MockShelterRepo)
	shelterRepo.On("ReserveBed", mock.Anything, int64(7)).Return(domain.ErrResourceUnavailable)

	assignmentRepo := new(MockAssignmentRepo)

	uc := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, shelterRepo, new(MockJobRepo))
	_, err := uc.Assign(staffCtx(), 1, 7, domain.ResourceTypeShelter, 0.5)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no longer available")
	assignmentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAssignReleasesClaimOnCreateFailure(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1)).Return(consentingProfile(), nil)

	jobRepo := new(MockJobRepo)
	jobRepo.On("ClaimOpening", mock.Anything, int64(3)).Return(nil)
	jobRepo.On("ReleaseOpening", mock.Anything, int64(3)).Return(nil)

	assignmentRepo := new(MockAssignmentRepo)
	assignmentRepo.On("EndActiveForProfile", mock.Anything, int64(1), domain.ResourceTypeJob).Return([]string{}, nil)
	assignmentRepo.On("Create", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, new(MockShelterRepo), jobRepo)
	_, err := uc.Assign(staffCtx(), 1, 3, domain.ResourceTypeJob, 0.5)
	assert.Error(t, err)
	jobRepo.AssertCalled(t, "ReleaseOpening", mock.Anything, int64(3))
}

func TestAssignSupersedesPriorActive(t *testing.T) {
	profileRepo := new(MockProfileRepo)
	profileRepo.On("GetByID", mock.Anything, int64(1)).Return(consentingProfile(), nil)

	shelterRepo := new(MockShelterRepo)
	shelterRepo.On("ReserveBed", mock.Anything, int64(9)).Return(nil)

	assignmentRepo := new(MockAssignmentRepo)
	assignmentRepo.On("EndActiveForProfile", mock.Anything, int64(1), domain.ResourceTypeShelter).Return([]string{"old-assignment"}, nil)
	assignmentRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	uc := usecase.NewAssignmentUsecase(assignmentRepo, profileRepo, shelterRepo, new(MockJobRepo))
	_, err := uc.Assign(staffCtx(), 1, 9, domain.ResourceTypeShelter, 0.6)
	require.NoError(t, err)
	assignmentRepo.AssertCalled(t, "EndActiveForProfile", mock.Anything, int64(1), domain.ResourceTypeShelter)
}

func TestEndAssignment(t *testing.T) {
	t.Run("ends an active assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		assignmentRepo.On("GetByID", mock.Anything, "a1").Return(&domain.Assignment{
			ID: "a1", Status: domain.AssignmentStatusActive,
		}, nil)
		assignmentRepo.On("End", mock.Anything, "a1").Return(nil)

		uc := usecase.NewAssignmentUsecase(assignmentRepo, new(MockProfileRepo), new(MockShelterRepo), new(MockJobRepo))
		assert.NoError(t, uc.End(staffCtx(), "a1"))
	})

	t.Run("ending twice conflicts", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		assignmentRepo.On("GetByID", mock.Anything, "a1").Return(&domain.Assignment{
			ID: "a1", Status: domain.AssignmentStatusEnded,
		}, nil)

		uc := usecase.NewAssignmentUsecase(assignmentRepo, new(MockProfileRepo), new(MockShelterRepo), new(MockJobRepo))
		err := uc.End(staffCtx(), "a1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "already ended")
	})

	t.Run("ending never touches occupancy", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		assignmentRepo.On("GetByID", mock.Anything, "a1").Return(&domain.Assignment{
			ID: "a1", ProfileID: 1, ResourceID: 7,
			ResourceType: domain.ResourceTypeShelter, Status: domain.AssignmentStatusActive,
		}, nil)
		assignmentRepo.On("End", mock.Anything, "a1").Return(nil)

		shelterRepo := new(MockShelterRepo)

		uc := usecase.NewAssignmentUsecase(assignmentRepo, new(MockProfileRepo), shelterRepo, new(MockJobRepo))
		require.NoError(t, uc.End(staffCtx(), "a1"))
		shelterRepo.AssertNotCalled(t, "ReleaseBed", mock.Anything, mock.Anything)
	})
}

func TestRecordOutcome(t *testing.T) {
	t.Run("rejects out-of-range score", func(t *testing.T) {
		uc := usecase.NewAssignmentUsecase(new(MockAssignmentRepo), new(MockProfileRepo), new(MockShelterRepo), new(MockJobRepo))
		bad := 1.5
		err := uc.RecordOutcome(staffCtx(), "a1", true, &bad)
		assert.Error(t, err)
	})

	t.Run("records outcome on the assignment", func(t *testing.T) {
		assignmentRepo := new(MockAssignmentRepo)
		score := 0.85
		assignmentRepo.On("RecordOutcome", mock.Anything, "a1", true, &score).Return(nil)

		uc := usecase.NewAssignmentUsecase(assignmentRepo, new(MockProfileRepo), new(MockShelterRepo), new(MockJobRepo))
		assert.NoError(t, uc.RecordOutcome(staffCtx(), "a1", true, &score))
	})
}

func TestProfileIntake(t *testing.T) {
	validate := newValidator(t)

	t.Run("derives priority from age when blank", func(t *testing.T) {
		repo := new(MockProfileRepo)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Profile")).Return(nil).Run(func(args mock.Arguments) {
			p := args.Get(1).(*domain.Profile)
			assert.Equal(t, domain.PriorityHigh, p.Priority)
			assert.Equal(t, domain.ProfileStatusActive, p.Status)
		})

		uc := usecase.NewProfileUsecase(repo, validate)
		err := uc.CreateProfile(context.Background(), &domain.Profile{Name: "Asha", Age: 70, Consent: true})
		assert.NoError(t, err)
	})

	t.Run("rejects invalid coordinates", func(t *testing.T) {
		uc := usecase.NewProfileUsecase(new(MockProfileRepo), validate)
		err := uc.CreateProfile(context.Background(), &domain.Profile{Name: "Asha", GeoLat: f64(95.0), GeoLng: f64(10.0)})
		assert.Error(t, err)
	})

	t.Run("rejects comma-ridden skill tags", func(t *testing.T) {
		uc := usecase.NewProfileUsecase(new(MockProfileRepo), validate)
		err := uc.CreateProfile(context.Background(), &domain.Profile{Name: "Asha", Skills: []string{"cooking,cleaning"}})
		assert.Error(t, err)
	})
}

func TestResourceIntake(t *testing.T) {
	validate := newValidator(t)

	t.Run("rejects shelter with occupied over capacity", func(t *testing.T) {
		uc := usecase.NewResourceUsecase(new(MockShelterRepo), new(MockJobRepo), validate)
		err := uc.CreateShelter(context.Background(), &domain.Shelter{Name: "Hope House", Capacity: 5, Occupied: 6})
		assert.Error(t, err)
	})

	t.Run("rejects job with open over total", func(t *testing.T) {
		total := 2
		uc := usecase.NewResourceUsecase(new(MockShelterRepo), new(MockJobRepo), validate)
		err := uc.CreateJob(context.Background(), &domain.Job{Title: "Cook", OpenPositions: 3, TotalPositions: &total})
		assert.Error(t, err)
	})
}
