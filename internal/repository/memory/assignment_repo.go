package memory

import (
	"context"
	"sync"
	"time"

	"go-nest-backend/internal/domain"
)

type assignmentRepo struct {
	mu          sync.Mutex
	assignments map[string]domain.Assignment
	order       []string
}

func NewAssignmentRepository() domain.AssignmentRepository {
	return &assignmentRepo{assignments: make(map[string]domain.Assignment)}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *domain.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments[assignment.ID] = *assignment
	r.order = append(r.order, assignment.ID)
	return nil
}

func (r *assignmentRepo) GetByID(ctx context.Context, id string) (*domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &assignment, nil
}

func (r *assignmentRepo) FetchByProfile(ctx context.Context, profileID int64) ([]domain.Assignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []domain.Assignment
	for _, id := range r.order {
		if a := r.assignments[id]; a.ProfileID == profileID {
			result = append(result, a)
		}
	}
	return result, nil
}

func (r *assignmentRepo) EndActiveForProfile(ctx context.Context, profileID int64, resourceType string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	var ended []string
	for _, id := range r.order {
		a := r.assignments[id]
		if a.ProfileID == profileID && a.ResourceType == resourceType && a.Status == domain.AssignmentStatusActive {
			a.Status = domain.AssignmentStatusEnded
			a.EndedAt = &now
			r.assignments[id] = a
			ended = append(ended, id)
		}
	}
	return ended, nil
}

func (r *assignmentRepo) End(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	assignment.Status = domain.AssignmentStatusEnded
	assignment.EndedAt = &now
	r.assignments[id] = assignment
	return nil
}

func (r *assignmentRepo) RecordOutcome(ctx context.Context, id string, success bool, score *float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	assignment, ok := r.assignments[id]
	if !ok {
		return domain.ErrNotFound
	}
	assignment.OutcomeSuccess = &success
	assignment.OutcomeScore = score
	r.assignments[id] = assignment
	return nil
}

func (r *assignmentRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.assignments)), nil
}

type eventRepo struct {
	mu     sync.Mutex
	nextID int64
	events []domain.RecommendationEvent
}

func NewRecommendationEventRepository() domain.RecommendationEventRepository {
	return &eventRepo{nextID: 1}
}

func (r *eventRepo) Record(ctx context.Context, event *domain.RecommendationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.ID = r.nextID
	r.nextID++
	r.events = append(r.events, *event)
	return nil
}

func (r *eventRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.events)), nil
}
