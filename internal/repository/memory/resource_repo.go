package memory

import (
	"context"
	"sync"
	"time"

	"go-nest-backend/internal/domain"
)

type shelterRepo struct {
	mu       sync.Mutex
	nextID   int64
	shelters map[int64]domain.Shelter
}

func NewShelterRepository() domain.ShelterRepository {
	return &shelterRepo{nextID: 1, shelters: make(map[int64]domain.Shelter)}
}

func (r *shelterRepo) Create(ctx context.Context, shelter *domain.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shelter.ID = r.nextID
	r.nextID++
	r.shelters[shelter.ID] = *shelter
	return nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id int64) (*domain.Shelter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shelter, ok := r.shelters[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &shelter, nil
}

func (r *shelterRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Shelter, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Shelter, 0, len(r.shelters))
	for id := int64(1); id < r.nextID; id++ {
		if shelter, ok := r.shelters[id]; ok {
			all = append(all, shelter)
		}
	}
	total := int64(len(all))
	return page(all, limit, offset), total, nil
}

func (r *shelterRepo) Update(ctx context.Context, shelter *domain.Shelter) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shelters[shelter.ID]; !ok {
		return domain.ErrNotFound
	}
	shelter.UpdatedAt = time.Now()
	r.shelters[shelter.ID] = *shelter
	return nil
}

// ReserveBed is the critical section: check-and-increment under the lock so
// two concurrent reservations can never both take the last bed.
func (r *shelterRepo) ReserveBed(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shelter, ok := r.shelters[id]
	if !ok {
		return domain.ErrNotFound
	}
	if shelter.Occupied >= shelter.Capacity {
		return domain.ErrResourceUnavailable
	}
	shelter.Occupied++
	shelter.UpdatedAt = time.Now()
	r.shelters[id] = shelter
	return nil
}

func (r *shelterRepo) ReleaseBed(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	shelter, ok := r.shelters[id]
	if !ok {
		return domain.ErrNotFound
	}
	if shelter.Occupied > 0 {
		shelter.Occupied--
	}
	shelter.UpdatedAt = time.Now()
	r.shelters[id] = shelter
	return nil
}

func (r *shelterRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.shelters)), nil
}

type jobRepo struct {
	mu     sync.Mutex
	nextID int64
	jobs   map[int64]domain.Job
}

func NewJobRepository() domain.JobRepository {
	return &jobRepo{nextID: 1, jobs: make(map[int64]domain.Job)}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job.ID = r.nextID
	r.nextID++
	r.jobs[job.ID] = *job
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &job, nil
}

func (r *jobRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]domain.Job, 0, len(r.jobs))
	for id := int64(1); id < r.nextID; id++ {
		if job, ok := r.jobs[id]; ok {
			all = append(all, job)
		}
	}
	total := int64(len(all))
	return page(all, limit, offset), total, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[job.ID]; !ok {
		return domain.ErrNotFound
	}
	job.UpdatedAt = time.Now()
	r.jobs[job.ID] = *job
	return nil
}

func (r *jobRepo) ClaimOpening(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	if job.OpenPositions <= 0 {
		return domain.ErrResourceUnavailable
	}
	job.OpenPositions--
	job.UpdatedAt = time.Now()
	r.jobs[id] = job
	return nil
}

func (r *jobRepo) ReleaseOpening(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.OpenPositions++
	job.UpdatedAt = time.Now()
	r.jobs[id] = job
	return nil
}

func (r *jobRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.jobs)), nil
}
