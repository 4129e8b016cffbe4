// Package memory holds mutex-guarded in-memory implementations of the
// domain repositories. main falls back to them when DATABASE_URL is unset;
// the assignment tests use them to exercise real concurrency.
package memory

import (
	"context"
	"sync"
	"time"

	"go-nest-backend/internal/domain"
)

type profileRepo struct {
	mu       sync.RWMutex
	nextID   int64
	profiles map[int64]domain.Profile
}

func NewProfileRepository() domain.ProfileRepository {
	return &profileRepo{nextID: 1, profiles: make(map[int64]domain.Profile)}
}

func (r *profileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile.ID = r.nextID
	r.nextID++
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id int64) (*domain.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &profile, nil
}

func (r *profileRepo) Fetch(ctx context.Context, limit, offset int) ([]domain.Profile, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]domain.Profile, 0, len(r.profiles))
	for id := int64(1); id < r.nextID; id++ {
		if profile, ok := r.profiles[id]; ok {
			all = append(all, profile)
		}
	}
	total := int64(len(all))
	return page(all, limit, offset), total, nil
}

func (r *profileRepo) Update(ctx context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; !ok {
		return domain.ErrNotFound
	}
	profile.UpdatedAt = time.Now()
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *profileRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile, ok := r.profiles[id]
	if !ok {
		return domain.ErrNotFound
	}
	profile.Status = status
	profile.UpdatedAt = time.Now()
	r.profiles[id] = profile
	return nil
}

func (r *profileRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.profiles)), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
