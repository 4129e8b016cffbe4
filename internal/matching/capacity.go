package matching

import (
	"fmt"

	"go-nest-backend/internal/domain"
)

// AvailabilityScore is linear in the remaining fraction of a bed/opening
// pool: empty pool scores 1.0, full pool 0.0. Malformed occupancy data is an
// error so the caller can skip the record rather than rank it on garbage.
func AvailabilityScore(occupied, total int) (float64, error) {
	if total <= 0 {
		return 0, fmt.Errorf("%w: total %d", domain.ErrInvalidCapacity, total)
	}
	if occupied < 0 || occupied > total {
		return 0, fmt.Errorf("%w: occupied %d of %d", domain.ErrInvalidCapacity, occupied, total)
	}
	return float64(total-occupied) / float64(total), nil
}
