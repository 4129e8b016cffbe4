package matching

import (
	"testing"

	"go-nest-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestAvailabilityScore(t *testing.T) {
	t.Run("empty pool scores exactly 1.0", func(t *testing.T) {
		score, err := AvailabilityScore(0, 10)
		assert.NoError(t, err)
		assert.Equal(t, 1.0, score)
	})

	t.Run("full pool scores exactly 0.0", func(t *testing.T) {
		score, err := AvailabilityScore(10, 10)
		assert.NoError(t, err)
		assert.Equal(t, 0.0, score)
	})

	t.Run("linear in remaining fraction", func(t *testing.T) {
		score, err := AvailabilityScore(9, 10)
		assert.NoError(t, err)
		assert.InDelta(t, 0.1, score, 1e-9)
	})

	t.Run("monotonically non-increasing in occupied", func(t *testing.T) {
		prev := 2.0
		for occupied := 0; occupied <= 20; occupied++ {
			score, err := AvailabilityScore(occupied, 20)
			assert.NoError(t, err)
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 1.0)
			assert.LessOrEqual(t, score, prev)
			prev = score
		}
	})

	t.Run("rejects malformed occupancy", func(t *testing.T) {
		cases := []struct{ occupied, total int }{
			{0, 0},
			{0, -1},
			{-1, 10},
			{11, 10},
		}
		for _, tc := range cases {
			_, err := AvailabilityScore(tc.occupied, tc.total)
			assert.ErrorIs(t, err, domain.ErrInvalidCapacity)
		}
	})
}
