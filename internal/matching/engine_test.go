package matching

import (
	"testing"

	"go-nest-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int { return &v }
func str(v string) *string { return &v }

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	policy, err := NewPolicy(DefaultReferenceKm)
	require.NoError(t, err)
	return NewEngine(policy)
}

func testProfile() *domain.Profile {
	return &domain.Profile{
		ID:      1,
		Name:    "Ravi",
		Age:     35,
		Gender:  "male",
		GeoLat:  f64(12.97),
		GeoLng:  f64(77.59),
		Skills:  []string{"cooking"},
		Consent: true,
	}
}

func shelterCandidates(shelters []domain.Shelter) []Candidate {
	candidates := make([]Candidate, len(shelters))
	for i := range shelters {
		candidates[i] = ShelterCandidate{Shelter: &shelters[i]}
	}
	return candidates
}

func TestEngineEligibilityFilter(t *testing.T) {
	engine := newTestEngine(t)
	profile := testProfile()

	t.Run("full shelter is never recommended", func(t *testing.T) {
		shelters := []domain.Shelter{
			// Perfect location, perfect amenity match, zero beds.
			{ID: 1, Name: "Full House", GeoLat: f64(12.97), GeoLng: f64(77.59), Capacity: 10, Occupied: 10, Amenities: []string{"cooking"}},
			{ID: 2, Name: "Open House", GeoLat: f64(12.90), GeoLng: f64(77.50), Capacity: 10, Occupied: 5},
		}
		recs := engine.Recommend(profile, shelterCandidates(shelters), 5)
		require.Len(t, recs, 1)
		assert.Equal(t, int64(2), recs[0].ResourceID)
	})

	t.Run("gender policy mismatch excludes", func(t *testing.T) {
		shelters := []domain.Shelter{
			{ID: 1, Name: "Women Only", Capacity: 10, Occupied: 0, GenderPolicy: str("female")},
		}
		recs := engine.Recommend(profile, shelterCandidates(shelters), 5)
		assert.Empty(t, recs)
	})

	t.Run("age restriction excludes", func(t *testing.T) {
		shelters := []domain.Shelter{
			{ID: 1, Name: "Youth Shelter", Capacity: 10, Occupied: 0, MaxAge: i(25)},
			{ID: 2, Name: "Seniors", Capacity: 10, Occupied: 0, MinAge: i(60)},
			{ID: 3, Name: "Adults", Capacity: 10, Occupied: 0, MinAge: i(18), MaxAge: i(65)},
		}
		recs := engine.Recommend(profile, shelterCandidates(shelters), 5)
		require.Len(t, recs, 1)
		assert.Equal(t, int64(3), recs[0].ResourceID)
	})

	t.Run("job with no openings excluded", func(t *testing.T) {
		jobs := []Candidate{
			JobCandidate{Job: &domain.Job{ID: 1, Title: "Cook", OpenPositions: 0}},
			JobCandidate{Job: &domain.Job{ID: 2, Title: "Cleaner", OpenPositions: 2}},
		}
		recs := engine.Recommend(profile, jobs, 5)
		require.Len(t, recs, 1)
		assert.Equal(t, int64(2), recs[0].ResourceID)
	})
}

func TestEngineRanking(t *testing.T) {
	engine := newTestEngine(t)
	profile := testProfile()

	t.Run("availability dominance over proximity", func(t *testing.T) {
		// A is a short walk away but nearly full; B is across town and
		// empty. Shelter weights 0.4/0.4/0.2 put B on top.
		shelters := []domain.Shelter{
			{ID: 1, Name: "A", GeoLat: f64(12.97), GeoLng: f64(77.60), Capacity: 10, Occupied: 9},
			{ID: 2, Name: "B", GeoLat: f64(12.90), GeoLng: f64(77.50), Capacity: 10, Occupied: 0},
		}
		recs := engine.Recommend(profile, shelterCandidates(shelters), 3)
		require.Len(t, recs, 2)
		assert.Equal(t, "B", recs[0].ResourceName)
		assert.Equal(t, "A", recs[1].ResourceName)
		assert.Greater(t, recs[0].Score, recs[1].Score)
	})

	t.Run("output sorted descending and truncated to k", func(t *testing.T) {
		shelters := make([]domain.Shelter, 0, 8)
		for id := int64(1); id <= 8; id++ {
			shelters = append(shelters, domain.Shelter{
				ID: id, Name: "S", GeoLat: f64(12.97), GeoLng: f64(77.59),
				Capacity: 10, Occupied: int(id - 1),
			})
		}
		recs := engine.Recommend(profile, shelterCandidates(shelters), 3)
		require.Len(t, recs, 3)
		for n := 1; n < len(recs); n++ {
			assert.GreaterOrEqual(t, recs[n-1].Score, recs[n].Score)
		}
	})

	t.Run("ties break on distance then id", func(t *testing.T) {
		shelters := []domain.Shelter{
			{ID: 7, Name: "Far", GeoLat: f64(12.80), GeoLng: f64(77.40), Capacity: 10, Occupied: 0},
			{ID: 3, Name: "Near", GeoLat: f64(12.97), GeoLng: f64(77.59), Capacity: 10, Occupied: 0},
			{ID: 9, Name: "Near Twin", GeoLat: f64(12.97), GeoLng: f64(77.59), Capacity: 10, Occupied: 0},
		}
		// Distances differ, so the near pair comes first; the identical
		// twins order by id.
		recs := engine.Recommend(profile, shelterCandidates(shelters), 3)
		require.Len(t, recs, 3)
		assert.Equal(t, int64(3), recs[0].ResourceID)
		assert.Equal(t, int64(9), recs[1].ResourceID)
		assert.Equal(t, int64(7), recs[2].ResourceID)
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		shelters := []domain.Shelter{
			{ID: 2, Name: "X", Capacity: 10, Occupied: 4},
			{ID: 1, Name: "Y", Capacity: 10, Occupied: 4},
		}
		first := engine.Recommend(profile, shelterCandidates(shelters), 3)
		second := engine.Recommend(profile, shelterCandidates(shelters), 3)
		assert.Equal(t, first, second)
	})
}

func TestEngineBadRecordSkipped(t *testing.T) {
	engine := newTestEngine(t)
	profile := testProfile()

	// Occupied > capacity slips past the eligibility filter shape but fails
	// capacity scoring; the batch must survive it.
	jobs := []Candidate{
		JobCandidate{Job: &domain.Job{ID: 1, Title: "Cook", OpenPositions: 3, TotalPositions: i(2)}},
		badCandidate{},
		JobCandidate{Job: &domain.Job{ID: 2, Title: "Cleaner", OpenPositions: 1, TotalPositions: i(4)}},
	}
	recs := engine.Recommend(profile, jobs, 5)
	assert.Len(t, recs, 2)
}

type badCandidate struct{}

func (badCandidate) ResourceID() int64 { return 99 }
func (badCandidate) ResourceName() string { return "broken" }
func (badCandidate) ResourceType() string { return domain.ResourceTypeShelter }
func (badCandidate) Location() *Coordinate { return nil }
func (badCandidate) Eligible(*domain.Profile) bool { return true }
func (badCandidate) Requirements() []string { return nil }
func (badCandidate) Availability() (float64, error) {
	return AvailabilityScore(5, 0)
}

func TestEngineExplanationShape(t *testing.T) {
	engine := newTestEngine(t)
	profile := testProfile()

	jobs := []Candidate{
		JobCandidate{Job: &domain.Job{
			ID: 1, Title: "Line Cook", GeoLat: f64(12.97), GeoLng: f64(77.59),
			RequiredSkills: []string{"cooking", "cleaning"}, OpenPositions: 2, TotalPositions: i(4),
		}},
	}
	recs := engine.Recommend(profile, jobs, 1)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, 1.0, rec.Explanation.LocationScore)
	assert.Equal(t, 0.5, rec.Explanation.AvailabilityScore)
	assert.Equal(t, 0.5, rec.Explanation.SkillMatchScore)
	// 0.3*1.0 + 0.2*0.5 + 0.5*0.5 = 0.65
	assert.Equal(t, 65, rec.Score)
	assert.InDelta(t, 0.65, rec.RawScore, 1e-9)
	assert.Equal(t, domain.ResourceTypeJob, rec.ResourceType)
}
