package matching

import (
	"strings"

	"go-nest-backend/internal/domain"
)

// Candidate is one resource going through the matching pipeline. Shelters
// and jobs implement it separately: each variant owns its eligibility rules
// and availability mapping while sharing location and skill scoring.
type Candidate interface {
	ResourceID() int64
	ResourceName() string
	ResourceType() string
	Location() *Coordinate
	// Eligible applies the hard excludes checked before any scoring.
	Eligible(profile *domain.Profile) bool
	Availability() (float64, error)
	// Requirements are the tags matched against the profile's skills:
	// required skills for jobs, amenity/need tags for shelters.
	Requirements() []string
}

// ShelterCandidate adapts a shelter to the matching pipeline.
type ShelterCandidate struct {
	Shelter *domain.Shelter
}

func (c ShelterCandidate) ResourceID() int64 { return c.Shelter.ID }
func (c ShelterCandidate) ResourceName() string { return c.Shelter.Name }
func (c ShelterCandidate) ResourceType() string { return domain.ResourceTypeShelter }

func (c ShelterCandidate) Location() *Coordinate {
	return coordinate(c.Shelter.GeoLat, c.Shelter.GeoLng)
}

// Eligible excludes full shelters and profiles outside the shelter's gender
// or age policy. A full shelter never reaches scoring, whatever its other
// factors would have been.
func (c ShelterCandidate) Eligible(profile *domain.Profile) bool {
	s := c.Shelter
	if s.Occupied >= s.Capacity {
		return false
	}
	if s.GenderPolicy != nil && *s.GenderPolicy != "" &&
		!strings.EqualFold(*s.GenderPolicy, profile.Gender) {
		return false
	}
	if s.MinAge != nil && profile.Age < *s.MinAge {
		return false
	}
	if s.MaxAge != nil && profile.Age > *s.MaxAge {
		return false
	}
	return true
}

func (c ShelterCandidate) Availability() (float64, error) {
	return AvailabilityScore(c.Shelter.Occupied, c.Shelter.Capacity)
}

func (c ShelterCandidate) Requirements() []string { return c.Shelter.Amenities }

// JobCandidate adapts a job posting to the matching pipeline.
type JobCandidate struct {
	Job *domain.Job
}

func (c JobCandidate) ResourceID() int64 { return c.Job.ID }
func (c JobCandidate) ResourceName() string { return c.Job.Title }
func (c JobCandidate) ResourceType() string { return domain.ResourceTypeJob }

func (c JobCandidate) Location() *Coordinate {
	return coordinate(c.Job.GeoLat, c.Job.GeoLng)
}

func (c JobCandidate) Eligible(profile *domain.Profile) bool {
	return c.Job.OpenPositions > 0
}

// Availability is the open fraction of the posting's position pool. A
// posting with no stated total is open-ended and scores 1.0.
func (c JobCandidate) Availability() (float64, error) {
	j := c.Job
	if j.TotalPositions == nil || *j.TotalPositions <= 0 {
		return 1.0, nil
	}
	frac := float64(j.OpenPositions) / float64(*j.TotalPositions)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return frac, nil
}

func (c JobCandidate) Requirements() []string { return c.Job.RequiredSkills }

func coordinate(lat, lng *float64) *Coordinate {
	if lat == nil || lng == nil {
		return nil
	}
	return &Coordinate{Lat: *lat, Lng: *lng}
}
