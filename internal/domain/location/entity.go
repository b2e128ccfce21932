package location

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/geo"
)

type WorkLocation struct {
	ID           string
	Name         string
	Address      *string
	Latitude     float64
	Longitude    float64
	RadiusMeters int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (l *WorkLocation) Point() geo.Point {
	return geo.Point{Latitude: l.Latitude, Longitude: l.Longitude}
}

// Summary is the subset of a location returned alongside a punch.
type Summary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RadiusMeters int    `json:"radius_meters"`
}

func (l *WorkLocation) Summary() *Summary {
	if l == nil {
		return nil
	}
	return &Summary{ID: l.ID, Name: l.Name, RadiusMeters: l.RadiusMeters}
}
