package hours

import "time"

// ReprocessLog records one run of the hours balance recompute.
type ReprocessLog struct {
	ID               string
	UserID           *string
	RangeStart       time.Time
	RangeEnd         time.Time
	UpdatedEmployees int
	CreatedAt        time.Time
}
