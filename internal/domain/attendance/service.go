package attendance

import "context"

// AttendanceService defines the punch path
type AttendanceService interface {
	// Record validates and stores one punch for the calling employee
	Record(ctx context.Context, req PunchRequest) (PunchResponse, error)

	// ListMine returns the caller's punches within a day, week or month
	ListMine(ctx context.Context, req ListMyRecordsRequest) (ListRecordsResponse, error)

	// Subscribe streams punches as they are stored until ctx ends or the
	// returned cleanup runs.
	Subscribe(ctx context.Context) (<-chan FeedEvent, func())
}
