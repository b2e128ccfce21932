package hours

import "context"

// HoursService recomputes hours balances in batch
type HoursService interface {
	// Reprocess overwrites every employee's balance from the records in range
	Reprocess(ctx context.Context, req ReprocessRequest) (ReprocessResponse, error)

	// ListLogs returns the most recent reprocess runs
	ListLogs(ctx context.Context, req ListLogsRequest) ([]ReprocessLogResponse, error)
}
