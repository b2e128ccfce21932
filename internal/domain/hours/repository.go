package hours

import (
	"context"
	"time"
)

type ReprocessLogRepository interface {
	Create(ctx context.Context, log ReprocessLog) (ReprocessLog, error)
	// List returns logs newest first, optionally limited to a creation range.
	List(ctx context.Context, filter LogFilter) ([]ReprocessLog, error)
}

type LogFilter struct {
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
}
