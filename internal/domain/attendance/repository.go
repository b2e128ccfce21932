package attendance

import (
	"context"
	"time"
)

// TimeRecordRepository defines data access methods for punches.
type TimeRecordRepository interface {
	// Create stores a record. A duplicate confirmation code yields
	// ErrConfirmationCodeExists.
	Create(ctx context.Context, record TimeRecord) (TimeRecord, error)

	ExistsByConfirmationCode(ctx context.Context, code string) (bool, error)

	// ListByEmployeeBetween returns one employee's records ordered by timestamp.
	ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]TimeRecord, error)

	// ListBetween returns every record in the range ordered by timestamp.
	ListBetween(ctx context.Context, start, end time.Time) ([]TimeRecord, error)

	// EarliestTimestamp returns the oldest record instant, or nil when empty.
	EarliestTimestamp(ctx context.Context) (*time.Time, error)
}
