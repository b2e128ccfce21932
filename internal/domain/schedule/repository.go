package schedule

import "context"

type WorkScheduleRepository interface {
	GetByID(ctx context.Context, id string) (WorkSchedule, error)
	List(ctx context.Context) ([]WorkSchedule, error)
}
