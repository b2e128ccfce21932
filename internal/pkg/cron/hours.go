package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/hours"
)

type HoursJobs struct {
	hoursService hours.HoursService
	systemUserID *string
	timeout      time.Duration
}

// NewHoursJobs wires the periodic balance recompute. systemUserID is recorded
// as the initiator on the reprocess log; empty means none.
func NewHoursJobs(hoursService hours.HoursService, systemUserID string, timeout time.Duration) *HoursJobs {
	j := &HoursJobs{hoursService: hoursService, timeout: timeout}
	if systemUserID != "" {
		j.systemUserID = &systemUserID
	}
	return j
}

func (j *HoursJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("reprocess_hours_balance", interval, j.ReprocessHoursBalance)
}

// ReprocessHoursBalance recomputes every balance over the full history.
func (j *HoursJobs) ReprocessHoursBalance(ctx context.Context) error {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	slog.Info("Cron: Starting hours balance reprocess job")

	res, err := j.hoursService.Reprocess(ctx, hours.ReprocessRequest{InitiatedBy: j.systemUserID})
	if err != nil {
		return err
	}

	slog.Info("Cron: Hours balance reprocess completed",
		"updated", res.UpdatedEmployees,
		"start", res.Start,
		"end", res.End,
	)
	return nil
}
