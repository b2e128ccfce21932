package hours

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// MaxLogs caps the reprocess log listing.
const MaxLogs = 50

type ReprocessRequest struct {
	Start       string  `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End         string  `json:"end" validate:"omitempty,datetime=2006-01-02"`
	InitiatedBy *string `json:"-" validate:"-"`
}

func (r *ReprocessRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if (r.Start == "") != (r.End == "") {
		return validator.ValidationErrors{{
			Field:   "start",
			Message: "start and end must be provided together",
		}}
	}
	return nil
}

type ReprocessResponse struct {
	UpdatedEmployees int                  `json:"updated"`
	Start            time.Time            `json:"start"`
	End              time.Time            `json:"end"`
	Log              ReprocessLogResponse `json:"log"`
}

type ListLogsRequest struct {
	Start string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" validate:"omitempty,datetime=2006-01-02"`
}

func (r *ListLogsRequest) Validate() error {
	return validator.Struct(r)
}

type ReprocessLogResponse struct {
	ID               string    `json:"id"`
	UserID           *string   `json:"user_id"`
	RangeStart       time.Time `json:"range_start"`
	RangeEnd         time.Time `json:"range_end"`
	UpdatedEmployees int       `json:"updated_employees"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewReprocessLogResponse(l ReprocessLog) ReprocessLogResponse {
	return ReprocessLogResponse{
		ID:               l.ID,
		UserID:           l.UserID,
		RangeStart:       l.RangeStart,
		RangeEnd:         l.RangeEnd,
		UpdatedEmployees: l.UpdatedEmployees,
		CreatedAt:        l.CreatedAt,
	}
}
