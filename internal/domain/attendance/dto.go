package attendance

import (
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/validator"
)

// ========================================
// PUNCH DTOs
// ========================================

type PunchRequest struct {
	Type      string   `json:"type" validate:"required,oneof=entry lunch_start lunch_end exit"`
	Latitude  *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`

	Caller user.Identity `json:"-" validate:"-"`
	Device DeviceInfo    `json:"-" validate:"-"`
}

func (r *PunchRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}
	if (r.Latitude == nil) != (r.Longitude == nil) {
		return validator.ValidationErrors{{
			Field:   "latitude",
			Message: "latitude and longitude must be sent together",
		}}
	}
	return nil
}

// HasCoordinates reports whether the caller sent a position.
func (r *PunchRequest) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

type TimeRecordResponse struct {
	ID               string     `json:"id"`
	EmployeeID       string     `json:"employee_id"`
	EmployeeName     *string    `json:"employee_name,omitempty"`
	Type             PunchKind  `json:"type"`
	Timestamp        time.Time  `json:"timestamp"`
	Latitude         *float64   `json:"latitude"`
	Longitude        *float64   `json:"longitude"`
	WorkLocationID   *string    `json:"work_location_id"`
	IsWithinRadius   bool       `json:"is_within_radius"`
	DistanceMeters   *int       `json:"distance_meters"`
	ScheduleOverride bool       `json:"schedule_override"`
	OverrideBy       *string    `json:"schedule_override_by"`
	OverrideReason   *string    `json:"schedule_override_reason"`
	ConfirmationCode string     `json:"confirmation_code"`
	DeviceInfo       DeviceInfo `json:"device_info"`
	CreatedAt        time.Time  `json:"created_at"`
}

func NewTimeRecordResponse(r TimeRecord) TimeRecordResponse {
	return TimeRecordResponse{
		ID:               r.ID,
		EmployeeID:       r.EmployeeID,
		EmployeeName:     r.EmployeeName,
		Type:             r.Kind,
		Timestamp:        r.Timestamp,
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
		WorkLocationID:   r.WorkLocationID,
		IsWithinRadius:   r.IsWithinRadius,
		DistanceMeters:   r.DistanceMeters,
		ScheduleOverride: r.ScheduleOverride,
		OverrideBy:       r.OverrideBy,
		OverrideReason:   r.OverrideReason,
		ConfirmationCode: r.ConfirmationCode,
		DeviceInfo:       r.DeviceInfo,
		CreatedAt:        r.CreatedAt,
	}
}

type PunchResponse struct {
	Record           TimeRecordResponse `json:"record"`
	Warning          *string            `json:"warning"`
	Warnings         []string           `json:"warnings"`
	ScheduleOverride bool               `json:"schedule_override"`
	WorkLocation     *location.Summary  `json:"work_location"`
}

// ========================================
// HISTORY DTOs
// ========================================

type ListMyRecordsRequest struct {
	Range string `json:"range" validate:"omitempty,oneof=day week month"`
	Date  string `json:"date" validate:"omitempty,datetime=2006-01-02"`

	Caller user.Identity `json:"-" validate:"-"`
}

func (r *ListMyRecordsRequest) Validate() error {
	return validator.Struct(r)
}

type ListRecordsResponse struct {
	Range   string               `json:"range"`
	Start   time.Time            `json:"start"`
	End     time.Time            `json:"end"`
	Records []TimeRecordResponse `json:"records"`
}

// ========================================
// FEED DTOs
// ========================================

// FeedTopic is the hub topic carrying every stored punch.
const FeedTopic = "attendance.punches"

const FeedEventPunch = "punch"

type PunchEvent struct {
	Record       TimeRecordResponse `json:"record"`
	EmployeeCode string             `json:"employee_code"`
	Department   *string            `json:"department"`
	Warnings     []string           `json:"warnings"`
}

type FeedEvent struct {
	Event string
	Data  PunchEvent
}
