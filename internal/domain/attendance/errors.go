package attendance

import "errors"

// Attendance domain errors
var (
	// Punch errors
	ErrInvalidPunchKind = errors.New("type must be one of entry, lunch_start, lunch_end, exit")
	ErrOutsideSchedule  = errors.New("punch outside the allowed schedule window")
	ErrPunchOutOfOrder  = errors.New("punch type is out of order for today")

	// Storage errors
	ErrTimeRecordNotFound     = errors.New("time record not found")
	ErrConfirmationCodeExists = errors.New("confirmation code already exists")
)
