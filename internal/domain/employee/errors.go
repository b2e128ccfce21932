package employee

import "errors"

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrEmployeeInactive   = errors.New("employee is inactive")
	ErrOverrideInThePast  = errors.New("override_until must be in the future")
	ErrInvalidLunchWindow = errors.New("lunch_start must be before lunch_end")
)
