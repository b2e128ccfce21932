package user

import "errors"

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrMissingIdentity   = errors.New("missing caller identity")
	ErrNoEmployeeProfile = errors.New("user has no employee profile")
)
