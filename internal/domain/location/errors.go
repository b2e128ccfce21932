package location

import "errors"

var ErrWorkLocationNotFound = errors.New("work location not found")
