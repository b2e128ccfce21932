package hours

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange = errors.New("start and end must both be valid YYYY-MM-DD dates with start not after end")
)

// PartialReprocessError reports a run that stopped after writing some
// employees. Balances already written stay committed.
type PartialReprocessError struct {
	Updated int
	Err     error
}

func (e *PartialReprocessError) Error() string {
	return fmt.Sprintf("reprocess stopped after %d employees: %v", e.Updated, e.Err)
}

func (e *PartialReprocessError) Unwrap() error {
	return e.Err
}
