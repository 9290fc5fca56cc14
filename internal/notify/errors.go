package notify

import (
	"errors"
	"fmt"
)

var ErrScheduling = errors.New("notify: reminder could not be scheduled")

// SchedulingError reports a capability failure or timeout. The task mutation
// that triggered the schedule is never rolled back.
type SchedulingError struct {
	TaskID string
	Err    error
}

func (e *SchedulingError) Error() string {
	return fmt.Sprintf("notify: schedule reminder for task %s: %v", e.TaskID, e.Err)
}

func (e *SchedulingError) Unwrap() error {
	return e.Err
}

func (e *SchedulingError) Is(target error) bool {
	return target == ErrScheduling
}
