package model

import (
	"errors"
	"strings"
	"time"
)

// Reminder is an outstanding scheduled notification for one task.
type Reminder struct {
	TaskID string
	FireAt time.Time
	Handle string
}

func (r Reminder) Validate() error {
	if strings.TrimSpace(r.TaskID) == "" {
		return errors.New("model: reminder task_id is required")
	}
	if r.FireAt.IsZero() {
		return errors.New("model: reminder fire_at is required")
	}
	return nil
}
