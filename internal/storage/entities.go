package storage

import "time"

type Task struct {
	ID          string
	Name        string
	Description string
	Category    string
	DateAdded   time.Time
	IsCompleted bool
	CreatedAt   time.Time
}
