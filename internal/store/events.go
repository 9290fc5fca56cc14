package store

import "github.com/sandeepkv93/hourline/internal/model"

type EventKind string

const (
	EventCreated           EventKind = "created"
	EventCompletionChanged EventKind = "completion_changed"
	EventDeleted           EventKind = "deleted"
)

// Event describes one applied mutation. Task is the post-mutation snapshot,
// or the removed task for EventDeleted.
type Event struct {
	Kind      EventKind
	Task      model.Task
	Completed bool
}

type Listener func(Event)
