package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/hourline/internal/model"
	"github.com/sandeepkv93/hourline/internal/storage"
)

// TaskStore owns the authoritative in-memory task collection. Mutations are
// written through to the repository before they become visible to readers.
type TaskStore struct {
	mu        sync.RWMutex
	repo      storage.Repository
	tasks     []model.Task
	index     map[string]int
	loc       *time.Location
	now       func() time.Time
	listeners []Listener
}

type Option func(*TaskStore)

// WithLocation sets the calendar location loaded tasks are converted to.
func WithLocation(loc *time.Location) Option {
	return func(s *TaskStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *TaskStore) {
		if now != nil {
			s.now = now
		}
	}
}

func New(repo storage.Repository, opts ...Option) (*TaskStore, error) {
	if repo == nil {
		return nil, errors.New("store: nil repository")
	}
	s := &TaskStore{
		repo:  repo,
		index: make(map[string]int),
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Subscribe registers a listener called after every applied mutation.
func (s *TaskStore) Subscribe(l Listener) {
	if l == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Load replaces the collection with the repository contents.
func (s *TaskStore) Load(ctx context.Context) error {
	records, err := s.repo.LoadAllTasks(ctx)
	if err != nil {
		return fmt.Errorf("store: load tasks: %w", err)
	}
	tasks := make([]model.Task, 0, len(records))
	index := make(map[string]int, len(records))
	for _, rec := range records {
		if _, dup := index[rec.ID]; dup {
			continue
		}
		index[rec.ID] = len(tasks)
		tasks = append(tasks, fromRecord(rec, s.loc))
	}

	s.mu.Lock()
	s.tasks = tasks
	s.index = index
	s.mu.Unlock()
	return nil
}

func (s *TaskStore) Create(ctx context.Context, in model.Task) (Event, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Category == "" {
		in.Category = model.CategoryGeneral
	}
	if err := in.Validate(); err != nil {
		return Event{}, err
	}
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	in.DateAdded = in.DateAdded.In(s.loc)

	s.mu.Lock()
	if _, exists := s.index[in.ID]; exists {
		s.mu.Unlock()
		return Event{}, &model.ValidationError{Field: "id", Message: fmt.Sprintf("task %q already exists", in.ID)}
	}
	if err := s.repo.CreateTask(ctx, toRecord(in, s.now())); err != nil {
		s.mu.Unlock()
		return Event{}, fmt.Errorf("store: persist task %s: %w", in.ID, err)
	}
	s.index[in.ID] = len(s.tasks)
	s.tasks = append(s.tasks, in)
	listeners := s.listeners
	s.mu.Unlock()

	ev := Event{Kind: EventCreated, Task: in, Completed: in.IsCompleted}
	notify(listeners, ev)
	return ev, nil
}

func (s *TaskStore) ToggleCompletion(ctx context.Context, id string) (Event, error) {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return Event{}, &model.NotFoundError{TaskID: id}
	}
	next := s.tasks[pos]
	next.IsCompleted = !next.IsCompleted
	if err := s.repo.UpdateTask(ctx, toRecord(next, s.now())); err != nil {
		s.mu.Unlock()
		if errors.Is(err, storage.ErrNotFound) {
			return Event{}, &model.NotFoundError{TaskID: id}
		}
		return Event{}, fmt.Errorf("store: persist task %s: %w", id, err)
	}
	s.tasks[pos] = next
	listeners := s.listeners
	s.mu.Unlock()

	ev := Event{Kind: EventCompletionChanged, Task: next, Completed: next.IsCompleted}
	notify(listeners, ev)
	return ev, nil
}

func (s *TaskStore) Delete(ctx context.Context, id string) (Event, error) {
	s.mu.Lock()
	pos, ok := s.index[id]
	if !ok {
		s.mu.Unlock()
		return Event{}, &model.NotFoundError{TaskID: id}
	}
	removed := s.tasks[pos]
	if err := s.repo.DeleteTask(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		s.mu.Unlock()
		return Event{}, fmt.Errorf("store: delete task %s: %w", id, err)
	}
	s.tasks = append(s.tasks[:pos:pos], s.tasks[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.tasks); i++ {
		s.index[s.tasks[i].ID] = i
	}
	listeners := s.listeners
	s.mu.Unlock()

	ev := Event{Kind: EventDeleted, Task: removed, Completed: removed.IsCompleted}
	notify(listeners, ev)
	return ev, nil
}

// TasksOn returns tasks on day's calendar date whose hour equals hour, in
// insertion order.
func (s *TaskStore) TasksOn(day time.Time, hour int) []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.OccursIn(day, hour) {
			out = append(out, t)
		}
	}
	return out
}

func (s *TaskStore) Get(id string) (model.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pos, ok := s.index[id]
	if !ok {
		return model.Task{}, false
	}
	return s.tasks[pos], true
}

func (s *TaskStore) All() []model.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tasks)
}

func notify(listeners []Listener, ev Event) {
	for _, l := range listeners {
		l(ev)
	}
}

func toRecord(t model.Task, now time.Time) storage.Task {
	return storage.Task{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Category:    string(t.Category),
		DateAdded:   t.DateAdded,
		IsCompleted: t.IsCompleted,
		CreatedAt:   now,
	}
}

func fromRecord(rec storage.Task, loc *time.Location) model.Task {
	category, err := model.ParseCategory(rec.Category)
	if err != nil {
		category = model.CategoryGeneral
	}
	return model.Task{
		ID:          rec.ID,
		Name:        rec.Name,
		Description: rec.Description,
		Category:    category,
		DateAdded:   rec.DateAdded.In(loc),
		IsCompleted: rec.IsCompleted,
	}
}
