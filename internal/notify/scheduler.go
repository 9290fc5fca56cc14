package notify

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/sandeepkv93/hourline/internal/model"
	"github.com/sandeepkv93/hourline/internal/store"
)

const DefaultTimeout = 5 * time.Second

// Capability delivers reminders. Scheduler is its only caller.
type Capability interface {
	Schedule(ctx context.Context, taskID string, fireAt time.Time) (string, error)
	Cancel(taskID string)
}

// TaskLookup resolves the current state of a task before a reminder is finalized.
type TaskLookup interface {
	Get(id string) (model.Task, bool)
}

type scheduleResult struct {
	handle string
	err    error
}

// Scheduler keeps at most one pending reminder per task.
type Scheduler struct {
	mu         sync.Mutex
	capability Capability
	lookup     TaskLookup
	pending    map[string]model.Reminder
	gen        map[string]uint64
	inflight   map[string]int
	now        func() time.Time
	timeout    time.Duration
	logger     *slog.Logger
	late       sync.WaitGroup
}

type Option func(*Scheduler)

func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// WithTimeout bounds each capability Schedule call.
func WithTimeout(d time.Duration) Option {
	return func(s *Scheduler) {
		if d > 0 {
			s.timeout = d
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

func New(capability Capability, lookup TaskLookup, opts ...Option) (*Scheduler, error) {
	if capability == nil {
		return nil, errors.New("notify: nil capability")
	}
	if lookup == nil {
		return nil, errors.New("notify: nil task lookup")
	}
	s := &Scheduler{
		capability: capability,
		lookup:     lookup,
		pending:    make(map[string]model.Reminder),
		gen:        make(map[string]uint64),
		inflight:   make(map[string]int),
		now:        time.Now,
		timeout:    DefaultTimeout,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// OnTaskCreated schedules a reminder at DateAdded when the task is incomplete
// and due in the future. Calling it again for the same task replaces the reminder.
func (s *Scheduler) OnTaskCreated(ctx context.Context, task model.Task) error {
	if !task.RequiresReminder(s.now()) {
		if s.HasPending(task.ID) {
			s.Cancel(task.ID)
		}
		return nil
	}

	s.mu.Lock()
	s.gen[task.ID]++
	g := s.gen[task.ID]
	s.inflight[task.ID]++
	s.mu.Unlock()

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := make(chan scheduleResult, 1)
	go func() {
		handle, err := s.capability.Schedule(callCtx, task.ID, task.DateAdded)
		results <- scheduleResult{handle: handle, err: err}
	}()

	select {
	case res := <-results:
		return s.finalize(task.ID, g, task.DateAdded, res)
	case <-callCtx.Done():
		s.late.Add(1)
		go func() {
			defer s.late.Done()
			_ = s.finalize(task.ID, g, task.DateAdded, <-results)
		}()
		err := &SchedulingError{TaskID: task.ID, Err: callCtx.Err()}
		s.logger.Warn("reminder schedule timed out", "task_id", task.ID, "fire_at", task.DateAdded, "err", err)
		return err
	}
}

// OnCompletionChanged cancels on completion and re-schedules when a still
// future task is reopened.
func (s *Scheduler) OnCompletionChanged(ctx context.Context, taskID string, completed bool) error {
	if completed {
		s.Cancel(taskID)
		return nil
	}
	task, ok := s.lookup.Get(taskID)
	if !ok {
		s.Cancel(taskID)
		return nil
	}
	task.IsCompleted = false
	return s.OnTaskCreated(ctx, task)
}

// Cancel removes any pending reminder for taskID. It is a no-op when none exists.
func (s *Scheduler) Cancel(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen[taskID]++
	_, had := s.pending[taskID]
	delete(s.pending, taskID)
	s.capability.Cancel(taskID)
	if had {
		s.logger.Debug("reminder cancelled", "task_id", taskID)
	}
}

// Apply runs the transition matching a store mutation event.
func (s *Scheduler) Apply(ctx context.Context, ev store.Event) error {
	switch ev.Kind {
	case store.EventCreated:
		return s.OnTaskCreated(ctx, ev.Task)
	case store.EventCompletionChanged:
		return s.OnCompletionChanged(ctx, ev.Task.ID, ev.Completed)
	case store.EventDeleted:
		s.Cancel(ev.Task.ID)
		return nil
	default:
		return nil
	}
}

// Rebuild drops every pending reminder and schedules one for each incomplete,
// future task. Scheduling failures are joined and returned.
func (s *Scheduler) Rebuild(ctx context.Context, tasks []model.Task) error {
	s.mu.Lock()
	for id := range s.pending {
		s.gen[id]++
		s.capability.Cancel(id)
	}
	s.pending = make(map[string]model.Reminder)
	s.mu.Unlock()

	var errs []error
	now := s.now()
	for _, task := range tasks {
		if !task.RequiresReminder(now) {
			continue
		}
		if err := s.OnTaskCreated(ctx, task); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Delivered forgets the pending reminder once the capability has fired it.
func (s *Scheduler) Delivered(taskID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, taskID)
}

// Prune forgets reminders whose fire time is no longer in the future.
func (s *Scheduler) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, rem := range s.pending {
		if !rem.FireAt.After(now) {
			delete(s.pending, id)
			removed++
		}
	}
	return removed
}

func (s *Scheduler) Pending() []model.Reminder {
	s.mu.Lock()
	out := make([]model.Reminder, 0, len(s.pending))
	for _, rem := range s.pending {
		out = append(out, rem)
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].FireAt.Equal(out[j].FireAt) {
			return out[i].TaskID < out[j].TaskID
		}
		return out[i].FireAt.Before(out[j].FireAt)
	})
	return out
}

func (s *Scheduler) HasPending(taskID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[taskID]
	return ok
}

func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Wait blocks until capability calls that outlived their timeout have settled.
func (s *Scheduler) Wait() {
	s.late.Wait()
}

func (s *Scheduler) finalize(taskID string, g uint64, fireAt time.Time, res scheduleResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[taskID]--
	if s.inflight[taskID] <= 0 {
		delete(s.inflight, taskID)
	}

	if s.gen[taskID] != g {
		// A newer transition owns this task; clean up if nothing will claim the
		// capability entry we may just have created.
		if res.err == nil {
			s.releaseIfUnclaimed(taskID)
		}
		return nil
	}

	if res.err != nil {
		s.releaseIfUnclaimed(taskID)
		err := &SchedulingError{TaskID: taskID, Err: res.err}
		s.logger.Warn("reminder schedule failed", "task_id", taskID, "fire_at", fireAt, "err", res.err)
		return err
	}

	current, ok := s.lookup.Get(taskID)
	if !ok || !current.RequiresReminder(s.now()) {
		delete(s.pending, taskID)
		s.capability.Cancel(taskID)
		s.logger.Debug("discarded reminder for settled task", "task_id", taskID)
		return nil
	}

	s.pending[taskID] = model.Reminder{TaskID: taskID, FireAt: fireAt, Handle: res.handle}
	s.logger.Debug("reminder scheduled", "task_id", taskID, "fire_at", fireAt, "handle", res.handle)
	return nil
}

func (s *Scheduler) releaseIfUnclaimed(taskID string) {
	if _, ok := s.pending[taskID]; ok {
		return
	}
	if s.inflight[taskID] > 0 {
		return
	}
	s.capability.Cancel(taskID)
}
