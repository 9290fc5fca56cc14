package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/sandeepkv93/hourline/internal/model"
	"github.com/sandeepkv93/hourline/internal/store"
)

var baseNow = time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)

type fakeCapability struct {
	mu        sync.Mutex
	entries   map[string]time.Time
	scheduled int
	cancelled int
	failErr   error
	gate      chan struct{}
}

func newFakeCapability() *fakeCapability {
	return &fakeCapability{entries: make(map[string]time.Time)}
}

func (f *fakeCapability) Schedule(_ context.Context, taskID string, fireAt time.Time) (string, error) {
	f.mu.Lock()
	gate := f.gate
	failErr := f.failErr
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if failErr != nil {
		return "", failErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled++
	f.entries[taskID] = fireAt
	return fmt.Sprintf("h-%d", f.scheduled), nil
}

func (f *fakeCapability) Cancel(taskID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled++
	delete(f.entries, taskID)
}

func (f *fakeCapability) has(taskID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[taskID]
	return ok
}

type fakeLookup struct {
	mu    sync.Mutex
	tasks map[string]model.Task
}

func newFakeLookup(tasks ...model.Task) *fakeLookup {
	l := &fakeLookup{tasks: make(map[string]model.Task)}
	for _, t := range tasks {
		l.tasks[t.ID] = t
	}
	return l
}

func (l *fakeLookup) Get(id string) (model.Task, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.tasks[id]
	return t, ok
}

func (l *fakeLookup) put(t model.Task) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tasks[t.ID] = t
}

func (l *fakeLookup) remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.tasks, id)
}

func newScheduler(t *testing.T, capability Capability, lookup TaskLookup, opts ...Option) *Scheduler {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return baseNow })}, opts...)
	s, err := New(capability, lookup, opts...)
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	return s
}

func futureTask(id string) model.Task {
	return model.Task{ID: id, Name: id, Category: model.CategoryGeneral, DateAdded: baseNow.Add(21 * time.Hour)}
}

func TestOnTaskCreatedSchedulesFutureTask(t *testing.T) {
	task := futureTask("pay-bills")
	capability := newFakeCapability()
	s := newScheduler(t, capability, newFakeLookup(task))

	if err := s.OnTaskCreated(context.Background(), task); err != nil {
		t.Fatalf("on created: %v", err)
	}
	pending := s.Pending()
	if len(pending) != 1 || pending[0].TaskID != task.ID || !pending[0].FireAt.Equal(task.DateAdded) {
		t.Fatalf("unexpected pending reminders: %+v", pending)
	}
	if pending[0].Handle == "" || !capability.has(task.ID) {
		t.Fatalf("expected capability entry with handle, got %+v", pending[0])
	}
}

func TestOnTaskCreatedSkipsPastAndCompleted(t *testing.T) {
	past := model.Task{ID: "past", Name: "past", DateAdded: baseNow.Add(-time.Hour)}
	now := model.Task{ID: "now", Name: "now", DateAdded: baseNow}
	done := futureTask("done")
	done.IsCompleted = true
	capability := newFakeCapability()
	s := newScheduler(t, capability, newFakeLookup(past, now, done))

	for _, task := range []model.Task{past, now, done} {
		if err := s.OnTaskCreated(context.Background(), task); err != nil {
			t.Fatalf("on created %s: %v", task.ID, err)
		}
	}
	if s.Len() != 0 || capability.scheduled != 0 {
		t.Fatalf("expected no reminders, got pending=%d scheduled=%d", s.Len(), capability.scheduled)
	}
}

func TestOnTaskCreatedIsIdempotent(t *testing.T) {
	task := futureTask("t1")
	capability := newFakeCapability()
	s := newScheduler(t, capability, newFakeLookup(task))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.OnTaskCreated(ctx, task); err != nil {
			t.Fatalf("on created: %v", err)
		}
	}
	if s.Len() != 1 {
		t.Fatalf("expected a single pending reminder, got %d", s.Len())
	}
	if len(capability.entries) != 1 {
		t.Fatalf("expected a single capability entry, got %d", len(capability.entries))
	}
}

func TestOnCompletionChangedCancelsAndReschedules(t *testing.T) {
	task := futureTask("t1")
	lookup := newFakeLookup(task)
	capability := newFakeCapability()
	s := newScheduler(t, capability, lookup)
	ctx := context.Background()

	if err := s.OnTaskCreated(ctx, task); err != nil {
		t.Fatalf("on created: %v", err)
	}

	task.IsCompleted = true
	lookup.put(task)
	if err := s.OnCompletionChanged(ctx, task.ID, true); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if s.Len() != 0 || capability.has(task.ID) {
		t.Fatalf("expected reminder cancelled, pending=%d", s.Len())
	}

	task.IsCompleted = false
	lookup.put(task)
	if err := s.OnCompletionChanged(ctx, task.ID, false); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s.Len() != 1 || !capability.has(task.ID) {
		t.Fatalf("expected reminder rescheduled, pending=%d", s.Len())
	}
}

func TestOnCompletionChangedReopenPastTask(t *testing.T) {
	task := model.Task{ID: "old", Name: "old", DateAdded: baseNow.Add(-2 * time.Hour)}
	s := newScheduler(t, newFakeCapability(), newFakeLookup(task))
	if err := s.OnCompletionChanged(context.Background(), task.ID, false); err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no reminder for past task, got %d", s.Len())
	}
}

func TestCancelWithoutReminderIsNoop(t *testing.T) {
	s := newScheduler(t, newFakeCapability(), newFakeLookup())
	s.Cancel("missing")
	s.Cancel("missing")
	if s.Len() != 0 {
		t.Fatalf("expected no pending reminders, got %d", s.Len())
	}
}

func TestCapabilityFailureIsSchedulingError(t *testing.T) {
	task := futureTask("t1")
	capability := newFakeCapability()
	capability.failErr = errors.New("permission denied")
	s := newScheduler(t, capability, newFakeLookup(task))

	err := s.OnTaskCreated(context.Background(), task)
	if !errors.Is(err, ErrScheduling) {
		t.Fatalf("expected ErrScheduling, got %v", err)
	}
	var se *SchedulingError
	if !errors.As(err, &se) || se.TaskID != task.ID || se.Err.Error() != "permission denied" {
		t.Fatalf("unexpected scheduling error: %#v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected degraded state without reminder, got %d", s.Len())
	}
}

func TestTimeoutThenLateSuccessIsAdopted(t *testing.T) {
	task := futureTask("slow")
	capability := newFakeCapability()
	capability.gate = make(chan struct{})
	s := newScheduler(t, capability, newFakeLookup(task), WithTimeout(20*time.Millisecond))

	err := s.OnTaskCreated(context.Background(), task)
	if !errors.Is(err, ErrScheduling) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected timeout scheduling error, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no pending reminder after timeout, got %d", s.Len())
	}

	close(capability.gate)
	s.Wait()
	if !s.HasPending(task.ID) || !capability.has(task.ID) {
		t.Fatal("expected late success for a live task to be adopted")
	}
}

func TestLateSuccessAfterDeleteIsDiscarded(t *testing.T) {
	task := futureTask("gone")
	lookup := newFakeLookup(task)
	capability := newFakeCapability()
	capability.gate = make(chan struct{})
	s := newScheduler(t, capability, lookup, WithTimeout(20*time.Millisecond))

	if err := s.OnTaskCreated(context.Background(), task); !errors.Is(err, ErrScheduling) {
		t.Fatalf("expected timeout, got %v", err)
	}
	lookup.remove(task.ID)
	s.Cancel(task.ID)

	close(capability.gate)
	s.Wait()
	if s.HasPending(task.ID) {
		t.Fatal("expected no pending reminder for deleted task")
	}
	if capability.has(task.ID) {
		t.Fatal("expected late capability entry to be cancelled")
	}
}

func TestLateSuccessAfterCompletionIsDiscarded(t *testing.T) {
	task := futureTask("finished")
	lookup := newFakeLookup(task)
	capability := newFakeCapability()
	capability.gate = make(chan struct{})
	s := newScheduler(t, capability, lookup, WithTimeout(20*time.Millisecond))

	_ = s.OnTaskCreated(context.Background(), task)
	task.IsCompleted = true
	lookup.put(task)

	close(capability.gate)
	s.Wait()
	if s.HasPending(task.ID) || capability.has(task.ID) {
		t.Fatal("expected completed task to end without a reminder")
	}
}

func TestApplyDispatchesStoreEvents(t *testing.T) {
	task := futureTask("evt")
	lookup := newFakeLookup(task)
	s := newScheduler(t, newFakeCapability(), lookup)
	ctx := context.Background()

	if err := s.Apply(ctx, store.Event{Kind: store.EventCreated, Task: task}); err != nil {
		t.Fatalf("apply created: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected reminder after create, got %d", s.Len())
	}
	done := task
	done.IsCompleted = true
	lookup.put(done)
	if err := s.Apply(ctx, store.Event{Kind: store.EventCompletionChanged, Task: done, Completed: true}); err != nil {
		t.Fatalf("apply toggle: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no reminder after completion, got %d", s.Len())
	}
	lookup.put(task)
	_ = s.Apply(ctx, store.Event{Kind: store.EventCompletionChanged, Task: task, Completed: false})
	lookup.remove(task.ID)
	if err := s.Apply(ctx, store.Event{Kind: store.EventDeleted, Task: task}); err != nil {
		t.Fatalf("apply delete: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected no reminder after delete, got %d", s.Len())
	}
}

func TestRebuildFromTasks(t *testing.T) {
	future := futureTask("future")
	done := futureTask("done")
	done.IsCompleted = true
	past := model.Task{ID: "past", Name: "past", DateAdded: baseNow.Add(-time.Hour)}
	stale := futureTask("stale")
	lookup := newFakeLookup(future, done, past)
	capability := newFakeCapability()
	s := newScheduler(t, capability, lookup)
	ctx := context.Background()

	lookup.put(stale)
	if err := s.OnTaskCreated(ctx, stale); err != nil {
		t.Fatalf("seed: %v", err)
	}
	lookup.remove(stale.ID)

	if err := s.Rebuild(ctx, []model.Task{future, done, past}); err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	pending := s.Pending()
	if len(pending) != 1 || pending[0].TaskID != future.ID {
		t.Fatalf("unexpected pending after rebuild: %+v", pending)
	}
	if capability.has(stale.ID) {
		t.Fatal("expected stale reminder cancelled by rebuild")
	}
}

func TestRebuildJoinsErrors(t *testing.T) {
	a, b := futureTask("a"), futureTask("b")
	capability := newFakeCapability()
	capability.failErr = errors.New("denied")
	s := newScheduler(t, capability, newFakeLookup(a, b))

	err := s.Rebuild(context.Background(), []model.Task{a, b})
	if !errors.Is(err, ErrScheduling) {
		t.Fatalf("expected joined scheduling errors, got %v", err)
	}
}

func TestDeliveredAndPrune(t *testing.T) {
	a, b := futureTask("a"), futureTask("b")
	now := baseNow
	s := newScheduler(t, newFakeCapability(), newFakeLookup(a, b), WithClock(func() time.Time { return now }))
	ctx := context.Background()
	_ = s.OnTaskCreated(ctx, a)
	_ = s.OnTaskCreated(ctx, b)

	s.Delivered(a.ID)
	if s.HasPending(a.ID) || !s.HasPending(b.ID) {
		t.Fatal("expected only delivered reminder to be forgotten")
	}

	now = b.DateAdded
	if removed := s.Prune(); removed != 1 || s.Len() != 0 {
		t.Fatalf("expected prune to drop due reminder, removed=%d pending=%d", removed, s.Len())
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(nil, newFakeLookup()); err == nil {
		t.Fatal("expected error for nil capability")
	}
	if _, err := New(newFakeCapability(), nil); err == nil {
		t.Fatal("expected error for nil lookup")
	}
}
