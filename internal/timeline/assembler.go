package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sandeepkv93/hourline/internal/calendar"
	"github.com/sandeepkv93/hourline/internal/model"
	"github.com/sandeepkv93/hourline/internal/notify"
	"github.com/sandeepkv93/hourline/internal/scheduler"
	"github.com/sandeepkv93/hourline/internal/store"
)

// Slot is one hour row of a day's timeline.
type Slot struct {
	Hour  int
	Start time.Time
	Tasks []model.Task
}

// Result is the outcome of a mutation. Warning carries a degraded reminder
// state; the mutation itself has been applied when Warning is set.
type Result struct {
	Task    model.Task
	Warning error
}

// Assembler is the only entry point for task mutations; it keeps reminder
// state in step with the store.
type Assembler struct {
	store     *store.TaskStore
	reminders *notify.Scheduler
	week      calendar.Week
	grid      calendar.HourGrid
	now       func() time.Time
	logger    *slog.Logger
}

type Option func(*Assembler)

func WithWeek(w calendar.Week) Option {
	return func(a *Assembler) { a.week = w }
}

func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) {
		if l != nil {
			a.logger = l
		}
	}
}

func New(s *store.TaskStore, reminders *notify.Scheduler, opts ...Option) (*Assembler, error) {
	if s == nil || reminders == nil {
		return nil, errors.New("timeline: store and reminder scheduler are required")
	}
	a := &Assembler{
		store:     s,
		reminders: reminders,
		week:      calendar.NewWeek(time.Sunday),
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Start loads persisted tasks and rebuilds pending reminders from them.
// A rebuild scheduling failure is returned as a warning, not an error.
func (a *Assembler) Start(ctx context.Context) (warning error, err error) {
	if err := a.store.Load(ctx); err != nil {
		return nil, err
	}
	warning = a.reminders.Rebuild(ctx, a.store.All())
	if warning != nil {
		a.logger.Warn("some reminders could not be restored", "err", warning)
	}
	a.logger.Info("timeline started", "tasks", a.store.Len(), "reminders", a.reminders.Len())
	return warning, nil
}

func (a *Assembler) BuildTimeline(day time.Time) []Slot {
	hours := a.grid.HoursOfDay(day)
	out := make([]Slot, 0, len(hours))
	for h, start := range hours {
		out = append(out, Slot{
			Hour:  h,
			Start: start,
			Tasks: a.store.TasksOn(day, h),
		})
	}
	return out
}

func (a *Assembler) Week(ref time.Time) []calendar.WeekDay {
	return a.week.CurrentWeek(ref)
}

func (a *Assembler) MidpointIndex() int {
	return a.grid.MidpointIndex()
}

func (a *Assembler) MonthLabel(day time.Time) string {
	return calendar.MonthLabel(day)
}

func (a *Assembler) Today() time.Time {
	return calendar.StartOfDay(a.now())
}

func (a *Assembler) Task(id string) (model.Task, bool) {
	return a.store.Get(id)
}

func (a *Assembler) AddTask(ctx context.Context, in model.Task) (Result, error) {
	ev, err := a.store.Create(ctx, in)
	if err != nil {
		return Result{}, err
	}
	a.logger.Info("task created", "task_id", ev.Task.ID, "date_added", ev.Task.DateAdded)
	return a.settle(ctx, ev), nil
}

func (a *Assembler) ToggleTask(ctx context.Context, id string) (Result, error) {
	ev, err := a.store.ToggleCompletion(ctx, id)
	if err != nil {
		return Result{}, err
	}
	a.logger.Info("task completion changed", "task_id", id, "completed", ev.Completed)
	return a.settle(ctx, ev), nil
}

func (a *Assembler) RemoveTask(ctx context.Context, id string) (Result, error) {
	ev, err := a.store.Delete(ctx, id)
	if err != nil {
		return Result{}, err
	}
	a.logger.Info("task deleted", "task_id", id)
	return a.settle(ctx, ev), nil
}

// Delivered records that the capability fired a reminder. Reminders whose
// fire time passed without an event are dropped at the same time.
func (a *Assembler) Delivered(ev scheduler.ReminderEvent) (model.Task, bool) {
	a.reminders.Delivered(ev.TaskID)
	if n := a.reminders.Prune(); n > 0 {
		a.logger.Debug("pruned expired reminders", "count", n)
	}
	task, ok := a.store.Get(ev.TaskID)
	if !ok || task.IsCompleted {
		return model.Task{}, false
	}
	return task, true
}

func (a *Assembler) PendingReminders() []model.Reminder {
	return a.reminders.Pending()
}

func (a *Assembler) settle(ctx context.Context, ev store.Event) Result {
	res := Result{Task: ev.Task}
	if err := a.reminders.Apply(ctx, ev); err != nil {
		res.Warning = fmt.Errorf("task %s saved without reminder: %w", ev.Task.ID, err)
		a.logger.Warn("reminder degraded", "task_id", ev.Task.ID, "kind", ev.Kind, "err", err)
	}
	return res
}
