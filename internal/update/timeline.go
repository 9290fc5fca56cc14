package update

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/hourline/internal/calendar"
	"github.com/sandeepkv93/hourline/internal/model"
	"github.com/sandeepkv93/hourline/internal/timeline"
	"github.com/sandeepkv93/hourline/internal/views"
)

func (m *Model) moveDay(delta int) {
	m.SelectedDay = m.SelectedDay.AddDate(0, 0, delta)
	m.TaskCursor = 0
	m.syncTimeline()
}

func (m *Model) moveHour(delta int) {
	m.CursorHour += delta
	if m.CursorHour < 0 {
		m.CursorHour = 0
	}
	if m.CursorHour > calendar.HoursPerDay-1 {
		m.CursorHour = calendar.HoursPerDay - 1
	}
	m.TaskCursor = 0
	m.syncTimeline()
}

func (m *Model) nextTaskInHour() {
	tasks := m.cursorTasks()
	if len(tasks) == 0 {
		m.TaskCursor = 0
		return
	}
	m.TaskCursor = (m.TaskCursor + 1) % len(tasks)
	m.syncTimeline()
}

func (m Model) cursorTasks() []model.Task {
	slots := m.assembler.BuildTimeline(m.SelectedDay)
	return slots[m.CursorHour].Tasks
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.cursorTasks()
	if len(tasks) == 0 {
		return model.Task{}, false
	}
	idx := m.TaskCursor
	if idx >= len(tasks) {
		idx = len(tasks) - 1
	}
	return tasks[idx], true
}

// taskAt resolves the 1-based n-th task of the cursor hour.
func (m Model) taskAt(n int) (model.Task, error) {
	tasks := m.cursorTasks()
	if n < 1 || n > len(tasks) {
		return model.Task{}, fmt.Errorf("no task %d at %s", n, m.cursorLabel())
	}
	return tasks[n-1], nil
}

func (m Model) cursorLabel() string {
	return calendar.HourLabel(m.assembler.BuildTimeline(m.SelectedDay)[m.CursorHour].Start)
}

func (m *Model) addTask(in model.Task) (timeline.Result, error) {
	res, err := m.assembler.AddTask(context.Background(), in)
	if err != nil {
		return res, err
	}
	_, hour := res.Task.Slot(m.SelectedDay.Location())
	m.SelectedDay = calendar.StartOfDay(res.Task.DateAdded.In(m.SelectedDay.Location()))
	m.CursorHour = hour
	m.TaskCursor = len(m.cursorTasks()) - 1
	m.syncTimeline()
	return res, nil
}

func (m *Model) toggleTask(id string) (timeline.Result, error) {
	res, err := m.assembler.ToggleTask(context.Background(), id)
	if err != nil {
		return res, err
	}
	m.syncTimeline()
	return res, nil
}

func (m *Model) removeTask(id string) (timeline.Result, error) {
	res, err := m.assembler.RemoveTask(context.Background(), id)
	if err != nil {
		return res, err
	}
	if m.TaskCursor > 0 {
		m.TaskCursor--
	}
	m.syncTimeline()
	return res, nil
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task at " + m.cursorLabel(), IsError: true}
		return
	}
	res, err := m.toggleTask(task.ID)
	m.reportMutation(res, err, completionVerb(res.Task.IsCompleted))
}

func (m *Model) deleteSelected() {
	task, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task at " + m.cursorLabel(), IsError: true}
		return
	}
	res, err := m.removeTask(task.ID)
	m.reportMutation(res, err, "deleted")
}

func (m *Model) reportMutation(res timeline.Result, err error, verb string) {
	switch {
	case err != nil:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	case res.Warning != nil:
		m.Status = StatusBar{Text: fmt.Sprintf("%s %q: %v", verb, res.Task.Name, res.Warning), IsError: true}
		m.notify("Reminder", res.Warning.Error(), "error")
	default:
		m.Status = StatusBar{Text: fmt.Sprintf("%s %q", verb, res.Task.Name)}
	}
}

func completionVerb(completed bool) string {
	if completed {
		return "completed"
	}
	return "reopened"
}

// syncTimeline re-renders the day into the viewport and keeps the cursor row visible.
func (m *Model) syncTimeline() {
	slots := m.assembler.BuildTimeline(m.SelectedDay)
	pending := make(map[string]bool)
	for _, rem := range m.assembler.PendingReminders() {
		pending[rem.TaskID] = true
	}
	now := m.now()
	isToday := calendar.SameDay(m.SelectedDay, now)

	data := make([]views.SlotData, 0, len(slots))
	cursorLine, line := 0, 0
	for _, slot := range slots {
		sd := views.SlotData{
			Label:  calendar.HourLabel(slot.Start),
			Cursor: slot.Hour == m.CursorHour,
			Now:    isToday && slot.Hour == now.In(m.SelectedDay.Location()).Hour(),
		}
		for i, task := range slot.Tasks {
			sd.Tasks = append(sd.Tasks, views.TaskData{
				Name:      task.Name,
				Category:  string(task.Category),
				Time:      task.DateAdded.In(m.SelectedDay.Location()).Format("15:04"),
				Completed: task.IsCompleted,
				Selected:  sd.Cursor && i == m.TaskCursor,
				Reminder:  pending[task.ID],
			})
		}
		if sd.Cursor {
			cursorLine = line
		}
		line += max(1, len(slot.Tasks))
		data = append(data, sd)
	}
	m.timelineView.SetContent(views.RenderTimeline(data))

	height := m.timelineView.Height
	switch {
	case cursorLine < m.timelineView.YOffset:
		m.timelineView.SetYOffset(cursorLine)
	case cursorLine >= m.timelineView.YOffset+height:
		m.timelineView.SetYOffset(cursorLine - height + 1)
	}
}

// centerOnCursor scrolls so the cursor row sits mid-viewport.
func (m *Model) centerOnCursor() {
	m.syncTimeline()
	offset := m.CursorHour - m.timelineView.Height/2
	if offset < 0 {
		offset = 0
	}
	m.timelineView.SetYOffset(offset)
}

func (m Model) taskDetail() *views.TaskDetailData {
	task, ok := m.selectedTask()
	if !ok {
		return nil
	}
	reminder := "none"
	for _, rem := range m.assembler.PendingReminders() {
		if rem.TaskID == task.ID {
			reminder = rem.FireAt.In(m.SelectedDay.Location()).Format("Mon Jan 2 15:04")
		}
	}
	return &views.TaskDetailData{
		Name:        task.Name,
		Category:    string(task.Category),
		When:        task.DateAdded.In(m.SelectedDay.Location()).Format("Mon Jan 2 2006 15:04"),
		Completed:   task.IsCompleted,
		Reminder:    reminder,
		Description: task.Description,
		Width:       m.timelineView.Width,
	}
}
