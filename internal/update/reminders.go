package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/hourline/internal/scheduler"
)

const (
	maxReminderLog   = 20
	maxNotifications = 40
)

func waitForReminderCmd(ch <-chan scheduler.ReminderEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderDueMsg{Event: ev}
	}
}

func (m *Model) onReminderDue(ev scheduler.ReminderEvent) {
	m.ReminderLog = append(m.ReminderLog, ev)
	if len(m.ReminderLog) > maxReminderLog {
		m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-maxReminderLog:]
	}
	task, ok := m.assembler.Delivered(ev)
	if !ok {
		m.syncTimeline()
		return
	}
	body := fmt.Sprintf("%s at %s", task.Name, task.DateAdded.In(m.SelectedDay.Location()).Format("15:04"))
	m.Status = StatusBar{Text: "reminder: " + body}
	m.notify("Reminder", body, "info")
	m.syncTimeline()
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.now(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > maxNotifications {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotifications:]
	}
	if m.desktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.Status = StatusBar{Text: fmt.Sprintf("desktop notification failed: %v", err), IsError: true}
		}
	}
}
