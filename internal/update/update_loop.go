package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/hourline/internal/calendar"
	"github.com/sandeepkv93/hourline/internal/views"
)

func (m Model) Init() tea.Cmd {
	return waitForReminderCmd(m.reminders)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(typed.Width, typed.Height)
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		switch m.Mode {
		case ModePalette:
			return m.handlePaletteKey(typed), nil
		case ModeQuickAdd:
			return m.handleQuickAddKey(typed), nil
		}
		return m.handleKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case GotoDayMsg:
		m.SelectedDay = calendar.StartOfDay(typed.Day)
		m.TaskCursor = 0
		m.syncTimeline()
		return m, nil
	case ReminderDueMsg:
		m.onReminderDue(typed.Event)
		return m, waitForReminderCmd(m.reminders)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevDay):
		m.moveDay(-1)
	case key.Matches(msg, m.keys.NextDay):
		m.moveDay(1)
	case key.Matches(msg, m.keys.PrevWeek):
		m.moveDay(-calendar.DaysPerWeek)
	case key.Matches(msg, m.keys.NextWeek):
		m.moveDay(calendar.DaysPerWeek)
	case key.Matches(msg, m.keys.Down):
		m.moveHour(1)
	case key.Matches(msg, m.keys.Up):
		m.moveHour(-1)
	case key.Matches(msg, m.keys.NextTask):
		m.nextTaskInHour()
	case key.Matches(msg, m.keys.Today):
		m.SelectedDay = m.assembler.Today()
		m.TaskCursor = 0
		m.syncTimeline()
	case key.Matches(msg, m.keys.Add):
		return m.openQuickAdd(), nil
	case key.Matches(msg, m.keys.Palette):
		return m.openPalette(), nil
	case key.Matches(msg, m.keys.Toggle):
		m.toggleSelected()
	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	case key.Matches(msg, m.keys.Help):
		m.HelpVisible = !m.HelpVisible
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	paneWidth := width/2 - 6
	if paneWidth < 20 {
		paneWidth = 20
	}
	paneHeight := height - 9
	if paneHeight < 5 {
		paneHeight = 5
	}
	m.timelineView.Width = paneWidth
	m.timelineView.Height = paneHeight
	m.quickAddInput.Width = paneWidth - 8
	m.commandInput.Width = paneWidth - 4
	m.helpModel.Width = paneWidth
	m.centerOnCursor()
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = "status: " + m.Status.Text
		if m.Status.IsError {
			status = "status: error: " + m.Status.Text
		}
	}

	right := views.RenderTaskDetail(m.taskDetail())
	switch m.Mode {
	case ModeQuickAdd:
		right += "\n\n" + views.RenderInput("add at "+m.cursorLabel(), m.quickAddInput.View())
	case ModePalette:
		right += "\n\n" + views.RenderInput("command", m.commandInput.View())
	}
	right += m.renderHelpIfVisible()

	notification := ""
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		notification = views.RenderNotification(last.Level, last.Title+": "+last.Body)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("hourline | %s | %s", m.SelectedDay.Format("Mon Jan 2 2006"), m.cursorLabel()),
		WeekStrip:    m.weekStrip(),
		LeftPane:     m.timelineView.View(),
		RightPane:    strings.TrimSpace(right),
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notification,
		Footer:       m.helpModel.ShortHelpView(m.keys.ShortHelp()),
		Width:        m.width,
	})
}

func (m Model) weekStrip() string {
	week := m.assembler.Week(m.SelectedDay)
	now := m.now()
	days := make([]views.WeekDayData, 0, len(week))
	for _, d := range week {
		days = append(days, views.WeekDayData{
			Label:    fmt.Sprintf("%s %d", d.Short(), d.Date.Day()),
			Selected: calendar.SameDay(d.Date, m.SelectedDay),
			Today:    calendar.SameDay(d.Date, now),
		})
	}
	return views.RenderWeekStrip(m.assembler.MonthLabel(m.SelectedDay), days)
}
