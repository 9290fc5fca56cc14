package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/hourline/internal/scheduler"
	"github.com/sandeepkv93/hourline/internal/timeline"
)

type Mode string

const (
	ModeNormal   Mode = "normal"
	ModeQuickAdd Mode = "quick_add"
	ModePalette  Mode = "palette"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

type Model struct {
	SelectedDay   time.Time
	CursorHour    int
	TaskCursor    int
	Mode          Mode
	HelpVisible   bool
	Status        StatusBar
	Notifications []Notification
	ReminderLog   []scheduler.ReminderEvent
	Quitting      bool

	assembler      *timeline.Assembler
	reminders      <-chan scheduler.ReminderEvent
	desktopEnabled bool
	notifier       DesktopNotifier
	now            func() time.Time
	keys           keyMap

	width         int
	height        int
	timelineView  viewport.Model
	quickAddInput textinput.Model
	commandInput  textinput.Model
	helpModel     help.Model
}

type Options struct {
	// Reminders is the channel fired reminders arrive on, usually Engine.C().
	Reminders      <-chan scheduler.ReminderEvent
	DesktopEnabled bool
	Notifier       DesktopNotifier
	Now            func() time.Time
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type ReminderDueMsg struct {
	Event scheduler.ReminderEvent
}

type GotoDayMsg struct {
	Day time.Time
}

func NewModel(a *timeline.Assembler, opts Options) Model {
	m := Model{
		Mode:           ModeNormal,
		assembler:      a,
		reminders:      opts.Reminders,
		desktopEnabled: opts.DesktopEnabled,
		notifier:       NoopDesktopNotifier{},
		now:            time.Now,
		keys:           defaultKeyMap(),
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	if opts.Now != nil {
		m.now = opts.Now
	}
	m.SelectedDay = a.Today()
	m.CursorHour = a.MidpointIndex()
	m.initBubbleComponents()
	m.centerOnCursor()
	return m
}

func (m *Model) initBubbleComponents() {
	m.timelineView = viewport.New(56, 16)

	m.quickAddInput = textinput.New()
	m.quickAddInput.Prompt = "add> "
	m.quickAddInput.Placeholder = "#category name"
	m.quickAddInput.CharLimit = 256
	m.quickAddInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.Placeholder = "add 14:30 #work standup"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 42

	m.helpModel = help.New()
	m.helpModel.ShowAll = true
}
