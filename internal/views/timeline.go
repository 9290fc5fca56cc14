package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type WeekDayData struct {
	Label    string
	Selected bool
	Today    bool
}

type TaskData struct {
	Name      string
	Category  string
	Time      string
	Completed bool
	Selected  bool
	Reminder  bool
}

type SlotData struct {
	Label  string
	Cursor bool
	Now    bool
	Tasks  []TaskData
}

type TaskDetailData struct {
	Name        string
	Category    string
	When        string
	Completed   bool
	Reminder    string
	Description string
	Width       int
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

var (
	dayStyle         = lipgloss.NewStyle().Padding(0, 1)
	selectedDayStyle = dayStyle.Bold(true).Reverse(true)
	todayStyle       = dayStyle.Underline(true).Foreground(lipgloss.Color("11"))
	hourStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Width(6).Align(lipgloss.Right)
	cursorHourStyle  = hourStyle.Foreground(lipgloss.Color("12")).Bold(true)
	nowHourStyle     = hourStyle.Foreground(lipgloss.Color("11"))
	doneStyle        = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("8"))
	selectedStyle    = lipgloss.NewStyle().Bold(true)
)

var categoryColors = map[string]lipgloss.Color{
	"general":   lipgloss.Color("7"),
	"personal":  lipgloss.Color("13"),
	"work":      lipgloss.Color("12"),
	"bug":       lipgloss.Color("9"),
	"idea":      lipgloss.Color("11"),
	"challenge": lipgloss.Color("208"),
	"coding":    lipgloss.Color("10"),
}

func CategoryStyle(category string) lipgloss.Style {
	color, ok := categoryColors[category]
	if !ok {
		color = categoryColors["general"]
	}
	return lipgloss.NewStyle().Foreground(color)
}

func RenderWeekStrip(month string, days []WeekDayData) string {
	cells := make([]string, 0, len(days)+1)
	cells = append(cells, headerStyle.Render(month))
	for _, d := range days {
		style := dayStyle
		switch {
		case d.Selected:
			style = selectedDayStyle
		case d.Today:
			style = todayStyle
		}
		cells = append(cells, style.Render(d.Label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func RenderTimeline(slots []SlotData) string {
	var b strings.Builder
	for i, slot := range slots {
		label := hourStyle.Render(slot.Label)
		marker := "  "
		switch {
		case slot.Cursor:
			label = cursorHourStyle.Render(slot.Label)
			marker = "> "
		case slot.Now:
			label = nowHourStyle.Render(slot.Label)
		}
		b.WriteString(marker + label + " │")
		for j, task := range slot.Tasks {
			if j > 0 {
				b.WriteString("\n" + strings.Repeat(" ", 9) + "│")
			}
			b.WriteString(" " + renderTask(task))
		}
		if i < len(slots)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func renderTask(task TaskData) string {
	box := "[ ]"
	if task.Completed {
		box = "[x]"
	}
	name := task.Name
	if task.Completed {
		name = doneStyle.Render(name)
	} else if task.Selected {
		name = selectedStyle.Render(name)
	}
	line := fmt.Sprintf("%s %s %s %s", box, task.Time, name, CategoryStyle(task.Category).Render("#"+task.Category))
	if task.Reminder {
		line += " ⏰"
	}
	if task.Selected {
		line = "» " + line
	}
	return line
}

func RenderTaskDetail(data *TaskDetailData) string {
	if data == nil {
		return "task:\n(no task in this hour)"
	}
	status := "open"
	if data.Completed {
		status = "done"
	}
	var b strings.Builder
	b.WriteString("task:\n")
	b.WriteString(selectedStyle.Render(data.Name) + "\n")
	b.WriteString(fmt.Sprintf("category: %s\n", CategoryStyle(data.Category).Render(data.Category)))
	b.WriteString(fmt.Sprintf("when: %s\n", data.When))
	b.WriteString(fmt.Sprintf("status: %s\n", status))
	b.WriteString(fmt.Sprintf("reminder: %s\n", data.Reminder))
	if desc := RenderMarkdown(data.Description, data.Width); desc != "" {
		b.WriteString("\n" + desc)
	}
	return strings.TrimSpace(b.String())
}

func RenderInput(label, view string) string {
	if view == "" {
		return ""
	}
	return fmt.Sprintf("%s:\n%s", label, view)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
