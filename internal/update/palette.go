package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/hourline/internal/commands"
	"github.com/sandeepkv93/hourline/internal/model"
)

func (m Model) openPalette() Model {
	m.Mode = ModePalette
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) openQuickAdd() Model {
	m.Mode = ModeQuickAdd
	m.quickAddInput.SetValue("")
	m.quickAddInput.Focus()
	m.Status = StatusBar{Text: "adding at " + m.cursorLabel()}
	return m
}

func (m Model) closeInput(status string) Model {
	m.Mode = ModeNormal
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	m.quickAddInput.SetValue("")
	m.quickAddInput.Blur()
	if status != "" {
		m.Status = StatusBar{Text: status}
	}
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		return m.closeInput("command palette closed")
	case "enter":
		raw := m.commandInput.Value()
		m = m.closeInput("")
		return m.executeCommand(raw)
	default:
		m.commandInput = updateInput(m.commandInput, msg)
	}
	return m
}

// handleQuickAddKey reads "[#category] name" and adds it at the cursor hour.
func (m Model) handleQuickAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		return m.closeInput("add cancelled")
	case "enter":
		text := strings.TrimSpace(m.quickAddInput.Value())
		m = m.closeInput("")
		if text == "" {
			m.Status = StatusBar{Text: "add requires a name", IsError: true}
			return m
		}
		return m.executeCommand(fmt.Sprintf("add %02d %s", m.CursorHour, text))
	default:
		m.quickAddInput = updateInput(m.quickAddInput, msg)
	}
	return m
}

func updateInput(in textinput.Model, msg tea.KeyMsg) textinput.Model {
	if msg.Type == tea.KeyRunes {
		in.SetValue(in.Value() + string(msg.Runes))
		return in
	}
	in, _ = in.Update(msg)
	return in
}

func (m Model) executeCommand(raw string) Model {
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	var warning error
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			out, err := m.addTask(model.Task{
				Name:      a.Name,
				Category:  a.Category,
				DateAdded: a.At(m.SelectedDay),
			})
			if err != nil {
				return commands.Result{}, err
			}
			warning = out.Warning
			return commands.Result{Message: fmt.Sprintf("added %q at %02d:%02d", out.Task.Name, a.Hour, a.Minute)}, nil
		},
		Done: func(a commands.IndexArgs) (commands.Result, error) {
			task, err := m.taskAt(a.Index)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			out, err := m.toggleTask(task.ID)
			if err != nil {
				return commands.Result{}, err
			}
			warning = out.Warning
			return commands.Result{Message: fmt.Sprintf("%s %q", completionVerb(out.Task.IsCompleted), out.Task.Name)}, nil
		},
		Rm: func(a commands.IndexArgs) (commands.Result, error) {
			task, err := m.taskAt(a.Index)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			out, err := m.removeTask(task.ID)
			if err != nil {
				return commands.Result{}, err
			}
			warning = out.Warning
			return commands.Result{Message: fmt.Sprintf("deleted %q", out.Task.Name)}, nil
		},
		Goto: func(g commands.GotoArgs) (commands.Result, error) {
			day, err := g.Resolve(m.now())
			if err != nil {
				return commands.Result{}, err
			}
			m.SelectedDay = day
			m.TaskCursor = 0
			m.syncTimeline()
			return commands.Result{Message: "showing " + day.Format("Mon Jan 2 2006")}, nil
		},
	})
	switch {
	case err != nil:
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	case warning != nil:
		m.Status = StatusBar{Text: fmt.Sprintf("%s: %v", res.Message, warning), IsError: true}
		m.notify("Reminder", warning.Error(), "error")
	default:
		m.Status = StatusBar{Text: res.Message}
	}
	return m
}
