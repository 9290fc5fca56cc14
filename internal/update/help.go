package update

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/hourline/internal/views"
)

type keyMap struct {
	PrevDay  key.Binding
	NextDay  key.Binding
	PrevWeek key.Binding
	NextWeek key.Binding
	Down     key.Binding
	Up       key.Binding
	NextTask key.Binding
	Add      key.Binding
	Toggle   key.Binding
	Delete   key.Binding
	Today    key.Binding
	Palette  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevDay:  key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "previous day")),
		NextDay:  key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "next day")),
		PrevWeek: key.NewBinding(key.WithKeys("H"), key.WithHelp("H", "previous week")),
		NextWeek: key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "next week")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "next hour")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "previous hour")),
		NextTask: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next task in hour")),
		Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add at hour")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle done")),
		Delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Today:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Palette:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "command palette")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevDay, k.NextDay, k.PrevWeek, k.NextWeek, k.Today},
		{k.Down, k.Up, k.NextTask},
		{k.Add, k.Toggle, k.Delete},
		{k.Palette, k.Help, k.Quit},
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return "\n\n" + views.RenderHelpPanel(views.HelpPanelData{
		Bindings: []string{
			"- add <HH[:MM]> [#category] <name>",
			"- done <n> / rm <n>",
			"- goto <YYYY-MM-DD|today|tomorrow|yesterday>",
		},
		HelpView: m.helpModel.View(m.keys),
	})
}
