package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"dailytrack/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	bindings := m.helpBindings()
	var global []string
	for _, kb := range m.globalBindings() {
		global = append(global, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView:    string(m.CurrentView),
		GlobalBindings: global,
		Bindings:       plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	}) + "\n" + m.helpViewport.View()
}

const helpMarkdown = `# dailytrack

Track the tasks you repeat every day. Tasks you add become templates,
and each new day starts with a fresh copy of every template.

- Mark a task done and it lands in your **history**.
- The **calendar** shows how each day went.
- Enable notifications to get a nudge before a task is due.
`

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "switch to Tasks"},
		{Key: m.Keys.History, Action: "switch to History"},
		{Key: m.Keys.Calendar, Action: "switch to Calendar"},
		{Key: m.Keys.Profile, Action: "switch to Profile"},
		{Key: "/", Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move selection"},
			{Key: "enter", Action: "mark task done"},
			{Key: "a/e", Action: "add / edit task"},
			{Key: "x", Action: "delete task"},
		}
	case ViewHistory:
		return []KeyBinding{
			{Key: "j/k", Action: "scroll history"},
		}
	case ViewCalendar:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next month"},
			{Key: "j/k", Action: "move day cursor"},
		}
	case ViewProfile:
		return []KeyBinding{
			{Key: "n", Action: "edit name"},
			{Key: "t", Action: "cycle theme"},
			{Key: "g/G", Action: "grant / deny notifications"},
			{Key: "R", Action: "clear all data"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.viewBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.viewBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
