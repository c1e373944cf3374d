package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"dailytrack/internal/commands"
	"dailytrack/internal/model"
	"dailytrack/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed", IsError: false}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
		return m, cmd
	}
	return m, nil
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.Palette.Active = false
		m.Palette.Input = ""
		return m
	}

	ctx := context.Background()
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			date := a.Date
			if date == "" {
				date = m.Today
			}
			task, err := m.svc.Create(ctx, a.Title, date, a.Time)
			if err != nil {
				return commands.Result{}, err
			}
			m.reloadTasks()
			m.reloadCalendar()
			return commands.Result{Message: fmt.Sprintf("added: %s at %s", task.Title, task.Time)}, nil
		},
		Complete: func(a commands.CompleteArgs) (commands.Result, error) {
			task, err := m.taskByNumber(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if _, err := m.svc.Complete(ctx, task.ID); err != nil {
				return commands.Result{}, err
			}
			m.reloadTasks()
			m.reloadHistory()
			return commands.Result{Message: fmt.Sprintf("completed: %s", task.Title)}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			task, err := m.taskByNumber(a.Target)
			if err != nil {
				return commands.Result{}, err
			}
			if err := m.svc.Delete(ctx, task.ID); err != nil {
				return commands.Result{}, err
			}
			m.reloadTasks()
			return commands.Result{Message: fmt.Sprintf("deleted: %s", task.Title)}, nil
		},
		Show: func(a commands.ShowArgs) (commands.Result, error) {
			switch a.Subject {
			case "history":
				m.CurrentView = ViewHistory
				m.reloadHistory()
			case "calendar":
				m.CurrentView = ViewCalendar
				m.reloadCalendar()
			case "profile":
				m.CurrentView = ViewProfile
				m.reloadProfile()
			default:
				m.CurrentView = ViewTasks
				m.reloadTasks()
			}
			return commands.Result{Message: fmt.Sprintf("show %s", a.Subject)}, nil
		},
		Reset: func() (commands.Result, error) {
			if err := m.svc.Reset(ctx); err != nil {
				return commands.Result{}, err
			}
			m.reloadAll()
			return commands.Result{Message: "all data cleared"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message, IsError: false}
	}

	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	return m
}

func (m Model) taskByNumber(target string) (model.Task, error) {
	n, err := strconv.Atoi(strings.TrimSpace(target))
	if err != nil || n < 1 || n > len(m.Tasks) {
		return model.Task{}, &commands.CommandError{
			Code:    commands.ErrCodeInvalidArgument,
			Message: fmt.Sprintf("no task numbered %q on %s", target, m.Today),
		}
	}
	return m.Tasks[n-1], nil
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
