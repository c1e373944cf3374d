package update

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"dailytrack/internal/reminder"
	"dailytrack/internal/views"
)

func (m Model) handleProfileKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.Profile.Editing = true
		m.nameInput.SetValue(m.Profile.Name)
		return m, m.nameInput.Focus()
	case "t":
		m.cycleTheme()
	case "g":
		m.setPermission(reminder.PermissionGranted)
	case "G":
		m.setPermission(reminder.PermissionDenied)
	case "R":
		m.resetEverything()
	}
	return m, nil
}

func (m Model) handleProfileEditKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Profile.Editing = false
		m.nameInput.Blur()
		return m, nil
	case "enter":
		name := m.nameInput.Value()
		if err := m.svc.SaveProfile(context.Background(), name); err != nil {
			m.setError(err)
		} else {
			m.Profile.Name = name
			m.Status = StatusBar{Text: "profile saved", IsError: false}
		}
		m.Profile.Editing = false
		m.nameInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) cycleTheme() {
	next := views.ThemeSystem
	switch m.Theme {
	case views.ThemeSystem:
		next = views.ThemeDark
	case views.ThemeDark:
		next = views.ThemeLight
	}
	if err := m.svc.SetTheme(context.Background(), string(next)); err != nil {
		m.setError(err)
		return
	}
	m.Theme = next
	m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown, next))
	m.Status = StatusBar{Text: fmt.Sprintf("theme: %s", next), IsError: false}
}

func (m *Model) setPermission(p reminder.Permission) {
	if m.reminders == nil {
		m.Permission = p
		return
	}
	if err := m.reminders.SetPermission(context.Background(), p); err != nil {
		m.setError(err)
		return
	}
	m.Permission = p
	if p == reminder.PermissionGranted {
		m.reminders.ScheduleAll(m.Tasks)
		m.Status = StatusBar{Text: "notifications enabled", IsError: false}
		return
	}
	m.Status = StatusBar{Text: "notifications disabled", IsError: false}
}

func (m *Model) resetEverything() {
	if err := m.svc.Reset(context.Background()); err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: "all data cleared", IsError: false}
	m.reloadAll()
}

func (m Model) renderProfileView() string {
	summary := ""
	if m.Profile.Summary.Count > 0 {
		summary = fmt.Sprintf("active on %d day(s)", m.Profile.Summary.Count)
	}
	return views.RenderProfilePanel(views.ProfilePanelData{
		Name:          m.Profile.Name,
		NameInputView: m.nameInput.View(),
		Editing:       m.Profile.Editing,
		Theme:         string(m.Theme),
		Permission:    string(m.Permission),
		DaysSummary:   summary,
	})
}
