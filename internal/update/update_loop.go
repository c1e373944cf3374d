package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dailytrack/internal/reminder"
	"dailytrack/internal/views"
)

const refreshInterval = time.Minute

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{refreshTickCmd()}
	if m.reminders != nil {
		cmds = append(cmds, waitForReminderCmd(m.reminders.Events()))
	}
	return tea.Batch(cmds...)
}

// Update delegates to apply and syncs the bubble components on the model
// actually returned, so list and table contents never lag a mutation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.apply(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) apply(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}
		if m.Profile.Editing {
			return m.handleProfileEditKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, m.commandInput.Focus()
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			m.reloadTasks()
			return m, nil
		case m.Keys.History:
			m.CurrentView = ViewHistory
			m.reloadHistory()
			return m, nil
		case m.Keys.Calendar:
			m.CurrentView = ViewCalendar
			m.reloadCalendar()
			return m, nil
		case m.Keys.Profile:
			m.CurrentView = ViewProfile
			m.reloadProfile()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed)
		case ViewCalendar:
			return m.handleCalendarKey(typed), nil
		case ViewProfile:
			return m.handleProfileKey(typed)
		case ViewHistory:
			return m.handleHistoryKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			m.reloadAll()
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		if typed.Err != nil {
			m.setError(typed.Err)
		}
		return m, nil
	case ReminderFiredMsg:
		m.ReminderLog = append(m.ReminderLog, typed.Event)
		if len(m.ReminderLog) > 20 {
			m.ReminderLog = m.ReminderLog[len(m.ReminderLog)-20:]
		}
		m.Status = StatusBar{Text: fmt.Sprintf("reminder: %s", typed.Event.Title), IsError: false}
		if m.reminders != nil {
			return m, waitForReminderCmd(m.reminders.Events())
		}
		return m, nil
	case RefreshTickMsg:
		if m.roll != nil {
			if _, err := m.roll.Run(context.Background()); err != nil {
				m.setError(err)
			}
		}
		m.reloadAll()
		return m, refreshTickCmd()
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTasksView()
		rightPane = m.renderTaskFormIfVisible() + m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewHistory:
		leftPane = m.renderHistoryView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewCalendar:
		leftPane = m.renderCalendarView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewProfile:
		leftPane = m.renderProfileView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.ReminderLog) > 0 {
		last := m.ReminderLog[len(m.ReminderLog)-1]
		notificationView = fmt.Sprintf("last-reminder: %s @ %s", last.Title, last.At.Format("15:04:05"))
	}
	notificationView += views.RenderPermissionBanner(views.PermissionBannerData{
		Visible: m.Permission != reminder.PermissionGranted,
	})

	greeting := "dailytrack"
	if m.Profile.Name != "" {
		greeting = fmt.Sprintf("dailytrack | hi, %s", m.Profile.Name)
	}

	return views.RenderApp(views.AppData{
		Theme:        m.Theme,
		Header:       fmt.Sprintf("%s | %s | view: %s", greeting, m.Today, m.CurrentView),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s tasks | %s history | %s cal | %s profile | / cmd | %s help | %s quit", m.Keys.Tasks, m.Keys.History, m.Keys.Calendar, m.Keys.Profile, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewHistory, ViewCalendar, ViewProfile:
		return true
	default:
		return false
	}
}

func waitForReminderCmd(ch <-chan reminder.FireEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return ReminderFiredMsg{Event: ev}
	}
}

func refreshTickCmd() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg { return RefreshTickMsg{} })
}
