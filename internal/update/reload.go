package update

import (
	"context"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"

	"dailytrack/internal/model"
	"dailytrack/internal/progress"
	"dailytrack/internal/views"
)

func (m *Model) reloadAll() {
	m.reloadTasks()
	m.reloadHistory()
	m.reloadCalendar()
	m.reloadProfile()
	m.syncBubbleData()
}

// reloadTasks keeps only the day's open tasks in the working list, the
// way the checklist shows them; completed ones still count toward the
// progress ratio and live on in history.
func (m *Model) reloadTasks() {
	ctx := context.Background()
	m.Today = model.DateString(m.now())
	tasks, err := m.svc.TasksOn(ctx, m.Today)
	if err != nil {
		m.setError(err)
		return
	}
	m.Daily = progress.DailyProgress(tasks, m.Today)
	open := make([]model.Task, 0, len(tasks))
	for _, task := range tasks {
		if !task.Completed {
			open = append(open, task)
		}
	}
	m.Tasks = open
	if m.Cursor >= len(m.Tasks) {
		m.Cursor = len(m.Tasks) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	m.syncSelectedTaskToCursor()
}

func (m *Model) reloadHistory() {
	entries, err := m.svc.History(context.Background())
	if err != nil {
		m.setError(err)
		return
	}
	m.HistoryGroups = progress.HistoryByDate(entries)
	m.Profile.Summary = progress.DaysCompletedSummary(entries)
}

func (m *Model) reloadCalendar() {
	tasks, err := m.svc.List(context.Background())
	if err != nil {
		m.setError(err)
		return
	}
	m.Calendar.Cells = progress.CalendarStatus(tasks, m.Calendar.Year, m.Calendar.Month)
	if m.Calendar.Day > len(m.Calendar.Cells) {
		m.Calendar.Day = len(m.Calendar.Cells)
	}
	if m.Calendar.Day < 1 {
		m.Calendar.Day = 1
	}
}

func (m *Model) reloadProfile() {
	ctx := context.Background()
	m.Profile.Name = m.svc.Profile(ctx)
	m.Theme = views.Theme(m.svc.Theme(ctx))
	if m.reminders != nil {
		m.Permission = m.reminders.Permission()
	}
}

func (m *Model) syncSelectedTaskToCursor() {
	if len(m.Tasks) == 0 {
		m.SelectedTaskID = ""
		return
	}
	if m.Cursor >= 0 && m.Cursor < len(m.Tasks) {
		m.SelectedTaskID = m.Tasks[m.Cursor].ID
	}
}

func (m *Model) currentTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.Cursor], true
}

func (m *Model) setError(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		items = append(items, listItem{title: task.Title, description: task.Time})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 {
		m.taskList.Select(m.Cursor)
	}

	rows := make([]table.Row, 0)
	for _, group := range m.HistoryGroups {
		for _, entry := range group.Entries {
			rows = append(rows, table.Row{group.Date, entry.CompletedTime, entry.Title})
		}
	}
	m.historyTable.SetRows(rows)

	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.Profile.Editing {
		m.nameInput.Focus()
	}
}
