package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"dailytrack/internal/tracker"
	"dailytrack/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelectedTaskToCursor()
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		m.syncSelectedTaskToCursor()
	case "enter", " ":
		m.completeSelected()
	case "a":
		return m, m.openAddForm()
	case "e":
		return m, m.openEditForm()
	case "x":
		m.deleteSelected()
	}
	return m, nil
}

func (m *Model) completeSelected() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	if task.Completed {
		m.Status = StatusBar{Text: "already completed", IsError: false}
		return
	}
	if _, err := m.svc.Complete(context.Background(), task.ID); err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", task.Title), IsError: false}
	m.reloadTasks()
	m.reloadHistory()
}

func (m *Model) deleteSelected() {
	task, ok := m.currentTask()
	if !ok {
		return
	}
	if err := m.svc.Delete(context.Background(), task.ID); err != nil {
		m.setError(err)
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", task.Title), IsError: false}
	m.reloadTasks()
}

func (m *Model) openAddForm() tea.Cmd {
	m.Form = TaskFormState{Active: true, Mode: "add", Field: FieldTitle}
	m.titleInput.SetValue("")
	m.dateInput.SetValue(m.Today)
	m.timeInput.SetValue("")
	return m.focusFormField()
}

func (m *Model) openEditForm() tea.Cmd {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	m.Form = TaskFormState{Active: true, Mode: "edit", TaskID: task.ID, Field: FieldTitle}
	m.titleInput.SetValue(task.Title)
	m.dateInput.SetValue(task.Date)
	m.timeInput.SetValue(task.Time)
	return m.focusFormField()
}

func (m *Model) focusFormField() tea.Cmd {
	m.titleInput.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
	switch m.Form.Field {
	case FieldDate:
		return m.dateInput.Focus()
	case FieldTime:
		return m.timeInput.Focus()
	default:
		return m.titleInput.Focus()
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "form cancelled", IsError: false}
		return m, nil
	case "tab":
		m.Form.Field = (m.Form.Field + 1) % 3
		return m, m.focusFormField()
	case "shift+tab":
		m.Form.Field = (m.Form.Field + 2) % 3
		return m, m.focusFormField()
	case "enter":
		m.submitForm()
		return m, nil
	}

	var cmd tea.Cmd
	switch m.Form.Field {
	case FieldDate:
		m.dateInput, cmd = m.dateInput.Update(msg)
	case FieldTime:
		m.timeInput, cmd = m.timeInput.Update(msg)
	default:
		m.titleInput, cmd = m.titleInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) submitForm() {
	ctx := context.Background()
	title := m.titleInput.Value()
	date := m.dateInput.Value()
	clock := m.timeInput.Value()

	var err error
	if m.Form.Mode == "edit" {
		_, err = m.svc.Edit(ctx, m.Form.TaskID, title, date, clock)
	} else {
		_, err = m.svc.Create(ctx, title, date, clock)
	}
	if err != nil {
		if errors.Is(err, tracker.ErrValidation) {
			m.Form.Err = err.Error()
			return
		}
		m.setError(err)
		m.closeForm()
		return
	}
	verb := "added"
	if m.Form.Mode == "edit" {
		verb = "updated"
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s", verb, title), IsError: false}
	m.closeForm()
	m.reloadTasks()
	m.reloadCalendar()
}

func (m *Model) closeForm() {
	m.Form = TaskFormState{}
	m.titleInput.Blur()
	m.dateInput.Blur()
	m.timeInput.Blur()
}

func (m Model) renderTasksView() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	now := m.now()
	for _, task := range m.Tasks {
		due, err := task.DueAt()
		overdue := err == nil && due.Before(now)
		items = append(items, views.TaskItemData{
			ID:      task.ID,
			Title:   task.Title,
			Time:    task.Time,
			Overdue: overdue,
		})
	}
	return views.RenderTaskPanel(views.TaskPanelData{
		Date:          m.Today,
		Items:         items,
		AllDone:       m.Daily.Total > 0 && m.Daily.Completed == m.Daily.Total,
		SelectedID:    m.SelectedTaskID,
		ListView:      m.taskList.View(),
		ProgressView:  m.dailyBar.ViewAs(m.Daily.Percent / 100),
		ProgressLabel: m.Daily.Label(),
	})
}

func (m Model) renderTaskFormIfVisible() string {
	return views.RenderTaskForm(views.TaskFormData{
		Active:    m.Form.Active,
		Mode:      m.Form.Mode,
		TitleView: m.titleInput.View(),
		DateView:  m.dateInput.View(),
		TimeView:  m.timeInput.View(),
		ErrorText: m.Form.Err,
	})
}
