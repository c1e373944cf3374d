package update

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dailytrack/internal/model"
	"dailytrack/internal/reminder"
	"dailytrack/internal/storage"
	"dailytrack/internal/tracker"
)

func newTestModel(t *testing.T) (Model, *tracker.Service) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "update-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := storage.MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	repo, err := storage.NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	svc := tracker.New(repo, tracker.NoopReminderSink{})
	return NewModel(svc, nil, nil), svc
}

func typeRunes(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = updated.(Model)
	}
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.CurrentView != ViewTasks {
		t.Fatalf("expected default view %q, got %q", ViewTasks, m.CurrentView)
	}
	if m.Keys.Quit != "q" || m.Keys.Help != "?" {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
	if m.Today != model.DateString(time.Now()) {
		t.Fatalf("expected today %q, got %q", model.DateString(time.Now()), m.Today)
	}
}

func TestUpdateKeySwitchesView(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}})
	next := updated.(Model)
	if next.CurrentView != ViewHistory {
		t.Fatalf("expected history view, got %q", next.CurrentView)
	}

	updated, _ = next.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	next = updated.(Model)
	if next.CurrentView != ViewCalendar {
		t.Fatalf("expected calendar view, got %q", next.CurrentView)
	}
}

func TestAddFormCreatesTask(t *testing.T) {
	m, svc := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(Model)
	if !m.Form.Active || m.Form.Mode != "add" {
		t.Fatalf("expected active add form, got %+v", m.Form)
	}
	if m.dateInput.Value() != m.Today {
		t.Fatalf("expected date prefilled with %q, got %q", m.Today, m.dateInput.Value())
	}

	m = typeRunes(t, m, "Evening walk")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	m = typeRunes(t, m, "21:30")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.Form.Active {
		t.Fatalf("expected form closed, err=%q", m.Form.Err)
	}
	tasks, err := svc.TasksOn(context.Background(), m.Today)
	if err != nil {
		t.Fatalf("tasks on: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Evening walk" || tasks[0].Time != "21:30" {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
	if len(m.Tasks) != 1 {
		t.Fatalf("expected model reloaded with 1 task, got %d", len(m.Tasks))
	}
}

func TestAddFormValidationKeepsFormOpen(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	m = updated.(Model)

	m = typeRunes(t, m, "No time set")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if !m.Form.Active {
		t.Fatal("expected form to stay open on validation error")
	}
	if m.Form.Err == "" {
		t.Fatal("expected validation error text")
	}
}

func TestEnterCompletesSelectedTask(t *testing.T) {
	m, svc := newTestModel(t)
	if _, err := svc.Create(context.Background(), "Stretch", m.Today, "23:59"); err != nil {
		t.Fatalf("create: %v", err)
	}
	m.reloadTasks()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if m.Daily.Completed != 1 || m.Daily.Total != 1 {
		t.Fatalf("unexpected daily progress: %+v", m.Daily)
	}
	if len(m.Tasks) != 0 {
		t.Fatalf("expected completed task hidden from today's list, got %d", len(m.Tasks))
	}
	if out := m.View(); !strings.Contains(out, "All tasks completed for today!") {
		t.Fatalf("expected all-done state in output: %q", out)
	}
}

func TestCompletedTasksHiddenFromList(t *testing.T) {
	m, svc := newTestModel(t)
	if _, err := svc.Create(context.Background(), "Stretch", m.Today, "23:59"); err != nil {
		t.Fatalf("create: %v", err)
	}
	done, err := svc.Create(context.Background(), "Journal", m.Today, "22:00")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := svc.Complete(context.Background(), done.ID); err != nil {
		t.Fatalf("complete: %v", err)
	}
	m.reloadTasks()

	if len(m.Tasks) != 1 || m.Tasks[0].Title != "Stretch" {
		t.Fatalf("expected only the open task, got %#v", m.Tasks)
	}
	if m.Daily.Total != 2 || m.Daily.Completed != 1 {
		t.Fatalf("expected progress over all tasks, got %+v", m.Daily)
	}
	if out := m.View(); strings.Contains(out, "Journal") {
		t.Fatalf("completed task still rendered: %q", out)
	}
}

func TestDeleteKeyRemovesTask(t *testing.T) {
	m, svc := newTestModel(t)
	if _, err := svc.Create(context.Background(), "Stretch", m.Today, "23:59"); err != nil {
		t.Fatalf("create: %v", err)
	}
	m.reloadTasks()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updated.(Model)
	if len(m.Tasks) != 0 {
		t.Fatalf("expected no tasks left, got %d", len(m.Tasks))
	}
}

func TestDeleteKeySyncsListWidget(t *testing.T) {
	m, svc := newTestModel(t)
	if _, err := svc.Create(context.Background(), "Stretch", m.Today, "23:59"); err != nil {
		t.Fatalf("create: %v", err)
	}
	m.reloadTasks()
	m.syncBubbleData()
	if len(m.taskList.Items()) != 1 {
		t.Fatalf("expected 1 list item before delete, got %d", len(m.taskList.Items()))
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	m = updated.(Model)
	if len(m.Tasks) != 0 {
		t.Fatalf("expected no tasks left, got %d", len(m.Tasks))
	}
	if got := len(m.taskList.Items()); got != 0 {
		t.Fatalf("list widget out of sync after delete: %d items", got)
	}
}

func TestPaletteAddCommand(t *testing.T) {
	m, svc := newTestModel(t)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	if !m.Palette.Active {
		t.Fatal("expected palette active")
	}

	m = typeRunes(t, m, "add 09:00 Morning pages")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	if m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	tasks, err := svc.TasksOn(context.Background(), m.Today)
	if err != nil {
		t.Fatalf("tasks on: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Morning pages" {
		t.Fatalf("unexpected tasks: %#v", tasks)
	}
}

func TestPaletteDoneByNumber(t *testing.T) {
	m, svc := newTestModel(t)
	if _, err := svc.Create(context.Background(), "Stretch", m.Today, "23:59"); err != nil {
		t.Fatalf("create: %v", err)
	}
	m.reloadTasks()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	m = typeRunes(t, m, "done 1")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.Status.IsError {
		t.Fatalf("unexpected error status: %+v", m.Status)
	}
	if m.Daily.Completed != 1 {
		t.Fatalf("expected completion recorded, got %+v", m.Daily)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = updated.(Model)
	m = typeRunes(t, m, "done 7")
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)
	if !m.Status.IsError {
		t.Fatalf("expected error for out-of-range number, got %+v", m.Status)
	}
}

func TestCalendarMonthNavigation(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'3'}})
	m = updated.(Model)

	want := time.Date(m.Calendar.Year, m.Calendar.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, 1, 0)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'l'}})
	m = updated.(Model)
	if m.Calendar.Year != want.Year() || m.Calendar.Month != want.Month() {
		t.Fatalf("expected %s %d, got %s %d", want.Month(), want.Year(), m.Calendar.Month, m.Calendar.Year)
	}
	if m.Calendar.Day != 1 {
		t.Fatalf("expected day cursor reset, got %d", m.Calendar.Day)
	}
}

func TestProfileResetClearsTasks(t *testing.T) {
	m, svc := newTestModel(t)
	if _, err := svc.Create(context.Background(), "Stretch", m.Today, "23:59"); err != nil {
		t.Fatalf("create: %v", err)
	}
	m.reloadTasks()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'4'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'R'}})
	m = updated.(Model)

	if len(m.Tasks) != 0 {
		t.Fatalf("expected no tasks after reset, got %d", len(m.Tasks))
	}
	tasks, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty store after reset, got %d", len(tasks))
	}
}

func TestReminderFiredMsgUpdatesLogAndStatus(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(ReminderFiredMsg{Event: reminder.FireEvent{TaskID: "t1", Title: "Stretch", At: time.Now()}})
	m = updated.(Model)
	if len(m.ReminderLog) != 1 {
		t.Fatalf("expected 1 reminder logged, got %d", len(m.ReminderLog))
	}
	if !strings.Contains(m.Status.Text, "Stretch") {
		t.Fatalf("unexpected status: %+v", m.Status)
	}
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := newTestModel(t)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	if !strings.Contains(out, "view: Tasks") {
		t.Fatalf("expected view name in output: %q", out)
	}
	if !strings.Contains(out, "status: all good") {
		t.Fatalf("expected status in output: %q", out)
	}
	if !strings.Contains(out, "No tasks for today") {
		t.Fatalf("expected empty-state hint in output: %q", out)
	}
}

func TestHelpPanelListsGlobalBindings(t *testing.T) {
	m, _ := newTestModel(t)
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	m = updated.(Model)
	if !m.HelpVisible {
		t.Fatal("expected help panel visible")
	}
	out := m.View()
	if !strings.Contains(out, "open command palette") {
		t.Fatalf("expected global binding listed under help: %q", out)
	}
	if !strings.Contains(out, "toggle help panel") {
		t.Fatalf("expected help toggle binding listed: %q", out)
	}
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	next := updated.(Model)
	if !next.Quitting {
		t.Fatal("expected quitting flag true")
	}
	if cmd == nil {
		t.Fatal("expected quit command")
	}
}
