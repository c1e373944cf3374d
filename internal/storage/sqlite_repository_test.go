package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "dailytrack-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	repo, err := NewSQLiteRepository(db)
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func parseRFC3339(t *testing.T, value string) time.Time {
	t.Helper()
	out, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time: %v", err)
	}
	return out
}

func TestTaskCRUDAndList(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	task := Task{
		ID:        "task-1",
		Title:     "Morning run",
		Date:      "2026-02-09",
		Time:      "07:30",
		CreatedAt: created,
	}
	if err := repo.CreateTask(ctx, task); err != nil {
		t.Fatalf("create task: %v", err)
	}

	got, err := repo.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Title != task.Title || got.Completed {
		t.Fatalf("unexpected task get result: %#v", got)
	}

	task.Title = "Evening run"
	task.Completed = true
	if err := repo.UpdateTask(ctx, task); err != nil {
		t.Fatalf("update task: %v", err)
	}

	done := true
	completed, err := repo.ListTasks(ctx, TaskListFilter{Date: "2026-02-09", Completed: &done})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(completed) != 1 || completed[0].ID != task.ID || completed[0].Title != "Evening run" {
		t.Fatalf("unexpected completed list: %#v", completed)
	}

	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, err := repo.GetTask(ctx, task.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on double delete, got: %v", err)
	}
}

func TestListTasksFiltersByDate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T06:00:00Z")

	for i, date := range []string{"2026-02-09", "2026-02-09", "2026-02-10"} {
		task := Task{
			ID:        "task-" + string(rune('a'+i)),
			Title:     "Task",
			Date:      date,
			Time:      "09:00",
			CreatedAt: created.Add(time.Duration(i) * time.Minute),
		}
		if err := repo.CreateTask(ctx, task); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}

	today, err := repo.ListTasks(ctx, TaskListFilter{Date: "2026-02-09"})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(today) != 2 {
		t.Fatalf("expected 2 tasks for the day, got %d", len(today))
	}
	if today[0].ID != "task-a" || today[1].ID != "task-b" {
		t.Fatalf("expected creation order, got: %#v", today)
	}
}

func TestTemplateInsertIsIdempotent(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	tpl := Template{Title: "Journal", Time: "21:00", CreatedAt: created}
	if err := repo.CreateTemplate(ctx, tpl); err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := repo.CreateTemplate(ctx, tpl); err != nil {
		t.Fatalf("re-create template: %v", err)
	}

	items, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 template, got %d", len(items))
	}

	if err := repo.DeleteTemplate(ctx, "Journal", "21:00"); err != nil {
		t.Fatalf("delete template: %v", err)
	}
	items, err = repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty template list, got %d", len(items))
	}
}

func TestHistoryAppendOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	base := parseRFC3339(t, "2026-02-09T12:00:00Z")

	for i, title := range []string{"First", "Second", "Third"} {
		entry := HistoryEntry{
			ID:            "hist-" + string(rune('a'+i)),
			Title:         title,
			Date:          "2026-02-09",
			CompletedTime: "12:0" + string(rune('0'+i)),
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		}
		if err := repo.AppendHistory(ctx, entry); err != nil {
			t.Fatalf("append history: %v", err)
		}
	}

	items, err := repo.ListHistory(ctx)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(items) != 3 || items[0].Title != "First" || items[2].Title != "Third" {
		t.Fatalf("unexpected history order: %#v", items)
	}
}

func TestMetaGetSet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	if _, err := repo.GetMeta(ctx, MetaLastRollover); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for absent key, got: %v", err)
	}

	if err := repo.SetMeta(ctx, MetaLastRollover, "2026-02-09"); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	if err := repo.SetMeta(ctx, MetaLastRollover, "2026-02-10"); err != nil {
		t.Fatalf("overwrite meta: %v", err)
	}

	value, err := repo.GetMeta(ctx, MetaLastRollover)
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if value != "2026-02-10" {
		t.Fatalf("unexpected meta value: %q", value)
	}
}

func TestResetClearsEverything(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()
	created := parseRFC3339(t, "2026-02-09T12:00:00Z")

	if err := repo.CreateTask(ctx, Task{ID: "t1", Title: "A", Date: "2026-02-09", Time: "09:00", CreatedAt: created}); err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := repo.CreateTemplate(ctx, Template{Title: "A", Time: "09:00", CreatedAt: created}); err != nil {
		t.Fatalf("create template: %v", err)
	}
	if err := repo.AppendHistory(ctx, HistoryEntry{ID: "h1", Title: "A", Date: "2026-02-09", CompletedTime: "09:05", CreatedAt: created}); err != nil {
		t.Fatalf("append history: %v", err)
	}
	if err := repo.SetMeta(ctx, MetaTheme, "dark"); err != nil {
		t.Fatalf("set meta: %v", err)
	}

	if err := repo.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}

	tasks, err := repo.ListTasks(ctx, TaskListFilter{})
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	templates, err := repo.ListTemplates(ctx)
	if err != nil {
		t.Fatalf("list templates: %v", err)
	}
	history, err := repo.ListHistory(ctx)
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(tasks) != 0 || len(templates) != 0 || len(history) != 0 {
		t.Fatalf("expected empty stores after reset: %d %d %d", len(tasks), len(templates), len(history))
	}
	if _, err := repo.GetMeta(ctx, MetaTheme); err != ErrNotFound {
		t.Fatalf("expected meta cleared, got: %v", err)
	}
}
