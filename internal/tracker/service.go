package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"dailytrack/internal/model"
	"dailytrack/internal/storage"
)

var (
	ErrNotFound   = errors.New("tracker: task not found")
	ErrValidation = errors.New("tracker: invalid task fields")
)

// ReminderSink receives synchronous (de)scheduling calls as part of every
// mutation, so a stale timer can never fire against superseded state.
type ReminderSink interface {
	ScheduleTask(task model.Task)
	CancelTask(id string)
	CancelAll()
}

type NoopReminderSink struct{}

func (NoopReminderSink) ScheduleTask(model.Task) {}
func (NoopReminderSink) CancelTask(string)       {}
func (NoopReminderSink) CancelAll()              {}

// Service owns the task collection, the template registry, and the history
// log. Every mutation persists before returning; callbacks and UI actions
// interleave through the mutex, never mid-mutation.
type Service struct {
	mu        sync.Mutex
	repo      storage.Repository
	reminders ReminderSink
	now       func() time.Time
	newID     func() string
}

func New(repo storage.Repository, reminders ReminderSink) *Service {
	if reminders == nil {
		reminders = NoopReminderSink{}
	}
	return &Service{
		repo:      repo,
		reminders: reminders,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// SetReminderSink swaps the sink; used during wiring because the reminder
// manager needs the service for live task lookups.
func (s *Service) SetReminderSink(sink ReminderSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sink == nil {
		sink = NoopReminderSink{}
	}
	s.reminders = sink
}

func (s *Service) Create(ctx context.Context, title, date, clock string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := model.Task{
		ID:        s.newID(),
		Title:     strings.TrimSpace(title),
		Date:      date,
		Time:      clock,
		CreatedAt: s.now(),
	}
	if err := task.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := s.repo.CreateTask(ctx, toStorageTask(task)); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	if err := s.repo.CreateTemplate(ctx, storage.Template{
		Title:     task.Title,
		Time:      task.Time,
		CreatedAt: task.CreatedAt,
	}); err != nil {
		return model.Task{}, fmt.Errorf("ensure template: %w", err)
	}

	s.reminders.ScheduleTask(task)
	return task, nil
}

// CreateFromTemplate materializes one task instance for the given date.
// The template already exists, so registry sync is skipped.
func (s *Service) CreateFromTemplate(ctx context.Context, tpl model.Template, date string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := tpl.Materialize(s.newID(), date, s.now())
	if err := task.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err := s.repo.CreateTask(ctx, toStorageTask(task)); err != nil {
		return model.Task{}, fmt.Errorf("create task: %w", err)
	}
	s.reminders.ScheduleTask(task)
	return task, nil
}

func (s *Service) Edit(ctx context.Context, id, title, date, clock string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.getTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	updated := current
	updated.Title = strings.TrimSpace(title)
	updated.Date = date
	updated.Time = clock
	if err := updated.Validate(); err != nil {
		return model.Task{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.reminders.CancelTask(id)
	if err := s.repo.UpdateTask(ctx, toStorageTask(updated)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	if !updated.Completed {
		s.reminders.ScheduleTask(updated)
	}
	return updated, nil
}

func (s *Service) Complete(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.getTask(ctx, id)
	if err != nil {
		return model.Task{}, err
	}
	if task.Completed {
		// Completion is a one-way transition; a repeat call is a no-op.
		return task, nil
	}

	now := s.now()
	task.Completed = true
	s.reminders.CancelTask(id)
	if err := s.repo.UpdateTask(ctx, toStorageTask(task)); err != nil {
		return model.Task{}, fmt.Errorf("update task: %w", err)
	}
	entry := model.NewHistoryEntry(s.newID(), task, now)
	if err := s.repo.AppendHistory(ctx, storage.HistoryEntry{
		ID:            entry.ID,
		Title:         entry.Title,
		Date:          entry.Date,
		CompletedTime: entry.CompletedTime,
		CreatedAt:     entry.CreatedAt,
	}); err != nil {
		return model.Task{}, fmt.Errorf("append history: %w", err)
	}
	return task, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, err := s.getTask(ctx, id)
	if err != nil {
		return err
	}

	s.reminders.CancelTask(id)
	if err := s.repo.DeleteTask(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	// Drop the template once its last matching task is gone.
	remaining, err := s.repo.ListTasks(ctx, storage.TaskListFilter{})
	if err != nil {
		return fmt.Errorf("list tasks: %w", err)
	}
	stillInUse := false
	for _, item := range remaining {
		if item.Title == task.Title && item.Time == task.Time {
			stillInUse = true
			break
		}
	}
	if !stillInUse {
		if err := s.repo.DeleteTemplate(ctx, task.Title, task.Time); err != nil {
			return fmt.Errorf("delete template: %w", err)
		}
	}
	return nil
}

func (s *Service) Find(ctx context.Context, id string) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getTask(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listTasks(ctx, storage.TaskListFilter{})
}

func (s *Service) TasksOn(ctx context.Context, date string) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listTasks(ctx, storage.TaskListFilter{Date: date})
}

// HasTask reports whether a task with the exact (title, time, date) triple
// exists; rollover uses it to keep materialization idempotent.
func (s *Service) HasTask(ctx context.Context, title, clock, date string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.listTasks(ctx, storage.TaskListFilter{Date: date})
	if err != nil {
		return false, err
	}
	for _, task := range tasks {
		if task.Matches(title, clock) {
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) Templates(ctx context.Context) ([]model.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	out := make([]model.Template, 0, len(items))
	for _, item := range items {
		out = append(out, model.Template{Title: item.Title, Time: item.Time})
	}
	return out, nil
}

func (s *Service) History(ctx context.Context) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.ListHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	out := make([]model.HistoryEntry, 0, len(items))
	for _, item := range items {
		out = append(out, model.HistoryEntry{
			ID:            item.ID,
			Title:         item.Title,
			Date:          item.Date,
			CompletedTime: item.CompletedTime,
			CreatedAt:     item.CreatedAt,
		})
	}
	return out, nil
}

// Reset wipes tasks, templates, history, and meta, and silences every
// outstanding reminder. No partial reset state is observable.
func (s *Service) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders.CancelAll()
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

type profilePayload struct {
	Name string `json:"name"`
}

// Profile returns the stored user name, or empty when absent or malformed.
func (s *Service) Profile(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.repo.GetMeta(ctx, storage.MetaProfile)
	if err != nil {
		return ""
	}
	var payload profilePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return ""
	}
	return payload.Name
}

func (s *Service) SaveProfile(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: profile name is required", ErrValidation)
	}
	raw, err := json.Marshal(profilePayload{Name: name})
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	return s.repo.SetMeta(ctx, storage.MetaProfile, string(raw))
}

// Theme returns the stored theme name, defaulting to "system".
func (s *Service) Theme(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, err := s.repo.GetMeta(ctx, storage.MetaTheme)
	if err != nil || value == "" {
		return "system"
	}
	return value
}

func (s *Service) SetTheme(ctx context.Context, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.SetMeta(ctx, storage.MetaTheme, theme)
}

func (s *Service) getTask(ctx context.Context, id string) (model.Task, error) {
	item, err := s.repo.GetTask(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return model.Task{}, ErrNotFound
		}
		return model.Task{}, fmt.Errorf("get task: %w", err)
	}
	return fromStorageTask(item), nil
}

func (s *Service) listTasks(ctx context.Context, filter storage.TaskListFilter) ([]model.Task, error) {
	items, err := s.repo.ListTasks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	out := make([]model.Task, 0, len(items))
	for _, item := range items {
		out = append(out, fromStorageTask(item))
	}
	return out, nil
}

func toStorageTask(task model.Task) storage.Task {
	return storage.Task{
		ID:        task.ID,
		Title:     task.Title,
		Date:      task.Date,
		Time:      task.Time,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt,
	}
}

func fromStorageTask(item storage.Task) model.Task {
	return model.Task{
		ID:        item.ID,
		Title:     item.Title,
		Date:      item.Date,
		Time:      item.Time,
		Completed: item.Completed,
		CreatedAt: item.CreatedAt,
	}
}
