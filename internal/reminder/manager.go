package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"dailytrack/internal/model"
	"dailytrack/internal/scheduler"
	"dailytrack/internal/storage"
)

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

const (
	DefaultLeadWindow  = 30 * time.Minute
	DefaultRepeatEvery = 2 * time.Minute
)

type Config struct {
	// LeadWindow is how long before the due time the first alert fires.
	LeadWindow time.Duration
	// RepeatEvery is the period of follow-up alerts after the first one.
	RepeatEvery time.Duration
}

func (c Config) withDefaults() Config {
	if c.LeadWindow <= 0 {
		c.LeadWindow = DefaultLeadWindow
	}
	if c.RepeatEvery <= 0 {
		c.RepeatEvery = DefaultRepeatEvery
	}
	return c
}

// TaskSource resolves the live task state at fire time. A snapshot taken at
// scheduling time is never trusted.
type TaskSource interface {
	Find(ctx context.Context, id string) (model.Task, error)
}

// FireEvent is surfaced to the UI whenever an alert was actually sent.
type FireEvent struct {
	TaskID string
	Title  string
	Kind   scheduler.ReminderKind
	At     time.Time
}

// Manager drives the per-task reminder lifecycle: an alert at due-time
// minus the lead window, then repeating alerts until the task is
// completed, deleted, edited away, or overdue. Tasks without notification
// permission are never armed.
type Manager struct {
	mu         sync.Mutex
	engine     *scheduler.Engine
	tasks      TaskSource
	notifier   Notifier
	meta       storage.Repository
	log        *zap.Logger
	cfg        Config
	permission Permission
	now        func() time.Time
	events     chan FireEvent
	doneCh     chan struct{}
}

func NewManager(engine *scheduler.Engine, tasks TaskSource, notifier Notifier, meta storage.Repository, log *zap.Logger, cfg Config) *Manager {
	if notifier == nil {
		notifier = NoopNotifier{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		engine:     engine,
		tasks:      tasks,
		notifier:   notifier,
		meta:       meta,
		log:        log,
		cfg:        cfg.withDefaults(),
		permission: PermissionDefault,
		now:        time.Now,
		events:     make(chan FireEvent, 16),
		doneCh:     make(chan struct{}),
	}
	m.loadPermission()
	return m
}

func (m *Manager) Start() {
	m.engine.Start()
	go m.loop()
}

func (m *Manager) Stop() {
	m.engine.Stop()
	<-m.doneCh
}

// Events carries one entry per alert actually displayed, for the UI status
// line. Slow consumers lose events rather than blocking the manager.
func (m *Manager) Events() <-chan FireEvent {
	return m.events
}

func (m *Manager) Permission() Permission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.permission
}

// SetPermission records the user's answer to the notification prompt.
// Granting does not arm anything by itself; callers follow up with
// ScheduleAll for today's open tasks.
func (m *Manager) SetPermission(ctx context.Context, p Permission) error {
	m.mu.Lock()
	m.permission = p
	m.mu.Unlock()

	if m.meta != nil {
		if err := m.meta.SetMeta(ctx, storage.MetaPermission, string(p)); err != nil {
			return err
		}
	}
	if p != PermissionGranted {
		m.engine.CancelAll()
	}
	return nil
}

// ScheduleAll rearms reminders from scratch for the given tasks. Run at
// process start and after a permission grant; pending timers do not
// survive restarts, so this is the only catch-up that exists.
func (m *Manager) ScheduleAll(tasks []model.Task) {
	m.engine.CancelAll()
	for _, task := range tasks {
		m.ScheduleTask(task)
	}
}

// ScheduleTask arms the lead-window timer for one task. The task stays
// unarmed when permission is missing, the task is already completed, or
// the lead instant is already in the past.
func (m *Manager) ScheduleTask(task model.Task) {
	m.mu.Lock()
	granted := m.permission == PermissionGranted
	lead := m.cfg.LeadWindow
	now := m.now()
	m.mu.Unlock()

	if !granted || task.Completed {
		return
	}
	due, err := task.DueAt()
	if err != nil {
		m.log.Warn("unschedulable task", zap.String("task_id", task.ID), zap.Error(err))
		return
	}
	notifyAt := due.Add(-lead)
	if !notifyAt.After(now) {
		return
	}
	if err := m.engine.Schedule(scheduler.ReminderEvent{
		TaskID:    task.ID,
		Kind:      scheduler.KindLead,
		TriggerAt: notifyAt,
	}); err != nil {
		m.log.Warn("schedule reminder", zap.String("task_id", task.ID), zap.Error(err))
	}
}

func (m *Manager) CancelTask(id string) {
	m.engine.Cancel(id)
}

func (m *Manager) CancelAll() {
	m.engine.CancelAll()
}

func (m *Manager) loop() {
	defer close(m.doneCh)
	defer close(m.events)
	for ev := range m.engine.C() {
		m.handleFire(context.Background(), ev)
	}
}

// handleFire re-checks live repository state before every alert: completed
// or deleted tasks are silently dropped, and a task whose due time has
// passed stops repeating.
func (m *Manager) handleFire(ctx context.Context, ev scheduler.ReminderEvent) {
	m.mu.Lock()
	granted := m.permission == PermissionGranted
	lead := m.cfg.LeadWindow
	repeatEvery := m.cfg.RepeatEvery
	now := m.now()
	m.mu.Unlock()

	if !granted {
		return
	}

	task, err := m.tasks.Find(ctx, ev.TaskID)
	if err != nil {
		return
	}
	if task.Completed {
		return
	}
	due, err := task.DueAt()
	if err != nil {
		return
	}
	if now.After(due) {
		m.log.Debug("reminder gone stale", zap.String("task_id", task.ID))
		return
	}

	body := formatReminderBody(task, due.Sub(now))
	if err := m.notifier.Send(Notification{Title: "Task Reminder", Body: body}); err != nil {
		m.log.Warn("notification send", zap.String("task_id", task.ID), zap.Error(err))
	}
	m.log.Info("reminder fired",
		zap.String("task_id", task.ID),
		zap.String("kind", string(ev.Kind)),
		zap.Duration("lead", lead),
	)
	m.emit(FireEvent{TaskID: task.ID, Title: task.Title, Kind: ev.Kind, At: now})

	if err := m.engine.Schedule(scheduler.ReminderEvent{
		TaskID:    task.ID,
		Kind:      scheduler.KindRepeat,
		TriggerAt: now.Add(repeatEvery),
	}); err != nil {
		m.log.Warn("schedule repeat", zap.String("task_id", task.ID), zap.Error(err))
	}
}

func (m *Manager) emit(ev FireEvent) {
	select {
	case m.events <- ev:
	default:
	}
}

func (m *Manager) loadPermission() {
	if m.meta == nil {
		return
	}
	value, err := m.meta.GetMeta(context.Background(), storage.MetaPermission)
	if err != nil {
		return
	}
	switch Permission(value) {
	case PermissionGranted, PermissionDenied:
		m.permission = Permission(value)
	}
}

func formatReminderBody(task model.Task, until time.Duration) string {
	minutes := int(until.Round(time.Minute) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("Your task %q is due in %d minutes at %s", task.Title, minutes, task.Time)
}
