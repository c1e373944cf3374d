package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: not found")

// Meta keys for singleton values kept in the key/value table.
const (
	MetaProfile      = "profile"
	MetaTheme        = "theme"
	MetaLastRollover = "last_rollover"
	MetaPermission   = "notification_permission"
)

type Repository interface {
	CreateTask(ctx context.Context, in Task) error
	GetTask(ctx context.Context, id string) (Task, error)
	UpdateTask(ctx context.Context, in Task) error
	DeleteTask(ctx context.Context, id string) error
	ListTasks(ctx context.Context, filter TaskListFilter) ([]Task, error)

	CreateTemplate(ctx context.Context, in Template) error
	DeleteTemplate(ctx context.Context, title, clock string) error
	ListTemplates(ctx context.Context) ([]Template, error)

	AppendHistory(ctx context.Context, in HistoryEntry) error
	ListHistory(ctx context.Context) ([]HistoryEntry, error)

	GetMeta(ctx context.Context, key string) (string, error)
	SetMeta(ctx context.Context, key, value string) error

	// Reset clears tasks, templates, history, and meta in one transaction.
	Reset(ctx context.Context) error
}
