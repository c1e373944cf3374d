package model

import (
	"errors"
	"strings"
	"time"
)

// HistoryEntry records a completion event by value at the moment it
// happened. Entries are append-only; later edits to the task do not
// change them.
type HistoryEntry struct {
	ID            string
	Title         string
	Date          string
	CompletedTime string
	CreatedAt     time.Time
}

func (h HistoryEntry) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return errors.New("model: history id is required")
	}
	if strings.TrimSpace(h.Title) == "" {
		return errors.New("model: history title is required")
	}
	if strings.TrimSpace(h.Date) == "" {
		return errors.New("model: history date is required")
	}
	return nil
}

// NewHistoryEntry captures the completion of a task at the given instant.
func NewHistoryEntry(id string, task Task, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:            id,
		Title:         task.Title,
		Date:          task.Date,
		CompletedTime: at.Format(TimeLayout),
		CreatedAt:     at,
	}
}
