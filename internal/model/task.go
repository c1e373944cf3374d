package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("model: invalid task date")
	ErrInvalidTime = errors.New("model: invalid task time")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Task is one concrete dated obligation, due at Time on Date. Completed
// flips false -> true exactly once; there is no un-complete path.
type Task struct {
	ID        string
	Title     string
	Date      string
	Time      string
	Completed bool
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if _, err := time.ParseInLocation(DateLayout, t.Date, time.Local); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, t.Date)
	}
	if _, err := time.Parse(TimeLayout, t.Time); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, t.Time)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}

// DueAt combines Date and Time into the local-time due instant.
func (t Task) DueAt() (time.Time, error) {
	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, t.Date+" "+t.Time, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("model: parse due time: %w", err)
	}
	return due, nil
}

// Matches reports whether the task instantiates the given recurrence pair.
func (t Task) Matches(title, clock string) bool {
	return t.Title == title && t.Time == clock
}

// DateString formats a wall-clock instant as a local calendar date.
func DateString(at time.Time) string {
	return at.Format(DateLayout)
}
