package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Template is a recurrence rule: a (title, time) pair regenerated as a
// concrete task each calendar day. At most one template exists per pair.
type Template struct {
	Title string
	Time  string
}

func (tp Template) Validate() error {
	if strings.TrimSpace(tp.Title) == "" {
		return errors.New("model: template title is required")
	}
	if _, err := time.Parse(TimeLayout, tp.Time); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTime, tp.Time)
	}
	return nil
}

// Key is the identity of a template, used for set membership.
func (tp Template) Key() string {
	return tp.Title + "\x00" + tp.Time
}

// Materialize builds today's task instance for the template. The caller
// assigns the id.
func (tp Template) Materialize(id, date string, now time.Time) Task {
	return Task{
		ID:        id,
		Title:     tp.Title,
		Date:      date,
		Time:      tp.Time,
		CreatedAt: now,
	}
}
