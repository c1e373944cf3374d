package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Morning run",
		Date:      "2026-02-09",
		Time:      "07:30",
		CreatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRejectsBadFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{ID: "task-1", Title: "Run", Date: "02/09/2026", Time: "07:30", CreatedAt: now}
	if err := task.Validate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got: %v", err)
	}

	task.Date = "2026-02-09"
	task.Time = "7:30pm"
	if err := task.Validate(); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got: %v", err)
	}

	task.Time = "19:30"
	task.Title = "   "
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for blank title, got nil")
	}
}

func TestTaskDueAt(t *testing.T) {
	task := Task{
		ID:        "task-1",
		Title:     "Standup",
		Date:      "2026-02-09",
		Time:      "09:30",
		CreatedAt: time.Now(),
	}
	due, err := task.DueAt()
	if err != nil {
		t.Fatalf("due at: %v", err)
	}
	if due.Hour() != 9 || due.Minute() != 30 || due.Day() != 9 {
		t.Fatalf("unexpected due instant: %v", due)
	}
}

func TestTaskMatches(t *testing.T) {
	task := Task{Title: "Gym", Time: "18:00"}
	if !task.Matches("Gym", "18:00") {
		t.Fatal("expected match for identical pair")
	}
	if task.Matches("Gym", "19:00") {
		t.Fatal("did not expect match for different time")
	}
}
