package storage

import "time"

type Task struct {
	ID        string
	Title     string
	Date      string
	Time      string
	Completed bool
	CreatedAt time.Time
}

type Template struct {
	Title     string
	Time      string
	CreatedAt time.Time
}

type HistoryEntry struct {
	ID            string
	Title         string
	Date          string
	CompletedTime string
	CreatedAt     time.Time
}

type TaskListFilter struct {
	Date      string
	Completed *bool
}
