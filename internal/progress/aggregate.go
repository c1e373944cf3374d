package progress

import (
	"fmt"
	"math"
	"sort"
	"time"

	"dailytrack/internal/model"
)

// Daily is the completion ratio among tasks due on one date.
type Daily struct {
	Completed int
	Total     int
	Percent   float64
}

// Label renders the ratio the way the progress bar caption shows it,
// percent rounded to the nearest integer.
func (d Daily) Label() string {
	return fmt.Sprintf("%d%% completed (%d/%d tasks)", int(math.Round(d.Percent)), d.Completed, d.Total)
}

func DailyProgress(tasks []model.Task, date string) Daily {
	out := Daily{}
	for _, task := range tasks {
		if task.Date != date {
			continue
		}
		out.Total++
		if task.Completed {
			out.Completed++
		}
	}
	if out.Total > 0 {
		out.Percent = float64(out.Completed) / float64(out.Total) * 100
	}
	return out
}

// HistoryGroup is one date's completion events in original append order.
type HistoryGroup struct {
	Date    string
	Entries []model.HistoryEntry
}

// HistoryByDate groups history entries by date, newest date first.
func HistoryByDate(entries []model.HistoryEntry) []HistoryGroup {
	byDate := make(map[string][]model.HistoryEntry)
	order := make([]string, 0)
	for _, entry := range entries {
		if _, seen := byDate[entry.Date]; !seen {
			order = append(order, entry.Date)
		}
		byDate[entry.Date] = append(byDate[entry.Date], entry)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(order)))

	out := make([]HistoryGroup, 0, len(order))
	for _, date := range order {
		out = append(out, HistoryGroup{Date: date, Entries: byDate[date]})
	}
	return out
}

// DaysSummary counts distinct dates with at least one completion and their
// range. ISO date strings order lexicographically, which is chronological.
type DaysSummary struct {
	Count int
	First string
	Last  string
}

func DaysCompletedSummary(entries []model.HistoryEntry) DaysSummary {
	unique := make(map[string]struct{})
	for _, entry := range entries {
		unique[entry.Date] = struct{}{}
	}
	if len(unique) == 0 {
		return DaysSummary{}
	}
	dates := make([]string, 0, len(unique))
	for date := range unique {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return DaysSummary{
		Count: len(dates),
		First: dates[0],
		Last:  dates[len(dates)-1],
	}
}

// DayStatus classifies one calendar day for the month grid. "Some" and
// "none done" are distinct: a day with open tasks renders differently
// from a day with no tasks at all.
type DayStatus string

const (
	StatusNoTasks  DayStatus = "no_tasks"
	StatusAllDone  DayStatus = "all_done"
	StatusSomeDone DayStatus = "some_done"
	StatusNoneDone DayStatus = "none_done"
)

type DayCell struct {
	Status    DayStatus
	Completed int
	Total     int
}

// CalendarStatus classifies every day of the given month, keyed by
// day-of-month starting at 1.
func CalendarStatus(tasks []model.Task, year int, month time.Month) map[int]DayCell {
	out := make(map[int]DayCell, 31)
	days := daysInMonth(year, month)
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		cell := DayCell{}
		for _, task := range tasks {
			if task.Date != date {
				continue
			}
			cell.Total++
			if task.Completed {
				cell.Completed++
			}
		}
		switch {
		case cell.Total == 0:
			cell.Status = StatusNoTasks
		case cell.Completed == cell.Total:
			cell.Status = StatusAllDone
		case cell.Completed > 0:
			cell.Status = StatusSomeDone
		default:
			cell.Status = StatusNoneDone
		}
		out[day] = cell
	}
	return out
}

func daysInMonth(year int, month time.Month) int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
