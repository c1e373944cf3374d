package views

import (
	"fmt"
	"strings"
)

type TaskItemData struct {
	ID      string
	Title   string
	Time    string
	Overdue bool
}

type TaskPanelData struct {
	Date          string
	Items         []TaskItemData
	AllDone       bool
	SelectedID    string
	ListView      string
	ProgressView  string
	ProgressLabel string
}

type HistoryEntryData struct {
	Title         string
	CompletedTime string
}

type HistoryGroupData struct {
	Date    string
	Entries []HistoryEntryData
}

type HistoryPanelData struct {
	Groups    []HistoryGroupData
	TableView string
	Summary   string
}

type CalendarCellData struct {
	Day       int
	Status    string
	Completed int
	Total     int
	IsToday   bool
}

type CalendarPanelData struct {
	Month    string
	Weekday  int
	Cells    []CalendarCellData
	Selected *CalendarCellData
}

type ProfilePanelData struct {
	Name          string
	NameInputView string
	Editing       bool
	Theme         string
	Permission    string
	DaysSummary   string
}

type TaskFormData struct {
	Active    bool
	Mode      string
	TitleView string
	DateView  string
	TimeView  string
	ErrorText string
}

type PermissionBannerData struct {
	Visible bool
}

type HelpPanelData struct {
	CurrentView    string
	GlobalBindings []string
	Bindings       []string
	HelpView       string
}

// RenderTaskPanel lists the day's still-open tasks. Two distinct empty
// states: nothing scheduled at all, or everything already checked off.
func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks for %s:\n", data.Date))
	b.WriteString("actions: [j/k]move [enter]done [a]add [e]edit [x]delete\n")
	if len(data.Items) == 0 {
		if data.AllDone {
			b.WriteString("\nAll tasks completed for today!\n")
			b.WriteString("\nprogress: " + data.ProgressView + "\n")
			b.WriteString(data.ProgressLabel)
		} else {
			b.WriteString("\nNo tasks for today. Press [a] to add one.")
		}
		return strings.TrimSpace(b.String())
	}
	b.WriteString(data.ListView + "\n")
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s [ ] %s %s", cursor, item.Time, item.Title))
		if item.Overdue {
			b.WriteString(" (overdue)")
		}
		b.WriteString("\n")
	}
	b.WriteString("\nprogress: " + data.ProgressView + "\n")
	b.WriteString(data.ProgressLabel)
	return strings.TrimSpace(b.String())
}

func RenderHistoryPanel(data HistoryPanelData) string {
	var b strings.Builder
	b.WriteString("history:\n")
	if data.Summary != "" {
		b.WriteString(data.Summary + "\n")
	}
	if len(data.Groups) == 0 {
		b.WriteString("\nNo tasks completed yet.")
		return strings.TrimSpace(b.String())
	}
	b.WriteString(data.TableView + "\n")
	for _, group := range data.Groups {
		b.WriteString(fmt.Sprintf("\n%s:\n", group.Date))
		for _, entry := range group.Entries {
			b.WriteString(fmt.Sprintf("  ✓ %s at %s\n", entry.Title, entry.CompletedTime))
		}
	}
	return strings.TrimSpace(b.String())
}

func RenderCalendarPanel(data CalendarPanelData) string {
	var b strings.Builder
	b.WriteString("calendar:\n")
	b.WriteString(fmt.Sprintf("month: %s\n", data.Month))
	b.WriteString("actions: [h/l]month [j/k]day\n")
	b.WriteString("Su Mo Tu We Th Fr Sa\n")

	col := data.Weekday
	b.WriteString(strings.Repeat("   ", col))
	for _, cell := range data.Cells {
		b.WriteString(calendarBadge(cell))
		col++
		if col == 7 {
			b.WriteString("\n")
			col = 0
		} else {
			b.WriteString(" ")
		}
	}
	b.WriteString("\nlegend: + all done | ~ partial | ! none done | . no tasks | * today\n")

	if data.Selected != nil {
		b.WriteString(fmt.Sprintf("\nday %d: %d/%d completed (%s)", data.Selected.Day, data.Selected.Completed, data.Selected.Total, data.Selected.Status))
	}
	return strings.TrimSpace(b.String())
}

func RenderProfilePanel(data ProfilePanelData) string {
	var b strings.Builder
	b.WriteString("profile:\n")
	name := data.Name
	if strings.TrimSpace(name) == "" {
		name = "(not set)"
	}
	b.WriteString(fmt.Sprintf("name: %s\n", name))
	if data.Editing {
		b.WriteString("edit: " + data.NameInputView + "\n")
		b.WriteString("keys: [enter]save [esc]cancel\n")
	} else {
		b.WriteString("keys: [n]edit name [t]theme [g]grant notifications [G]deny\n")
	}
	b.WriteString(fmt.Sprintf("theme: %s\n", data.Theme))
	b.WriteString(fmt.Sprintf("notifications: %s\n", data.Permission))
	if data.DaysSummary != "" {
		b.WriteString(data.DaysSummary)
	}
	return strings.TrimSpace(b.String())
}

func RenderTaskForm(data TaskFormData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("\n%s task:\n", data.Mode))
	b.WriteString("keys: [tab]next field [enter]save [esc]cancel\n")
	b.WriteString("title: " + data.TitleView + "\n")
	b.WriteString("date:  " + data.DateView + "\n")
	b.WriteString("time:  " + data.TimeView + "\n")
	if data.ErrorText != "" {
		b.WriteString("error: " + data.ErrorText)
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderPermissionBanner(data PermissionBannerData) string {
	if !data.Visible {
		return ""
	}
	return "\nreminders are off: press [g] on the profile screen to enable desktop notifications"
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s\n%s view:\n%s\n%s",
		strings.Join(data.GlobalBindings, "\n"),
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func calendarBadge(cell CalendarCellData) string {
	marker := "."
	switch cell.Status {
	case "all_done":
		marker = "+"
	case "some_done":
		marker = "~"
	case "none_done":
		marker = "!"
	}
	if cell.IsToday {
		marker = "*"
	}
	return fmt.Sprintf("%2d", cell.Day) + marker
}
