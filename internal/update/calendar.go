package update

import (
	"fmt"
	"sort"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dailytrack/internal/views"
)

func (m Model) handleCalendarKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "h", "left":
		m.shiftCalendarMonth(-1)
	case "l", "right":
		m.shiftCalendarMonth(1)
	case "up", "k":
		if m.Calendar.Day > 1 {
			m.Calendar.Day--
		}
	case "down", "j":
		if m.Calendar.Day < len(m.Calendar.Cells) {
			m.Calendar.Day++
		}
	}
	return m
}

func (m *Model) shiftCalendarMonth(delta int) {
	focus := time.Date(m.Calendar.Year, m.Calendar.Month, 1, 0, 0, 0, 0, time.Local).AddDate(0, delta, 0)
	m.Calendar.Year = focus.Year()
	m.Calendar.Month = focus.Month()
	m.Calendar.Day = 1
	m.reloadCalendar()
	m.Status = StatusBar{Text: fmt.Sprintf("calendar: %s %d", m.Calendar.Month, m.Calendar.Year), IsError: false}
}

func (m Model) renderCalendarView() string {
	days := make([]int, 0, len(m.Calendar.Cells))
	for day := range m.Calendar.Cells {
		days = append(days, day)
	}
	sort.Ints(days)

	now := m.now()
	today := 0
	if now.Year() == m.Calendar.Year && now.Month() == m.Calendar.Month {
		today = now.Day()
	}

	cells := make([]views.CalendarCellData, 0, len(days))
	var selected *views.CalendarCellData
	for _, day := range days {
		cell := m.Calendar.Cells[day]
		data := views.CalendarCellData{
			Day:       day,
			Status:    string(cell.Status),
			Completed: cell.Completed,
			Total:     cell.Total,
			IsToday:   day == today,
		}
		cells = append(cells, data)
		if day == m.Calendar.Day {
			picked := data
			selected = &picked
		}
	}

	first := time.Date(m.Calendar.Year, m.Calendar.Month, 1, 0, 0, 0, 0, time.Local)
	return views.RenderCalendarPanel(views.CalendarPanelData{
		Month:    fmt.Sprintf("%s %d", m.Calendar.Month, m.Calendar.Year),
		Weekday:  int(first.Weekday()),
		Cells:    cells,
		Selected: selected,
	})
}
