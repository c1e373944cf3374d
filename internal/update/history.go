package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"dailytrack/internal/views"
)

func (m Model) handleHistoryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.historyTable, cmd = m.historyTable.Update(msg)
	return m, cmd
}

func (m Model) renderHistoryView() string {
	groups := make([]views.HistoryGroupData, 0, len(m.HistoryGroups))
	for _, group := range m.HistoryGroups {
		entries := make([]views.HistoryEntryData, 0, len(group.Entries))
		for _, entry := range group.Entries {
			entries = append(entries, views.HistoryEntryData{
				Title:         entry.Title,
				CompletedTime: entry.CompletedTime,
			})
		}
		groups = append(groups, views.HistoryGroupData{Date: group.Date, Entries: entries})
	}

	summary := ""
	if m.Profile.Summary.Count > 0 {
		summary = fmt.Sprintf("completed tasks on %d day(s), %s to %s", m.Profile.Summary.Count, m.Profile.Summary.First, m.Profile.Summary.Last)
	}
	return views.RenderHistoryPanel(views.HistoryPanelData{
		Groups:    groups,
		TableView: m.historyTable.View(),
		Summary:   summary,
	})
}
