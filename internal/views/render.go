package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeDark   Theme = "dark"
	ThemeLight  Theme = "light"
)

type AppData struct {
	Theme        Theme
	Header       string
	LeftPane     string
	RightPane    string
	StatusLine   string
	Footer       string
	Notification string
}

type palette struct {
	header lipgloss.Color
	status lipgloss.Color
	err    lipgloss.Color
	footer lipgloss.Color
}

var palettes = map[Theme]palette{
	ThemeSystem: {header: "12", status: "10", err: "9", footer: "8"},
	ThemeDark:   {header: "14", status: "10", err: "9", footer: "8"},
	ThemeLight:  {header: "4", status: "2", err: "1", footer: "7"},
}

var panelStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

func RenderApp(data AppData) string {
	p, ok := palettes[data.Theme]
	if !ok {
		p = palettes[ThemeSystem]
	}
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(p.header)
	statusStyle := lipgloss.NewStyle().Foreground(p.status)
	errorStyle := lipgloss.NewStyle().Foreground(p.err)
	footerStyle := lipgloss.NewStyle().Foreground(p.footer)

	left := panelStyle.Width(58).Render(data.LeftPane)
	right := panelStyle.Width(58).Render(data.RightPane)
	row := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	status := statusStyle.Render(data.StatusLine)
	if strings.Contains(strings.ToLower(data.StatusLine), "error") {
		status = errorStyle.Render(data.StatusLine)
	}

	lines := []string{
		headerStyle.Render(data.Header),
		row,
		status,
	}
	if data.Notification != "" {
		lines = append(lines, panelStyle.Render(data.Notification))
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, theme Theme) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	style := "dark"
	if theme == ThemeLight {
		style = "light"
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}
