package update

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	progressbar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"dailytrack/internal/model"
	"dailytrack/internal/progress"
	"dailytrack/internal/reminder"
	"dailytrack/internal/rollover"
	"dailytrack/internal/tracker"
	"dailytrack/internal/views"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewHistory  View = "History"
	ViewCalendar View = "Calendar"
	ViewProfile  View = "Profile"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks    string
	History  string
	Calendar string
	Profile  string
	Help     string
	Quit     string
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldDate
	FieldTime
)

type TaskFormState struct {
	Active bool
	Mode   string
	TaskID string
	Field  FormField
	Err    string
}

type CalendarState struct {
	Year  int
	Month time.Month
	Day   int
	Cells map[int]progress.DayCell
}

type ProfileState struct {
	Name    string
	Editing bool
	Summary progress.DaysSummary
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	Today          string
	Tasks          []model.Task
	Cursor         int
	SelectedTaskID string
	Daily          progress.Daily
	HistoryGroups  []progress.HistoryGroup
	Calendar       CalendarState
	Profile        ProfileState
	Form           TaskFormState
	Palette        CommandPaletteState
	Theme          views.Theme
	Permission     reminder.Permission
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	ReminderLog    []reminder.FireEvent
	Quitting       bool
	LastError      error

	svc       *tracker.Service
	reminders *reminder.Manager
	roll      *rollover.Runner
	now       func() time.Time

	// Bubble components used for rich TUI controls
	taskList     list.Model
	historyTable table.Model
	titleInput   textinput.Model
	dateInput    textinput.Model
	timeInput    textinput.Model
	nameInput    textinput.Model
	commandInput textinput.Model
	dailyBar     progressbar.Model
	helpModel    help.Model
	helpViewport viewport.Model
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type ReminderFiredMsg struct {
	Event reminder.FireEvent
}

type RefreshTickMsg struct{}

// NewModel wires the TUI to a live service. The reminder manager and
// rollover runner may be nil, which disables the matching background
// message streams (handy in tests).
func NewModel(svc *tracker.Service, reminders *reminder.Manager, roll *rollover.Runner) Model {
	m := Model{
		CurrentView: ViewTasks,
		Theme:       views.ThemeSystem,
		Permission:  reminder.PermissionDefault,
		Keys: GlobalKeyMap{
			Tasks:    "1",
			History:  "2",
			Calendar: "3",
			Profile:  "4",
			Help:     "?",
			Quit:     "q",
		},
		svc:       svc,
		reminders: reminders,
		roll:      roll,
		now:       time.Now,
	}
	today := m.now()
	m.Calendar = CalendarState{Year: today.Year(), Month: today.Month(), Day: today.Day()}
	m.initBubbleComponents()
	m.reloadAll()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Today's tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	cols := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Done at", Width: 8},
		{Title: "Title", Width: 30},
	}
	m.historyTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "> "
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 42

	m.dateInput = textinput.New()
	m.dateInput.Prompt = "> "
	m.dateInput.Placeholder = model.DateLayout
	m.dateInput.CharLimit = 10
	m.dateInput.Width = 12

	m.timeInput = textinput.New()
	m.timeInput.Prompt = "> "
	m.timeInput.Placeholder = model.TimeLayout
	m.timeInput.CharLimit = 5
	m.timeInput.Width = 7

	m.nameInput = textinput.New()
	m.nameInput.Prompt = "name> "
	m.nameInput.CharLimit = 64
	m.nameInput.Width = 32

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.dailyBar = progressbar.New(progressbar.WithDefaultGradient())

	m.helpModel = help.New()
	m.helpViewport = viewport.New(54, 12)
	m.helpViewport.SetContent(views.RenderMarkdown(helpMarkdown, m.Theme))
}
