package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"pycheck/internal/driver"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	idleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	workStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	cleanStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	failStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	findingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

const statusColumn = 12

// unitRow is one snapshot in the list.
type unitRow struct {
	path   string
	stage  driver.Stage
	status driver.Status
	bound  bool // the reference binder ran for it
	diags  int
}

func (r unitRow) finished() bool {
	return r.status == driver.StatusDone || r.status == driver.StatusError
}

// label is the status column text.
func (r unitRow) label() string {
	switch r.status {
	case driver.StatusWorking:
		switch r.stage {
		case driver.StageLoad:
			return "loading"
		case driver.StageBind:
			return "binding"
		case driver.StageCheck:
			return "checking"
		}
		return "working"
	case "":
		return "queued"
	}
	return string(r.status)
}

func (r unitRow) style() lipgloss.Style {
	switch r.status {
	case driver.StatusDone:
		return cleanStyle
	case driver.StatusError:
		return failStyle
	case driver.StatusWorking:
		return workStyle
	}
	return idleStyle
}

// weight is how far the row is along load, bind, check.
func (r unitRow) weight() float64 {
	if r.finished() {
		return 1
	}
	switch r.stage {
	case driver.StageLoad:
		return 0.2
	case driver.StageBind:
		return 0.4
	case driver.StageCheck:
		return 0.7
	}
	return 0
}

type progressModel struct {
	title   string
	events  <-chan driver.Event
	spinner spinner.Model
	bar     progress.Model
	rows    []unitRow
	byPath  map[string]int
	phase   string // run-level stage, from events without a file
	width   int
	done    bool
}

type eventMsg driver.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that lists every unit with its
// current stage and diagnostic count until events is closed.
func NewProgressModel(title string, files []string, events <-chan driver.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = workStyle

	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = 76

	rows := make([]unitRow, len(files))
	byPath := make(map[string]int, len(files))
	for i, file := range files {
		rows[i] = unitRow{path: file}
		byPath[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		bar:     bar,
		rows:    rows,
		byPath:  byPath,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.next())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m, tea.Batch(m.apply(driver.Event(msg)), m.next())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.bar.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		bar, cmd := m.bar.Update(msg)
		m.bar = bar.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.rows) == 0 {
		return ""
	}
	header := m.title
	if m.phase != "" {
		header = fmt.Sprintf("%s (%s)", header, m.phase)
	}
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	nameWidth := max(m.width-statusColumn-16, 20)
	for _, row := range m.rows {
		status := row.style().Render(fmt.Sprintf("%*s", statusColumn, row.label()))
		fmt.Fprintf(&b, "  %s %s", status, truncate(row.path, nameWidth))
		if row.status == driver.StatusDone && row.diags > 0 {
			b.WriteString(findingStyle.Render(fmt.Sprintf(" (%d)", row.diags)))
		}
		if row.bound {
			b.WriteString(idleStyle.Render(" [bound]"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.bar.ViewAs(1.0))
	} else {
		b.WriteString(m.bar.View())
	}
	b.WriteString("\n")
	b.WriteString(m.tally())
	b.WriteString("\n")
	return b.String()
}

// tally summarises finished units.
func (m *progressModel) tally() string {
	var finished, failed, diags int
	for _, row := range m.rows {
		if !row.finished() {
			continue
		}
		finished++
		if row.status == driver.StatusError {
			failed++
		}
		diags += row.diags
	}
	line := fmt.Sprintf("%d/%d units, %d diagnostics", finished, len(m.rows), diags)
	if failed > 0 {
		line += failStyle.Render(fmt.Sprintf(", %d failed to load", failed))
	}
	return line
}

func (m *progressModel) next() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) apply(ev driver.Event) tea.Cmd {
	if ev.File == "" {
		if ev.Status == driver.StatusWorking {
			m.phase = unitRow{stage: ev.Stage, status: ev.Status}.label()
		}
		return nil
	}
	idx, ok := m.byPath[ev.File]
	if !ok {
		return nil
	}
	row := &m.rows[idx]
	row.stage, row.status = ev.Stage, ev.Status
	if ev.Stage == driver.StageBind {
		row.bound = true
	}
	if ev.Status == driver.StatusDone {
		row.diags = ev.Diagnostics
	}
	return m.bar.SetPercent(m.fraction())
}

func (m *progressModel) fraction() float64 {
	if len(m.rows) == 0 {
		return 0
	}
	total := 0.0
	for _, row := range m.rows {
		total += row.weight()
	}
	return total / float64(len(m.rows))
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}
