package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nilehmann/codesync/internal/scan"
)

type progressModel struct {
	title       string
	events      <-chan scan.Event
	spinner     spinner.Model
	files       int
	withMatches int
	annotations int
	current     string
	width       int
	done        bool
}

type eventMsg scan.Event
type doneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders scan progress.
// The walker discovers files as it goes, so the view shows running
// counters rather than a fixed file list.
func NewProgressModel(title string, events <-chan scan.Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		m.files++
		m.current = msg.Path
		if msg.Matches > 0 {
			m.withMatches++
			m.annotations += msg.Matches
		}
		return m, m.listenForEvent()
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
		}
		return m, nil
	}
	return m, nil
}

func (m *progressModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	pathStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	summary := fmt.Sprintf("  %s files scanned, %s with annotations, %s annotations",
		countStyle.Render(fmt.Sprintf("%d", m.files)),
		countStyle.Render(fmt.Sprintf("%d", m.withMatches)),
		countStyle.Render(fmt.Sprintf("%d", m.annotations)))
	b.WriteString(summary)
	b.WriteString("\n")

	if !m.done && m.current != "" {
		nameWidth := m.width - 4
		if nameWidth < 20 {
			nameWidth = 20
		}
		b.WriteString(pathStyle.Render("  " + truncate(m.current, nameWidth)))
		b.WriteString("\n")
	}

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
