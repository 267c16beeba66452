package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"touchmax/internal/app"
	"touchmax/internal/domain"
	apperrors "touchmax/internal/errors"
	"touchmax/internal/event"
)

// Phase represents the current state of the TUI
type Phase int

const (
	PhaseWalking Phase = iota
	PhaseDone
	PhaseError
)

// Messages for the TUI
type (
	EventMsg struct {
		Event event.Event
	}
	DoneMsg struct {
		Summary domain.Summary
	}
	ErrorMsg struct {
		Err error
	}
)

const (
	recentLimit  = 8
	problemLimit = 5
)

// StartFunc starts the walk. The returned command blocks until the walk
// ends and reports it as a DoneMsg or ErrorMsg; events arrive meanwhile
// through Program.Send.
type StartFunc func() tea.Cmd

// Config for the TUI
type Config struct {
	RootPath string
	Pattern  string
	DryRun   bool
	Start    StartFunc
	// Cancel stops the walk when the user quits early.
	Cancel func()
}

// Model is the main TUI model
type Model struct {
	config     Config
	Phase      Phase
	Summary    domain.Summary
	spinner    spinner.Model
	currentDir string
	recent     []string
	problems   []string
	started    time.Time
	elapsed    time.Duration
	Err        error
	Quitting   bool
	width      int
}

// NewModel creates a new TUI model
func NewModel(cfg Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		config:  cfg,
		Phase:   PhaseWalking,
		Summary: domain.Summary{DryRun: cfg.DryRun},
		spinner: s,
		started: time.Now(),
		width:   80,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.config.Start != nil {
		cmds = append(cmds, m.config.Start())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.Quitting = true
			if m.Phase == PhaseWalking && m.config.Cancel != nil {
				m.config.Cancel()
			}
			return m, tea.Quit
		case "enter":
			if m.Phase == PhaseDone || m.Phase == PhaseError {
				return m, tea.Quit
			}
		}

	case EventMsg:
		m.apply(msg.Event)
		return m, nil

	case DoneMsg:
		m.Phase = PhaseDone
		m.Summary = msg.Summary
		m.elapsed = time.Since(m.started)
		return m, nil

	case ErrorMsg:
		m.Phase = PhaseError
		m.Err = msg.Err
		return m, nil

	case spinner.TickMsg:
		if m.Phase == PhaseWalking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) apply(ev event.Event) {
	app.Tally{Summary: &m.Summary}.Emit(ev)

	name := filepath.Base(ev.Path)
	switch ev.Type {
	case event.DirEntered:
		m.currentDir = ev.Path
	case event.FieldChanged:
		m.pushRecent(fmt.Sprintf("%s %s  %s %s %s",
			fieldStyle.Render(ev.Field.Letter()),
			fileNameStyle.Render(name),
			dateStyle.Render(formatTime(ev.Before)),
			iconArrow,
			dateStyle.Render(formatTime(ev.After)),
		))
	case event.FieldSkipped, event.FieldFailed, event.DirNotFound, event.ListFailed:
		msg := ev.Type.String() + " " + ev.Path
		if ev.Error != nil {
			msg = fmt.Sprintf("%s: %s", name, apperrors.UserMessage(ev.Error))
		}
		m.problems = appendBounded(m.problems, msg, problemLimit)
	}
}

func (m *Model) pushRecent(line string) {
	m.recent = appendBounded(m.recent, line, recentLimit)
}

func appendBounded(lines []string, line string, limit int) []string {
	lines = append(lines, line)
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	return lines
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	switch m.Phase {
	case PhaseWalking:
		b.WriteString(m.renderWalking())
	case PhaseDone:
		b.WriteString(m.renderSummary())
	case PhaseError:
		b.WriteString(m.renderError())
	}

	if len(m.problems) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderProblems())
	}

	b.WriteString("\n")
	b.WriteString(m.renderHelp())

	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render(iconClock + " TouchMax")
	subtitle := subtitleStyle.Render("Bulk timestamp adjustment")

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		subtitle,
		"",
		dimStyle.Render(fmt.Sprintf("%s Directory: %s", iconFolder, shortenPath(m.config.RootPath))),
		dimStyle.Render(fmt.Sprintf("%s Pattern:   %s", iconPattern, m.config.Pattern)),
	)
}

func (m Model) renderWalking() string {
	var b strings.Builder

	verb := "Touching entries..."
	if m.config.DryRun {
		verb = "Computing new timestamps..."
	}
	b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), verb))
	if m.currentDir != "" {
		b.WriteString(fmt.Sprintf("  %s %s\n", iconArrow, pathStyle.Render(shortenPath(m.currentDir))))
	}

	countStyle := lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	b.WriteString(fmt.Sprintf("\n  %s  %s\n",
		countStyle.Render(fmt.Sprintf("%d entries", m.Summary.Entries())),
		dateStyle.Render(fmt.Sprintf("%d changed · %d skipped · %d failed", m.Summary.Changed, m.Summary.Skipped, m.Summary.Failed)),
	))

	if len(m.recent) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("Recent"))
		b.WriteString("\n\n")
		for _, line := range m.recent {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) renderSummary() string {
	var b strings.Builder
	s := m.Summary

	b.WriteString(sectionStyle.Render("Summary"))
	b.WriteString("\n\n")

	icon := successStyle.Render(iconSuccess)
	msg := successStyle.Render("Done")
	if s.HasFailures() {
		icon = warningStyle.Render(iconWarning)
		msg = warningStyle.Render("Done with failures")
	}
	b.WriteString(fmt.Sprintf("  %s %s %s\n\n", icon, msg, dateStyle.Render("in "+m.elapsed.Round(time.Millisecond).String())))

	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Directories:"), statValueStyle.Render(fmt.Sprintf("%d", s.Directories))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Files:"), statValueStyle.Render(fmt.Sprintf("%d", s.Files))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Folders:"), statValueStyle.Render(fmt.Sprintf("%d", s.Folders))))
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Changed:"), successStyle.Render(fmt.Sprintf("%s %d", iconSuccess, s.Changed))))

	dimStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Skipped:"), dimStyle.Render(fmt.Sprintf("%s %d", iconSkipped, s.Skipped))))
	if s.Failed > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Failed:"), errorStyle.Render(fmt.Sprintf("%s %d", iconError, s.Failed))))
	}
	if s.MissingDirs+s.ListFailed > 0 {
		b.WriteString(fmt.Sprintf("  %s  %s\n", statLabelStyle.Render("Unreadable dirs:"), warningStyle.Render(fmt.Sprintf("%s %d", iconWarning, s.MissingDirs+s.ListFailed))))
	}

	if s.DryRun {
		b.WriteString("\n")
		b.WriteString(highlightBoxStyle.Render("🔍 Dry Run - No timestamps were written"))
	}

	return b.String()
}

func (m Model) renderProblems() string {
	var b strings.Builder
	b.WriteString(warningStyle.Render(fmt.Sprintf("%s Problems", iconWarning)))
	b.WriteString("\n")
	for _, p := range m.problems {
		b.WriteString(fmt.Sprintf("  %s %s\n", warningStyle.Render(iconWarning), p))
	}
	return b.String()
}

func (m Model) renderError() string {
	icon := errorStyle.Render(iconError)
	msg := errorStyle.Render(fmt.Sprintf("Error: %s", m.Err.Error()))

	return highlightBoxStyle.
		BorderForeground(errorColor).
		Render(fmt.Sprintf("%s %s", icon, msg))
}

func (m Model) renderHelp() string {
	var help string
	switch m.Phase {
	case PhaseWalking:
		help = "Press q to stop"
	case PhaseDone:
		help = "Press Enter to exit"
	case PhaseError:
		help = "Press Enter or q to exit"
	}
	return helpStyle.Render(help)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

// shortenPath replaces the home directory prefix with ~ for display
func shortenPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}
