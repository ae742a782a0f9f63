package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sokinpui/transplant/internal/splice"
	"github.com/sokinpui/transplant/internal/ui"
	"github.com/sokinpui/transplant/model"
	"github.com/sokinpui/transplant/transplant"
)

// --- Styles ---
var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")) // Mauve
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))            // Green
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))           // Orange
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("197"))           // Red
	pathStyle    = lipgloss.NewStyle()
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// ErrAborted is reported by Result when the user quit before the run
// finished.
var ErrAborted = errors.New("aborted before the transform finished")

// Executor runs one transform and reports its summary.
type Executor interface {
	Execute() (model.Summary, error)
}

// --- Messages ---
type summaryMsg struct {
	model.Summary
}

type errorMsg struct {
	err     error
	summary model.Summary
}

func (e errorMsg) Error() string { return e.err.Error() }

// --- Model ---
type Model struct {
	app     Executor
	spinner spinner.Model
	state   state
	summary model.Summary
	err     error

	// mu guards aborted and started, shared with the runApp goroutine.
	mu      sync.Mutex
	aborted bool
	started bool
	// done is closed once Execute has returned.
	done chan struct{}
}

type state int

const (
	stateProcessing state = iota
	stateSummary
	stateError
	stateAborted
)

func New(app Executor) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return &Model{
		app:     app,
		spinner: s,
		state:   stateProcessing,
		done:    make(chan struct{}),
	}
}

// Result returns the summary and error of the finished run.
func (m *Model) Result() (model.Summary, error) {
	return m.summary, m.err
}

// Wait blocks until a started run has returned, so that an abort never cuts
// a write short. A run aborted before it started is never executed.
func (m *Model) Wait() {
	m.mu.Lock()
	started := m.started
	m.mu.Unlock()
	if started {
		<-m.done
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runApp)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.state == stateProcessing {
				m.mu.Lock()
				m.aborted = true
				m.mu.Unlock()
				m.state = stateAborted
				m.err = ErrAborted
			}
			return m, tea.Quit
		}

	case summaryMsg:
		if m.state == stateAborted {
			return m, nil
		}
		m.state = stateSummary
		m.summary = msg.Summary
		return m, tea.Quit

	case errorMsg:
		if m.state == stateAborted {
			return m, nil
		}
		m.state = stateError
		m.err = msg.err
		m.summary = msg.summary
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		if m.state == stateProcessing {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) View() string {
	switch m.state {
	case stateProcessing:
		return fmt.Sprintf("%s Transforming...", m.spinner.View())
	case stateError:
		var b strings.Builder
		if len(m.summary.Outcomes) > 0 {
			b.WriteString(m.renderSummary())
			b.WriteString("\n")
		}
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	case stateSummary:
		return m.renderSummary()
	case stateAborted:
		return warningStyle.Render("Aborted.") + "\n"
	default:
		return ""
	}
}

func (m *Model) renderSummary() string {
	var b strings.Builder

	if m.summary.Message != "" {
		b.WriteString(headerStyle.Render(m.summary.Message))
		b.WriteString("\n\n")
	}

	if m.summary.Path != "" {
		b.WriteString(pathStyle.Render(m.summary.Path))
		if m.summary.Destination != "" {
			b.WriteString(faintStyle.Render(" -> " + m.summary.Destination))
		}
		b.WriteString("\n")
	}

	for _, o := range m.summary.Outcomes {
		line := "  " + ui.StageLine(o)
		switch {
		case o.Applied:
			b.WriteString(successStyle.Render(line))
		case o.Reason == splice.ReasonNotConfigured:
			b.WriteString(faintStyle.Render(line))
		default:
			b.WriteString(warningStyle.Render(line))
		}
		b.WriteString("\n")
	}

	if len(m.summary.Outcomes) == 0 && m.summary.Message == "" {
		b.WriteString(faintStyle.Render("Nothing to do."))
	}

	return b.String()
}

func (m *Model) runApp() tea.Msg {
	m.mu.Lock()
	if m.aborted {
		m.mu.Unlock()
		return nil
	}
	m.started = true
	m.mu.Unlock()
	defer close(m.done)

	summary, err := m.app.Execute()
	if err != nil {
		// Check for detailed error to print stack
		var detailed *transplant.DetailedError
		if errors.As(err, &detailed) {
			// The TUI will exit, so we can print to stderr here for the stack trace.
			fmt.Fprintf(os.Stderr, "\n--- Stack Trace ---\n%s\n", detailed.Stack)
		}
		return errorMsg{err: err, summary: summary}
	}
	return summaryMsg{
		Summary: summary,
	}
}
