// Package tui renders the interactive dashboard with bubbletea.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vijaysanthoshp/fintrack/internal/query"
	"github.com/vijaysanthoshp/fintrack/internal/report"
)

// Config holds the dashboard dependencies.
type Config struct {
	// Fetch retrieves a fresh summary. It runs off the UI goroutine.
	Fetch func(ctx context.Context) (report.Summary, error)
	Width  int
	Height int
}

// Model holds the dashboard TUI state.
type Model struct {
	resource  *query.Resource[report.Summary]
	fetch     func(ctx context.Context) (report.Summary, error)
	lastError error
	spinner   spinner.Model
	bar       progress.Model
	keymap    KeyMap
	height    int
	width     int
	quitting  bool
}

func newModel(cfg Config) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#45B7D1"))

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())

	return Model{
		resource: query.NewResource[report.Summary](),
		fetch:    cfg.Fetch,
		spinner:  sp,
		bar:      bar,
		keymap:   DefaultKeyMap(),
		width:    cfg.Width,
		height:   cfg.Height,
	}
}

// Init kicks off the first fetch.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		m.loadSummary(),
	)
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keymap.Quit), key.Matches(msg, m.keymap.ForceQuit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keymap.Refresh):
			if !m.resource.Loading() {
				return m, m.loadSummary()
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(40, msg.Width-20)

	case summaryLoadedMsg:
		if m.resource.Complete(msg.generation, msg.summary) {
			m.lastError = nil
		}

	case summaryFailedMsg:
		if m.resource.Fail(msg.generation, msg.err) {
			m.lastError = msg.err
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}
