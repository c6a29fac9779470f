package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const fetchTimeout = 30 * time.Second

// loadSummary starts a fetch generation and returns a command that reports
// back with the matching generation token.
func (m Model) loadSummary() tea.Cmd {
	gen := m.resource.Begin()
	fetch := m.fetch
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		summary, err := fetch(ctx)
		if err != nil {
			return summaryFailedMsg{err: err, generation: gen}
		}
		return summaryLoadedMsg{summary: summary, generation: gen}
	}
}
