package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijaysanthoshp/fintrack/internal/report"
)

func newTestModel() Model {
	return newModel(Config{
		Fetch: func(_ context.Context) (report.Summary, error) {
			return report.Summary{}, nil
		},
		Width:  80,
		Height: 24,
	})
}

func TestLoadedSummaryRenders(t *testing.T) {
	m := newTestModel()

	gen := m.resource.Begin()
	updated, _ := m.Update(summaryLoadedMsg{
		summary:    report.Summary{TotalBalance: 1234.56},
		generation: gen,
	})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Total Balance")
	assert.Contains(t, view, "1234.56")
}

func TestLoadingScreenBeforeFirstData(t *testing.T) {
	m := newTestModel()
	m.resource.Begin()

	assert.Contains(t, m.View(), "Loading your dashboard")
}

func TestStaleResultIgnored(t *testing.T) {
	m := newTestModel()

	first := m.resource.Begin()
	second := m.resource.Begin()

	updated, _ := m.Update(summaryLoadedMsg{
		summary:    report.Summary{TotalBalance: 1},
		generation: first,
	})
	m = updated.(Model)

	_, ok := m.resource.Data()
	assert.False(t, ok, "stale result must not populate the dashboard")

	updated, _ = m.Update(summaryLoadedMsg{
		summary:    report.Summary{TotalBalance: 2},
		generation: second,
	})
	m = updated.(Model)

	summary, ok := m.resource.Data()
	require.True(t, ok)
	assert.InDelta(t, 2.0, summary.TotalBalance, 0.001)
}

func TestFailedRefreshKeepsLastSummary(t *testing.T) {
	m := newTestModel()

	gen := m.resource.Begin()
	updated, _ := m.Update(summaryLoadedMsg{
		summary:    report.Summary{TotalBalance: 100},
		generation: gen,
	})
	m = updated.(Model)

	gen = m.resource.Begin()
	updated, _ = m.Update(summaryFailedMsg{
		err:        errors.New("backend down"),
		generation: gen,
	})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Refresh failed")
	assert.Contains(t, view, "Total Balance", "prior data still renders after a failed refresh")
}

func TestNewUserOnboarding(t *testing.T) {
	m := newTestModel()

	gen := m.resource.Begin()
	updated, _ := m.Update(summaryLoadedMsg{
		summary:    report.Summary{NewUser: true},
		generation: gen,
	})
	m = updated.(Model)

	view := m.View()
	assert.Contains(t, view, "Welcome")
	assert.NotContains(t, view, "Total Balance")
}

func TestQuitKey(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = updated.(Model)

	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
	assert.Empty(t, m.View())
}

func TestRefreshKeyStartsFetch(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	assert.True(t, m.resource.Loading())

	// A second refresh while one is in flight is ignored
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	assert.Nil(t, cmd)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactlyten", truncate("exactlyten", 10))
	assert.Equal(t, "longer st…", truncate("longer string", 10))
}
