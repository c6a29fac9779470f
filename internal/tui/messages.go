package tui

import "github.com/vijaysanthoshp/fintrack/internal/report"

// Data loading messages. Each carries the fetch generation it belongs to so
// the model can drop results from superseded refreshes.
type summaryLoadedMsg struct {
	summary    report.Summary
	generation uint64
}

type summaryFailedMsg struct {
	err        error
	generation uint64
}
