package tui

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the dashboard TUI and blocks until the user quits.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Fetch == nil {
		return fmt.Errorf("fetch function is required")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newModel(cfg), tea.WithContext(ctx))

	go func() {
		select {
		case <-sigChan:
			program.Quit()
		case <-ctx.Done():
		}
	}()

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("dashboard TUI failed: %w", err)
	}
	return nil
}
