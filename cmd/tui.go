package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/torrentio/cli/internal/session"
	"github.com/torrentio/cli/internal/shared"
	"github.com/torrentio/cli/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for catalog browsing.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.api == nil {
		return fmt.Errorf("%w: catalog service not initialized", shared.ErrServiceUnavailable)
	}
	if r.engine == nil {
		return fmt.Errorf("%w: catalog engine not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/torrentio-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// Session state is optional in the TUI; browsing works anonymously.
	var mgr *session.Manager
	if sessMgr, cleanup, err := r.openSession(); err == nil {
		mgr = sessMgr
		defer cleanup()
	} else {
		r.logger.Warn("session store unavailable, browsing anonymously", "error", err)
	}

	model := ui.NewModel(ctx, r.engine, mgr, r.pageSize())
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
