package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/gymsimple/internal/lock"
	"github.com/julianstephens/gymsimple/internal/logger"
	"github.com/julianstephens/gymsimple/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *Context) error {
	l, err := lock.Acquire(ctx.Store.GetConfigPath())
	if errors.Is(err, lock.ErrLocked) {
		return fmt.Errorf("%w, close it first", err)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release lock", "path", l.Path(), "error", err)
		}
	}()

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with error: %w", err)
	}
	return nil
}
