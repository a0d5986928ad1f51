//go:build unix

package waybar

import (
	"context"
	"fmt"
	"os/exec"
	"syscall"

	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
)

// PostExecute stops running waybar instances and launches a fresh one with the
// configured config and stylesheet. The restart is skipped when waybar is not on
// $PATH; the rewritten stylesheet is picked up by the next waybar start.
// Implements the output.PostExecuteHook interface.
func (p *Plugin) PostExecute(_ context.Context, execCtx output.ExecutionContext) error {
	if !p.restart {
		return nil
	}
	if _, err := exec.LookPath("waybar"); err != nil {
		execCtx.Logger.Warn("waybar executable not found on $PATH, skipping restart")
		return nil
	}

	pids, err := p.runner.FindByName("waybar")
	if err != nil {
		return fmt.Errorf("failed to find waybar processes: %w", err)
	}

	// A waybar that is already gone is not an error.
	for _, pid := range pids {
		if err := p.runner.Signal(pid, syscall.SIGTERM); err != nil {
			execCtx.Logger.Debug("failed to stop waybar", "pid", pid, "error", err)
		}
	}

	if err := p.runner.Start("waybar", "-c", p.ConfigPath(), "-s", p.StylesheetPath()); err != nil {
		return fmt.Errorf("failed to restart waybar: %w", err)
	}

	execCtx.Logger.Info("waybar started with new colours", "stopped", len(pids))
	return nil
}
