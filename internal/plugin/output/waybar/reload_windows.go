//go:build windows

package waybar

import (
	"context"
	"fmt"

	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
)

// PostExecute is not supported on Windows since waybar doesn't run on this platform.
// Implements the output.PostExecuteHook interface.
func (p *Plugin) PostExecute(_ context.Context, _ output.ExecutionContext) error {
	if !p.restart {
		return nil
	}
	return fmt.Errorf("waybar restart is not supported on Windows")
}
