// Package hyprland provides an output plugin that sets the Hyprland active border
// colour from the theme background.
package hyprland

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
	"github.com/TheSeaMacs/waybar-autotheme/internal/process"
)

// Defaults for the border keyword.
const (
	DefaultBorderKeyword = "general:col.active_border"
	DefaultBorderAlpha   = "AA"
)

// Plugin implements the output.Plugin interface for Hyprland.
type Plugin struct {
	runner process.Runner

	enabled bool
	keyword string
	alpha   string
}

// New creates a new Hyprland output plugin with default settings.
func New(runner process.Runner) *Plugin {
	return &Plugin{
		runner:  runner,
		enabled: true,
		keyword: DefaultBorderKeyword,
		alpha:   DefaultBorderAlpha,
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "hyprland"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Set the Hyprland active border colour to the theme background"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.enabled, "hyprland.enabled", true, "Set the Hyprland border colour")
	cmd.Flags().StringVar(&p.keyword, "hyprland.keyword", DefaultBorderKeyword, "Hyprland keyword receiving the colour")
	cmd.Flags().StringVar(&p.alpha, "hyprland.alpha", DefaultBorderAlpha, "Alpha byte appended to the colour (two hex digits)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.runner == nil {
		return fmt.Errorf("no process runner configured")
	}
	if p.keyword == "" {
		return fmt.Errorf("hyprland keyword cannot be empty")
	}
	if _, err := p.alphaByte(); err != nil {
		return err
	}
	return nil
}

func (p *Plugin) alphaByte() (uint8, error) {
	if len(p.alpha) != 2 {
		return 0, fmt.Errorf("invalid alpha %q: want two hex digits", p.alpha)
	}
	v, err := strconv.ParseUint(p.alpha, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid alpha %q: %w", p.alpha, err)
	}
	return uint8(v), nil
}

// PreExecute skips the plugin when disabled or when hyprctl is unavailable.
// Implements the output.PreExecuteHook interface.
func (p *Plugin) PreExecute(_ context.Context) (skip bool, reason string, err error) {
	if !p.enabled {
		return true, "disabled by flag", nil
	}
	if _, err := exec.LookPath("hyprctl"); err != nil {
		return true, "hyprctl executable not found on $PATH", nil
	}
	return false, "", nil
}

// Apply sets the border colour with hyprctl keyword.
func (p *Plugin) Apply(ctx context.Context, execCtx output.ExecutionContext) error {
	alpha, err := p.alphaByte()
	if err != nil {
		return err
	}

	colour := execCtx.Theme.Background.RGBA(alpha)
	if out, err := p.runner.Run(ctx, "hyprctl", "keyword", p.keyword, colour); err != nil {
		return fmt.Errorf("failed to set border colour: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}

	execCtx.Logger.Info("updated hyprland border", "keyword", p.keyword, "colour", colour)
	return nil
}
