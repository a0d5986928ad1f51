// Package wallpaper provides an output plugin that sets the source image as the
// desktop wallpaper.
package wallpaper

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
	"github.com/TheSeaMacs/waybar-autotheme/internal/process"
)

// Manager identifies a wallpaper daemon.
type Manager string

const (
	ManagerAuto      Manager = "auto"
	ManagerHyprpaper Manager = "hyprpaper"
	ManagerSwww      Manager = "swww"
	ManagerSwaybg    Manager = "swaybg"
	ManagerNone      Manager = "none"
)

// managerClients maps a manager to the executable used to drive it.
var managerClients = map[Manager]string{
	ManagerHyprpaper: "hyprctl",
	ManagerSwww:      "swww",
	ManagerSwaybg:    "swaybg",
}

// swaybgModes maps hyprpaper fit modes to swaybg's -m values.
var swaybgModes = map[string]string{
	"cover":   "fill",
	"contain": "fit",
	"tile":    "tile",
	"fill":    "stretch",
}

// ValidManagers returns the accepted values of the manager flag.
func ValidManagers() []Manager {
	return []Manager{ManagerAuto, ManagerHyprpaper, ManagerSwww, ManagerSwaybg}
}

// Plugin implements the output.Plugin interface for wallpaper daemons.
type Plugin struct {
	runner process.Runner

	enabled bool
	manager string
	fit     string
}

// New creates a new wallpaper output plugin with default settings.
func New(runner process.Runner) *Plugin {
	return &Plugin{
		runner:  runner,
		enabled: true,
		manager: string(ManagerHyprpaper),
		fit:     "cover",
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "wallpaper"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Set the source image as wallpaper (hyprpaper, swww or swaybg)"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.enabled, "wallpaper.enabled", true, "Set the wallpaper")
	cmd.Flags().StringVar(&p.manager, "wallpaper.manager", string(ManagerHyprpaper), "Wallpaper manager (auto, hyprpaper, swww, swaybg)")
	cmd.Flags().StringVar(&p.fit, "wallpaper.fit", "cover", "Fit mode (cover, contain, tile, fill); mapped to the matching swaybg mode, ignored by swww")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.runner == nil {
		return fmt.Errorf("no process runner configured")
	}
	if !slices.Contains(ValidManagers(), Manager(p.manager)) {
		return fmt.Errorf("invalid wallpaper manager: %s (valid: %v)", p.manager, ValidManagers())
	}
	if _, ok := swaybgModes[p.fit]; !ok {
		return fmt.Errorf("invalid wallpaper fit: %s (valid: cover, contain, tile, fill)", p.fit)
	}
	return nil
}

// PreExecute skips the plugin when disabled or when the manager's client is
// not installed.
// Implements the output.PreExecuteHook interface.
func (p *Plugin) PreExecute(_ context.Context) (skip bool, reason string, err error) {
	if !p.enabled {
		return true, "disabled by flag", nil
	}
	if client, ok := managerClients[Manager(p.manager)]; ok {
		if _, err := exec.LookPath(client); err != nil {
			return true, client + " executable not found on $PATH", nil
		}
	}
	return false, "", nil
}

// Apply sets the wallpaper with the configured (or detected) manager.
func (p *Plugin) Apply(ctx context.Context, execCtx output.ExecutionContext) error {
	if execCtx.WallpaperPath == "" {
		return fmt.Errorf("no wallpaper path provided")
	}
	absPath, err := filepath.Abs(execCtx.WallpaperPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	manager := Manager(p.manager)
	if manager == ManagerAuto {
		manager = p.detectManager(ctx)
		execCtx.Logger.Debug("detected wallpaper manager", "manager", manager)
	}

	switch manager {
	case ManagerHyprpaper:
		err = p.setHyprpaper(ctx, absPath)
	case ManagerSwww:
		err = p.setSwww(ctx, absPath)
	case ManagerSwaybg:
		err = p.setSwaybg(ctx, absPath, execCtx)
	default:
		return fmt.Errorf("no supported wallpaper manager detected (tried: hyprpaper, swww, swaybg)")
	}
	if err != nil {
		return err
	}

	execCtx.Logger.Info("updated wallpaper", "manager", manager, "path", absPath)
	return nil
}

// detectManager checks which wallpaper daemon is running.
func (p *Plugin) detectManager(ctx context.Context) Manager {
	if _, err := p.runner.Run(ctx, "hyprctl", "hyprpaper", "listloaded"); err == nil {
		return ManagerHyprpaper
	}
	if pids, err := p.runner.FindByName("swww-daemon"); err == nil && len(pids) > 0 {
		return ManagerSwww
	}
	if pids, err := p.runner.FindByName("swaybg"); err == nil && len(pids) > 0 {
		return ManagerSwaybg
	}
	return ManagerNone
}

// setHyprpaper sets the wallpaper on all monitors using the ", path, fit" syntax.
func (p *Plugin) setHyprpaper(ctx context.Context, absPath string) error {
	arg := fmt.Sprintf(", %s, %s", absPath, p.fit)
	if out, err := p.runner.Run(ctx, "hyprctl", "hyprpaper", "wallpaper", arg); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (p *Plugin) setSwww(ctx context.Context, absPath string) error {
	if out, err := p.runner.Run(ctx, "swww", "img", absPath, "--transition-type", "fade"); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w (output: %s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// setSwaybg replaces any running swaybg with a new instance.
func (p *Plugin) setSwaybg(_ context.Context, absPath string, execCtx output.ExecutionContext) error {
	pids, err := p.runner.FindByName("swaybg")
	if err != nil {
		return fmt.Errorf("failed to find swaybg processes: %w", err)
	}
	// A swaybg that is already gone is not an error.
	for _, pid := range pids {
		if err := p.runner.Signal(pid, syscall.SIGTERM); err != nil {
			execCtx.Logger.Debug("failed to stop swaybg", "pid", pid, "error", err)
		}
	}
	if err := p.runner.Start("swaybg", "-i", absPath, "-m", swaybgModes[p.fit]); err != nil {
		return fmt.Errorf("failed to start swaybg: %w", err)
	}
	return nil
}
