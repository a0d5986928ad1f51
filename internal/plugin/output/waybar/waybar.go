// Package waybar provides an output plugin that writes the theme colours into a
// Waybar stylesheet and restarts Waybar to pick them up.
package waybar

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/colour"
	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
	"github.com/TheSeaMacs/waybar-autotheme/internal/process"
)

// Marker tokens identifying the lines to replace in the stylesheet.
const (
	MarkerBackground = "{variant:bg}"
	MarkerForeground = "{variant:fg}"
)

// Environment variables overriding the default paths.
const (
	EnvStylesheet = "AUTOTHEME_WAYBAR_CSS"
	EnvConfig     = "AUTOTHEME_WAYBAR_CONFIG"
)

// Plugin implements the output.Plugin interface for Waybar.
type Plugin struct {
	runner process.Runner

	enabled    bool
	restart    bool
	stylesheet string
	config     string
}

// New creates a new Waybar output plugin with default settings.
func New(runner process.Runner) *Plugin {
	return &Plugin{
		runner:  runner,
		enabled: true,
		restart: true,
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "waybar"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Rewrite the Waybar stylesheet colours and restart Waybar"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&p.enabled, "waybar.enabled", true, "Update the Waybar stylesheet")
	cmd.Flags().BoolVar(&p.restart, "waybar.restart", true, "Restart Waybar after updating the stylesheet")
	cmd.Flags().StringVar(&p.stylesheet, "waybar.css", "", "Stylesheet to rewrite (default: $"+EnvStylesheet+" or ~/.config/waybar/return.css)")
	cmd.Flags().StringVar(&p.config, "waybar.config", "", "Config passed to waybar -c (default: $"+EnvConfig+" or ~/.config/waybar/return.jsonc)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.runner == nil {
		return fmt.Errorf("no process runner configured")
	}
	return nil
}

// StylesheetPath returns the stylesheet that will be rewritten.
func (p *Plugin) StylesheetPath() string {
	return resolvePath(p.stylesheet, EnvStylesheet, "return.css")
}

// ConfigPath returns the config file passed to waybar on restart.
func (p *Plugin) ConfigPath() string {
	return resolvePath(p.config, EnvConfig, "return.jsonc")
}

func resolvePath(flagValue, envName, file string) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(envName); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "waybar", file)
	}
	return filepath.Join(home, ".config", "waybar", file)
}

// PreExecute skips the plugin when disabled or when the stylesheet is missing.
// Implements the output.PreExecuteHook interface.
func (p *Plugin) PreExecute(_ context.Context) (skip bool, reason string, err error) {
	if !p.enabled {
		return true, "disabled by flag", nil
	}
	if _, err := os.Stat(p.StylesheetPath()); err != nil {
		return true, fmt.Sprintf("waybar stylesheet not found: %s", p.StylesheetPath()), nil
	}
	return false, "", nil
}

// Apply rewrites the marker lines of the stylesheet in place.
func (p *Plugin) Apply(_ context.Context, execCtx output.ExecutionContext) error {
	path := p.StylesheetPath()

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat stylesheet: %w", err)
	}
	content, err := os.ReadFile(path) // #nosec G304 - user-configured stylesheet
	if err != nil {
		return fmt.Errorf("failed to read stylesheet: %w", err)
	}

	updated, replaced := RewriteStylesheet(string(content), execCtx.Theme)
	if replaced == 0 {
		execCtx.Logger.Warn("no colour markers found in stylesheet", "path", path,
			"markers", []string{MarkerBackground, MarkerForeground})
		return nil
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}

	execCtx.Logger.Info("updated waybar stylesheet", "path", path, "lines", replaced)
	return nil
}

// RewriteStylesheet replaces every line containing a marker token with the
// matching @define-color declaration and returns the new content together with
// the number of replaced lines. All other lines are kept verbatim.
func RewriteStylesheet(content string, theme colour.Theme) (string, int) {
	lines := strings.Split(content, "\n")
	replaced := 0
	for i, line := range lines {
		switch {
		case strings.Contains(line, MarkerBackground):
			lines[i] = fmt.Sprintf("@define-color background %s; /* %s */", theme.Background, MarkerBackground)
			replaced++
		case strings.Contains(line, MarkerForeground):
			lines[i] = fmt.Sprintf("@define-color text-foreground %s; /* %s */", theme.Foreground, MarkerForeground)
			replaced++
		}
	}
	return strings.Join(lines, "\n"), replaced
}
