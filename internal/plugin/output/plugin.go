// Package output provides the interface and base types for output plugins that
// apply a generated theme to the desktop.
package output

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/colour"
)

// ExecutionContext is the data handed to every plugin.
type ExecutionContext struct {
	Theme colour.Theme

	// WallpaperPath is the absolute path of the source image.
	WallpaperPath string

	Logger hclog.Logger
}

// Plugin applies a theme to one external program.
type Plugin interface {
	// Name returns the plugin's name (e.g., "waybar", "hyprland").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// Apply pushes the theme to the target program.
	Apply(ctx context.Context, execCtx ExecutionContext) error
}

// PreExecuteHook lets a plugin skip itself before Apply runs, e.g. when the
// target program is not installed or was disabled by flag.
type PreExecuteHook interface {
	PreExecute(ctx context.Context) (skip bool, reason string, err error)
}

// PostExecuteHook runs after a successful Apply, e.g. to restart the target program.
type PostExecuteHook interface {
	PostExecute(ctx context.Context, execCtx ExecutionContext) error
}

// Registry holds output plugins in registration order.
type Registry struct {
	plugins []Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a plugin to the registry. Plugins execute in registration order.
func (r *Registry) Register(plugin Plugin) {
	r.plugins = append(r.plugins, plugin)
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	for _, p := range r.plugins {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// List returns all registered plugin names.
func (r *Registry) List() []string {
	names := make([]string, len(r.plugins))
	for i, p := range r.plugins {
		names[i] = p.Name()
	}
	return names
}

// All returns all registered plugins in order.
func (r *Registry) All() []Plugin {
	return append([]Plugin(nil), r.plugins...)
}

// Execute runs every plugin in order: PreExecute, Apply, then PostExecute.
// A failing plugin does not stop the others; all failures are joined.
func (r *Registry) Execute(ctx context.Context, execCtx ExecutionContext) error {
	logger := execCtx.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
		execCtx.Logger = logger
	}

	var errs []error
	for _, p := range r.plugins {
		log := logger.Named(p.Name())

		if err := p.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: invalid configuration: %w", p.Name(), err))
			continue
		}

		if hook, ok := p.(PreExecuteHook); ok {
			skip, reason, err := hook.PreExecute(ctx)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: pre-execute failed: %w", p.Name(), err))
				continue
			}
			if skip {
				log.Debug("skipping plugin", "reason", reason)
				continue
			}
		}

		pluginCtx := execCtx
		pluginCtx.Logger = log
		if err := p.Apply(ctx, pluginCtx); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
			continue
		}

		if hook, ok := p.(PostExecuteHook); ok {
			if err := hook.PostExecute(ctx, pluginCtx); err != nil {
				errs = append(errs, fmt.Errorf("%s: post-execute failed: %w", p.Name(), err))
			}
		}
	}

	return errors.Join(errs...)
}
