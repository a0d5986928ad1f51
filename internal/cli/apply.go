package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/colour"
	"github.com/TheSeaMacs/waybar-autotheme/internal/image"
	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
	"github.com/TheSeaMacs/waybar-autotheme/internal/process"
)

const applyLong = `Extract a theme from an image and apply it to the desktop.

The image argument may be a file or a directory, in which case a random image
inside it is used. When the image, mode or saturation is not given by flag or
environment variable it is read from standard input.

Output plugins run in order:
  waybar     - rewrite the {variant:bg}/{variant:fg} lines of the stylesheet and restart waybar
  wallpaper  - set the image as wallpaper (hyprpaper, swww or swaybg)
  hyprland   - set the active border colour with hyprctl

Examples:
  # Prompt for everything
  autotheme

  # Dark theme from a random image in ~/Pictures/walls
  autotheme apply --mode dark ~/Pictures/walls

  # Boost saturation and skip the wallpaper
  autotheme apply -s 1.4 --wallpaper.enabled=false wall.jpg

  # Only print the colours
  autotheme apply --dry-run --preview wall.jpg`

type applyOptions struct {
	themeOptions
	dryRun bool
}

// configureApply turns cmd into an apply command with its own plugin set.
func configureApply(cmd *cobra.Command, runner process.Runner) {
	opts := &applyOptions{}
	registry := newOutputRegistry(runner)

	cmd.Args = cobra.MaximumNArgs(1)
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runApply(cmd, args, opts, registry)
	}

	opts.registerFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("clusters", "minimal")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the theme without applying it")
	for _, p := range registry.All() {
		p.RegisterFlags(cmd)
	}
}

func runApply(cmd *cobra.Command, args []string, opts *applyOptions, registry *output.Registry) error {
	logger := newLogger(cmd)
	p := newPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())

	var path string
	switch {
	case len(args) > 0:
		path = args[0]
	case os.Getenv(EnvWallpaper) != "":
		path = os.Getenv(EnvWallpaper)
	default:
		answer, err := p.ask("Path to wallpaper (file or directory): ")
		if err != nil {
			return err
		}
		path = answer
	}
	if path == "" {
		return fmt.Errorf("no image path given")
	}

	imagePath, err := image.ResolveImagePath(path)
	if err != nil {
		return fmt.Errorf("invalid image path: %w", err)
	}

	cfg, err := opts.config(cmd, p)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return applyImage(cmd.Context(), cmd.OutOrStdout(), imagePath, cfg, opts, registry, logger)
}

// applyImage derives the theme of one image, prints it and runs the plugins.
func applyImage(ctx context.Context, out io.Writer, imagePath string, cfg colour.Config,
	opts *applyOptions, registry *output.Registry, logger hclog.Logger,
) error {
	logger.Debug("loading image", "path", imagePath)
	img, err := image.NewFileLoader().Load(imagePath)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	logger.Info("extracting colours", "path", imagePath, "algorithm", cfg.Algorithm,
		"clusters", cfg.ClusterCount, "mode", cfg.Mode)
	result, err := colour.Generate(img, cfg)
	if err != nil {
		return err
	}
	logger.Debug("selected pair", "background", colour.Encode(result.Selected.Background),
		"foreground", colour.Encode(result.Selected.Foreground))

	printTheme(out, result.Theme, result.Adjusted, opts.preview)

	if opts.dryRun {
		logger.Info("dry run, no plugins executed", "plugins", registry.List())
		return nil
	}

	return registry.Execute(ctx, output.ExecutionContext{
		Theme:         result.Theme,
		WallpaperPath: imagePath,
		Logger:        logger,
	})
}
