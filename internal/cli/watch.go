package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/image"
	"github.com/TheSeaMacs/waybar-autotheme/internal/process"
	"github.com/TheSeaMacs/waybar-autotheme/internal/watch"
)

func newWatchCmd(runner process.Runner) *cobra.Command {
	opts := &applyOptions{}
	registry := newOutputRegistry(runner)
	var (
		debounce time.Duration
		initial  bool
	)

	cmd := &cobra.Command{
		Use:   "watch <image>",
		Short: "Re-apply the theme whenever the wallpaper changes",
		Long: `Watch a wallpaper file, or a directory of wallpapers, and apply a new theme
each time it is written or replaced.

For a directory the image that changed is used. Mode and saturation come from
flags or environment variables; nothing is prompted for.

Examples:
  # Follow a symlink managed by another tool
  autotheme watch --mode dark ~/.config/hypr/current-wallpaper

  # Theme from whatever is dropped into a directory
  autotheme watch --initial=false ~/Pictures/walls`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)

			cfg, err := opts.config(cmd, nil)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			w, err := watch.New(args[0], debounce, logger)
			if err != nil {
				return err
			}
			defer w.Close()

			handle := func(ctx context.Context, imagePath string) error {
				return applyImage(ctx, cmd.OutOrStdout(), imagePath, cfg, opts, registry, logger)
			}

			if initial {
				imagePath, err := image.ResolveImagePath(w.Path())
				if err != nil {
					return fmt.Errorf("invalid image path: %w", err)
				}
				if err := handle(cmd.Context(), imagePath); err != nil {
					return err
				}
			}

			return w.Run(cmd.Context(), handle)
		},
	}

	opts.registerFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("clusters", "minimal")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print each theme without applying it")
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "wait for changes to settle before applying")
	cmd.Flags().BoolVar(&initial, "initial", true, "apply the theme once before watching")
	for _, p := range registry.All() {
		p.RegisterFlags(cmd)
	}
	return cmd
}
