// Package cli provides the command-line interface for autotheme.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output"
	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output/hyprland"
	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output/wallpaper"
	"github.com/TheSeaMacs/waybar-autotheme/internal/plugin/output/waybar"
	"github.com/TheSeaMacs/waybar-autotheme/internal/process"
	"github.com/TheSeaMacs/waybar-autotheme/internal/version"
)

// NewRootCmd creates the root command backed by real external processes.
func NewRootCmd() *cobra.Command {
	return newRootCmd(process.NewExecRunner())
}

func newRootCmd(runner process.Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "autotheme [image]",
		Short: "Theme Waybar and Hyprland from your wallpaper",
		Long: `autotheme extracts a background/foreground colour pair from a wallpaper and
applies it to your desktop.

The image is quantized in CIELAB space, the clusters are ordered by chroma and
the two extremes become the background and foreground of a light or dark theme.
The pair is written into the marked lines of your Waybar stylesheet, Waybar is
restarted, the image is set as wallpaper and the Hyprland active border is
recoloured.

Running autotheme without a subcommand is the same as "autotheme apply".`,
		Version:      version.Short(),
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "suppress non-error output")
	rootCmd.SetVersionTemplate(version.String() + "\n")

	configureApply(rootCmd, runner)

	applyCmd := &cobra.Command{
		Use:   "apply [image]",
		Short: "Extract a theme from an image and apply it",
		Long:  applyLong,
	}
	configureApply(applyCmd, runner)

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newWatchCmd(runner))
	rootCmd.AddCommand(newPluginsCmd(runner))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// newOutputRegistry returns the output plugins in the order they are applied.
func newOutputRegistry(runner process.Runner) *output.Registry {
	registry := output.NewRegistry()
	registry.Register(waybar.New(runner))
	registry.Register(wallpaper.New(runner))
	registry.Register(hyprland.New(runner))
	return registry
}

func newPluginsCmd(runner process.Runner) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List the output plugins",
		Long:  `List the output plugins in the order apply runs them. Each plugin's flags are prefixed with its name.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tbl := newTable("NAME", "DESCRIPTION")
			tbl.wrapColumn(1, 60)
			for _, p := range newOutputRegistry(runner).All() {
				tbl.addRow(p.Name(), p.Description())
			}
			fmt.Fprint(cmd.OutOrStdout(), tbl.render())
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !asJSON {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
				return nil
			}
			data, err := json.MarshalIndent(version.GetInfo(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode version info: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "output version information as JSON")
	return cmd
}
