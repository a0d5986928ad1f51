package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/TheSeaMacs/waybar-autotheme/internal/colour"
)

// Environment variables providing defaults for flags that are not set.
const (
	EnvWallpaper  = "AUTOTHEME_WALLPAPER"
	EnvMode       = "AUTOTHEME_MODE"
	EnvSaturation = "AUTOTHEME_SATURATION"
)

// themeOptions holds the flags shared by apply and extract.
type themeOptions struct {
	algorithm  string
	clusters   int
	minimal    bool
	mode       string
	saturation string
	preview    bool
}

func (o *themeOptions) registerFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.algorithm, "algorithm", "a", string(colour.AlgorithmHamerly), fmt.Sprintf("extraction algorithm %v", colour.ValidAlgorithms()))
	fs.IntVarP(&o.clusters, "clusters", "k", colour.DefaultClusterCount, "number of colour clusters")
	fs.BoolVar(&o.minimal, "minimal", false, fmt.Sprintf("use %d clusters (two-colour image)", colour.MinimalClusterCount))
	fs.StringVarP(&o.mode, "mode", "m", "", "theme mode: light/0 or dark/1 (env "+EnvMode+")")
	fs.StringVarP(&o.saturation, "saturation", "s", "", "saturation multiplier, blank for none (env "+EnvSaturation+")")
	fs.BoolVar(&o.preview, "preview", false, "show colour swatches in the terminal")
}

// config builds the pipeline configuration. Values come from the flag, then the
// environment, then the prompter when one is given.
func (o *themeOptions) config(cmd *cobra.Command, p *prompter) (colour.Config, error) {
	cfg := colour.DefaultConfig()
	cfg.Algorithm = colour.Algorithm(o.algorithm)
	cfg.ClusterCount = o.clusters
	if o.minimal {
		cfg.ClusterCount = colour.MinimalClusterCount
	}

	// Light applies only when no mode was supplied at all; a blank answer is invalid.
	mode, supplied, err := lookupValue(cmd, "mode", EnvMode, p, "Mode (0 = light, 1 = dark): ")
	if err != nil {
		return cfg, err
	}
	if supplied {
		if cfg.Mode, err = colour.ParseMode(mode); err != nil {
			return cfg, err
		}
	}

	saturation, _, err := lookupValue(cmd, "saturation", EnvSaturation, p, "Saturation multiplier, 0 to 2 (blank for none): ")
	if err != nil {
		return cfg, err
	}
	if cfg.Saturation, err = colour.ParseMultiplier(saturation); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

// lookupValue reports whether a value was supplied at all, so that an empty
// answer can be told apart from a missing one.
func lookupValue(cmd *cobra.Command, flag, env string, p *prompter, question string) (string, bool, error) {
	if cmd.Flags().Changed(flag) {
		value, err := cmd.Flags().GetString(flag)
		if err != nil {
			return "", false, fmt.Errorf("failed to read --%s: %w", flag, err)
		}
		return value, true, nil
	}
	if value, ok := os.LookupEnv(env); ok {
		return value, true, nil
	}
	if p == nil {
		return "", false, nil
	}
	answer, err := p.ask(question)
	if err != nil {
		return "", false, err
	}
	return answer, true, nil
}

// printTheme writes the derived colours, with swatches when preview is set.
func printTheme(w io.Writer, theme colour.Theme, pair colour.ThemePair, preview bool) {
	if preview {
		fmt.Fprintln(w, colour.FormatWithLabel(pair.Background, "background", 0))
		fmt.Fprintln(w, colour.FormatWithLabel(pair.Foreground, "foreground", 0))
		return
	}
	fmt.Fprintf(w, "background %s\n", theme.Background)
	fmt.Fprintf(w, "foreground %s\n", theme.Foreground)
}
