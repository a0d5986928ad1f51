package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/TheSeaMacs/waybar-autotheme/internal/colour"
	"github.com/TheSeaMacs/waybar-autotheme/internal/image"
)

// extractJSON is the json output of the extract command.
type extractJSON struct {
	Mode     string             `json:"mode"`
	Palette  colour.PaletteJSON `json:"palette"`
	Selected colour.Theme       `json:"selected"`
	Theme    colour.Theme       `json:"theme"`
}

func newExtractCmd() *cobra.Command {
	opts := &themeOptions{}
	var (
		format     string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "extract <image>",
		Short: "Print the palette and theme of an image",
		Long: `Extract the chroma-ordered palette of an image together with the selected
background/foreground pair, without touching the desktop.

Mode and saturation fall back to their environment variables and are never
prompted for.

Examples:
  # Palette table for a wallpaper
  autotheme extract wall.jpg

  # Two clusters, dark mode, as JSON
  autotheme extract --minimal --mode dark --format json wall.jpg

  # Compare with the Lloyd quantizer
  autotheme extract --algorithm lloyd --preview wall.jpg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			logger := newLogger(cmd)

			if format != "text" && format != "json" {
				return fmt.Errorf("invalid format: %s (valid: text, json)", format)
			}

			imagePath, err := image.ResolveImagePath(args[0])
			if err != nil {
				return fmt.Errorf("invalid image path: %w", err)
			}
			cfg, err := opts.config(cmd, nil)
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			img, err := image.NewFileLoader().Load(imagePath)
			if err != nil {
				return fmt.Errorf("failed to load image: %w", err)
			}
			bounds := img.Bounds()
			logger.Debug("image loaded", "path", imagePath, "width", bounds.Dx(), "height", bounds.Dy())

			result, err := colour.Generate(img, cfg)
			if err != nil {
				return err
			}
			logger.Debug("extracted palette", "colours", result.Palette.Len())

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, createErr := os.Create(outputPath) // #nosec G304 - user-specified output file
				if createErr != nil {
					return fmt.Errorf("failed to create output file: %w", createErr)
				}
				defer func() {
					if closeErr := f.Close(); closeErr != nil && err == nil {
						err = fmt.Errorf("failed to close output file: %w", closeErr)
					}
				}()
				out = f
			}

			if format == "json" {
				return writePaletteJSON(out, result, cfg.Mode)
			}
			writePaletteText(out, result, cfg.Mode, opts.preview)
			return nil
		},
	}

	opts.registerFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("clusters", "minimal")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func writePaletteText(w io.Writer, result *colour.Result, mode colour.Mode, preview bool) {
	tbl := newTable("#", "HEX", "L", "A", "B", "CHROMA")
	for i, c := range result.Palette.Colours {
		tbl.addRow(
			strconv.Itoa(i+1),
			colour.Encode(c).String(),
			strconv.FormatFloat(c.L, 'f', 2, 64),
			strconv.FormatFloat(c.A, 'f', 2, 64),
			strconv.FormatFloat(c.B, 'f', 2, 64),
			strconv.FormatFloat(c.Chroma(), 'f', 2, 64),
		)
	}
	fmt.Fprint(w, tbl.render())

	if preview {
		fmt.Fprintln(w)
		for i, c := range result.Palette.Colours {
			fmt.Fprintln(w, colour.FormatWithLabel(c, fmt.Sprintf("colour %d", i+1), 0))
		}
	}

	fmt.Fprintf(w, "\nmode %s\n", mode)
	printTheme(w, result.Theme, result.Adjusted, preview)
}

func writePaletteJSON(w io.Writer, result *colour.Result, mode colour.Mode) error {
	data, err := json.MarshalIndent(extractJSON{
		Mode:     mode.String(),
		Palette:  result.Palette.JSON(),
		Selected: colour.EncodePair(result.Selected),
		Theme:    result.Theme,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
