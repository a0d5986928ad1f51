// autotheme - themes Waybar and Hyprland from a wallpaper
//
// autotheme extracts a background/foreground colour pair from an image and
// writes it into the Waybar stylesheet, the wallpaper daemon and the Hyprland
// border colour.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/TheSeaMacs/waybar-autotheme/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
