// Package version reports which autotheme build is running.
//
// Release builds stamp Version, Commit and Date through the linker, e.g.
//
//	go build -ldflags "-X github.com/TheSeaMacs/waybar-autotheme/internal/version.Version=1.2.0 \
//	  -X github.com/TheSeaMacs/waybar-autotheme/internal/version.Commit=$(git rev-parse HEAD) \
//	  -X github.com/TheSeaMacs/waybar-autotheme/internal/version.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	  ./cmd/autotheme
//
// A plain `go build` leaves the placeholders below in place.
package version

import (
	"fmt"
	"runtime"
)

// unset marks a linker variable that was not stamped.
const unset = "unknown"

var (
	// Version is the release tag, "dev" for local builds.
	Version = "dev"

	// Commit is the full git hash the binary was built from.
	Commit = unset

	// Date is the UTC build time, RFC3339.
	Date = unset

	// GoVersion is the toolchain that produced the binary.
	GoVersion = runtime.Version()
)

// Info is the build description printed by `autotheme version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// GetInfo collects the stamped build variables and the running platform.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Stamped reports whether the linker filled in both the commit and the build date.
func (i Info) Stamped() bool {
	return i.Commit != unset && i.Date != unset
}

// String renders the one-line banner used by `autotheme --version`.
func (i Info) String() string {
	if i.Stamped() {
		return fmt.Sprintf("autotheme version %s (commit: %s, built: %s, %s, %s)",
			i.Version, shortCommit(i.Commit), i.Date, i.GoVersion, i.Platform)
	}
	return fmt.Sprintf("autotheme version %s (%s, %s)", i.Version, i.GoVersion, i.Platform)
}

// String is GetInfo().String().
func String() string {
	return GetInfo().String()
}

// Short returns the bare version, as cobra expects for the root command.
func Short() string {
	return Version
}

// shortCommit keeps the first eight characters of a hash.
func shortCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
