// Package version reports what build of themelab is running. Release
// builds set the variables below with -ldflags -X; plain `go install`
// builds fall back to the VCS stamp the toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/kolshub/themelab/internal/version.Version=...".
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Build describes one binary.
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Modified  bool   `json:"modified,omitempty"`
}

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Current merges the linker-set values with the embedded build info.
// Linker values win when present.
func Current() Build {
	b := Build{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		b.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "unknown" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.Date == "unknown" {
				b.Date = s.Value
			}
		case "vcs.modified":
			b.Modified = s.Value == "true"
		}
	}
	return b
}

// String is the line `themelab version` prints.
func String() string {
	b := Current()
	if b.Commit == "unknown" || b.Date == "unknown" {
		return fmt.Sprintf("themelab %s (%s, %s)", b.Version, b.GoVersion, b.Platform)
	}
	commit := shortCommit(b.Commit)
	if b.Modified {
		commit += "-dirty"
	}
	return fmt.Sprintf("themelab %s (commit %s, built %s, %s, %s)",
		b.Version, commit, b.Date, b.GoVersion, b.Platform)
}

// Short is the bare version, also sent in the User-Agent header.
func Short() string {
	return Current().Version
}

func shortCommit(c string) string {
	if len(c) > 8 {
		return c[:8]
	}
	return c
}
