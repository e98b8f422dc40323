package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuild(t *testing.T, version, commit, date string, info *debug.BuildInfo) {
	t.Helper()
	origVersion, origCommit, origDate, origRead := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() {
		Version, Commit, Date, readBuildInfo = origVersion, origCommit, origDate, origRead
	})
	Version, Commit, Date = version, commit, date
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
}

func TestString(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		info    *debug.BuildInfo
		want    string
	}{
		{
			name:    "no build data",
			version: "dev", commit: "unknown", date: "unknown",
			want: "themelab dev (",
		},
		{
			name:    "linker values",
			version: "1.2.0", commit: "0123456789abcdef", date: "2026-10-19T00:00:00Z",
			want: "themelab 1.2.0 (commit 01234567, built 2026-10-19T00:00:00Z,",
		},
		{
			name:    "short commit kept",
			version: "1.2.0", commit: "abc", date: "2026-10-19T00:00:00Z",
			want: "(commit abc, built",
		},
		{
			name:    "embedded vcs stamp",
			version: "dev", commit: "unknown", date: "unknown",
			info: &debug.BuildInfo{
				Main: debug.Module{Version: "v0.3.1"},
				Settings: []debug.BuildSetting{
					{Key: "vcs.revision", Value: "fedcba9876543210"},
					{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
					{Key: "vcs.modified", Value: "true"},
				},
			},
			want: "themelab v0.3.1 (commit fedcba98-dirty, built 2026-01-02T03:04:05Z,",
		},
		{
			name:    "linker values win over vcs stamp",
			version: "2.0.0", commit: "aaaaaaaaaaaa", date: "2026-10-19T00:00:00Z",
			info: &debug.BuildInfo{
				Main:     debug.Module{Version: "(devel)"},
				Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "bbbbbbbbbbbb"}},
			},
			want: "themelab 2.0.0 (commit aaaaaaaa,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubBuild(t, tt.version, tt.commit, tt.date, tt.info)
			if got := String(); !strings.Contains(got, tt.want) {
				t.Errorf("String() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	stubBuild(t, "dev", "unknown", "unknown", nil)
	b := Current()
	if b.Version != "dev" || b.GoVersion == "" || !strings.Contains(b.Platform, "/") {
		t.Errorf("Current() = %+v", b)
	}
	if Short() != "dev" {
		t.Errorf("Short() = %q, want dev", Short())
	}
}
