// Package version reports build information stamped in with -ldflags or
// read back from the Go build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// BuildInfo contains version and build information
type BuildInfo struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildTime time.Time `json:"build_time"`
	GoVersion string    `json:"go_version"`
	Platform  string    `json:"platform"`
}

// These variables are set at build time using -ldflags, e.g.
// -X github.com/conneroisu/planwriter/internal/version.Version=v0.3.0
var (
	Version   = "dev"
	GitCommit = "unknown"
	// BuildTime is RFC3339.
	BuildTime = "unknown"
)

// GetBuildInfo returns comprehensive build information
func GetBuildInfo() *BuildInfo {
	return &BuildInfo{
		Version:   GetVersion(),
		GitCommit: GetGitCommit(),
		BuildTime: parseBuildTime(BuildTime),
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// GetVersion returns the stamped version, then the module version, then
// dev-<short commit>.
func GetVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
		if rev := setting(info, "vcs.revision"); len(rev) >= 7 {
			return "dev-" + rev[:7]
		}
	}
	return "dev"
}

// GetGitCommit returns the git commit hash
func GetGitCommit() string {
	if GitCommit != "" && GitCommit != "unknown" {
		return GitCommit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if rev := setting(info, "vcs.revision"); rev != "" {
			return rev
		}
	}
	return "unknown"
}

// GetShortVersion returns a short version string suitable for display
func GetShortVersion() string {
	v := GetVersion()
	commit := GetGitCommit()
	if commit == "unknown" || len(commit) < 7 {
		return v
	}
	if v != "dev" {
		return fmt.Sprintf("%s (%s)", v, commit[:7])
	}
	return "dev-" + commit[:7]
}

// IsDirty returns true if the working directory was dirty when built
func IsDirty() bool {
	if info, ok := debug.ReadBuildInfo(); ok {
		return setting(info, "vcs.modified") == "true"
	}
	return false
}

func setting(info *debug.BuildInfo, key string) string {
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// parseBuildTime returns the zero time for anything unparseable.
func parseBuildTime(s string) time.Time {
	if s == "" || s == "unknown" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
