// Package version exposes the engine's build identity, filled from
// -ldflags at release time or from the embedded VCS build info.
package version

import (
	"fmt"
	"runtime/debug"
	"time"
)

var (
	// Set at build time via -ldflags.
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is a snapshot of the build identity.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get assembles the build identity, preferring ldflags values and falling
// back to the VCS settings Go embeds in the binary.
func Get() *Info {
	info := &Info{
		Version:   Version,
		GitCommit: GitCommit,
	}

	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = shorten(setting.Value)
				}
			case "vcs.modified":
				info.IsDirty = setting.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuildDate = t
					}
				}
			}
		}
	}

	return info
}

// Short returns a compact version string for log lines.
func Short() string {
	info := Get()
	switch {
	case info.GitCommit == "":
		return info.Version
	case info.IsDirty:
		return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
	default:
		return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
	}
}

func shorten(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
