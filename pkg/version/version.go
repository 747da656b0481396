// Package version reports the xcode-summary build. Values injected with
// -ldflags win; otherwise they are read from the module build info that
// `go install` embeds.
package version

import (
	"runtime"
	"runtime/debug"
	"sync"
)

// Set via -ldflags "-X github.com/cicd-ai-toolkit/xcode-summary/pkg/version.Version=..."
var (
	Version   = ""
	BuildDate = ""
	GitCommit = ""
)

const unknown = "unknown"

var (
	resolveOnce sync.Once
	resolved    build
)

type build struct {
	version   string
	buildDate string
	gitCommit string
	modified  bool
}

func current() build {
	resolveOnce.Do(func() {
		resolved = fromBuildInfo(debug.ReadBuildInfo())
		if Version != "" {
			resolved.version = Version
		}
		if BuildDate != "" {
			resolved.buildDate = BuildDate
		}
		if GitCommit != "" {
			resolved.gitCommit = GitCommit
		}
	})
	return resolved
}

// fromBuildInfo extracts the module version and VCS stamp. Missing values
// fall back to "dev" and "unknown".
func fromBuildInfo(info *debug.BuildInfo, ok bool) build {
	b := build{version: "dev", buildDate: unknown, gitCommit: unknown}
	if !ok || info == nil {
		return b
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		b.version = v
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			b.gitCommit = s.Value
		case "vcs.time":
			b.buildDate = s.Value
		case "vcs.modified":
			b.modified = s.Value == "true"
		}
	}
	return b
}

// String returns the version, "dev" for local builds.
func String() string {
	return current().version
}

// FullString returns the version line shown by --version.
func FullString() string {
	b := current()
	if b.version == "dev" {
		return "xcode-summary development version"
	}
	return "xcode-summary " + b.version
}

// Info returns all version information as a map.
func Info() map[string]string {
	b := current()
	commit := b.gitCommit
	if b.modified {
		commit += "-dirty"
	}
	return map[string]string{
		"version":   b.version,
		"buildDate": b.buildDate,
		"gitCommit": commit,
		"goVersion": runtime.Version(),
		"platform":  runtime.GOOS + "/" + runtime.GOARCH,
	}
}
