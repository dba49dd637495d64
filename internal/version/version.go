// Package version reports which build of science is running.
package version

import (
	"fmt"
	"runtime/debug"
)

// These variables are set at build time via ldflags:
//
//	-X github.com/example/science/internal/version.Commit=$(git rev-parse HEAD)
var (
	Commit    = "unknown"
	BuildTime = "unknown"
)

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// String returns the version string (commit-hash based, no semver).
// Without ldflags the VCS revision stamped by the Go toolchain is used.
func String() string {
	return fmt.Sprintf("science dev (commit: %s, built: %s)", shortCommit(resolveCommit()), BuildTime)
}

func resolveCommit() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return "unknown"
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
