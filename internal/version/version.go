// Package version reports the build version of the service.
package version

import "runtime/debug"

// Version is set at link time:
//
//	go build -ldflags "-X github.com/iliyamo/solvely-pub/internal/version.Version=1.4.0"
var Version = ""

const fallback = "0.0.0-dev"

// Resolve picks, in order: override (APP_VERSION), the linked Version, the
// main module version from build info, then "0.0.0-dev".
func Resolve(override string) string {
	return resolve(override, Version, debug.ReadBuildInfo)
}

func resolve(override, linked string, info func() (*debug.BuildInfo, bool)) string {
	if override != "" {
		return override
	}
	if linked != "" {
		return linked
	}
	if bi, ok := info(); ok && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	return fallback
}
