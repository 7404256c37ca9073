// Package utils provides application-wide helpers: logging, version retrieval and shared constants.
package utils

import (
	"runtime/debug"
	"strings"
)

const (
	develVersion   = "(devel)"
	unknownVersion = "unknown"
)

// Version is injected at link time with -ldflags "-X github.com/tyemirov/ai/internal/utils.Version=v1.2.3".
var Version = ""

// GetApplicationVersion reports the linker-provided version, then the module version recorded
// in the build info, and falls back to "unknown" for local development builds.
func GetApplicationVersion() string {
	if trimmed := strings.TrimSpace(Version); trimmed != "" {
		return trimmed
	}
	buildInfo, buildInfoAvailable := debug.ReadBuildInfo()
	if buildInfoAvailable && buildInfo.Main.Version != "" && buildInfo.Main.Version != develVersion {
		return buildInfo.Main.Version
	}
	return unknownVersion
}
