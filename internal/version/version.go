// Package version holds build information injected with ldflags:
//
//	-ldflags "-X github.com/ironsheep/palette-tools-mcp/internal/version.Version=x.y.z"
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of the build.
	Version = "dev"

	// BuildTime is the build timestamp.
	BuildTime = "unknown"

	// GitCommit is the commit hash the binary was built from.
	GitCommit = "unknown"
)

// String returns a multi-line human readable version report.
func String() string {
	return fmt.Sprintf("palette-tools-mcp %s\n  Build time: %s\n  Git commit: %s\n  Go version: %s (%s/%s)",
		Version, BuildTime, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
