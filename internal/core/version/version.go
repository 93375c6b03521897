// Package version reports what build of formmigrate is running
package version

import "fmt"

// BuildInfo identifies a build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Stamped at link time:
//
//	go build -ldflags "-X formmigrate/internal/core/version.version=v1.2.0 \
//	  -X formmigrate/internal/core/version.commit=$(git rev-parse --short HEAD) \
//	  -X formmigrate/internal/core/version.date=$(date -u +%F)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the stamped build info
func Info() BuildInfo {
	return BuildInfo{Service: "formmigrate", Version: version, Commit: commit, Date: date}
}

// String formats the info for -version output
func (b BuildInfo) String() string {
	return fmt.Sprintf("%s %s (commit %s, built %s)", b.Service, b.Version, b.Commit, b.Date)
}
