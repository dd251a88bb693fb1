// Package buildinfo carries the version stamp compiled into release
// binaries.
//
// Release builds inject the values with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/matzehuels/eventline/pkg/buildinfo.Version=v1.2.0 \
//	  -X github.com/matzehuels/eventline/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/matzehuels/eventline/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Builds made straight from the module (go install, go run) fall back
// to the revision the Go toolchain recorded, when one is available.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Set at link time for release builds. The defaults identify a local
// development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if Commit != "none" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			Commit = s.Value
		case "vcs.time":
			Date = s.Value
		}
	}
}

// String reports the full version stamp, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template renders the stamp in the shape cobra expects for --version
// output.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
