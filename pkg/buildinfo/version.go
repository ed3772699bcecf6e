// Package buildinfo reports the version stamped into the binary.
//
// Release builds set the variables through the linker:
//
//	go build -ldflags "-X github.com/matzehuels/clustergraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/clustergraph/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// Anything left unset is filled from the module version and VCS stamp the Go
// toolchain records, so `go install` builds still identify themselves.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	if info, ok := debug.ReadBuildInfo(); ok {
		fill(info)
	}
}

// fill replaces default values with what info records.
func fill(info *debug.BuildInfo) {
	if v := info.Main.Version; Version == "dev" && v != "" && v != "(devel)" {
		Version = v
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
			if len(Commit) > 12 {
				Commit = Commit[:12]
			}
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// Template is the cobra --version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
