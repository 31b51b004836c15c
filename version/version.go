// Package version reports build metadata for the miniyaml binary.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via -ldflags "-X go.jacobcolvin.com/miniyaml/version.Version=...".
var (
	Version   string
	Branch    string
	BuildUser string
	BuildDate string
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Revision  string `json:"revision"`
	Branch    string `json:"branch,omitempty"`
	BuildUser string `json:"buildUser,omitempty"`
	BuildDate string `json:"buildDate,omitempty"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the build metadata of the running binary. Without ldflags the
// version falls back to the main module version recorded by the Go
// toolchain, then to "dev".
func Get() Info {
	info := Info{
		Version:   Version,
		Revision:  "unknown",
		Branch:    Branch,
		BuildUser: BuildUser,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if ok {
		readBuildInfo(&info, bi)
	}

	if info.Version == "" {
		info.Version = "dev"
	}

	return info
}

func readBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}

	modified := false

	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}

	if modified {
		info.Revision += "-dirty"
	}
}

// String formats the metadata as a single line.
func (i Info) String() string {
	return fmt.Sprintf("miniyaml %s (revision %s, %s, %s)", i.Version, i.Revision, i.GoVersion, i.Platform)
}
