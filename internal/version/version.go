// Package version provides build metadata for the contentfilter CLI.
//
// Version, Commit and BuildDate can be set with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/contentfilter/internal/version.Version=1.0.0"
//
// Anything left unset is filled from the VCS stamp the Go toolchain embeds.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/jmylchreest/contentfilter/pkg/beautifier"
)

// Build-time variables set via ldflags
var (
	Version   = "dev"
	Commit    = ""
	BuildDate = ""
)

// Info describes the running binary.
type Info struct {
	Version   string   `json:"version"`
	Commit    string   `json:"commit"`
	Dirty     bool     `json:"dirty"`
	BuildDate string   `json:"build_date"`
	GoVersion string   `json:"go_version"`
	Platform  string   `json:"platform"`
	Features  []string `json:"features"`
}

// Get returns the version information, preferring ldflags values over the
// embedded VCS settings.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
		Features:  Features(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.BuildDate == "" {
					info.BuildDate = s.Value
				}
			case "vcs.modified":
				info.Dirty = s.Value == "true"
			}
		}
	}
	if info.Commit == "" {
		info.Commit = "unknown"
	}
	if info.BuildDate == "" {
		info.BuildDate = "unknown"
	}
	return info
}

// Features lists the optional capabilities compiled into this binary.
func Features() []string {
	var features []string
	if beautifier.JavaScriptAvailable() {
		features = append(features, "jsbeautifier")
	}
	if beautifier.CSSAvailable() {
		features = append(features, "cssbeautifier")
	}
	return features
}

// String returns a single-line version string.
func (i Info) String() string {
	if i.Dirty {
		return i.Version + "-dirty"
	}
	return i.Version
}

// Full returns a multi-line description of the build.
func (i Info) Full() string {
	features := "none"
	if len(i.Features) > 0 {
		features = strings.Join(i.Features, ", ")
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "contentfilter %s\n", i.String())
	fmt.Fprintf(&sb, "  Commit:     %s\n", i.Commit)
	fmt.Fprintf(&sb, "  Built:      %s\n", i.BuildDate)
	fmt.Fprintf(&sb, "  Go version: %s\n", i.GoVersion)
	fmt.Fprintf(&sb, "  OS/Arch:    %s\n", i.Platform)
	fmt.Fprintf(&sb, "  Optional:   %s", features)
	return sb.String()
}
