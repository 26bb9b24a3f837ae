// Package version reports build information of the interner binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// unknown is reported for values the build did not record.
const unknown = "<unknown>"

// Version is the release version, set with -ldflags "-X ...version.Version=v1.2.3".
var Version = "dev"

// BinaryGitHash is the Git hash of the binary, set with -ldflags like Version.
// When empty, the VCS revision recorded by the Go toolchain is used.
var BinaryGitHash = ""

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitHash   string `json:"git_hash"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		GitHash:   gitHash(),
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String implements fmt.Stringer.
func (i Info) String() string {
	return fmt.Sprintf("interner %s (%s) %s %s", i.Version, i.GitHash, i.GoVersion, i.Platform)
}

func gitHash() string {
	if BinaryGitHash != "" {
		return BinaryGitHash
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unknown
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && setting.Value != "" {
			return setting.Value
		}
	}

	return unknown
}
