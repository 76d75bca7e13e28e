// Package misc keeps build time program identity.
package misc

import (
	"runtime/debug"
	"sync"
)

// Set with -ldflags "-X vindur/misc.version=... -X vindur/misc.gitHash=...".
var (
	appName = "vindur"
	version = "dev"
	gitHash = ""
)

var buildInfo = sync.OnceValue(func() map[string]string {
	settings := make(map[string]string)
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
	}
	return settings
})

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, falling back to VCS
// information recorded by the toolchain.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if rev := buildInfo()["vcs.revision"]; rev != "" {
		if buildInfo()["vcs.modified"] == "true" {
			return rev + "+"
		}
		return rev
	}
	return "unknown"
}
