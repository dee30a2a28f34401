// Package buildinfo exposes version metadata for the stepdemo binary,
// read from the Go module's embedded build info rather than from
// linker-injected ldflags, since this repo has no release pipeline of
// its own.
package buildinfo

import "runtime/debug"

// Version returns the module version stepdemo was built from, or "dev"
// when build info is unavailable or carries no release version (e.g.
// `go run`, which reports "(devel)").
func Version() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "dev"
	}

	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "dev"
}

// Commit returns the VCS revision stepdemo was built from, if known.
func Commit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" {
			return setting.Value
		}
	}

	return ""
}

// GoVersion returns the Go toolchain version stepdemo was built with.
func GoVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	return info.GoVersion
}
