// Package version reports build information injected with -ldflags, e.g.
//
//	go build -ldflags "-X github.com/banshee-data/acoustic.space/internal/version.Version=v0.3.0"
package version

import "fmt"

var (
	// Version is the current application version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)

// Info is the JSON shape served by /api/version.
type Info struct {
	Version   string `json:"version"`
	GitSHA    string `json:"git_sha"`
	BuildTime string `json:"build_time"`
}

// Current returns the build information of the running binary.
func Current() Info {
	return Info{Version: Version, GitSHA: GitSHA, BuildTime: BuildTime}
}

// String formats the build information for the -version flag.
func String() string {
	return fmt.Sprintf("acoustic %s (%s, built %s)", Version, GitSHA, BuildTime)
}
