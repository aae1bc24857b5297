// Package version carries the build identity, overridable at link time:
//
//	go build -ldflags "-X github.com/matheuscostamelo63-dotcom/dimensionamento/internal/version.Version=1.2.0"
package version

var (
	// Version is the semantic version of the application.
	Version = "0.3.0"

	// BuildTime is set via ldflags at build time.
	BuildTime = "unknown"

	// GitCommit is set via ldflags at build time.
	GitCommit = "unknown"
)
