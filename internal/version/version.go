// Package version carries build identification, overridable at link
// time with -ldflags "-X ...".
package version

var (
	// Version is the current library version
	Version = "dev"
	// GitSHA is the git commit SHA
	GitSHA = "unknown"
	// BuildTime is the build timestamp
	BuildTime = "unknown"
)
