// Package version holds the build version, stamped at link time.
package version

// Version is overridden via -ldflags "-X .../internal/version.Version=v...".
var Version = "dev"
