// Package version provides version information for camtray.
package version

// Version is the version of camtray. This can be overridden at build time using ldflags.
var Version = "development"

// Commit is the git commit hash. This can be overridden at build time using ldflags.
var Commit = "unknown"

// String returns the full version string including the commit hash if available.
func String() string {
	if Commit != "unknown" {
		return Version + "+" + Commit
	}
	return Version
}

// UserAgent returns the product token used in HTTP headers, e.g. "camtray/1.0.0".
func UserAgent() string {
	return "camtray/" + String()
}
