package converter

import (
	goruntime "runtime"
	"strings"
)

// Platform reports the host trait that affects container mount syntax.
// It is injected rather than read from the environment so tests can simulate
// either platform deterministically.
type Platform interface {
	OS() string
}

type hostPlatform struct{}

func (hostPlatform) OS() string { return goruntime.GOOS }

// HostPlatform returns the Platform describing the real host.
func HostPlatform() Platform { return hostPlatform{} }

// mountSource rewrites a canonical absolute host path into the form the
// container runtime's bind syntax accepts. Windows path APIs resolve to
// backslash form, which must become forward slashes before being embedded in
// a HOST:CONTAINER spec; every other platform already uses forward slashes.
func mountSource(p Platform, absPath string) string {
	if p.OS() == "windows" {
		return strings.ReplaceAll(absPath, `\`, "/")
	}
	return absPath
}
