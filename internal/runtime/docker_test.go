package runtime

import (
	"strings"
	"testing"

	"nwkit/pkg/runtime"
)

func TestNewDockerRuntime_RequiresDockerDaemon(t *testing.T) {
	// Succeeds when a daemon is reachable; otherwise the error must carry the
	// context callers rely on for diagnostics.
	_, err := NewDockerRuntime()
	if err == nil {
		return
	}

	if !strings.Contains(err.Error(), "Docker") {
		t.Errorf("Unexpected error format: %s", err)
	}
}

func TestExitError_Message(t *testing.T) {
	err := &runtime.ExitError{Image: "example/tool:1.0", ExitCode: 139}

	want := "container example/tool:1.0 exited with status 139"
	if err.Error() != want {
		t.Errorf("ExitError.Error() = %q, want %q", err.Error(), want)
	}
}
