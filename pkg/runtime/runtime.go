// Located in pkg/runtime/runtime.go
package runtime

import (
	"context"
	"fmt"
	"io"
)

// RunOptions defines the parameters for running a container.
// Binds are ordered bind-mount specs in HOST:CONTAINER form and are passed to
// the runtime verbatim. Command is the container argv; it is never routed
// through a shell.
type RunOptions struct {
	Image      string
	Command    []string
	Binds      []string
	WorkingDir string
}

// ContainerRuntime defines the contract for container operations.
// RunContainer returns a reader over the container's combined output. Closing
// the reader waits for the container to exit, removes it, and returns an
// *ExitError if the container finished with a non-zero status.
type ContainerRuntime interface {
	PullImage(ctx context.Context, image string) error
	RunContainer(ctx context.Context, opts RunOptions) (io.ReadCloser, error)
}

// ExitError reports a container that ran to completion with a non-zero status.
type ExitError struct {
	Image    string
	ExitCode int64
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("container %s exited with status %d", e.Image, e.ExitCode)
}
