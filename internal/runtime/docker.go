package runtime

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"

	"nwkit/pkg/runtime"
)

// DockerRuntime implements the ContainerRuntime interface using the Docker
// Engine SDK.
type DockerRuntime struct {
	client *client.Client
}

// NewDockerRuntime creates a new DockerRuntime instance from the standard
// environment (DOCKER_HOST etc.) and verifies the daemon is reachable.
func NewDockerRuntime() (*DockerRuntime, error) {
	dockerClient, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	ctx := context.Background()
	if _, err := dockerClient.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to Docker daemon: %w", err)
	}

	return &DockerRuntime{
		client: dockerClient,
	}, nil
}

// PullImage pulls a Docker image.
func (d *DockerRuntime) PullImage(ctx context.Context, imageName string) error {
	slog.Info("Pulling Docker image", "image", imageName)

	reader, err := d.client.ImagePull(ctx, imageName, image.PullOptions{})
	if err != nil {
		return fmt.Errorf("failed to pull image %s: %w", imageName, err)
	}
	defer reader.Close()

	// Drain the pull progress stream; the JSON progress lines are noise here.
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return fmt.Errorf("failed to stream image pull output: %w", err)
	}

	slog.Info("Successfully pulled Docker image", "image", imageName)
	return nil
}

// RunContainer creates and starts a container and returns a reader over its
// combined stdout/stderr. The caller must Close the reader; Close waits for
// the container to exit, removes it, and reports a non-zero exit status as
// *runtime.ExitError.
func (d *DockerRuntime) RunContainer(ctx context.Context, opts runtime.RunOptions) (io.ReadCloser, error) {
	slog.Info("Running container", "image", opts.Image, "command", opts.Command, "binds", opts.Binds)

	containerConfig := &container.Config{
		Image:      opts.Image,
		Cmd:        opts.Command,
		WorkingDir: opts.WorkingDir,
	}

	// Bind specs are passed through verbatim; the conversion layer owns the
	// HOST:CONTAINER formatting including Windows path normalization.
	hostConfig := &container.HostConfig{
		Binds: opts.Binds,
	}

	resp, err := d.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	containerID := resp.ID

	if err := d.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		if removeErr := d.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: true}); removeErr != nil {
			slog.Error("Failed to remove container after start failure", "containerID", containerID, "error", removeErr)
		}
		return nil, fmt.Errorf("failed to start container: %w", err)
	}

	return &containerReader{
		client:      d.client,
		containerID: containerID,
		image:       opts.Image,
		ctx:         ctx,
	}, nil
}

// containerReader wraps container output and handles wait/remove on Close.
type containerReader struct {
	client      *client.Client
	containerID string
	image       string
	ctx         context.Context
	reader      io.ReadCloser
	closed      bool
}

// Read streams the container's combined output, following until exit.
func (cr *containerReader) Read(p []byte) (n int, err error) {
	if cr.reader == nil {
		logs, err := cr.client.ContainerLogs(cr.ctx, cr.containerID, container.LogsOptions{
			ShowStdout: true,
			ShowStderr: true,
			Follow:     true,
		})
		if err != nil {
			return 0, fmt.Errorf("failed to get container logs: %w", err)
		}
		cr.reader = logs
	}

	return cr.reader.Read(p)
}

// Close waits for the container to finish, removes it, and returns an
// *runtime.ExitError if it exited non-zero. Safe to call more than once.
func (cr *containerReader) Close() error {
	if cr.closed {
		return nil
	}
	cr.closed = true

	if cr.reader != nil {
		cr.reader.Close()
	}

	exitCode, waitErr := cr.wait()

	if err := cr.client.ContainerRemove(cr.ctx, cr.containerID, container.RemoveOptions{Force: true}); err != nil {
		slog.Error("Failed to remove container", "containerID", cr.containerID, "error", err)
	}

	if waitErr != nil {
		return waitErr
	}
	if exitCode != 0 {
		return &runtime.ExitError{Image: cr.image, ExitCode: exitCode}
	}
	return nil
}

// wait blocks until the container is no longer running and returns its exit
// status.
func (cr *containerReader) wait() (int64, error) {
	statusCh, errCh := cr.client.ContainerWait(cr.ctx, cr.containerID, container.WaitConditionNotRunning)

	select {
	case err := <-errCh:
		return -1, fmt.Errorf("failed to wait for container: %w", err)
	case status := <-statusCh:
		if status.Error != nil {
			return status.StatusCode, fmt.Errorf("container wait reported error: %s", status.Error.Message)
		}
		return status.StatusCode, nil
	case <-cr.ctx.Done():
		return -1, cr.ctx.Err()
	}
}
