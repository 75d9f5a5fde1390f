package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	nwkiterrors "nwkit/internal/errors"
	"nwkit/pkg/runtime"
)

// Runner executes exactly one container run per call and returns control when
// the process exits. No retries, no polling.
type Runner struct {
	containerRuntime runtime.ContainerRuntime
	image            ImageRef
}

// New creates a Runner bound to a container runtime and an image reference.
// The image name is injected here rather than read from a global so tests and
// callers can substitute both.
func New(containerRuntime runtime.ContainerRuntime, image ImageRef) *Runner {
	return &Runner{
		containerRuntime: containerRuntime,
		image:            image,
	}
}

// Image returns the image reference the Runner was constructed with.
func (r *Runner) Image() ImageRef {
	return r.image
}

// Run pulls the image (unless spec.SkipPull) and executes one attached
// container run. The container's output is streamed to the log; a non-zero
// exit status is returned as an error wrapping *runtime.ExitError.
func (r *Runner) Run(ctx context.Context, spec InvocationSpec) error {
	image := r.image.String()

	// Equivalent CLI form, for troubleshooting only. Never executed.
	slog.Debug("Container invocation",
		"commandLine", strings.Join(commandLine(image, spec), " "))

	if !spec.SkipPull {
		if err := r.containerRuntime.PullImage(ctx, image); err != nil {
			return nwkiterrors.NewPullError(
				"Image pull failed",
				err.Error(),
				"Check network connectivity, or pass --skip-pull for a locally built image",
				fmt.Errorf("failed to pull image %s: %w", image, err))
		}
	} else {
		slog.Debug("Skipping image pull", "image", image)
	}

	opts := runtime.RunOptions{
		Image:      image,
		Command:    spec.Command,
		Binds:      spec.Binds,
		WorkingDir: spec.WorkingDir,
	}

	reader, err := r.containerRuntime.RunContainer(ctx, opts)
	if err != nil {
		return nwkiterrors.NewRunError(
			"Container run failed",
			err.Error(),
			"Check that the container runtime is healthy",
			fmt.Errorf("failed to run container: %w", err))
	}

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if line := cleanLogLine(scanner.Text()); line != "" {
			slog.Info("Tool output", "line", line)
		}
	}

	if scanErr := scanner.Err(); scanErr != nil {
		// The exit status from Close outranks a log-stream read hiccup.
		if closeErr := reader.Close(); closeErr != nil {
			return nwkiterrors.NewRunError(
				"Container run failed",
				closeErr.Error(),
				"Inspect the tool output above for the failing step",
				fmt.Errorf("container run failed: %w", errors.Join(closeErr, scanErr)))
		}
		return fmt.Errorf("error reading container output: %w", scanErr)
	}

	// Close waits for the container and surfaces its exit status.
	if err := reader.Close(); err != nil {
		return nwkiterrors.NewRunError(
			"Container run failed",
			err.Error(),
			"Inspect the tool output above for the failing step",
			fmt.Errorf("container run failed: %w", err))
	}

	slog.Debug("Container run completed", "image", image, "command", spec.Command)
	return nil
}

// commandLine reconstructs the docker-CLI equivalent of an invocation:
// run <binds...> <image> <command...>, binds before the image, command after.
func commandLine(image string, spec InvocationSpec) []string {
	args := []string{"docker", "run", "-i", "--rm"}
	if spec.WorkingDir != "" {
		args = append(args, "-w", spec.WorkingDir)
	}
	for _, bind := range spec.Binds {
		args = append(args, "-v", bind)
	}
	args = append(args, image)
	args = append(args, spec.Command...)
	return args
}

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// cleanLogLine strips the 8-byte Docker stream-multiplexing header, ANSI
// escape sequences, and control characters from a line of container output.
func cleanLogLine(line string) string {
	if len(line) == 0 {
		return ""
	}

	// Multiplexed log frames start with [STREAM_TYPE][0][0][0][SIZE].
	if line[0] == 1 || line[0] == 2 {
		if len(line) <= 8 {
			return ""
		}
		line = line[8:]
	}

	line = ansiRegex.ReplaceAllString(line, "")
	line = strings.Map(func(r rune) rune {
		if r < 32 && r != '\t' {
			return -1
		}
		return r
	}, line)

	return strings.TrimSpace(line)
}
