package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"nwkit/internal/converter"
	nwkiterrors "nwkit/internal/errors"
	"nwkit/internal/runner"
	"nwkit/internal/runtime"
	"nwkit/internal/ui"
	pkgruntime "nwkit/pkg/runtime"
)

// newContainerRuntime is a seam for tests; the default reaches the real
// Docker daemon.
var newContainerRuntime = func() (pkgruntime.ContainerRuntime, error) {
	return runtime.NewDockerRuntime()
}

// ConverterImage is the image distributing the wrapped conversion tool.
// It is fixed for the process; versions are selected through the tag.
const ConverterImage = "nwchemex/nw2yaml"

// Convert runs the full conversion pipeline for a single input file and
// prints progress to the console. This is the facade the CLI calls.
func Convert(ctx context.Context, opts Options, inputPath, destinationPath string) error {
	runID := uuid.New().String()
	slog.Info("Starting conversion", "runId", runID, "input", inputPath, "tag", opts.Tag, "skipPull", opts.SkipPull)

	console := ui.NewConsole()

	run, err := newRunner(opts)
	if err != nil {
		return err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	console.PrintInfo(fmt.Sprintf("Converting %s using %s", inputPath, run.Image()))

	conv := converter.New(run, converter.HostPlatform())
	destination, err := conv.Convert(ctx, converter.Request{
		InputPath:       inputPath,
		DestinationPath: destinationPath,
		SkipPull:        opts.SkipPull,
	})
	if err != nil {
		return err
	}

	console.PrintSuccess(fmt.Sprintf("Output written to: %s", destination))
	slog.Info("Conversion finished", "runId", runID, "destination", destination)
	return nil
}

// RunImage executes a single raw container run with caller-supplied bind
// specs and command arguments, without any file staging.
func RunImage(ctx context.Context, opts Options, binds, commandArgs []string) error {
	slog.Info("Starting raw image run", "tag", opts.Tag, "binds", binds, "command", commandArgs)

	run, err := newRunner(opts)
	if err != nil {
		return err
	}

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	return run.Run(ctx, runner.InvocationSpec{
		Binds:    binds,
		Command:  commandArgs,
		SkipPull: opts.SkipPull,
	})
}

// ValidatePrerequisites checks that the container runtime is reachable.
func ValidatePrerequisites() error {
	if _, err := newContainerRuntime(); err != nil {
		return nwkiterrors.NewRuntimeError(
			"Container runtime unavailable",
			err.Error(),
			"Is the Docker daemon running?",
			err)
	}
	return nil
}

func newRunner(opts Options) (*runner.Runner, error) {
	containerRuntime, err := newContainerRuntime()
	if err != nil {
		return nil, nwkiterrors.NewRuntimeError(
			"Container runtime unavailable",
			err.Error(),
			"Is the Docker daemon running?",
			err)
	}

	return runner.New(containerRuntime, runner.ImageRef{Name: ConverterImage, Tag: opts.Tag}), nil
}
