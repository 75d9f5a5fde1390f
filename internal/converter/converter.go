package converter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	nwkiterrors "nwkit/internal/errors"
	"nwkit/internal/runner"
)

const (
	// OutputExtension is the extension of the artifact the wrapped tool
	// produces, derived from the input file's base name.
	OutputExtension = ".yaml"

	// ContainerDataDir is the fixed path the staging directory is mounted to
	// inside the container. The tool operates on files relative to it.
	ContainerDataDir = "/opt/data"

	stagingPrefix = "nwkit-"
)

// Request describes one conversion. InputPath must name an existing regular
// file. An empty DestinationPath derives the output location from InputPath
// with its extension replaced by OutputExtension.
type Request struct {
	InputPath       string
	DestinationPath string
	SkipPull        bool
}

// Runner abstracts the single-invocation container runner.
type Runner interface {
	Run(ctx context.Context, spec runner.InvocationSpec) error
}

// Converter turns one local input file into one local output file via exactly
// one container invocation, with guaranteed staging cleanup.
type Converter struct {
	runner   Runner
	platform Platform
}

// New creates a Converter. The platform is injected so tests can exercise
// Windows mount-path translation from any host.
func New(run Runner, platform Platform) *Converter {
	return &Converter{
		runner:   run,
		platform: platform,
	}
}

// Convert stages the input file into a fresh temporary directory, runs the
// tool against it, and copies the produced artifact to the destination.
// It returns the resolved destination path. The staging directory is removed
// on every exit path, including cancellation.
func (c *Converter) Convert(ctx context.Context, req Request) (string, error) {
	info, err := os.Stat(req.InputPath)
	if err != nil {
		return "", nwkiterrors.NewInputError(
			"Conversion input not found",
			fmt.Sprintf("cannot read %s", req.InputPath),
			"Check the --input path",
			fmt.Errorf("input file not found: %s: %w", req.InputPath, err))
	}
	if !info.Mode().IsRegular() {
		return "", nwkiterrors.NewInputError(
			"Conversion input is not a file",
			fmt.Sprintf("%s is not a regular file", req.InputPath),
			"Pass a single input file, not a directory",
			fmt.Errorf("input is not a regular file: %s", req.InputPath))
	}

	// Destination is fixed before anything runs so a failed invocation never
	// leaves an ambiguous partial destination.
	destination := ResolveDestination(req.InputPath, req.DestinationPath)

	stagingDir, err := createStagingDir()
	if err != nil {
		return "", nwkiterrors.NewStagingError(
			"Failed to create staging directory",
			err.Error(),
			"Check permissions on the system temp directory",
			err)
	}
	defer cleanupStaging(stagingDir)

	inputName := filepath.Base(req.InputPath)
	if err := copyFile(req.InputPath, filepath.Join(stagingDir, inputName)); err != nil {
		return "", nwkiterrors.NewStagingError(
			"Failed to stage input file",
			err.Error(),
			"Check free space on the system temp directory",
			err)
	}

	absStagingDir, err := filepath.Abs(stagingDir)
	if err != nil {
		return "", nwkiterrors.NewStagingError(
			"Failed to resolve staging directory",
			err.Error(),
			"",
			err)
	}

	bind := mountSource(c.platform, absStagingDir) + ":" + ContainerDataDir
	slog.Debug("Staged conversion input", "stagingDir", stagingDir, "bind", bind, "input", inputName)

	// The tool resolves its input relative to the working directory, which is
	// the mounted staging path.
	spec := runner.InvocationSpec{
		Binds:      []string{bind},
		Command:    []string{inputName},
		WorkingDir: ContainerDataDir,
		SkipPull:   req.SkipPull,
	}
	if err := c.runner.Run(ctx, spec); err != nil {
		return "", err
	}

	artifactName := replaceExtension(inputName, OutputExtension)
	artifactPath := filepath.Join(stagingDir, artifactName)
	if _, err := os.Stat(artifactPath); err != nil {
		return "", nwkiterrors.NewArtifactError(
			"Tool produced no output artifact",
			fmt.Sprintf("expected %s in the staging directory after the run", artifactName),
			"If the tool reported success, check that your container runtime shares the system temp directory (Docker Desktop: Settings > Resources > File Sharing)",
			fmt.Errorf("no output artifact %s: %w", artifactName, err))
	}

	if err := copyFile(artifactPath, destination); err != nil {
		return "", nwkiterrors.NewStagingError(
			"Failed to copy output artifact to destination",
			err.Error(),
			"Check permissions on the destination directory",
			err)
	}

	slog.Info("Conversion completed", "input", req.InputPath, "destination", destination)
	return destination, nil
}

// ResolveDestination returns destinationPath verbatim when set, otherwise the
// input path with its extension replaced by OutputExtension.
func ResolveDestination(inputPath, destinationPath string) string {
	if destinationPath != "" {
		return destinationPath
	}
	return replaceExtension(inputPath, OutputExtension)
}

// replaceExtension swaps the extension of path for ext, appending ext when
// path has none.
func replaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}

// createStagingDir makes a fresh, exclusively owned directory under the
// system temp root. The UUID name keeps concurrent conversions from ever
// sharing a staging directory.
func createStagingDir() (string, error) {
	dir := filepath.Join(os.TempDir(), stagingPrefix+uuid.New().String())
	if err := os.Mkdir(dir, 0750); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	return dir, nil
}

// cleanupStaging removes the staging directory recursively. Removal failures
// are logged and never mask the conversion outcome. Safe to call repeatedly.
func cleanupStaging(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		slog.Warn("Failed to remove staging directory", "dir", dir, "error", err)
	}
}

// copyFile copies a single file byte-for-byte from src to dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", src, err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dst, err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}

	return destFile.Sync()
}
