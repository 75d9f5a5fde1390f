package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	pkgruntime "nwkit/pkg/runtime"
)

// blockingRuntime parks every run until its context is canceled, simulating
// the wrapped tool hanging.
type blockingRuntime struct{}

func (blockingRuntime) PullImage(ctx context.Context, image string) error { return nil }

func (blockingRuntime) RunContainer(ctx context.Context, opts pkgruntime.RunOptions) (io.ReadCloser, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func useBlockingRuntime(t *testing.T) {
	t.Helper()
	orig := newContainerRuntime
	newContainerRuntime = func() (pkgruntime.ContainerRuntime, error) {
		return blockingRuntime{}, nil
	}
	t.Cleanup(func() { newContainerRuntime = orig })
}

func TestConvert_TimeoutCancelsRun(t *testing.T) {
	useBlockingRuntime(t)

	inputPath := filepath.Join(t.TempDir(), "mol.nw")
	if err := os.WriteFile(inputPath, []byte("geometry units angstrom\n"), 0644); err != nil {
		t.Fatal(err)
	}

	opts := Options{Tag: "latest", SkipPull: true, Timeout: 50 * time.Millisecond}

	start := time.Now()
	err := Convert(context.Background(), opts, inputPath, "")
	if err == nil {
		t.Fatal("Expected timeout error but got none")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded in the chain, got: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Timeout did not cancel the run promptly, took %s", elapsed)
	}
}

func TestRunImage_TimeoutCancelsRun(t *testing.T) {
	useBlockingRuntime(t)

	opts := Options{Tag: "latest", SkipPull: true, Timeout: 50 * time.Millisecond}

	err := RunImage(context.Background(), opts, []string{"/tmp/data:/opt/data"}, []string{"mol.nw"})
	if err == nil {
		t.Fatal("Expected timeout error but got none")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded in the chain, got: %v", err)
	}
}
