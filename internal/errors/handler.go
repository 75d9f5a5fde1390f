package errors

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"nwkit/internal/ui"
)

// ErrorHandler presents failures on the console and records them as
// structured JSON in the nwkit log file.
type ErrorHandler struct {
	logger  *slog.Logger
	console *ui.Console
}

func NewErrorHandler() (*ErrorHandler, error) {
	logFile, err := createLogFile()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	return &ErrorHandler{
		logger:  logger,
		console: ui.NewConsole(),
	}, nil
}

// logDir returns the OS-standard log directory, honoring the NWKIT_LOG_DIR
// override used by tests.
func logDir() (string, error) {
	if customLogDir := os.Getenv("NWKIT_LOG_DIR"); customLogDir != "" {
		return customLogDir, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "nwkit"), nil
	case "windows":
		if appDataDir := os.Getenv("APPDATA"); appDataDir != "" {
			return filepath.Join(appDataDir, "nwkit", "logs"), nil
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "nwkit", "logs"), nil
	default:
		// XDG-ish default for Linux and the BSDs.
		return filepath.Join(homeDir, ".local", "share", "nwkit", "logs"), nil
	}
}

const (
	logFileName  = "nwkit.log"
	maxLogSize   = 10 * 1024 * 1024
	maxLogFiles  = 5
	logFilePerms = 0600
)

// rotateLogFile shifts nwkit.log.N up by one, discarding the oldest, then
// moves the current log to .1.
func rotateLogFile(logPath string) error {
	for i := maxLogFiles - 1; i > 0; i-- {
		oldPath := fmt.Sprintf("%s.%d", logPath, i)
		newPath := fmt.Sprintf("%s.%d", logPath, i+1)

		if _, err := os.Stat(oldPath); err != nil {
			continue
		}
		if i == maxLogFiles-1 {
			if err := os.Remove(oldPath); err != nil {
				slog.Warn("Failed to remove old log file", "path", oldPath, "error", err)
			}
			continue
		}
		if err := os.Rename(oldPath, newPath); err != nil {
			slog.Warn("Failed to rotate log file", "old", oldPath, "new", newPath, "error", err)
		}
	}

	if _, err := os.Stat(logPath); err == nil {
		return os.Rename(logPath, logPath+".1")
	}
	return nil
}

func createLogFile() (*os.File, error) {
	dir, err := logDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine log directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(dir, logFileName)

	if info, err := os.Stat(logPath); err == nil && info.Size() >= maxLogSize {
		if err := rotateLogFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to rotate log file: %v\n", err)
		}
	}

	return os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePerms)
}

// Handle records err and prints a user-facing message. Nil errors are ignored.
func (h *ErrorHandler) Handle(err error) {
	if err == nil {
		return
	}

	var nwkitErr *NWKitError
	if errors.As(err, &nwkitErr) {
		h.handleNWKitError(nwkitErr)
	} else {
		h.handleGenericError(err)
	}
}

func (h *ErrorHandler) handleNWKitError(err *NWKitError) {
	logAttrs := []slog.Attr{
		slog.String("error", err.OriginalErr.Error()),
		slog.String("type", errorTypeName(err.Type)),
		slog.String("context", err.Context),
	}
	if err.Cause != "" {
		logAttrs = append(logAttrs, slog.String("cause", err.Cause))
	}
	if err.Suggestion != "" {
		logAttrs = append(logAttrs, slog.String("suggestion", err.Suggestion))
	}
	h.logger.LogAttrs(context.TODO(), slog.LevelError, "nwkit error occurred", logAttrs...)

	h.console.PrintError(h.console.FormatErrorMessage(err.Context, err.Cause, err.Suggestion))
}

func (h *ErrorHandler) handleGenericError(err error) {
	h.logger.Error("Unhandled error occurred",
		"error", err.Error(),
		"type", "generic",
	)
	h.console.PrintError(err.Error())
}

func errorTypeName(errType error) string {
	switch errType {
	case ErrInputNotFound:
		return "input_not_found"
	case ErrPullFailed:
		return "pull_failed"
	case ErrRunFailed:
		return "run_failed"
	case ErrArtifactMissing:
		return "artifact_missing"
	case ErrStagingIO:
		return "staging_io_failed"
	case ErrProfileInvalid:
		return "profile_invalid"
	case ErrRuntimeFailed:
		return "runtime_failed"
	default:
		return "unknown"
	}
}
