package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"nwkit/internal/app"
	"nwkit/internal/config"
	nwkiterrors "nwkit/internal/errors"
	"nwkit/pkg/profile"
)

// version is set at build time via ldflags
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     "nwkit",
	Short:   "nwkit - containerized quantum-chemistry input conversion",
	Version: version,
	Long: `nwkit converts quantum-chemistry input files into structured YAML data files
by orchestrating the containerized conversion tool. It handles image pulls,
temporary-file staging, platform path translation, and cleanup so callers
never deal with container invocation details.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an input file to a YAML data file",
	Long: `Convert stages the input file into a fresh temporary directory, runs the
conversion tool against it in a container, and copies the produced YAML
artifact to the destination. Without --destination the output path is the
input path with its extension replaced by .yaml.`,
	Run: func(cmd *cobra.Command, args []string) {
		input, _ := cmd.Flags().GetString("input")
		if input == "" {
			fmt.Fprintln(os.Stderr, "Error: --input flag is required")
			os.Exit(1)
		}
		destination, _ := cmd.Flags().GetString("destination")

		opts, err := resolveOptions(cmd)
		if err != nil {
			nwkiterrors.HandleError(err)
			os.Exit(1)
		}

		if err := app.Convert(cmd.Context(), opts, input, destination); err != nil {
			nwkiterrors.HandleError(err)
			os.Exit(1)
		}
	},
}

var runImageCmd = &cobra.Command{
	Use:   "run-image",
	Short: "Run the conversion image with raw arguments",
	Long: `Run-image executes a single attached run of the conversion image without any
file staging. Bind mounts are given as HOST:CONTAINER specs via --docker-args
and are placed before the image reference; --command-args tokens are passed to
the container verbatim, after it.`,
	Run: func(cmd *cobra.Command, args []string) {
		binds, _ := cmd.Flags().GetStringArray("docker-args")
		commandArgs, _ := cmd.Flags().GetStringArray("command-args")

		opts, err := resolveOptions(cmd)
		if err != nil {
			nwkiterrors.HandleError(err)
			os.Exit(1)
		}

		if err := app.RunImage(cmd.Context(), opts, binds, commandArgs); err != nil {
			nwkiterrors.HandleError(err)
			os.Exit(1)
		}
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that prerequisites are available",
	Run: func(cmd *cobra.Command, args []string) {
		if err := app.ValidatePrerequisites(); err != nil {
			nwkiterrors.HandleError(err)
			os.Exit(1)
		}
		fmt.Println("All prerequisites available.")
	},
}

// resolveOptions merges the optional profile file with explicit flags.
func resolveOptions(cmd *cobra.Command) (app.Options, error) {
	var prof *profile.Profile
	if profilePath, _ := cmd.Flags().GetString("profile"); profilePath != "" {
		parsed, err := config.Parse(profilePath)
		if err != nil {
			return app.Options{}, err
		}
		prof = parsed
	}

	tag, _ := cmd.Flags().GetString("tag")
	skipPull, _ := cmd.Flags().GetBool("skip-pull")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	return app.ResolveOptions(prof, app.FlagValues{
		Tag:         tag,
		TagSet:      cmd.Flags().Changed("tag"),
		SkipPull:    skipPull,
		SkipPullSet: cmd.Flags().Changed("skip-pull"),
		Timeout:     timeout,
		TimeoutSet:  cmd.Flags().Changed("timeout"),
	}), nil
}

// addRunFlags registers the options shared by convert and run-image.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("tag", "", `Image tag to use (default "latest")`)
	cmd.Flags().Bool("skip-pull", false, "Skip the image pull step (for locally built images)")
	cmd.Flags().Duration("timeout", 0, "Abort the container run after this duration (0 = no limit)")
	cmd.Flags().String("profile", "", "Path to an optional profile YAML file with defaults")
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging, including the equivalent container command line")

	convertCmd.Flags().StringP("input", "i", "", "Path to the input file (required)")
	convertCmd.Flags().StringP("destination", "d", "", "Path for the output file (default: input path with .yaml extension)")
	addRunFlags(convertCmd)
	if err := convertCmd.MarkFlagRequired("input"); err != nil {
		slog.Error("Failed to mark input flag as required for convert command", "error", err)
	}
	rootCmd.AddCommand(convertCmd)

	runImageCmd.Flags().StringArray("docker-args", nil, "Bind mount spec (HOST:CONTAINER); repeatable, order preserved")
	runImageCmd.Flags().StringArray("command-args", nil, "Argument passed to the container verbatim; repeatable, order preserved")
	addRunFlags(runImageCmd)
	rootCmd.AddCommand(runImageCmd)

	rootCmd.AddCommand(doctorCmd)
}

func main() {
	// Cancellation propagates through every container wait; staging cleanup
	// is deferred inside the converter, so Ctrl-C never leaks a staging dir.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
