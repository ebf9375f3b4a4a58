// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// NewRootCommand creates the jlinker command tree bound to app.
func NewRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jlinker",
		Short: "Assemble custom Java runtime images with jlink",
		Long: TitleStyle.Render("jlinker") + SubtitleStyle.Render(" - Assemble custom Java runtime images with jlink") + `

jlinker reads a jlinker.cue project file, downloads and verifies
cross-target JDKs, locates their jmods and runs jlink with a
reproducible argument list.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Create a project file with: jlinker config init
  2. Set java_home, module_path and the application section
  3. Build the image with: jlinker image build

` + SubtitleStyle.Render("Examples:") + `
  jlinker image build                 Link an image for the host
  jlinker image build --target linux  Link against a cross-target JDK
  jlinker image build --dry-run       Print the jlink command
  jlinker image run -- --help         Run the linked application
  jlinker jdk inspect jdk.tar.gz      Show the release info of an archive`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.setVerbose(app.verbose)
		},
	}

	rootCmd.SetIn(app.stdin)
	rootCmd.SetOut(app.stdout)
	rootCmd.SetErr(app.stderr)

	rootCmd.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&app.configPath, "config", "", "project file (default is ./jlinker.cue)")

	rootCmd.AddCommand(newImageCommand(app))
	rootCmd.AddCommand(newJdkCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))

	return rootCmd
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the CLI and exits the process with the resulting code.
// It is called by main.main().
func Execute() {
	app, err := NewApp(Dependencies{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := fang.Execute(
		context.Background(),
		NewRootCommand(app),
		fang.WithVersion(getVersionString()),
		fang.WithCommit(Commit),
		fang.WithErrorHandler(app.handleError),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(int(exitErr.Code))
		}
		os.Exit(1)
	}
}
